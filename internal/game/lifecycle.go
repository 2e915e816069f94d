package game

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/object"
)

// Start begins a new game: score 0, full lives, no live entities, spawner
// re-armed, phase Playing. The ship keeps its horizontal position.
func (s *Session) Start() {
	s.score = 0
	s.lives = s.rules.InitialLives
	s.clearEntities()
	s.spawner.Reset()
	if s.ship == nil {
		s.ship = object.NewShip(s.view)
	}
	s.phase = PhasePlaying
	s.emit(EventStarted)
}

// Restart starts a new game after a game over. It does nothing while
// Playing and reports whether a restart happened.
func (s *Session) Restart() bool {
	if s.phase != PhaseGameOver {
		return false
	}
	s.Start()
	return true
}

// clearEntities drops every live and queued entity.
func (s *Session) clearEntities() {
	clear(s.entities)
	s.entities = s.entities[:0]
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
}

// loseLife takes one life and ends the game when none are left.
// Reports whether the game ended.
func (s *Session) loseLife() bool {
	if s.phase != PhasePlaying || s.lives <= 0 {
		return false
	}
	s.lives--
	s.emit(EventShipHit)
	if s.lives == 0 {
		s.gameOver()
		return true
	}
	return false
}

// gameOver stops spawning and motion and commits the final score.
// Runs at most once per game.
func (s *Session) gameOver() {
	if s.phase == PhaseGameOver {
		return
	}
	s.phase = PhaseGameOver
	s.spawner.Stop()
	// Bullets fired this tick never launch.
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
	s.emit(EventGameOver)

	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(s.score); err != nil {
		log.Warn("failed to persist score", "score", s.score, "err", err)
	}
}
