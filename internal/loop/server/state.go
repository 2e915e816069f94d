package server

import (
	"github.com/tomz197/spacedodge/internal/game"
	"github.com/tomz197/spacedodge/internal/object"
)

// Snapshot is an immutable copy of a session for rendering. Readers may
// keep it as long as they like; the server never mutates a published one.
type Snapshot struct {
	Tick        uint64
	Phase       game.Phase
	Score       int
	Lives       int
	Hostiles    int
	View        object.Screen
	Ship        object.Entity
	Entities    []object.Entity // Live entities in insertion order
	Leaderboard []int           // Top scores, best first
}

// Leaderboard is where the server commits final scores and reads the
// current ranking from.
type Leaderboard interface {
	game.Recorder
	Entries() []int
}

// takeSnapshot copies the session state into a new Snapshot.
func takeSnapshot(s *game.Session, board []int) *Snapshot {
	live := s.Entities()
	entities := make([]object.Entity, len(live))
	for i, e := range live {
		entities[i] = *e
	}

	return &Snapshot{
		Tick:        s.TickCount(),
		Phase:       s.Phase(),
		Score:       s.Score(),
		Lives:       s.Lives(),
		Hostiles:    s.Hostiles(),
		View:        s.View(),
		Ship:        *s.Ship(),
		Entities:    entities,
		Leaderboard: board,
	}
}
