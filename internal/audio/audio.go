// Package audio plays the game's sound cues behind a one-time unlock.
package audio

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/game"
)

// Cue identifies a sound effect.
type Cue int

const (
	CueShoot Cue = iota
	CueExplosion
	CueGameOver
)

// String returns the cue name, used in logs and web frames.
func (c Cue) String() string {
	switch c {
	case CueShoot:
		return "shoot"
	case CueExplosion:
		return "explosion"
	case CueGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// CueFor returns the cue that accompanies a session event, if any.
func CueFor(kind game.EventKind) (Cue, bool) {
	switch kind {
	case game.EventShot:
		return CueShoot, true
	case game.EventHit, game.EventShipHit:
		return CueExplosion, true
	case game.EventGameOver:
		return CueGameOver, true
	default:
		return 0, false
	}
}

// Backend produces sound for cues once initialized.
type Backend interface {
	// Init prepares the output device. It is called at most once.
	Init() error
	// Play starts a cue without waiting for it to finish.
	Play(c Cue)
}

// Gate forwards cues to a backend only after a successful Unlock.
// A failed unlock leaves the gate locked for good; cues are dropped silently.
type Gate struct {
	backend  Backend
	once     sync.Once
	mu       sync.RWMutex
	unlocked bool
}

// NewGate wraps backend in a locked gate. A nil backend never unlocks.
func NewGate(backend Backend) *Gate {
	return &Gate{backend: backend}
}

// Unlock initializes the backend on the first call. Later calls do nothing.
// Reports whether the gate is unlocked.
func (g *Gate) Unlock() bool {
	g.once.Do(func() {
		if g.backend == nil {
			return
		}
		if err := g.backend.Init(); err != nil {
			log.Debug("audio unavailable", "err", err)
			return
		}
		g.mu.Lock()
		g.unlocked = true
		g.mu.Unlock()
	})
	return g.Unlocked()
}

// Unlocked reports whether cues reach the backend.
func (g *Gate) Unlocked() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.unlocked
}

// Play forwards c to the backend if the gate is unlocked.
func (g *Gate) Play(c Cue) {
	if !g.Unlocked() {
		return
	}
	g.backend.Play(c)
}
