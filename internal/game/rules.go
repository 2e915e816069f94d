// Package game implements a single player's game session: spawning,
// motion, combat and the playing/game-over lifecycle.
package game

import (
	"time"

	"github.com/tomz197/spacedodge/internal/loop/config"
)

// Rules are the tunable parameters of a session.
type Rules struct {
	Width         int           // Logical viewport width
	Height        int           // Logical viewport height
	TickInterval  time.Duration // Time represented by one Tick
	SpawnInterval time.Duration // Time between hostile waves
	MaxHostiles   int           // Live hostile cap, 0 = unlimited
	InitialLives  int
	HitScore      int
}

// DefaultRules returns the compiled-in gameplay parameters.
func DefaultRules() Rules {
	return Rules{
		Width:         config.ViewWidth,
		Height:        config.ViewHeight,
		TickInterval:  config.TickInterval,
		SpawnInterval: config.SpawnInterval,
		MaxHostiles:   config.MaxLiveHostiles,
		InitialLives:  config.InitialLives,
		HitScore:      config.HitScore,
	}
}

// withDefaults replaces unusable values with the defaults.
func (r Rules) withDefaults() Rules {
	d := DefaultRules()
	if r.Width <= 0 {
		r.Width = d.Width
	}
	if r.Height <= 0 {
		r.Height = d.Height
	}
	if r.TickInterval <= 0 {
		r.TickInterval = d.TickInterval
	}
	if r.SpawnInterval <= 0 {
		r.SpawnInterval = d.SpawnInterval
	}
	if r.MaxHostiles < 0 {
		r.MaxHostiles = 0
	}
	if r.InitialLives <= 0 {
		r.InitialLives = d.InitialLives
	}
	if r.HitScore < 0 {
		r.HitScore = d.HitScore
	}
	return r
}

// SpawnPeriodTicks returns how many ticks separate two hostile waves.
func (r Rules) SpawnPeriodTicks() int {
	if r.TickInterval <= 0 {
		return 1
	}
	n := int((r.SpawnInterval + r.TickInterval/2) / r.TickInterval)
	if n < 1 {
		n = 1
	}
	return n
}
