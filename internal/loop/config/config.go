// Package config centralizes all tunable game parameters.
package config

import "time"

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit the terminal or browser canvas.
const (
	ViewWidth  = 800
	ViewHeight = 600
)

// Timing
const (
	TickInterval  = 20 * time.Millisecond   // One motion step for every live entity
	SpawnInterval = 1000 * time.Millisecond // One asteroid + one enemy
)

// Scoring and lives
const (
	HitScore     = 10
	InitialLives = 3
)

// Spawning
const (
	MaxLiveHostiles = 64 // 0 disables the cap
)

// Leaderboard
const (
	LeaderboardSize = 5
	LeaderboardPath = "leaderboard.json"
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 50
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 160 // Wider terminals are letterboxed
	MaxTermHeight         = 60
)
