package object

import "math/rand"

// Spawner accepts newly created entities.
type Spawner interface {
	Spawn(e *Entity)
}

// SpawnContext provides what the spawner needs on each tick.
type SpawnContext struct {
	View     Screen
	Rand     *rand.Rand
	Hostiles int // Live hostiles before this tick's spawns
	Spawner  Spawner
}

// HostileSpawner creates one asteroid and one enemy every period ticks.
type HostileSpawner struct {
	period     int // Ticks between waves
	maxLive    int // Live hostile cap, 0 = unlimited
	elapsed    int
	stopped    bool
	spawned    int // Total hostiles spawned since the last Reset
	suppressed int // Hostiles skipped because of the cap
}

// NewHostileSpawner creates a spawner firing every period ticks and keeping
// at most maxLive hostiles alive (0 disables the cap).
func NewHostileSpawner(period, maxLive int) *HostileSpawner {
	if period < 1 {
		period = 1
	}
	if maxLive < 0 {
		maxLive = 0
	}
	return &HostileSpawner{
		period:  period,
		maxLive: maxLive,
	}
}

// Reset restarts the period and re-arms a stopped spawner.
func (s *HostileSpawner) Reset() {
	s.elapsed = 0
	s.stopped = false
	s.spawned = 0
	s.suppressed = 0
}

// Stop halts spawning until the next Reset.
func (s *HostileSpawner) Stop() {
	s.stopped = true
}

// Stopped reports whether the spawner is halted.
func (s *HostileSpawner) Stopped() bool {
	return s.stopped
}

// Spawned returns the number of hostiles created since the last Reset.
func (s *HostileSpawner) Spawned() int {
	return s.spawned
}

// Suppressed returns the number of hostiles skipped because of the cap.
func (s *HostileSpawner) Suppressed() int {
	return s.suppressed
}

// Update advances the spawner by one tick, spawning a wave when the period
// elapses. Returns the number of hostiles spawned this tick.
func (s *HostileSpawner) Update(ctx SpawnContext) int {
	if s.stopped || ctx.Spawner == nil {
		return 0
	}

	s.elapsed++
	if s.elapsed < s.period {
		return 0
	}
	s.elapsed = 0

	live := ctx.Hostiles
	count := 0
	for _, kind := range [...]Kind{KindAsteroid, KindEnemy} {
		if s.maxLive > 0 && live >= s.maxLive {
			s.suppressed++
			continue
		}

		x := RandomSpawnX(ctx.View, ctx.Rand)
		var e *Entity
		if kind == KindAsteroid {
			e = NewAsteroid(x, ctx.Rand)
		} else {
			e = NewEnemy(x)
		}
		ctx.Spawner.Spawn(e)
		live++
		count++
	}
	s.spawned += count
	return count
}
