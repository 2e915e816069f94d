package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/spacedodge/internal/object"
	"github.com/tomz197/spacedodge/internal/physics"
)

// Phase is the session's coarse state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	if p == PhaseGameOver {
		return "gameover"
	}
	return "playing"
}

// Recorder receives the final score when a game ends.
type Recorder interface {
	Record(score int) error
}

// Input is everything the player did since the previous tick.
type Input struct {
	PointerX float64 // Logical x of the pointer, valid if Pointer is set
	Pointer  bool
	Nudge    float64 // Horizontal keyboard movement in logical units
	Fire     int     // Number of shots requested
	Restart  bool
}

// Merge folds later input into in: the last pointer position wins,
// movement and shots add up, restart requests stick.
func (in *Input) Merge(later Input) {
	if later.Pointer {
		in.Pointer = true
		in.PointerX = later.PointerX
	}
	in.Nudge += later.Nudge
	in.Fire += later.Fire
	in.Restart = in.Restart || later.Restart
}

// gridCellSize covers the largest hostile extent plus the distance a
// hostile may have moved since the grid was built in the same tick.
const gridCellSize = object.HostileSize + object.AsteroidStep

// Session owns all state of one game: the ship, the live entities, score,
// lives and phase. It is not safe for concurrent use; a single goroutine
// drives it through Tick.
type Session struct {
	rules    Rules
	view     object.Screen
	rng      *rand.Rand
	recorder Recorder
	spawner  *object.HostileSpawner
	grid     *physics.SpatialGrid

	ship     *object.Entity
	entities []*object.Entity // Live entities in insertion order
	toSpawn  []*object.Entity // Added after the current tick's motion pass
	nextID   uint64

	tick   uint64
	score  int
	lives  int
	phase  Phase
	events []Event
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used for spawn positions and shapes.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithRecorder sets where final scores are committed.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// NewSession creates a session and starts the first game.
func NewSession(rules Rules, opts ...Option) *Session {
	rules = rules.withDefaults()
	s := &Session{
		rules:   rules,
		view:    object.NewScreen(rules.Width, rules.Height),
		spawner: object.NewHostileSpawner(rules.SpawnPeriodTicks(), rules.MaxHostiles),
		grid:    physics.NewSpatialGrid(float64(rules.Width), float64(rules.Height), gridCellSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.Start()
	return s
}

// Spawn queues an entity to join the live collection after the current
// motion pass. Implements object.Spawner.
func (s *Session) Spawn(e *object.Entity) {
	s.nextID++
	e.ID = s.nextID
	s.toSpawn = append(s.toSpawn, e)
}

// flushSpawned adds all queued entities to the live collection.
func (s *Session) flushSpawned() {
	s.entities = append(s.entities, s.toSpawn...)
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
}

// compact drops entities marked for removal, keeping insertion order.
func (s *Session) compact() {
	kept := s.entities[:0]
	for _, e := range s.entities {
		if !e.IsRemoved() {
			kept = append(kept, e)
		}
	}
	clear(s.entities[len(kept):])
	s.entities = kept
}

// Rules returns the session's parameters.
func (s *Session) Rules() Rules {
	return s.rules
}

// View returns the logical viewport.
func (s *Session) View() object.Screen {
	return s.view
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Lives returns the remaining lives.
func (s *Session) Lives() int {
	return s.lives
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// TickCount returns the number of ticks processed.
func (s *Session) TickCount() uint64 {
	return s.tick
}

// Ship returns the player's ship.
func (s *Session) Ship() *object.Entity {
	return s.ship
}

// Entities returns the live entities in insertion order. The slice is
// owned by the session and only valid until the next Tick.
func (s *Session) Entities() []*object.Entity {
	return s.entities
}

// Hostiles returns the number of live hostiles.
func (s *Session) Hostiles() int {
	return object.CountHostiles(s.entities)
}

// Spawner returns the hostile spawner, exposed for inspection.
func (s *Session) Spawner() *object.HostileSpawner {
	return s.spawner
}
