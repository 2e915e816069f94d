package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/tomz197/spacedodge/internal/object"
	"github.com/tomz197/spacedodge/internal/physics"
)

type fakeRecorder struct {
	scores []int
	err    error
}

func (r *fakeRecorder) Record(score int) error {
	r.scores = append(r.scores, score)
	return r.err
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	return NewSession(DefaultRules(), opts...)
}

// place adds e to the live collection immediately.
func place(s *Session, e *object.Entity) *object.Entity {
	s.Spawn(e)
	s.flushSpawned()
	return e
}

func asteroidAt(x, y float64) *object.Entity {
	e := object.NewAsteroid(x, rand.New(rand.NewSource(0)))
	e.Y = y
	return e
}

func bulletAt(x, y float64) *object.Entity {
	return &object.Entity{
		Kind: object.KindBullet,
		X:    x, Y: y,
		W: object.BulletWidth, H: object.BulletHeight,
		VY: object.BulletStep,
	}
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewSessionStartsPlaying(t *testing.T) {
	s := newTestSession(t)

	if s.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, want playing", s.Phase())
	}
	if s.Score() != 0 || s.Lives() != 3 {
		t.Errorf("score, lives = %d, %d, want 0, 3", s.Score(), s.Lives())
	}
	if len(s.Entities()) != 0 {
		t.Errorf("entities = %d, want 0", len(s.Entities()))
	}
	events := s.DrainEvents()
	if countKind(events, EventStarted) != 1 {
		t.Errorf("started events = %d, want 1", countKind(events, EventStarted))
	}
	if s.DrainEvents() != nil {
		t.Error("second drain should be empty")
	}
}

func TestSpawnWaveEverySecond(t *testing.T) {
	s := newTestSession(t)

	for i := 0; i < 49; i++ {
		s.Tick(Input{})
	}
	if got := len(s.Entities()); got != 0 {
		t.Fatalf("entities before first wave = %d, want 0", got)
	}

	s.Tick(Input{})
	ents := s.Entities()
	if len(ents) != 2 {
		t.Fatalf("entities after first wave = %d, want 2", len(ents))
	}
	if ents[0].Kind != object.KindAsteroid || ents[1].Kind != object.KindEnemy {
		t.Errorf("wave order = %v, %v, want asteroid, enemy", ents[0].Kind, ents[1].Kind)
	}
	for _, e := range ents {
		if e.Y != -object.HostileSize {
			t.Errorf("%v spawned at y = %v, want %v", e.Kind, e.Y, -object.HostileSize)
		}
		if e.X < 0 || e.X >= float64(s.View().Width)-object.HostileSize {
			t.Errorf("%v spawned at x = %v, outside [0, %v)", e.Kind, e.X, float64(s.View().Width)-object.HostileSize)
		}
	}

	s.Tick(Input{})
	if ents[0].Y != -35 {
		t.Errorf("asteroid y = %v, want -35", ents[0].Y)
	}
	if ents[1].Y != -37 {
		t.Errorf("enemy y = %v, want -37", ents[1].Y)
	}

	for i := 0; i < 49; i++ {
		s.Tick(Input{})
	}
	if got := s.Hostiles(); got != 4 {
		t.Errorf("hostiles after second wave = %d, want 4", got)
	}
}

func TestFireLaunchesBulletFromShipNose(t *testing.T) {
	s := newTestSession(t)
	ship := s.Ship()

	s.Tick(Input{Fire: 1})
	ents := s.Entities()
	if len(ents) != 1 || ents[0].Kind != object.KindBullet {
		t.Fatalf("entities = %v, want one bullet", ents)
	}
	b := ents[0]
	if want := ship.X + ship.W/2 - 2.5; b.X != want {
		t.Errorf("bullet x = %v, want %v", b.X, want)
	}
	if want := ship.Y - object.BulletHeight; b.Y != want {
		t.Errorf("bullet y = %v, want %v", b.Y, want)
	}

	s.Tick(Input{})
	if want := ship.Y - object.BulletHeight - 10; b.Y != want {
		t.Errorf("bullet y after one step = %v, want %v", b.Y, want)
	}
	if got := countKind(s.DrainEvents(), EventShot); got != 1 {
		t.Errorf("shot events = %d, want 1", got)
	}
}

func TestPointerMovesShipUnclamped(t *testing.T) {
	s := newTestSession(t)

	s.Tick(Input{Pointer: true, PointerX: 0})
	if got := s.Ship().X; got != -25 {
		t.Errorf("ship x = %v, want -25", got)
	}
	s.Tick(Input{Nudge: -object.ShipNudge})
	if got := s.Ship().X; got != -45 {
		t.Errorf("ship x after nudge = %v, want -45", got)
	}
}

func TestBulletDestroysHostile(t *testing.T) {
	s := newTestSession(t)
	a := place(s, asteroidAt(100, 100))
	b := place(s, bulletAt(110, 150))
	s.DrainEvents()

	s.Tick(Input{})

	if !a.IsRemoved() || !b.IsRemoved() {
		t.Fatalf("removed = %v, %v, want both", a.IsRemoved(), b.IsRemoved())
	}
	if got := s.Score(); got != 10 {
		t.Errorf("score = %d, want 10", got)
	}
	if got := len(s.Entities()); got != 0 {
		t.Errorf("entities = %d, want 0", got)
	}
	if got := countKind(s.DrainEvents(), EventHit); got != 1 {
		t.Errorf("hit events = %d, want 1", got)
	}
}

func TestBulletHitsEarliestHostile(t *testing.T) {
	s := newTestSession(t)
	first := place(s, asteroidAt(100, 100))
	second := place(s, asteroidAt(105, 100))
	place(s, bulletAt(110, 150))

	s.Tick(Input{})

	if !first.IsRemoved() {
		t.Error("earliest hostile should be destroyed")
	}
	if second.IsRemoved() {
		t.Error("later hostile should survive")
	}
	if got := s.Score(); got != 10 {
		t.Errorf("score = %d, want 10", got)
	}
}

func TestTouchingEdgesCollide(t *testing.T) {
	s := newTestSession(t)
	// After one step the asteroid spans y 105..145 and the bullet 145..160.
	a := place(s, asteroidAt(100, 100))
	place(s, bulletAt(140, 155))

	s.Tick(Input{})

	if !a.IsRemoved() {
		t.Error("touching boxes should collide")
	}
}

func TestHostileHitsShip(t *testing.T) {
	s := newTestSession(t)
	h := place(s, asteroidAt(380, 510))
	s.DrainEvents()

	s.Tick(Input{})

	if !h.IsRemoved() {
		t.Error("hostile touching the ship should be removed")
	}
	if got := s.Lives(); got != 2 {
		t.Errorf("lives = %d, want 2", got)
	}
	if s.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing", s.Phase())
	}
	if got := countKind(s.DrainEvents(), EventShipHit); got != 1 {
		t.Errorf("ship hit events = %d, want 1", got)
	}
}

func TestHostileLeavesBottom(t *testing.T) {
	s := newTestSession(t)
	h := place(s, asteroidAt(0, float64(s.View().Height)))
	b := place(s, bulletAt(200, -6))

	s.Tick(Input{})

	if !h.IsRemoved() {
		t.Error("hostile below the view should be removed")
	}
	if !b.IsRemoved() {
		t.Error("bullet above the view should be removed")
	}
	if got := s.Lives(); got != 3 {
		t.Errorf("lives = %d, want 3", got)
	}
}

func TestGameOver(t *testing.T) {
	rec := &fakeRecorder{}
	s := newTestSession(t, WithRecorder(rec))
	s.score = 40
	s.lives = 1
	place(s, asteroidAt(380, 510))
	survivor := place(s, asteroidAt(380, 510))
	bullet := place(s, bulletAt(100, 300))
	s.DrainEvents()

	s.Tick(Input{})

	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want gameover", s.Phase())
	}
	if s.Lives() != 0 {
		t.Errorf("lives = %d, want 0", s.Lives())
	}
	if len(rec.scores) != 1 || rec.scores[0] != 40 {
		t.Errorf("recorded = %v, want [40]", rec.scores)
	}
	// The pass stops at the fatal hit.
	if survivor.IsRemoved() || survivor.Y != 510 {
		t.Errorf("survivor removed=%v y=%v, want untouched at 510", survivor.IsRemoved(), survivor.Y)
	}
	if bullet.Y != 300 {
		t.Errorf("bullet y = %v, want 300", bullet.Y)
	}
	if !s.Spawner().Stopped() {
		t.Error("spawner should be stopped")
	}

	for i := 0; i < 100; i++ {
		s.Tick(Input{Fire: 1})
	}
	if bullet.Y != 300 || survivor.Y != 510 {
		t.Errorf("entities moved after game over: bullet y=%v survivor y=%v", bullet.Y, survivor.Y)
	}
	if got := len(s.Entities()); got != 2 {
		t.Errorf("entities = %d, want 2 frozen", got)
	}

	events := s.DrainEvents()
	if got := countKind(events, EventGameOver); got != 1 {
		t.Errorf("game over events = %d, want 1", got)
	}
	if got := countKind(events, EventShot); got != 0 {
		t.Errorf("shot events after game over = %d, want 0", got)
	}
	if len(rec.scores) != 1 {
		t.Errorf("score recorded %d times, want once", len(rec.scores))
	}
}

func TestGameOverRecorderErrorIsTolerated(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	s := newTestSession(t, WithRecorder(rec))
	s.lives = 1
	place(s, asteroidAt(380, 510))

	s.Tick(Input{})

	if s.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, want gameover", s.Phase())
	}
}

func TestRestart(t *testing.T) {
	s := newTestSession(t)
	s.score = 30

	s.Tick(Input{Restart: true})
	if got := s.Score(); got != 30 {
		t.Errorf("restart while playing changed score to %d", got)
	}

	s.lives = 1
	place(s, asteroidAt(380, 510))
	place(s, asteroidAt(0, 0))
	s.Tick(Input{})
	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want gameover", s.Phase())
	}
	s.DrainEvents()

	s.Tick(Input{Restart: true})

	if s.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, want playing", s.Phase())
	}
	if s.Score() != 0 || s.Lives() != 3 {
		t.Errorf("score, lives = %d, %d, want 0, 3", s.Score(), s.Lives())
	}
	if got := len(s.Entities()); got != 0 {
		t.Errorf("entities = %d, want 0", got)
	}
	if s.Spawner().Stopped() {
		t.Error("spawner should be re-armed")
	}
	if got := countKind(s.DrainEvents(), EventStarted); got != 1 {
		t.Errorf("started events = %d, want 1", got)
	}

	for i := 0; i < 49; i++ {
		s.Tick(Input{})
	}
	if got := s.Hostiles(); got != 2 {
		t.Errorf("hostiles one second after restart = %d, want 2", got)
	}
}

func TestHostileCap(t *testing.T) {
	rules := DefaultRules()
	rules.MaxHostiles = 3
	s := NewSession(rules, WithRand(rand.New(rand.NewSource(7))))

	for i := 0; i < 200; i++ {
		s.Tick(Input{})
		if got := s.Hostiles(); got > 3 {
			t.Fatalf("tick %d: hostiles = %d, want <= 3", i, got)
		}
	}
	if s.Spawner().Suppressed() == 0 {
		t.Error("expected suppressed spawns")
	}
}

func TestLivesNeverNegative(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 10; i++ {
		place(s, asteroidAt(380, 510))
	}

	for i := 0; i < 5; i++ {
		s.Tick(Input{})
	}
	if s.Lives() != 0 {
		t.Errorf("lives = %d, want 0", s.Lives())
	}
	if s.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, want gameover", s.Phase())
	}
}

func TestResolveBulletMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		s := newTestSession(t)
		for i := 0; i < 30; i++ {
			x := rng.Float64() * 760
			y := rng.Float64()*640 - 40
			if rng.Intn(2) == 0 {
				place(s, asteroidAt(x, y))
			} else {
				place(s, object.NewEnemy(x)).Y = y
			}
		}
		b := place(s, bulletAt(rng.Float64()*800, rng.Float64()*600))

		want := -1
		for i, e := range s.entities {
			if e.Kind.Hostile() && physics.Overlaps(b.Bounds(), e.Bounds()) {
				want = i
				break
			}
		}

		s.indexHostiles()
		hit := s.resolveBullet(b)

		if hit != (want >= 0) {
			t.Fatalf("round %d: hit = %v, want %v", round, hit, want >= 0)
		}
		for i, e := range s.entities {
			if e.Kind.Hostile() && e.IsRemoved() != (i == want) {
				t.Fatalf("round %d: entity %d removed = %v, want index %d", round, i, e.IsRemoved(), want)
			}
		}
	}
}

func TestInputMerge(t *testing.T) {
	var in Input
	in.Merge(Input{Pointer: true, PointerX: 10, Fire: 1})
	in.Merge(Input{Nudge: -20, Restart: true})
	in.Merge(Input{Pointer: true, PointerX: 30, Fire: 2, Nudge: 5})

	if !in.Pointer || in.PointerX != 30 {
		t.Errorf("pointer = %v %v, want true 30", in.Pointer, in.PointerX)
	}
	if in.Fire != 3 {
		t.Errorf("fire = %d, want 3", in.Fire)
	}
	if in.Nudge != -15 {
		t.Errorf("nudge = %v, want -15", in.Nudge)
	}
	if !in.Restart {
		t.Error("restart should stick")
	}
}

func TestSpawnPeriodTicks(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
		want  int
	}{
		{"default", DefaultRules(), 50},
		{"spawn faster than tick", Rules{TickInterval: 20e6, SpawnInterval: 5e6}, 1},
		{"rounding", Rules{TickInterval: 30e6, SpawnInterval: 100e6}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rules.SpawnPeriodTicks(); got != tt.want {
				t.Errorf("SpawnPeriodTicks() = %d, want %d", got, tt.want)
			}
		})
	}
}
