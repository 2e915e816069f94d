package client

import (
	"bufio"
	"bytes"
	"context"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomz197/spacedodge/internal/audio"
	"github.com/tomz197/spacedodge/internal/game"
	"github.com/tomz197/spacedodge/internal/input"
	"github.com/tomz197/spacedodge/internal/loop/server"
	"github.com/tomz197/spacedodge/internal/object"
)

type fakeServer struct {
	mu     sync.Mutex
	inputs []game.Input
	runs   int
	snap   *server.Snapshot
	events chan game.Event
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		snap: &server.Snapshot{
			View:  object.NewScreen(800, 600),
			Lives: 3,
		},
		events: make(chan game.Event, 8),
	}
}

func (f *fakeServer) Run(ctx context.Context) {
	f.mu.Lock()
	f.runs++
	f.mu.Unlock()
	<-ctx.Done()
}

func (f *fakeServer) SendInput(in game.Input) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, in)
}

func (f *fakeServer) GetSnapshot() *server.Snapshot { return f.snap }
func (f *fakeServer) Events() <-chan game.Event     { return f.events }

func (f *fakeServer) runCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs
}

func newTestClient(gs server.GameServer, in string) *Client {
	size := func() (int, int, error) { return 80, 30, nil }
	return NewClient(gs, bufio.NewReader(strings.NewReader(in)), &bytes.Buffer{}, ClientOptions{
		TermSizeFunc: size,
		Sound:        &fakeSound{},
	})
}

type fakeSound struct {
	mu      sync.Mutex
	unlocks int
	played  []audio.Cue
}

func (s *fakeSound) Unlock() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlocks++
	return true
}

func (s *fakeSound) Play(c audio.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.played = append(s.played, c)
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name                     string
		w, h                     int
		wantW, wantH, offC, offR int
	}{
		{"fits", 80, 24, 80, 24, 0, 0},
		{"too wide", 200, 40, 160, 40, 20, 0},
		{"too tall", 100, 100, 100, 60, 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, oc, or := clampTermSize(tt.w, tt.h)
			if w != tt.wantW || h != tt.wantH || oc != tt.offC || or != tt.offR {
				t.Errorf("clampTermSize(%d, %d) = %d, %d, %d, %d, want %d, %d, %d, %d",
					tt.w, tt.h, w, h, oc, or, tt.wantW, tt.wantH, tt.offC, tt.offR)
			}
		})
	}
}

func TestGameInputTranslation(t *testing.T) {
	c := newTestClient(newFakeServer(), "")

	got := c.gameInput(input.Input{Left: 1, Right: 3, Fire: 2, Restart: true})
	if got.Nudge != 2*object.ShipNudge {
		t.Errorf("nudge = %v, want %v", got.Nudge, 2*object.ShipNudge)
	}
	if got.Fire != 2 || !got.Restart {
		t.Errorf("fire, restart = %d, %v, want 2, true", got.Fire, got.Restart)
	}
	if got.Pointer {
		t.Error("pointer should be unset without a mouse report")
	}

	// 80 columns over 800 units: column 41 is centered on x = 405.
	got = c.gameInput(input.Input{Mouse: true, MouseCol: 41, MouseRow: 1})
	if !got.Pointer || math.Abs(got.PointerX-405) > 1e-9 {
		t.Errorf("pointer = %v %v, want true 405", got.Pointer, got.PointerX)
	}
}

func TestEventsPlayCues(t *testing.T) {
	gs := newFakeServer()
	c := newTestClient(gs, "")
	snd := c.sound.(*fakeSound)

	gs.events <- game.Event{Kind: game.EventShot}
	gs.events <- game.Event{Kind: game.EventHit}
	gs.events <- game.Event{Kind: game.EventShipHit}
	gs.events <- game.Event{Kind: game.EventGameOver}
	c.processServerEvents()

	want := []audio.Cue{audio.CueShoot, audio.CueExplosion, audio.CueExplosion, audio.CueGameOver}
	if len(snd.played) != len(want) {
		t.Fatalf("played = %v, want %v", snd.played, want)
	}
	for i := range want {
		if snd.played[i] != want[i] {
			t.Errorf("played[%d] = %v, want %v", i, snd.played[i], want[i])
		}
	}

	close(gs.events)
	c.processServerEvents()
	if c.events != nil {
		t.Error("closed events channel should be released")
	}
}

func TestRunStartsServerAndQuits(t *testing.T) {
	gs := newFakeServer()
	c := newTestClient(gs, " ")
	snd := c.sound.(*fakeSound)

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after input ended")
	}

	if got := gs.runCount(); got != 1 {
		t.Errorf("server runs = %d, want 1", got)
	}
	snd.mu.Lock()
	defer snd.mu.Unlock()
	if snd.unlocks != 1 {
		t.Errorf("audio unlocks = %d, want 1", snd.unlocks)
	}
}

func TestShutdownCountdown(t *testing.T) {
	c := newTestClient(newFakeServer(), "")

	c.state.GameState = GameStateShutdown
	c.state.shutdownTimer = 0.05
	c.state.delta = 100 * time.Millisecond
	c.updateShutdownState()
	if c.state.Running {
		t.Error("client should stop when the countdown runs out")
	}
}
