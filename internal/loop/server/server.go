// Package server hosts a game session on a fixed tick and publishes
// snapshots and events to the front-end that drives it.
package server

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/game"
)

// GameServer is the interface front-ends use to talk to a session host.
// Decouples the terminal client and the websocket handler from the
// concrete Server, enabling testing.
type GameServer interface {
	Run(ctx context.Context)
	SendInput(input game.Input)
	GetSnapshot() *Snapshot
	Events() <-chan game.Event
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

const (
	inputBuffer  = 256
	eventsBuffer = 64
)

// Options configures a Server.
type Options struct {
	Rules       game.Rules
	Leaderboard Leaderboard // Optional; scores are discarded when nil
	Rand        *rand.Rand  // Optional; seeded from the clock when nil
	Logger      *log.Logger // Optional; defaults to the global logger
}

// Server owns one game.Session and advances it every tick. Input is
// collected from any goroutine through SendInput and applied at the start
// of the next tick.
type Server struct {
	session     *game.Session
	tick        time.Duration
	leaderboard Leaderboard
	logger      *log.Logger
	snapshot    atomic.Pointer[Snapshot]
	inputCh     chan game.Input
	eventsCh    chan game.Event
	board       []int // Cached leaderboard, refreshed when a game ends
}

// New creates a server with a freshly started session.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	sessionOpts := []game.Option{}
	if opts.Rand != nil {
		sessionOpts = append(sessionOpts, game.WithRand(opts.Rand))
	}
	if opts.Leaderboard != nil {
		sessionOpts = append(sessionOpts, game.WithRecorder(opts.Leaderboard))
	}
	session := game.NewSession(opts.Rules, sessionOpts...)

	s := &Server{
		session:     session,
		tick:        session.Rules().TickInterval,
		leaderboard: opts.Leaderboard,
		logger:      logger,
		inputCh:     make(chan game.Input, inputBuffer),
		eventsCh:    make(chan game.Event, eventsBuffer),
	}
	s.refreshBoard()
	s.publishEvents()
	s.snapshot.Store(takeSnapshot(session, s.board))
	return s
}

// Run advances the session every tick until ctx is cancelled, then closes
// the events channel.
func (s *Server) Run(ctx context.Context) {
	defer close(s.eventsCh)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()

		s.Step()

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < s.tick {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.tick - elapsed):
			}
		}
	}
}

// Step runs exactly one tick: merge pending input, advance the session,
// publish events and a new snapshot. Run calls it on schedule.
func (s *Server) Step() {
	in := s.collectInputs()
	s.session.Tick(in)
	s.publishEvents()
	s.snapshot.Store(takeSnapshot(s.session, s.board))
}

// SendInput queues input for the next tick. Never blocks; input is
// dropped if the queue is full.
func (s *Server) SendInput(input game.Input) {
	select {
	case s.inputCh <- input:
	default:
		// Input channel full, drop input
	}
}

// GetSnapshot returns the most recently published snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// TickInterval returns the time between two ticks.
func (s *Server) TickInterval() time.Duration {
	return s.tick
}

// Events returns the channel on which session events are delivered. It is
// closed when Run returns. Events are dropped if the reader falls behind.
func (s *Server) Events() <-chan game.Event {
	return s.eventsCh
}

// collectInputs merges all pending input into one.
func (s *Server) collectInputs() game.Input {
	var merged game.Input
	for {
		select {
		case in := <-s.inputCh:
			merged.Merge(in)
		default:
			return merged
		}
	}
}

// publishEvents forwards session events to the events channel.
func (s *Server) publishEvents() {
	for _, ev := range s.session.DrainEvents() {
		switch ev.Kind {
		case game.EventGameOver:
			s.refreshBoard()
			s.logger.Info("game over", "score", ev.Score, "tick", ev.Tick)
		case game.EventStarted:
			s.logger.Debug("game started", "tick", ev.Tick)
		}

		select {
		case s.eventsCh <- ev:
		default:
			s.logger.Debug("event dropped", "kind", ev.Kind)
		}
	}
}

func (s *Server) refreshBoard() {
	if s.leaderboard == nil {
		return
	}
	s.board = s.leaderboard.Entries()
}
