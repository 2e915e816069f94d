package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/spacedodge/internal/audio"
	"github.com/tomz197/spacedodge/internal/config"
	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/game"
	"github.com/tomz197/spacedodge/internal/leaderboard"
	"github.com/tomz197/spacedodge/internal/loop/client"
	"github.com/tomz197/spacedodge/internal/loop/server"
)

// Time given to clients to show the shutdown screen before the listener closes.
const shutdownGrace = 12 * time.Second

// app holds what every SSH session shares.
type app struct {
	ctx      context.Context // Cancelled on shutdown
	rules    game.Rules
	board    *leaderboard.Store
	logger   *log.Logger
	sessions sync.WaitGroup
}

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatal("failed to load env", "err", err)
	}
	settings, err := config.Load(config.Path())
	if err != nil {
		log.Fatal("failed to load settings", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           settings.LogLevel(),
		ReportTimestamp: true,
		Prefix:          "ssh",
	})
	log.SetDefault(logger)

	host, port := settings.SSH.Host, settings.SSH.Port
	hostKeyPath := settings.SSH.HostKeyPath
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &app{
		ctx:    ctx,
		rules:  settings.Rules(),
		board:  leaderboard.Open(settings.Leaderboard.Path, settings.Leaderboard.Size),
		logger: logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Players see the shutdown screen until their countdown ends.
	cancel()
	waitTimeout(&a.sessions, shutdownGrace)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
	logger.Info("server stopped", "best", a.board.Best())
}

// waitTimeout waits for wg or until d passes.
func waitTimeout(wg *sync.WaitGroup, d time.Duration) {
	ch := make(chan struct{})
	go func() {
		wg.Wait()
		close(ch)
	}()
	select {
	case <-ch:
	case <-time.After(d):
	}
}

// gameMiddleware handles SSH sessions and runs a private game for each.
func (a *app) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		a.sessions.Add(1)
		defer a.sessions.Done()

		logger := a.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		gs := server.New(server.Options{
			Rules:       a.rules,
			Leaderboard: a.board,
			Logger:      logger,
		})

		reader := bufio.NewReader(sess)
		clientOpts := client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Sound:        audio.NewGate(audio.NewBell(sess)),
		}

		c := client.NewClient(gs, reader, sess, clientOpts)
		if err := c.Run(a.ctx); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended", "score", gs.GetSnapshot().Score)
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
