package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/config"
	"github.com/tomz197/spacedodge/internal/leaderboard"
	"github.com/tomz197/spacedodge/internal/web"
)

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
		Prefix:          "web",
	})
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	board := leaderboard.Open(settings.Leaderboard.Path, settings.Leaderboard.Size)
	handler := web.NewHandler(ctx, web.Options{
		Rules:       settings.Rules(),
		Leaderboard: board,
		DisplayHost: settings.Web.DisplayHost,
		SSHPort:     settings.SSH.Port,
		Logger:      logger,
	})

	addr := net.JoinHostPort(settings.Web.Host, settings.Web.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting web server", "url", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	// Hijacked websocket connections are closed by the handler once ctx is done.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	logger.Info("server stopped", "best", board.Best())
}
