package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/spacedodge/internal/audio"
	"github.com/tomz197/spacedodge/internal/config"
	"github.com/tomz197/spacedodge/internal/leaderboard"
	"github.com/tomz197/spacedodge/internal/loop/client"
	"github.com/tomz197/spacedodge/internal/loop/server"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load env: %v\n", err)
		os.Exit(1)
	}
	settings, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load settings: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the game, so logs go to a file or nowhere.
	logOut := io.Discard
	if settings.Log.File != "" {
		f, err := os.OpenFile(settings.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{
		Level:           settings.LogLevel(),
		ReportTimestamp: true,
		Prefix:          "game",
	})
	log.SetDefault(logger)

	board := leaderboard.Open(settings.Leaderboard.Path, settings.Leaderboard.Size)
	gs := server.New(server.Options{
		Rules:       settings.Rules(),
		Leaderboard: board,
		Logger:      logger,
	})

	speaker := audio.NewSpeaker()
	defer speaker.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	c := client.NewClient(gs, reader, os.Stdout, client.ClientOptions{
		Sound: audio.NewGate(speaker),
	})
	if err := c.Run(ctx); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("game closed", "best", board.Best())
}
