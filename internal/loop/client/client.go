// Package client renders a session to a terminal and turns key and mouse
// input into game input.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/tomz197/spacedodge/internal/audio"
	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/game"
	"github.com/tomz197/spacedodge/internal/input"
	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/loop/server"
	"github.com/tomz197/spacedodge/internal/object"
)

// Sound plays cues once unlocked. *audio.Gate implements it.
type Sound interface {
	Unlock() bool
	Play(c audio.Cue)
}

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	sound        Sound
	events       <-chan game.Event
	stopServer   context.CancelFunc
	serverDone   chan struct{}
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Sound        Sound // Optional; silent when nil
}

// NewClient creates a new client for the given server. The server is
// started when the player leaves the title screen.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	sound := opts.Sound
	if sound == nil {
		sound = audio.NewGate(nil)
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	view := gs.GetSnapshot().View
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, float64(view.Width), float64(view.Height))
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		server:       gs,
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		reader:       r,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		sound:        sound,
		events:       gs.Events(),
	}
}

// Run starts the client loop. Blocks until the player quits, goes idle,
// or the shutdown countdown after ctx is cancelled runs out.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)
	defer c.stop()

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		if ctx.Err() != nil && c.state.GameState != GameStateShutdown {
			c.state.GameState = GameStateShutdown
			c.state.shutdownTimer = config.ShutdownDisplaySeconds
		}

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		// Handle game state
		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState(ctx)
		case GameStatePlaying, GameStateOver:
			c.updateGameState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// stop cancels the session server and waits for it to finish.
func (c *Client) stop() {
	if c.stopServer == nil {
		return
	}
	c.stopServer()
	<-c.serverDone
	c.stopServer = nil
}

// processInput reads input and forwards it to the server.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}

	// Audio unlock listens to the same fire action as the ship, independently.
	if c.state.Input.Fire > 0 {
		c.sound.Unlock()
	}

	if c.state.GameState == GameStatePlaying || c.state.GameState == GameStateOver {
		c.server.SendInput(c.gameInput(c.state.Input))
	}
}

// gameInput translates terminal input into session input.
func (c *Client) gameInput(in input.Input) game.Input {
	out := game.Input{
		Nudge:   float64(in.Right-in.Left) * object.ShipNudge,
		Fire:    in.Fire,
		Restart: in.Restart,
	}
	if in.Mouse {
		x, _ := c.canvas.TerminalToLogical(in.MouseCol, in.MouseRow)
		out.Pointer = true
		out.PointerX = x
	}
	return out
}

// processServerEvents turns session events into sound cues.
func (c *Client) processServerEvents() {
	for c.events != nil {
		select {
		case ev, ok := <-c.events:
			if !ok {
				// Server stopped
				c.events = nil
				return
			}
			if cue, ok := audio.CueFor(ev.Kind); ok {
				c.sound.Play(cue)
			}
			if ev.Kind == game.EventStarted {
				input.ResetKeyInput(c.inputStream)
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState handles the title screen.
func (c *Client) updateStartState(ctx context.Context) {
	if c.state.Input.Start {
		c.startGame(ctx)
	}
}

// startGame starts the session server in the background.
func (c *Client) startGame(ctx context.Context) {
	input.ResetKeyInput(c.inputStream)

	runCtx, cancel := context.WithCancel(ctx)
	c.stopServer = cancel
	c.serverDone = make(chan struct{})
	go func() {
		defer close(c.serverDone)
		c.server.Run(runCtx)
	}()

	c.state.GameState = GameStatePlaying
}

// updateGameState follows the session's phase.
func (c *Client) updateGameState() {
	if c.server.GetSnapshot().Phase == game.PhaseGameOver {
		c.state.GameState = GameStateOver
	} else {
		c.state.GameState = GameStatePlaying
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
