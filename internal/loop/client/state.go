package client

import (
	"time"

	"github.com/tomz197/spacedodge/internal/input"
)

// GameState represents the current screen shown to the player.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Final score, leaderboard, restart prompt
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection UI state.
type ClientState struct {
	Input         input.Input
	GameState     GameState
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time (client-side)
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	prevGameState GameState     // For detecting transitions that need a full clear
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		prevGameState: GameStateStart,
		Running:       true,
	}
}
