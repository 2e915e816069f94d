package client

import (
	"fmt"
	"time"

	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/loop/server"
	"github.com/tomz197/spacedodge/internal/object"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	snapshot := c.server.GetSnapshot()

	if c.state.GameState == GameStatePlaying || c.state.GameState == GameStateOver {
		ctx := object.DrawContext{Canvas: c.canvas}
		for i := range snapshot.Entities {
			if err := snapshot.Entities[i].Draw(ctx); err != nil {
				return err
			}
		}
		if err := snapshot.Ship.Draw(ctx); err != nil {
			return err
		}
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	// Draw UI overlay
	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snapshot *server.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth, termHeight, snapshot)
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateOver:
		c.drawPlayingHUD(termWidth, termHeight, snapshot)
		c.drawGameOverScreen(centerX, centerY, snapshot)
	}
}

// writeCentered writes s centered on col and marks the cells dirty so
// the canvas repaints them once the text goes away.
func (c *Client) writeCentered(col, row int, s string) {
	start := col - len(s)/2
	n := c.chunkWriter.WriteAt(start, row, s)
	c.canvas.MarkTextDirty(start, row, n)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeCentered(centerX, centerY, msg)
	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	titleArt := []string{
		` ___  ___    _     ___  ___    ___    ___   ___    ___  ___ `,
		`/ __|| _ \  /_\   / __|| __|  |   \  / _ \ |   \  / __|| __|`,
		`\__ \|  _/ / _ \ | (__ | _|   | |) || (_) || |) || (_ || _| `,
		`|___/|_|  /_/ \_\ \___||___|  |___/  \___/ |___/  \___||___|`,
		``,
	}

	cw := c.chunkWriter
	titleWidth := len(titleArt[0])
	titleStartY := centerY - 7
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	subtitle := "~ Shoot the rocks, dodge the rest ~"
	cw.WriteAt(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, subtitle)

	// Controls section
	controlsY := titleStartY + len(titleArt) + 3
	controlHeader := "Controls"
	cw.WriteAt(centerX-len(controlHeader)/2, controlsY, controlHeader)

	controlLines := []string{
		"Mouse  . . . . . . Move",
		"A D / < >  . . . . Move",
		"SPACE / Click  . . Fire",
		"R / ENTER  . .  Restart",
		"Q  . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		cw.WriteAt(centerX-len(line)/2, controlsY+1+i, line)
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Start  <<"
		cw.WriteAt(centerX-len(prompt)/2, controlsY+len(controlLines)+2, prompt)
	} else {
		c.canvas.MarkTextDirty(1, controlsY+len(controlLines)+2, c.canvas.TerminalWidth())
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snapshot *server.Snapshot) {
	cw := c.chunkWriter
	// Score display (top left), padded to 8 digits
	scoreText := fmt.Sprintf("Score: %-8d", snapshot.Score)
	cw.WriteAt(2, 1, scoreText)

	// Lives display (top right), red on the last life
	livesText := fmt.Sprintf("Lives: %-3d", snapshot.Lives)
	if snapshot.Lives == 1 {
		cw.WriteAt(termWidth-len(livesText)-1, 1, draw.ColorBrightRed+livesText+draw.ColorReset)
	} else {
		cw.WriteAt(termWidth-len(livesText)-1, 1, livesText)
	}

	if len(snapshot.Leaderboard) > 0 {
		bestText := fmt.Sprintf("Best: %-8d", snapshot.Leaderboard[0])
		cw.WriteAt(2, termHeight, bestText)
	}

	hostilesText := fmt.Sprintf("Hostiles: %-4d", snapshot.Hostiles)
	cw.WriteAt(termWidth-len(hostilesText)-1, termHeight, hostilesText)
}

// drawGameOverScreen draws the final score, the leaderboard and the
// restart prompt on top of the frozen field.
func (c *Client) drawGameOverScreen(centerX, centerY int, snapshot *server.Snapshot) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
		`                                              `,
	}

	titleWidth := len(titleArt[0])
	titleStartY := centerY - 8
	for i, line := range titleArt {
		c.writeCentered(centerX, titleStartY+i, fmt.Sprintf("%-*s", titleWidth, line))
	}

	row := titleStartY + len(titleArt) + 1
	c.writeCentered(centerX, row, fmt.Sprintf("Final score: %d", snapshot.Score))

	row += 2
	c.writeCentered(centerX, row, "Leaderboard")
	for i, score := range snapshot.Leaderboard {
		line := fmt.Sprintf("%d. %8d", i+1, score)
		if i == 0 {
			start := centerX - len(line)/2
			c.chunkWriter.WriteAt(start, row+1, draw.ColorYellow+line+draw.ColorReset)
			c.canvas.MarkTextDirty(start, row+1, len(line))
			continue
		}
		c.writeCentered(centerX, row+1+i, line)
	}
	if len(snapshot.Leaderboard) == 0 {
		c.writeCentered(centerX, row+1, "(empty)")
	}

	row += config.LeaderboardSize + 2
	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, row, ">>  Press R to Restart  <<")
	} else {
		c.canvas.MarkTextDirty(1, row, c.canvas.TerminalWidth())
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-3, title)

	msg1 := "The server is restarting for maintenance."
	cw.WriteAt(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := "Please reconnect in a moment."
	cw.WriteAt(centerX-len(msg2)/2, centerY, msg2)

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %-3d seconds...", remaining)
	cw.WriteAt(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press Q to disconnect now"
	cw.WriteAt(centerX-len(hint)/2, centerY+4, hint)
}
