package audio

import (
	"io"
	"sync"

	"github.com/tomz197/spacedodge/internal/draw"
)

// Bell rings the terminal bell for explosion and game-over cues.
// Used where no sound device exists (SSH sessions).
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a bell backend writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Init always succeeds.
func (b *Bell) Init() error {
	return nil
}

// Play rings the bell. Shots are too frequent to ring for.
func (b *Bell) Play(c Cue) {
	if c == CueShoot {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	draw.Bell(b.w)
}
