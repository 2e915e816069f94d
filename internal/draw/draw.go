// Package draw renders logical shapes to a terminal using half-block characters.
package draw

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// ANSI color sequences used by overlays.
const (
	ColorReset      = "\033[0m"
	ColorBrightCyan = "\033[96m"
	ColorBrightRed  = "\033[91m"
	ColorYellow     = "\033[33m"
)

// Mouse reporting: any-motion tracking with SGR extended coordinates.
const (
	mouseOn  = "\033[?1003h\033[?1006h"
	mouseOff = "\033[?1003l\033[?1006l"
)

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// TerminalSizeRawWith returns actual terminal dimensions using the provided size function.
func TerminalSizeRawWith(sizeFunc TermSizeFunc) (width, height int, err error) {
	return sizeFunc()
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// EnableMouse turns on pointer motion and click reporting.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, mouseOn)
}

// DisableMouse turns pointer reporting back off.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, mouseOff)
}

// Bell rings the terminal bell.
func Bell(w io.Writer) {
	fmt.Fprint(w, "\a")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
