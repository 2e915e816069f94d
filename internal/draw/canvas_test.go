package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestCanvasRenderIsIncremental(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10) // 1:1 scale
	c.SetFloat(2, 2)

	var out bytes.Buffer
	c.Render(&out)
	first := out.String()
	if !strings.ContainsRune(first, BlockUpperHalf) {
		t.Fatalf("first render = %q, want an upper half block", first)
	}

	// Same pixels: nothing changes, nothing is written.
	c.Clear()
	c.SetFloat(2, 2)
	out.Reset()
	c.Render(&out)
	if out.Len() != 0 {
		t.Fatalf("unchanged render wrote %q, want nothing", out.String())
	}

	// Pixel gone: its cell is blanked.
	c.Clear()
	out.Reset()
	c.Render(&out)
	if got := out.String(); got != "\033[2;3H " {
		t.Fatalf("render after clear = %q, want blanking of cell (3,2)", got)
	}
}

func TestCanvasMarkTextDirty(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	var out bytes.Buffer
	c.Render(&out)

	c.MarkTextDirty(4, 1, 3)
	out.Reset()
	c.Render(&out)
	if got := strings.Count(out.String(), "\033["); got != 3 {
		t.Fatalf("render after MarkTextDirty wrote %d cells, want 3", got)
	}
}

func TestCanvasTerminalToLogical(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	c.SetOffset(5, 2)

	x, y := c.TerminalToLogical(6, 3) // first cell of the render area
	if x != 5 || y != 10 {
		t.Fatalf("TerminalToLogical(6,3) = (%v,%v), want (5,10)", x, y)
	}
	x, _ = c.TerminalToLogical(45, 3)
	if x != 395 {
		t.Fatalf("TerminalToLogical(45,3) x = %v, want 395", x)
	}
}

func TestCanvasFilledPolygon(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.DrawPolygon([]Point{{X: 1, Y: 1}, {X: 8, Y: 1}, {X: 8, Y: 8}, {X: 1, Y: 8}}, true)

	var out bytes.Buffer
	c.Render(&out)
	if got := strings.Count(out.String(), string(BlockFull)); got < 16 {
		t.Fatalf("filled square rendered %d full blocks, want >= 16", got)
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 1)
	if n := cw.WriteAt(2, 2, "Score"); n != 5 {
		t.Fatalf("WriteAt returned %d, want 5", n)
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := out.String(); got != "\033[3;5HScore" {
		t.Fatalf("output = %q, want %q", got, "\033[3;5HScore")
	}
}
