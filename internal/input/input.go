// Package input decodes raw terminal bytes into game input.
package input

import (
	"bufio"
	"strconv"
)

// Input is the input gathered since the previous ReadInput call.
type Input struct {
	Quit     bool
	Left     int  // Left key events (A, J, left arrow)
	Right    int  // Right key events (D, L, right arrow)
	Fire     int  // Space presses and left clicks
	Restart  bool // R or Enter
	Start    bool // Space or Enter, used on title screens
	Escape   bool
	Click    bool // Left button pressed
	Mouse    bool // A mouse report arrived; MouseCol/MouseRow are valid
	MouseCol int  // 1-based terminal column of the last mouse report
	MouseRow int  // 1-based terminal row of the last mouse report
	Pressed  []byte
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	pending []byte // Incomplete escape sequence from the previous read
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ResetKeyInput discards buffered bytes, e.g. when switching screens so
// a held key does not leak into the next one.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.pending = s.pending[:0]
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				s.closed = true
				return
			}
		default:
			return
		}
	}
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// decodes keys, arrow escape sequences and SGR mouse reports.
func ReadInput(s *Stream) Input {
	var fresh []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			fresh = append(fresh, b)
		default:
			break drain
		}
	}

	// An incomplete sequence only waits for one read; if nothing followed
	// it, its bytes are decoded as plain keys.
	flush := len(fresh) == 0
	buf := append(s.pending, fresh...)
	s.pending = nil

	var in Input
	in.Pressed = fresh
	s.pending = Decode(buf, &in, flush)
	if s.closed {
		in.Quit = true
	}
	return in
}

// Decode parses buf into in and returns a trailing incomplete escape
// sequence, unless flush is set, in which case everything is consumed.
func Decode(buf []byte, in *Input, flush bool) []byte {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' {
			n, complete := decodeEscape(buf[i:], in)
			if !complete && !flush {
				return append([]byte(nil), buf[i:]...)
			}
			if n > 0 {
				i += n - 1
				continue
			}
		}
		applyByte(in, b)
	}
	return nil
}

// decodeEscape decodes a CSI sequence at the start of seq. It returns the
// number of bytes consumed (0 if seq is not a recognized sequence) and
// whether the sequence was complete.
func decodeEscape(seq []byte, in *Input) (int, bool) {
	if len(seq) < 2 {
		return 0, false
	}
	if seq[1] != '[' {
		return 0, true
	}
	if len(seq) < 3 {
		return 0, false
	}

	switch seq[2] {
	case 'C':
		in.Right++
		return 3, true
	case 'D':
		in.Left++
		return 3, true
	case 'A', 'B':
		return 3, true // Up/down arrows do nothing
	case '<':
		return decodeSGRMouse(seq, in)
	}
	return 0, true
}

// decodeSGRMouse decodes ESC [ < Cb ; Cx ; Cy (M|m).
func decodeSGRMouse(seq []byte, in *Input) (int, bool) {
	var fields [3]int
	field := 0
	start := 3
	for i := 3; i < len(seq); i++ {
		c := seq[i]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' && field < 2:
			v, err := strconv.Atoi(string(seq[start:i]))
			if err != nil {
				return 0, true
			}
			fields[field] = v
			field++
			start = i + 1
		case (c == 'M' || c == 'm') && field == 2:
			v, err := strconv.Atoi(string(seq[start:i]))
			if err != nil {
				return 0, true
			}
			fields[2] = v
			applyMouse(in, fields[0], fields[1], fields[2], c == 'M')
			return i + 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

func applyMouse(in *Input, cb, col, row int, press bool) {
	in.Mouse = true
	in.MouseCol = col
	in.MouseRow = row

	motion := cb&32 != 0
	wheel := cb&64 != 0
	if press && !motion && !wheel && cb&3 == 0 {
		in.Click = true
		in.Fire++
	}
}

// applyByte updates in for a single plain key byte.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl+C in raw mode
		in.Quit = true
	case 'a', 'A', 'j', 'J':
		in.Left++
	case 'd', 'D', 'l', 'L':
		in.Right++
	case ' ':
		in.Fire++
		in.Start = true
	case 'r', 'R':
		in.Restart = true
	case '\n', '\r':
		in.Restart = true
		in.Start = true
	case '\x1b':
		in.Escape = true
	}
}
