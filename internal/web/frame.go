package web

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/spacedodge/internal/audio"
	"github.com/tomz197/spacedodge/internal/game"
	"github.com/tomz197/spacedodge/internal/loop/server"
	"github.com/tomz197/spacedodge/internal/object"
)

// ErrUnknownMessage is returned for client messages with an unknown type.
var ErrUnknownMessage = errors.New("unknown message type")

// EntityFrame is one entity as sent to the browser.
type EntityFrame struct {
	ID       uint64    `msgpack:"id"`
	Kind     string    `msgpack:"k"`
	X        float64   `msgpack:"x"`
	Y        float64   `msgpack:"y"`
	W        float64   `msgpack:"w"`
	H        float64   `msgpack:"h"`
	Vertices []float64 `msgpack:"v,omitempty"`
}

// Frame is the binary message pushed to the browser every tick.
type Frame struct {
	Tick        uint64        `msgpack:"tick"`
	Phase       string        `msgpack:"phase"`
	Score       int           `msgpack:"score"`
	Lives       int           `msgpack:"lives"`
	Width       int           `msgpack:"width"`
	Height      int           `msgpack:"height"`
	Ship        EntityFrame   `msgpack:"ship"`
	Entities    []EntityFrame `msgpack:"entities"`
	Leaderboard []int         `msgpack:"leaderboard"`
	Cues        []string      `msgpack:"cues,omitempty"` // Sounds to play this frame
}

// ClientMessage is a message from the browser.
type ClientMessage struct {
	Type string  `msgpack:"t"` // "move", "fire" or "restart"
	X    float64 `msgpack:"x"` // Logical pointer x for "move"
}

func entityFrame(e *object.Entity) EntityFrame {
	return EntityFrame{
		ID:       e.ID,
		Kind:     e.Kind.String(),
		X:        e.X,
		Y:        e.Y,
		W:        e.W,
		H:        e.H,
		Vertices: e.Vertices,
	}
}

// NewFrame builds a frame from a snapshot and the events raised since
// the previous frame.
func NewFrame(snap *server.Snapshot, events []game.Event) Frame {
	f := Frame{
		Tick:        snap.Tick,
		Phase:       snap.Phase.String(),
		Score:       snap.Score,
		Lives:       snap.Lives,
		Width:       snap.View.Width,
		Height:      snap.View.Height,
		Ship:        entityFrame(&snap.Ship),
		Entities:    make([]EntityFrame, len(snap.Entities)),
		Leaderboard: snap.Leaderboard,
	}
	for i := range snap.Entities {
		f.Entities[i] = entityFrame(&snap.Entities[i])
	}
	for _, ev := range events {
		if cue, ok := audio.CueFor(ev.Kind); ok {
			f.Cues = append(f.Cues, cue.String())
		}
	}
	return f
}

// EncodeFrame serializes f to msgpack.
func EncodeFrame(f Frame) ([]byte, error) {
	data, err := msgpack.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return data, nil
}

// DecodeInput parses a msgpack client message into session input.
func DecodeInput(data []byte) (game.Input, error) {
	var msg ClientMessage
	if err := msgpack.Unmarshal(data, &msg); err != nil {
		return game.Input{}, fmt.Errorf("decode message: %w", err)
	}

	switch msg.Type {
	case "move":
		return game.Input{Pointer: true, PointerX: msg.X}, nil
	case "fire":
		return game.Input{Fire: 1}, nil
	case "restart":
		return game.Input{Restart: true}, nil
	default:
		return game.Input{}, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
}
