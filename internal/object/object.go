// Package object defines the game's entities and how they move and draw.
package object

import (
	"fmt"

	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/physics"
)

// Kind identifies what an entity is.
type Kind int

const (
	KindShip Kind = iota
	KindBullet
	KindAsteroid
	KindEnemy
)

// String returns the lowercase kind name, used in logs and frames.
func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindBullet:
		return "bullet"
	case KindAsteroid:
		return "asteroid"
	case KindEnemy:
		return "enemy"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Hostile reports whether entities of this kind damage the ship on contact.
func (k Kind) Hostile() bool {
	return k == KindAsteroid || k == KindEnemy
}

// Screen represents the logical viewport dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen builds a Screen with its center precomputed.
func NewScreen(width, height int) Screen {
	return Screen{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
	}
}

// DrawContext provides drawing resources for entities.
type DrawContext struct {
	Canvas *draw.Canvas // Scaled canvas in logical viewport coordinates
}

// Entity is a rectangular game object moving along the vertical axis.
// Position is the top-left corner; y grows downward.
type Entity struct {
	ID       uint64
	Kind     Kind
	X, Y     float64   // Top-left corner
	W, H     float64   // Bounding box size
	VY       float64   // Vertical step per tick (negative = upward)
	Vertices []float64 // Outline radii for asteroids, nil otherwise
	removed  bool
}

// Bounds returns the entity's bounding box.
func (e *Entity) Bounds() physics.Rect {
	return physics.RectAt(e.X, e.Y, e.W, e.H)
}

// Step advances the entity by one tick of its velocity.
func (e *Entity) Step() {
	e.Y += e.VY
}

// OutOfBounds reports whether the entity has left the visible area in its
// direction of travel: descending entities below the bottom edge, ascending
// entities above the top edge. Stationary entities never leave.
func (e *Entity) OutOfBounds(view Screen) bool {
	switch {
	case e.VY > 0:
		return e.Y > float64(view.Height)
	case e.VY < 0:
		return e.Y+e.H < 0
	default:
		return false
	}
}

// MarkRemoved marks the entity for removal at the end of the tick.
func (e *Entity) MarkRemoved() {
	e.removed = true
}

// IsRemoved returns true if the entity is marked for removal.
func (e *Entity) IsRemoved() bool {
	return e.removed
}

// Draw renders the entity onto the canvas.
func (e *Entity) Draw(ctx DrawContext) error {
	if ctx.Canvas == nil {
		return nil
	}
	switch e.Kind {
	case KindShip:
		drawShip(ctx.Canvas, e)
	case KindBullet:
		drawBullet(ctx.Canvas, e)
	case KindAsteroid:
		drawAsteroid(ctx.Canvas, e)
	case KindEnemy:
		drawEnemy(ctx.Canvas, e)
	default:
		return fmt.Errorf("draw: unknown entity kind %v", e.Kind)
	}
	return nil
}

// CountHostiles returns how many live hostiles are in entities.
func CountHostiles(entities []*Entity) int {
	n := 0
	for _, e := range entities {
		if e.Kind.Hostile() && !e.removed {
			n++
		}
	}
	return n
}
