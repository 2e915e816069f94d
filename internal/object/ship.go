package object

import "github.com/tomz197/spacedodge/internal/draw"

// Ship dimensions and keyboard nudge distance.
const (
	ShipWidth  = 50.0
	ShipHeight = 50.0
	ShipNudge  = 20.0 // Units moved per left/right key event
)

// NewShip creates the player's ship centered at the bottom of the view.
func NewShip(view Screen) *Entity {
	return &Entity{
		Kind: KindShip,
		X:    float64(view.CenterX) - ShipWidth/2,
		Y:    float64(view.Height) - ShipHeight,
		W:    ShipWidth,
		H:    ShipHeight,
	}
}

// FollowPointer centers the ship horizontally on the pointer.
// The ship is not clamped to the view and may leave it.
func FollowPointer(ship *Entity, pointerX float64) {
	ship.X = pointerX - ship.W/2
}

// Nudge moves the ship horizontally by dx units.
func Nudge(ship *Entity, dx float64) {
	ship.X += dx
}

// drawShip renders the ship as a filled triangle pointing up.
func drawShip(c *draw.Canvas, e *Entity) {
	points := c.BorrowPoints(3)
	points[0] = draw.Point{X: e.X + e.W/2, Y: e.Y}
	points[1] = draw.Point{X: e.X + e.W, Y: e.Y + e.H}
	points[2] = draw.Point{X: e.X, Y: e.Y + e.H}
	c.DrawPolygon(points, true)
}
