package object

import "github.com/tomz197/spacedodge/internal/draw"

// Bullet dimensions and speed.
const (
	BulletWidth  = 5.0
	BulletHeight = 15.0
	BulletStep   = -10.0 // Units per tick, upward
)

// NewBullet creates a bullet leaving the nose of the ship.
func NewBullet(ship *Entity) *Entity {
	return &Entity{
		Kind: KindBullet,
		X:    ship.X + ship.W/2 - BulletWidth/2,
		Y:    ship.Y - BulletHeight,
		W:    BulletWidth,
		H:    BulletHeight,
		VY:   BulletStep,
	}
}

// drawBullet renders the bullet as a filled box.
func drawBullet(c *draw.Canvas, e *Entity) {
	points := c.BorrowPoints(4)
	points[0] = draw.Point{X: e.X, Y: e.Y}
	points[1] = draw.Point{X: e.X + e.W, Y: e.Y}
	points[2] = draw.Point{X: e.X + e.W, Y: e.Y + e.H}
	points[3] = draw.Point{X: e.X, Y: e.Y + e.H}
	c.DrawPolygon(points, true)
}
