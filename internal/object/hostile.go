package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/spacedodge/internal/draw"
)

// Hostile dimensions and speeds.
const (
	HostileSize  = 40.0
	AsteroidStep = 5.0 // Units per tick, downward
	EnemyStep    = 3.0 // Units per tick, downward
)

// NewAsteroid creates an asteroid just above the view at horizontal offset x.
// rng shapes the irregular outline.
func NewAsteroid(x float64, rng *rand.Rand) *Entity {
	// Irregular polygon with 8-12 vertices, radius varied by ±30%
	numVerts := 8 + rng.Intn(5)
	vertices := make([]float64, numVerts)
	for i := range vertices {
		vertices[i] = HostileSize / 2 * (0.7 + rng.Float64()*0.6)
	}

	return &Entity{
		Kind:     KindAsteroid,
		X:        x,
		Y:        -HostileSize,
		W:        HostileSize,
		H:        HostileSize,
		VY:       AsteroidStep,
		Vertices: vertices,
	}
}

// NewEnemy creates an enemy just above the view at horizontal offset x.
func NewEnemy(x float64) *Entity {
	return &Entity{
		Kind: KindEnemy,
		X:    x,
		Y:    -HostileSize,
		W:    HostileSize,
		H:    HostileSize,
		VY:   EnemyStep,
	}
}

// RandomSpawnX returns a uniformly random x in [0, viewWidth-HostileSize).
func RandomSpawnX(view Screen, rng *rand.Rand) float64 {
	span := float64(view.Width) - HostileSize
	if span <= 0 {
		return 0
	}
	return rng.Float64() * span
}

// drawAsteroid renders the asteroid as an irregular polygon outline.
func drawAsteroid(c *draw.Canvas, e *Entity) {
	numVerts := len(e.Vertices)
	if numVerts < 3 {
		drawBullet(c, e) // Shapeless asteroid: draw its box
		return
	}

	// Reusable buffer from the canvas avoids per-frame allocations.
	points := c.BorrowPoints(numVerts)
	cx := e.X + e.W/2
	cy := e.Y + e.H/2
	for i, dist := range e.Vertices {
		angle := float64(i) * 2 * math.Pi / float64(numVerts)
		points[i] = draw.Point{
			X: cx + math.Cos(angle)*dist,
			Y: cy + math.Sin(angle)*dist,
		}
	}
	c.DrawPolygon(points, false)
}

// drawEnemy renders the enemy as a filled downward arrowhead.
func drawEnemy(c *draw.Canvas, e *Entity) {
	points := c.BorrowPoints(4)
	points[0] = draw.Point{X: e.X, Y: e.Y}
	points[1] = draw.Point{X: e.X + e.W/2, Y: e.Y + e.H/3}
	points[2] = draw.Point{X: e.X + e.W, Y: e.Y}
	points[3] = draw.Point{X: e.X + e.W/2, Y: e.Y + e.H}
	c.DrawPolygon(points, true)
}
