package game

import (
	"github.com/tomz197/spacedodge/internal/object"
	"github.com/tomz197/spacedodge/internal/physics"
)

// indexHostiles rebuilds the broad-phase grid from the live hostiles.
func (s *Session) indexHostiles() {
	s.grid.Clear()
	for i, e := range s.entities {
		if e.Kind.Hostile() && !e.IsRemoved() {
			s.grid.Insert(e.Bounds(), i)
		}
	}
}

// resolveBullet destroys the first live hostile the bullet overlaps,
// if any, together with the bullet. When several hostiles overlap, the
// one added earliest wins. Reports whether a hit happened.
func (s *Session) resolveBullet(b *object.Entity) bool {
	box := b.Bounds()
	target := -1
	s.grid.QueryAround(box, func(i int) bool {
		if target >= 0 && i > target {
			return false
		}
		h := s.entities[i]
		if h.IsRemoved() || !physics.Overlaps(box, h.Bounds()) {
			return false
		}
		target = i
		return false
	})
	if target < 0 {
		return false
	}

	s.entities[target].MarkRemoved()
	b.MarkRemoved()
	s.score += s.rules.HitScore
	s.emit(EventHit)
	return true
}

// resolveShipHit removes a hostile that touches the ship and takes a life.
// Reports whether the game ended.
func (s *Session) resolveShipHit(h *object.Entity) bool {
	if !physics.Overlaps(h.Bounds(), s.ship.Bounds()) {
		return false
	}
	h.MarkRemoved()
	return s.loseLife()
}
