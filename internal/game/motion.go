package game

import "github.com/tomz197/spacedodge/internal/object"

// Tick advances the session by one step. Player input is applied first,
// then the spawner runs, then every live entity moves once in insertion
// order. Entities created during the tick join the collection after the
// motion pass. Nothing moves after the game is over.
func (s *Session) Tick(in Input) {
	s.tick++

	if in.Restart {
		s.Restart()
	}
	s.applyMovement(in)

	if s.phase != PhasePlaying {
		return
	}

	for range in.Fire {
		s.fire()
	}

	s.spawner.Update(object.SpawnContext{
		View:     s.view,
		Rand:     s.rng,
		Hostiles: s.Hostiles() + object.CountHostiles(s.toSpawn),
		Spawner:  s,
	})

	s.moveEntities()

	if s.phase == PhasePlaying {
		s.flushSpawned()
	}
	s.compact()
}

// applyMovement moves the ship toward the pointer and by any keyboard
// nudge. The ship follows the player in every phase.
func (s *Session) applyMovement(in Input) {
	if in.Pointer {
		object.FollowPointer(s.ship, in.PointerX)
	}
	if in.Nudge != 0 {
		object.Nudge(s.ship, in.Nudge)
	}
}

// fire launches one bullet from the ship's nose.
func (s *Session) fire() {
	s.Spawn(object.NewBullet(s.ship))
	s.emit(EventShot)
}

// moveEntities steps each live entity once and resolves what it touches.
// The pass stops as soon as the game ends.
func (s *Session) moveEntities() {
	s.indexHostiles()

	for _, e := range s.entities {
		if e.IsRemoved() {
			continue
		}
		e.Step()
		if e.OutOfBounds(s.view) {
			e.MarkRemoved()
			continue
		}

		switch {
		case e.Kind == object.KindBullet:
			s.resolveBullet(e)
		case e.Kind.Hostile():
			if s.resolveShipHit(e) {
				return
			}
		}
	}
}
