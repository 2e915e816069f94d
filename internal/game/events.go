package game

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventStarted  EventKind = iota // Session entered Playing
	EventShot                      // A bullet was fired
	EventHit                       // A bullet destroyed a hostile
	EventShipHit                   // A hostile hit the ship
	EventGameOver                  // Lives reached zero
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventShot:
		return "shot"
	case EventHit:
		return "hit"
	case EventShipHit:
		return "shipHit"
	case EventGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Event is raised by the session and drained by its host.
type Event struct {
	Kind  EventKind
	Tick  uint64
	Score int // Score after the event
	Lives int // Lives after the event
}

func (s *Session) emit(kind EventKind) {
	s.events = append(s.events, Event{
		Kind:  kind,
		Tick:  s.tick,
		Score: s.score,
		Lives: s.lives,
	})
}

// DrainEvents returns the events raised since the previous call.
func (s *Session) DrainEvents() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := s.events
	s.events = nil
	return out
}
