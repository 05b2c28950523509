package game

//go:generate go tool stringer -type=EventKind -trimprefix=Event
type EventKind int

const (
	EventStarted EventKind = iota
	EventGameOver
	EventShot
	EventStarCollected
	EventBombHit
	EventBombDestroyed
	EventShieldBlocked
	EventShieldUp
	EventShieldDown
)

// Event reports something the frontends react to (sound, effects).
// Score is the score at the time of the event.
type Event struct {
	Kind  EventKind
	Score int
}

// Events is the singleton queue drained by World.DrainEvents.
type Events struct {
	Queue []Event
}

func (e *Events) Emit(kind EventKind, score int) {
	e.Queue = append(e.Queue, Event{Kind: kind, Score: score})
}
