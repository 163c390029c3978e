package submarine

// EventKind says which presentation cache of a submarine went stale.
type EventKind uint8

const (
	EventSonar EventKind = iota
	EventWalls
	EventWires
	EventSignals
)

func (k EventKind) String() string {
	switch k {
	case EventSonar:
		return "sonar"
	case EventWalls:
		return "walls"
	case EventWires:
		return "wires"
	case EventSignals:
		return "signals"
	default:
		return "unknown"
	}
}

// UpdateEvent is one entry of the list Advance returns.
type UpdateEvent interface {
	event()
}

// SubmarineEvent reports a change inside one submarine.
type SubmarineEvent struct {
	Submarine int
	Kind      EventKind
}

type SubmarineCreated struct{ Submarine int }

// GameStateReset tells consumers to drop every cache.
type GameStateReset struct{}

func (SubmarineEvent) event()   {}
func (SubmarineCreated) event() {}
func (GameStateReset) event()   {}

// events collects one tick's output, keeping the first of each submarine
// event.
type events struct {
	list []UpdateEvent
	seen map[SubmarineEvent]bool
}

func (e *events) submarine(i int, k EventKind) {
	ev := SubmarineEvent{Submarine: i, Kind: k}
	if e.seen[ev] {
		return
	}
	if e.seen == nil {
		e.seen = make(map[SubmarineEvent]bool)
	}
	e.seen[ev] = true
	e.list = append(e.list, ev)
}

func (e *events) add(ev UpdateEvent) { e.list = append(e.list, ev) }
