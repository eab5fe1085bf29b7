package corruption

// EventType identifies a lifecycle event emitted by the System.
type EventType int

const (
	EventZoneSpawned EventType = iota
	EventZoneExpired
	EventZoneCulled    // left the field
	EventZoneDestroyed // deactivated by a collision
	EventSplitterReproduced
	EventHarvesterDestroyed
	EventDifficultyChanged
)

func (t EventType) String() string {
	switch t {
	case EventZoneSpawned:
		return "zone_spawned"
	case EventZoneExpired:
		return "zone_expired"
	case EventZoneCulled:
		return "zone_culled"
	case EventZoneDestroyed:
		return "zone_destroyed"
	case EventSplitterReproduced:
		return "splitter_reproduced"
	case EventHarvesterDestroyed:
		return "harvester_destroyed"
	case EventDifficultyChanged:
		return "difficulty_changed"
	default:
		return "unknown"
	}
}

// Event is delivered synchronously from inside System calls.
type Event struct {
	Type EventType
	Zone *Zone // nil for difficulty changes
	X, Y float64
	Data int // children spawned, harvester index or zone level
}

type EventHandler func(Event)

// EventBus fans events out to subscribers in subscription order.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for t := EventZoneSpawned; t <= EventDifficultyChanged; t++ {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
