package core

// Event represents a simulation event
type Event struct {
	Type    EventType
	Tick    uint64
	Subject Handle // entity the event is about
	Other   Handle // attacker, target or item, when there is one
	Amount  float64
	Detail  string
}

type EventType uint16

const (
	EvtUnitSpawned EventType = iota
	EvtUnitDamaged
	EvtUnitHealed
	EvtUnitDied
	EvtUnitLevelUp
	EvtStateChanged
	EvtAttackExecuted
	EvtProjectileFired
	EvtProjectileHit
	EvtProjectileExpired
	EvtItemPickedUp
	EvtEffectAdded
	EvtPathNotFound
	EvtDeadUnitCreated
	evtCount
)

var eventNames = [evtCount]string{
	"unit_spawned",
	"unit_damaged",
	"unit_healed",
	"unit_died",
	"unit_level_up",
	"state_changed",
	"attack_executed",
	"projectile_fired",
	"projectile_hit",
	"projectile_expired",
	"item_picked_up",
	"effect_added",
	"path_not_found",
	"dead_unit_created",
}

func (t EventType) String() string {
	if t < evtCount {
		return eventNames[t]
	}
	return "unknown"
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	any       []EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// OnAll registers a handler for every event type
func (eb *EventBus) OnAll(h EventHandler) {
	eb.any = append(eb.any, h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int { return len(eb.queue) }

// Dispatch processes all queued events. Events emitted by handlers are
// delivered on the next Dispatch.
func (eb *EventBus) Dispatch() {
	queue := eb.queue
	eb.queue = nil
	for _, e := range queue {
		for _, h := range eb.listeners[e.Type] {
			h(e)
		}
		for _, h := range eb.any {
			h(e)
		}
	}
}
