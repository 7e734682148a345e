package taxonecs

import (
	"reflect"

	"github.com/google/uuid"
)

// MaxEventTypes bounds how many distinct event payload types one EventBus
// can register, mirroring teishoku's own MaxEventTypes/MaxComponentTypes
// fixed-table convention.
const MaxEventTypes = 256

// ComponentCreated is published when a component of kind T is attached to a
// live entity, if the owning pool has EnableCreationEvents called on it.
type ComponentCreated[T any] struct {
	Entity Entity
}

// ComponentDestroyed is published when a component of kind T is removed from
// a live entity, carrying its last value, if the owning pool has
// EnableDestructionEvents called on it.
type ComponentDestroyed[T any] struct {
	Entity Entity
	Value  T
}

type subscriber struct {
	id     uuid.UUID
	fn     interface{}
	active bool
}

// EventBus is a double-buffered, type-safe publish/subscribe hub. Grounded on
// teishoku's reflect-keyed handler table, but generalized from immediate
// synchronous dispatch to an emit/listen buffer pair: Publish only enqueues,
// and SwapBuffers is the sole point at which listeners actually run.
type EventBus struct {
	eventTypeMap    map[reflect.Type]uint8
	handlers        [MaxEventTypes][]*subscriber
	nextEventTypeID uint8
	byID            map[uuid.UUID]*subscriber

	emitBuffer   []func()
	listenBuffer []func()
}

func newEventBus() *EventBus {
	return &EventBus{
		eventTypeMap: make(map[reflect.Type]uint8),
		byID:         make(map[uuid.UUID]*subscriber),
	}
}

func (bus *EventBus) getEventTypeID(t reflect.Type) uint8 {
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	if len(bus.eventTypeMap) >= MaxEventTypes {
		panic(ErrTooManyEventTypes)
	}
	id := bus.nextEventTypeID
	bus.nextEventTypeID++
	bus.eventTypeMap[t] = id
	return id
}

// Subscribe registers handler to run for every T published since the
// previous SwapBuffers. Returns a handle for Unsubscribe.
func Subscribe[T any](bus *EventBus, handler func(T)) uuid.UUID {
	t := reflectTypeFor[T]()
	id := bus.getEventTypeID(t)
	sub := &subscriber{id: uuid.New(), fn: handler, active: true}
	bus.handlers[id] = append(bus.handlers[id], sub)
	bus.byID[sub.id] = sub
	return sub.id
}

// Unsubscribe deactivates a handler registered via Subscribe. The handler is
// tombstoned and skipped from then on, including for events that were
// published before the call but not yet dispatched by SwapBuffers.
func (bus *EventBus) Unsubscribe(handle uuid.UUID) {
	if sub, ok := bus.byID[handle]; ok {
		sub.active = false
		delete(bus.byID, handle)
	}
}

// Publish enqueues event into the emit buffer. It is not visible to any
// handler until the next SwapBuffers call.
func Publish[T any](bus *EventBus, event T) {
	t := reflectTypeFor[T]()
	id := bus.getEventTypeID(t)
	bus.emitBuffer = append(bus.emitBuffer, func() {
		for _, sub := range bus.handlers[id] {
			if !sub.active {
				continue
			}
			sub.fn.(func(T))(event)
		}
	})
}

// SwapBuffers moves the current emit buffer into the listen buffer and runs
// every queued dispatch against the handler table as it stands right now.
// This is the only place event handlers ever execute.
func (bus *EventBus) SwapBuffers() {
	bus.listenBuffer, bus.emitBuffer = bus.emitBuffer, bus.listenBuffer[:0]
	for _, dispatch := range bus.listenBuffer {
		dispatch()
	}
	bus.listenBuffer = bus.listenBuffer[:0]
}

// Pending reports how many events are queued in the emit buffer awaiting the
// next SwapBuffers.
func (bus *EventBus) Pending() int { return len(bus.emitBuffer) }
