package taxonecs

import "testing"

type testEvent struct {
	Value int
}

type position struct {
	X, Y float64
}

func TestEventBusSubscribeAndPublish(t *testing.T) {
	bus := newEventBus()
	received := 0
	Subscribe(bus, func(e testEvent) {
		received += e.Value
	})
	Subscribe(bus, func(e testEvent) {
		received += e.Value * 2
	})
	Publish(bus, testEvent{Value: 1})
	if received != 0 {
		t.Fatalf("expected no dispatch before SwapBuffers, got %d", received)
	}
	bus.SwapBuffers()
	if received != 3 {
		t.Errorf("expected received 3, got %d", received)
	}
	Publish(bus, testEvent{Value: 2})
	bus.SwapBuffers()
	if received != 3+6 {
		t.Errorf("expected received 9, got %d", received)
	}
}

func TestEventBusMultipleTypes(t *testing.T) {
	bus := newEventBus()
	received1 := 0
	received2 := 0
	Subscribe(bus, func(e testEvent) {
		received1 += e.Value
	})
	Subscribe(bus, func(p position) {
		received2 += int(p.X)
	})
	Publish(bus, testEvent{Value: 42})
	Publish(bus, position{X: 10})
	bus.SwapBuffers()
	if received1 != 42 {
		t.Errorf("expected received1 42, got %d", received1)
	}
	if received2 != 10 {
		t.Errorf("expected received2 10, got %d", received2)
	}
}

func TestEventBusNoHandlers(t *testing.T) {
	bus := newEventBus()
	Publish(bus, testEvent{Value: 42})
	bus.SwapBuffers() // must not panic
}

func TestEventBusManySubscribers(t *testing.T) {
	bus := newEventBus()
	const numSubs = 100
	received := 0
	for i := 0; i < numSubs; i++ {
		Subscribe(bus, func(e testEvent) {
			received += e.Value
		})
	}
	Publish(bus, testEvent{Value: 1})
	bus.SwapBuffers()
	if received != numSubs {
		t.Errorf("expected %d, got %d", numSubs, received)
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := newEventBus()
	received := 0
	handle := Subscribe(bus, func(e testEvent) { received++ })
	Publish(bus, testEvent{Value: 1})
	bus.SwapBuffers()
	if received != 1 {
		t.Fatalf("expected 1 dispatch, got %d", received)
	}
	bus.Unsubscribe(handle)
	Publish(bus, testEvent{Value: 1})
	bus.SwapBuffers()
	if received != 1 {
		t.Errorf("expected unsubscribed handler to stop receiving, got %d", received)
	}
}

func TestEventBusPending(t *testing.T) {
	bus := newEventBus()
	Publish(bus, testEvent{Value: 1})
	if bus.Pending() != 1 {
		t.Errorf("expected 1 pending event, got %d", bus.Pending())
	}
	bus.SwapBuffers()
	if bus.Pending() != 0 {
		t.Errorf("expected 0 pending after swap, got %d", bus.Pending())
	}
}
