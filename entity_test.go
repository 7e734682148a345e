package taxonecs

import "testing"

func TestEntityAllocatorRecyclesFreedIDs(t *testing.T) {
	a := newEntityAllocator(4)
	e1, err := a.allocate(false)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	e2, err := a.allocate(false)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if e1.ID() == e2.ID() {
		t.Fatalf("expected distinct ids, got %d and %d", e1.ID(), e2.ID())
	}
	a.free(e1)
	if a.isAlive(e1) {
		t.Fatalf("expected e1 to be dead after free")
	}
	e3, err := a.allocate(false)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if e3.ID() != e1.ID() {
		t.Fatalf("expected freed id %d to be recycled, got %d", e1.ID(), e3.ID())
	}
}

func TestEntityPrototypeBit(t *testing.T) {
	a := newEntityAllocator(1)
	live, _ := a.allocate(false)
	proto, _ := a.allocate(true)
	if live.IsPrototype() {
		t.Errorf("expected live entity to not be a prototype")
	}
	if !proto.IsPrototype() {
		t.Errorf("expected proto entity to be a prototype")
	}
	if live.ID() == proto.ID() {
		t.Errorf("expected distinct ids regardless of prototype bit")
	}
}

func TestEntityIDSpaceExhausted(t *testing.T) {
	a := &entityAllocator{slots: make([]Entity, 1), alive: make([]bool, 1), nextID: maxEntityID}
	if _, err := a.allocate(false); err != nil {
		t.Fatalf("allocate at boundary: %v", err)
	}
	if _, err := a.allocate(false); err != ErrEntityIDSpaceExhausted {
		t.Fatalf("expected ErrEntityIDSpaceExhausted, got %v", err)
	}
}

func TestNullEntity(t *testing.T) {
	if !NullEntity.IsNull() {
		t.Errorf("expected NullEntity.IsNull() to be true")
	}
	e := newEntity(1, false)
	if e.IsNull() {
		t.Errorf("expected a real entity to not be null")
	}
}
