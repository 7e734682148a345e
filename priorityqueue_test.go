package taxonecs

import "testing"

func TestPriorityQueueOrdersByPriority(t *testing.T) {
	q := NewPriorityQueue[string]()
	q.Push("c", 3)
	q.Push("a", 1)
	q.Push("b", 2)
	if q.Len() != 3 {
		t.Fatalf("expected len 3, got %d", q.Len())
	}
	for _, want := range []string{"a", "b", "c"} {
		if got := q.Pop(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestPriorityQueuePeekDoesNotRemove(t *testing.T) {
	q := NewPriorityQueue[int]()
	q.Push(42, 1)
	if got := q.Peek(); got != 42 {
		t.Fatalf("expected peek 42, got %d", got)
	}
	if q.Len() != 1 {
		t.Fatalf("expected peek to leave the queue untouched, len=%d", q.Len())
	}
}

func TestPriorityQueueEmptyPanics(t *testing.T) {
	q := NewPriorityQueue[int]()
	defer func() {
		if r := recover(); r != ErrEmptyPriorityQueue {
			t.Fatalf("expected panic ErrEmptyPriorityQueue, got %v", r)
		}
	}()
	q.Pop()
}

func TestPriorityQueueTopPriority(t *testing.T) {
	q := NewPriorityQueue[int]()
	q.Push(1, 5.5)
	if q.TopPriority() != 5.5 {
		t.Fatalf("expected top priority 5.5, got %v", q.TopPriority())
	}
}

func TestPriorityQueuePopWithPriorityReturnsBoth(t *testing.T) {
	q := NewPriorityQueue[string]()
	q.Push("a", 2)
	q.Push("b", 1)
	payload, priority := q.PopWithPriority()
	if payload != "b" || priority != 1 {
		t.Fatalf("expected (b, 1), got (%q, %v)", payload, priority)
	}
}
