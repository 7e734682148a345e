package taxonecs

import "container/heap"

// PriorityQueue is a min-heap of (payload, priority) pairs ordered by
// priority — lower priority pops first. It backs the Scheduler's per-system
// deadline queues but is exported for host code that needs a numeric-deadline
// heap of its own.
type PriorityQueue[T any] struct {
	items pqItems[T]
}

type pqItem[T any] struct {
	payload  T
	priority float64
}

type pqItems[T any] []pqItem[T]

func (h pqItems[T]) Len() int            { return len(h) }
func (h pqItems[T]) Less(i, j int) bool  { return h[i].priority < h[j].priority }
func (h pqItems[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pqItems[T]) Push(x interface{}) { *h = append(*h, x.(pqItem[T])) }
func (h *pqItems[T]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// NewPriorityQueue creates an empty queue.
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{}
}

// Len returns the number of queued items.
func (q *PriorityQueue[T]) Len() int { return q.items.Len() }

// Push inserts payload at the given priority.
func (q *PriorityQueue[T]) Push(payload T, priority float64) {
	heap.Push(&q.items, pqItem[T]{payload: payload, priority: priority})
}

// Peek returns the lowest-priority payload without removing it. Fatal on an
// empty queue, matching SPEC_FULL.md §7.
func (q *PriorityQueue[T]) Peek() T {
	if len(q.items) == 0 {
		panic(ErrEmptyPriorityQueue)
	}
	return q.items[0].payload
}

// TopPriority returns the lowest priority value without removing it. Fatal on
// an empty queue.
func (q *PriorityQueue[T]) TopPriority() float64 {
	if len(q.items) == 0 {
		panic(ErrEmptyPriorityQueue)
	}
	return q.items[0].priority
}

// Pop removes and returns the lowest-priority payload. Fatal on an empty queue.
func (q *PriorityQueue[T]) Pop() T {
	v, _ := q.PopWithPriority()
	return v
}

// PopWithPriority removes and returns the lowest-priority payload together
// with its priority. Fatal on an empty queue.
func (q *PriorityQueue[T]) PopWithPriority() (T, float64) {
	if len(q.items) == 0 {
		panic(ErrEmptyPriorityQueue)
	}
	item := heap.Pop(&q.items).(pqItem[T])
	return item.payload, item.priority
}
