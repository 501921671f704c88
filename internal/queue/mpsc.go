// Package queue provides the unbounded multi-producer single-consumer queue
// that carries events into a scheduler's goroutine.
package queue

import "sync"

// MPSC is an unbounded FIFO queue. Push is safe from any goroutine; PopAll
// and Wake belong to the single consumer. Enqueue order is total (pushes are
// serialized), so per-producer FIFO delivery is preserved.
type MPSC[T any] struct {
	mu   sync.Mutex
	buf  []T
	wake chan struct{}
}

// NewMPSC creates an empty queue.
func NewMPSC[T any]() *MPSC[T] {
	return &MPSC[T]{wake: make(chan struct{}, 1)}
}

// Push enqueues v and signals the consumer.
func (q *MPSC[T]) Push(v T) {
	q.mu.Lock()
	q.buf = append(q.buf, v)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// PopAll swaps the queued batch against spare and returns it. spare must be
// a slice the consumer no longer reads; its capacity is reused for future
// pushes.
func (q *MPSC[T]) PopAll(spare []T) []T {
	clear(spare)
	q.mu.Lock()
	out := q.buf
	q.buf = spare[:0]
	q.mu.Unlock()
	return out
}

// Len returns the current queue length.
func (q *MPSC[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// Wake returns the signal channel. It carries at most one pending signal;
// the consumer blocks on it when the queue was observed empty.
func (q *MPSC[T]) Wake() <-chan struct{} { return q.wake }
