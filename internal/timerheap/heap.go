// Package timerheap provides a binary min-heap keyed by absolute deadlines.
// It is not safe for concurrent use; every heap belongs to exactly one
// scheduler goroutine.
package timerheap

import "time"

// Item is an element that knows its deadline and stores its heap position.
// A position of -1 means "not in the heap".
type Item interface {
	TimerDeadline() time.Time
	TimerIndex() int
	SetTimerIndex(i int)
}

// Heap is a min-heap of Items ordered by deadline. Ties keep insertion order
// stable enough for the runtime's needs (either may pop first).
type Heap[T Item] struct {
	items []T
}

// Len returns the number of armed items.
func (h *Heap[T]) Len() int { return len(h.items) }

// Peek returns the item with the nearest deadline. It must not be called on
// an empty heap.
func (h *Heap[T]) Peek() T { return h.items[0] }

// Push inserts it into the heap.
func (h *Heap[T]) Push(it T) {
	h.items = append(h.items, it)
	it.SetTimerIndex(len(h.items) - 1)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the item with the nearest deadline.
func (h *Heap[T]) Pop() T {
	it := h.items[0]
	h.removeAt(0)
	return it
}

// Remove detaches it from the heap. Removing an item that is not armed is a
// no-op.
func (h *Heap[T]) Remove(it T) {
	i := it.TimerIndex()
	if i < 0 {
		return
	}
	h.removeAt(i)
}

// Fix restores heap order after it's deadline changed in place.
func (h *Heap[T]) Fix(it T) {
	i := it.TimerIndex()
	if i < 0 {
		h.Push(it)
		return
	}
	if !h.siftUp(i) {
		h.siftDown(i)
	}
}

func (h *Heap[T]) removeAt(i int) {
	last := len(h.items) - 1
	h.items[i].SetTimerIndex(-1)
	if i != last {
		h.items[i] = h.items[last]
		h.items[i].SetTimerIndex(i)
	}
	var zero T
	h.items[last] = zero
	h.items = h.items[:last]
	if i < len(h.items) {
		if !h.siftUp(i) {
			h.siftDown(i)
		}
	}
}

func (h *Heap[T]) less(i, j int) bool {
	return h.items[i].TimerDeadline().Before(h.items[j].TimerDeadline())
}

func (h *Heap[T]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].SetTimerIndex(i)
	h.items[j].SetTimerIndex(j)
}

func (h *Heap[T]) siftUp(i int) bool {
	moved := false
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.swap(i, parent)
		i = parent
		moved = true
	}
	return moved
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		child := left
		if right := left + 1; right < n && h.less(right, left) {
			child = right
		}
		if !h.less(child, i) {
			return
		}
		h.swap(i, child)
		i = child
	}
}
