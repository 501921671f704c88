package timerheap

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type entry struct {
	deadline time.Time
	index    int
}

func newEntry(offset time.Duration) *entry {
	return &entry{deadline: time.Unix(0, 0).Add(offset), index: -1}
}

func (e *entry) TimerDeadline() time.Time { return e.deadline }
func (e *entry) TimerIndex() int          { return e.index }
func (e *entry) SetTimerIndex(i int)      { e.index = i }

func TestHeap_pop_order(t *testing.T) {
	var h Heap[*entry]
	offsets := []time.Duration{5, 1, 3, 2, 4}
	for _, o := range offsets {
		h.Push(newEntry(o * time.Millisecond))
	}

	var got []time.Duration
	for h.Len() > 0 {
		got = append(got, h.Pop().deadline.Sub(time.Unix(0, 0)))
	}
	require.Equal(t, []time.Duration{
		1 * time.Millisecond,
		2 * time.Millisecond,
		3 * time.Millisecond,
		4 * time.Millisecond,
		5 * time.Millisecond,
	}, got)
}

func TestHeap_remove(t *testing.T) {
	var h Heap[*entry]
	a := newEntry(1 * time.Millisecond)
	b := newEntry(2 * time.Millisecond)
	c := newEntry(3 * time.Millisecond)
	h.Push(a)
	h.Push(b)
	h.Push(c)

	h.Remove(b)
	require.Equal(t, -1, b.index)
	require.Equal(t, 2, h.Len())

	// removing twice is a no-op
	h.Remove(b)
	require.Equal(t, 2, h.Len())

	require.Same(t, a, h.Pop())
	require.Same(t, c, h.Pop())
}

func TestHeap_fix_rearm(t *testing.T) {
	var h Heap[*entry]
	a := newEntry(1 * time.Millisecond)
	b := newEntry(2 * time.Millisecond)
	h.Push(a)
	h.Push(b)

	a.deadline = time.Unix(0, 0).Add(10 * time.Millisecond)
	h.Fix(a)
	require.Same(t, b, h.Peek())

	// Fix on a detached item arms it
	c := newEntry(0)
	h.Fix(c)
	require.Same(t, c, h.Peek())
}

func TestHeap_random(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var h Heap[*entry]
	for range 1000 {
		h.Push(newEntry(time.Duration(rng.Intn(10_000)) * time.Microsecond))
	}

	last := time.Time{}
	for h.Len() > 0 {
		e := h.Pop()
		require.False(t, e.deadline.Before(last))
		last = e.deadline
	}
}
