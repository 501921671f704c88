package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAcquireRelease(t *testing.T) {
	p := NewPool(2, Options{Schedulers: 2})

	rt1, rel1 := p.Acquire()
	require.NotNil(t, rt1)
	assert.Equal(t, 1, p.Users())

	// second acquire lands on the other member
	rt2, rel2 := p.Acquire()
	require.NotNil(t, rt2)
	assert.NotSame(t, rt1, rt2)
	assert.Equal(t, 2, p.Users())

	// members are started and usable
	own := CreateActor(rt1, "counter", &counter{})
	done := make(chan int, 1)
	SendClosure(own.ID(), func(c *counter) { done <- 1 })
	assert.Equal(t, 1, <-done)
	own.Release()

	rel1()
	rel1() // idempotent
	assert.Equal(t, 1, p.Users())

	rel2()
	assert.Equal(t, 0, p.Users())

	// the pool resets after teardown; a fresh acquire works
	rt3, rel3 := p.Acquire()
	require.NotNil(t, rt3)
	own = CreateActor(rt3, "counter", &counter{})
	own.Release()
	rel3()
}

func TestPoolSizeFloor(t *testing.T) {
	p := NewPool(0, Options{})
	rt, rel := p.Acquire()
	require.NotNil(t, rt)
	rel()
}

func TestPoolLeastLoaded(t *testing.T) {
	p := NewPool(3, Options{})

	var rels []func()
	seen := make(map[*ConcurrentScheduler]int)
	for range 6 {
		rt, rel := p.Acquire()
		seen[rt]++
		rels = append(rels, rel)
	}
	assert.Len(t, seen, 3)
	for _, n := range seen {
		assert.Equal(t, 2, n)
	}

	for _, rel := range rels {
		rel()
	}
	assert.Equal(t, 0, p.Users())
}
