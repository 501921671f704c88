package actor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewandler/loom-go/core/promise"
	"github.com/codewandler/loom-go/core/status"
)

func TestLifecyclePanics(t *testing.T) {
	t.Run("finish before start", func(t *testing.T) {
		rt := New(Options{})
		assert.Panics(t, func() { rt.Finish() })
	})

	t.Run("double start", func(t *testing.T) {
		rt := New(Options{BackgroundMain: true})
		rt.Start()
		assert.Panics(t, func() { rt.Start() })
		rt.Finish()
	})

	t.Run("double finish", func(t *testing.T) {
		rt := New(Options{BackgroundMain: true})
		rt.Start()
		rt.Finish()
		assert.Panics(t, func() { rt.Finish() })
	})

	t.Run("run main with background main", func(t *testing.T) {
		rt := New(Options{BackgroundMain: true})
		rt.Start()
		assert.Panics(t, func() { rt.RunMain(time.Millisecond) })
		rt.Finish()
	})

	t.Run("run main before start", func(t *testing.T) {
		rt := New(Options{})
		assert.Panics(t, func() { rt.RunMain(time.Millisecond) })
	})
}

func TestRunMainDrivesMainScheduler(t *testing.T) {
	rt := New(Options{Schedulers: 1})
	rt.Start()

	c := &counter{}
	own := CreateActor(rt, "counter", c)

	done := make(chan int, 1)
	SendClosure(own.ID(), func(c *counter) {
		c.value = 7
		done <- c.value
	})

	deadline := time.Now().Add(2 * time.Second)
	for {
		rt.RunMain(time.Millisecond)
		select {
		case v := <-done:
			assert.Equal(t, 7, v)
		default:
			require.True(t, time.Now().Before(deadline), "main scheduler never delivered")
			continue
		}
		break
	}

	own.Release()
	rt.Finish()
}

// pending holds promises until teardown, resolving the leftovers with
// ErrAborted so no waiter blocks through shutdown.
type pending struct {
	Base
	waiting []promise.Promise[int]
}

func (p *pending) TearDown() {
	for _, pr := range p.waiting {
		pr.SetError(promise.ErrAborted)
	}
	p.waiting = nil
}

func (p *pending) hold(pr promise.Promise[int]) {
	p.waiting = append(p.waiting, pr)
}

func TestFinishResolvesOutstandingPromises(t *testing.T) {
	rt := New(Options{Schedulers: 2, BackgroundMain: true})
	rt.Start()

	p := &pending{}
	own := CreateActor(rt, "pending", p)
	id := own.ID()

	const k = 10
	futures := make([]*promise.Future[int], k)
	for i := range k {
		f, pr := promise.NewFuture[int]()
		futures[i] = f
		SendClosure(id, func(p *pending) { p.hold(pr) })
	}

	rt.Finish()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, f := range futures {
		_, err := f.Get(ctx)
		require.Error(t, err)
		assert.Equal(t, status.Code(promise.ErrAborted), status.Code(err))
	}
}

func TestCloseFlagAndContext(t *testing.T) {
	rt := New(Options{BackgroundMain: true})
	rt.Start()

	assert.False(t, rt.CloseFlag())
	select {
	case <-rt.Context().Done():
		t.Fatal("context done before Finish")
	default:
	}

	rt.Finish()

	assert.True(t, rt.CloseFlag())
	select {
	case <-rt.Context().Done():
	default:
		t.Fatal("context not canceled by Finish")
	}
}

func TestRunOnScheduler(t *testing.T) {
	rt := New(Options{Schedulers: 3, BackgroundMain: true})
	rt.Start()

	done := make(chan int, 1)
	rt.RunOnScheduler(2, func() { done <- 2 })
	assert.Equal(t, 2, <-done)

	rt.Finish()

	// dropped silently after shutdown
	rt.RunOnScheduler(2, func() { t.Fatal("must not run") })
}

type closable struct {
	closed atomic.Bool
}

func (c *closable) Close() error {
	c.closed.Store(true)
	return nil
}

func TestDestroyOnScheduler(t *testing.T) {
	rt := New(Options{Schedulers: 2, BackgroundMain: true})
	rt.Start()

	c := &closable{}
	rt.DestroyOnScheduler(1, c)
	require.Eventually(t, func() bool { return c.closed.Load() },
		2*time.Second, time.Millisecond)

	rt.SetGCSchedulerID(1)
	assert.Equal(t, 1, rt.GCSchedulerID())

	c2 := &closable{}
	rt.DestroyOnGCScheduler(c2)
	require.Eventually(t, func() bool { return c2.closed.Load() },
		2*time.Second, time.Millisecond)

	rt.Finish()
}

func TestGuards(t *testing.T) {
	rt := New(Options{BackgroundMain: true})
	rt.Start()

	g := rt.GetSendGuard()
	own := CreateActor(rt, "counter", &counter{})
	own.Release()
	g.Release()
	g.Release() // idempotent

	// the main guard does not block Finish
	mg := rt.GetMainGuard()
	rt.Finish()
	mg.Release()

	assert.Panics(t, func() { rt.GetMainGuard() })
}

func TestLeastLoadedPlacement(t *testing.T) {
	rt := New(Options{Schedulers: 4, BackgroundMain: true})
	rt.Start()

	owns := make([]ActorOwn[counter], 8)
	perSched := make(map[int]int)
	for i := range owns {
		owns[i] = CreateActor(rt, "", &counter{})
		perSched[owns[i].ref.sched.id]++
	}
	// 8 actors over 4 schedulers land 2 each
	for id, n := range perSched {
		assert.Equal(t, 2, n, "scheduler %d", id)
	}

	for i := range owns {
		owns[i].Release()
	}
	rt.Finish()
}

func TestSchedulerAccessors(t *testing.T) {
	rt := New(Options{Schedulers: 2, BackgroundMain: true})
	assert.Equal(t, 2, rt.SchedulerCount())
	assert.Panics(t, func() { rt.scheduler(2) })
	assert.Panics(t, func() { rt.SetGCSchedulerID(5) })

	rt.Start()
	rt.Finish()
}
