package actor

import (
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/codewandler/loom-go/internal/queue"
	"github.com/codewandler/loom-go/internal/timerheap"
)

// Scheduler is a single-goroutine event loop owning a set of actors. All
// state below the inbound queue is confined to that goroutine.
type Scheduler struct {
	id      int
	rt      *ConcurrentScheduler
	log     *slog.Logger
	metrics Metrics

	// inbound carries events from any goroutine into the loop.
	inbound *queue.MPSC[event]
	// load mirrors the number of registered actors, readable from anywhere.
	load atomic.Int64

	// --- loop-goroutine state ---

	spare    []event
	actors   map[uint64]*info
	ready    []*info
	timers   timerheap.Heap[*info]
	service  *info
	stopping bool
	stopped  bool
}

func newScheduler(id int, rt *ConcurrentScheduler) *Scheduler {
	return &Scheduler{
		id:      id,
		rt:      rt,
		log:     rt.log.With(slog.Int("scheduler", id)),
		metrics: rt.metrics,
		inbound: queue.NewMPSC[event](),
		actors:  make(map[uint64]*info),
	}
}

// ID returns the scheduler's index within its runtime.
func (s *Scheduler) ID() int { return s.id }

// Load returns the number of actors currently registered. Safe from any
// goroutine.
func (s *Scheduler) Load() int { return int(s.load.Load()) }

// runLoop drives the scheduler until shutdown. Each scheduler goroutine is
// pinned to an OS thread so a loop iteration is never migrated mid-pass.
func (s *Scheduler) runLoop(poll time.Duration) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	s.metrics.SchedulerStarted(s.id)
	for s.runPass(poll) {
	}
}

// runPass executes one bounded pass: deliver, flush, fire, then wait at most
// bound for new work. It returns false once the scheduler has shut down.
func (s *Scheduler) runPass(bound time.Duration) bool {
	if s.stopped {
		return false
	}

	t := s.metrics.PassDuration(s.id)
	s.drainInbound()
	s.flushReady()
	s.fireTimeouts()
	s.flushReady()
	t.ObserveDuration()

	if s.stopping {
		s.shutdown()
		return false
	}
	s.waitForWork(bound)
	return true
}

func (s *Scheduler) drainInbound() {
	batch := s.inbound.PopAll(s.spare)
	for i := range batch {
		ev := batch[i]
		if ev.kind == evShutdown {
			s.stopping = true
			continue
		}
		in := ev.target
		if in.destroyed {
			continue
		}
		if ev.kind == evRegister {
			s.actors[in.id] = in
		}
		if ev.kind == evClosure && !in.alive.Load() {
			continue
		}
		s.addToMailbox(in, ev)
	}
	if n := len(batch); n > 0 {
		s.metrics.EventsDelivered(s.id, n)
	}
	s.spare = batch
}

func (s *Scheduler) addToMailbox(in *info, ev event) {
	in.mailbox = append(in.mailbox, ev)
	if !in.inReady {
		in.inReady = true
		s.ready = append(s.ready, in)
	}
}

// flushReady processes every ready actor's mailbox FIFO. Actors that receive
// more local work while flushing (Yield, local events) re-enter the queue
// and are handled in the same pass.
func (s *Scheduler) flushReady() {
	for i := 0; i < len(s.ready); i++ {
		in := s.ready[i]
		in.inReady = false
		mb := in.mailbox
		in.mailbox = nil
		for j := range mb {
			if in.destroyed {
				break
			}
			s.doEvent(in, mb[j])
		}
	}
	s.ready = s.ready[:0]
}

func (s *Scheduler) doEvent(in *info, ev event) {
	switch ev.kind {
	case evRegister:
		if !in.started {
			in.started = true
			if in.startUp != nil {
				in.startUp()
			}
		}
	case evClosure:
		if in.closing {
			return
		}
		ev.fn(in.actor)
	case evYield:
		// nothing to do, the event forced another mailbox round
	case evHangup:
		if in.closing {
			return
		}
		if in.hangup != nil {
			in.hangup()
			return
		}
		s.doStopActor(in)
	case evSharedReleased:
		if !in.closing {
			if in.hangupShared != nil {
				in.hangupShared()
			}
			return
		}
		if in.sharedRefs.Load() == 0 {
			s.destroyActor(in)
		}
	}
}

// doStopActor runs the stop sequence once: reject further sends, cancel the
// deadline, run TearDown, drop pending mail. Destruction is deferred until
// the shared ref-count hits zero.
func (s *Scheduler) doStopActor(in *info) {
	if in.closing || in.destroyed {
		return
	}
	in.closing = true
	in.alive.Store(false)
	s.cancelTimeout(in)
	if in.tearDown != nil {
		in.tearDown()
	}
	in.mailbox = nil
	in.log.Debug("actor stopped")
	if in.sharedRefs.Load() == 0 {
		s.destroyActor(in)
	}
}

func (s *Scheduler) destroyActor(in *info) {
	if in.destroyed {
		return
	}
	in.destroyed = true
	in.alive.Store(false)
	s.cancelTimeout(in)
	delete(s.actors, in.id)
	s.load.Add(-1)
	s.metrics.ActorDestroyed(s.id)

	// drop what the record still pins
	in.actor = nil
	in.startUp = nil
	in.tearDown = nil
	in.timeoutExpired = nil
	in.hangup = nil
	in.hangupShared = nil
	in.mailbox = nil
}

func (s *Scheduler) setTimeoutAt(in *info, at time.Time) {
	if in.closing || in.destroyed {
		return
	}
	in.deadline = at
	s.timers.Fix(in)
}

func (s *Scheduler) cancelTimeout(in *info) {
	s.timers.Remove(in)
	in.deadline = time.Time{}
}

// fireTimeouts runs every expired deadline's hook in non-decreasing deadline
// order. Firing never rearms; that is the hook's decision.
func (s *Scheduler) fireTimeouts() {
	if s.timers.Len() == 0 {
		return
	}
	now := time.Now()
	n := 0
	for s.timers.Len() > 0 {
		in := s.timers.Peek()
		if in.deadline.After(now) {
			break
		}
		s.timers.Pop()
		in.deadline = time.Time{}
		n++
		if in.timeoutExpired != nil && !in.closing {
			in.timeoutExpired()
		}
	}
	if n > 0 {
		s.metrics.TimeoutsFired(s.id, n)
	}
}

// shutdown delivers everything already enqueued, then stops and destroys all
// remaining actors. Their TearDown hooks run here, which is where owners
// resolve outstanding promises.
func (s *Scheduler) shutdown() {
	s.drainInbound()
	s.flushReady()

	remaining := make([]*info, 0, len(s.actors))
	for _, in := range s.actors {
		remaining = append(remaining, in)
	}
	for _, in := range remaining {
		s.doStopActor(in)
		s.destroyActor(in)
	}

	s.stopped = true
	s.metrics.SchedulerStopped(s.id)
	s.log.Debug("scheduler stopped")
}

func (s *Scheduler) waitForWork(bound time.Duration) {
	if s.inbound.Len() > 0 {
		return
	}
	d := bound
	if s.timers.Len() > 0 {
		if until := time.Until(s.timers.Peek().deadline); until < d {
			d = until
		}
	}
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-s.inbound.Wake():
	case <-t.C:
	}
}
