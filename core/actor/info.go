package actor

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// info is the runtime record of one registered actor. The fields below the
// marker are owned by the scheduler goroutine and must never be touched from
// anywhere else; the atomics are the only cross-goroutine surface.
type info struct {
	id    uint64
	name  string
	rt    *ConcurrentScheduler
	sched *Scheduler
	log   *slog.Logger

	// alive is true while the actor accepts external sends.
	alive atomic.Bool
	// sharedRefs counts live ActorShared handles.
	sharedRefs atomic.Int64

	// --- scheduler-goroutine state ---

	actor Behavior

	// lifecycle hooks, resolved once at registration
	startUp        func()
	tearDown       func()
	timeoutExpired func()
	hangup         func()
	hangupShared   func()

	mailbox   []event
	inReady   bool
	started   bool
	closing   bool
	destroyed bool

	deadline   time.Time
	timerIndex int
}

func newInfo(id uint64, name string, rt *ConcurrentScheduler, s *Scheduler, b Behavior) *info {
	in := &info{
		id:         id,
		name:       name,
		rt:         rt,
		sched:      s,
		actor:      b,
		timerIndex: -1,
	}
	in.log = rt.log.With(slog.String("actor", name), slog.Uint64("actor_id", id))

	if h, ok := b.(StartHandler); ok {
		in.startUp = h.StartUp
	}
	if h, ok := b.(StopHandler); ok {
		in.tearDown = h.TearDown
	}
	if h, ok := b.(TimeoutHandler); ok {
		in.timeoutExpired = h.TimeoutExpired
	}
	if h, ok := b.(HangupHandler); ok {
		in.hangup = h.Hangup
	}
	if h, ok := b.(SharedHangupHandler); ok {
		in.hangupShared = h.HangupShared
	}
	return in
}

// timerheap.Item

func (in *info) TimerDeadline() time.Time { return in.deadline }
func (in *info) TimerIndex() int          { return in.timerIndex }
func (in *info) SetTimerIndex(i int)      { in.timerIndex = i }
