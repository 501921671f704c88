package actor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	stateCreated int32 = iota
	stateStarted
	stateFinished
)

// Options configures a ConcurrentScheduler. The zero value is usable: one
// scheduler, default logger, no metrics.
type Options struct {
	// Schedulers is the total number of schedulers, including the main one
	// (index 0). Defaults to 1.
	Schedulers int
	// PollInterval bounds how long an idle scheduler sleeps between passes.
	// Defaults to 1s.
	PollInterval time.Duration
	// BackgroundMain also gives the main scheduler its own goroutine on
	// Start. Set it when no embedder drives RunMain (e.g. pool members).
	BackgroundMain bool
	Logger         *slog.Logger
	Metrics        Metrics
}

// ConcurrentScheduler owns a set of schedulers, each bound to one goroutine,
// plus the cross-scheduler routing, guards and lifecycle control.
type ConcurrentScheduler struct {
	log     *slog.Logger
	metrics Metrics
	opts    Options

	scheds      []*Scheduler
	nextActorID atomic.Uint64

	state     atomic.Int32
	closeFlag atomic.Bool
	ctx       context.Context
	cancel    context.CancelFunc

	gcSchedID atomic.Int32

	eg *errgroup.Group
	// finishBarrier lets Finish wait out in-flight send guards before the
	// final inbound drain.
	finishBarrier sync.RWMutex
}

// New creates a runtime with opts. Call Start to spawn the scheduler
// goroutines and Finish to tear everything down.
func New(opts Options) *ConcurrentScheduler {
	if opts.Schedulers <= 0 {
		opts.Schedulers = 1
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopMetrics()
	}

	cs := &ConcurrentScheduler{
		log:     opts.Logger,
		metrics: opts.Metrics,
		opts:    opts,
	}
	cs.ctx, cs.cancel = context.WithCancel(context.Background())

	cs.scheds = make([]*Scheduler, opts.Schedulers)
	for i := range cs.scheds {
		cs.scheds[i] = newScheduler(i, cs)
	}
	// every scheduler carries a service actor executing RunOnScheduler
	// closures inside its loop
	for _, s := range cs.scheds {
		s.service = cs.register(s, fmt.Sprintf("service-%d", s.id), &serviceActor{}, true)
	}
	return cs
}

// serviceActor hosts closures shipped to a specific scheduler.
type serviceActor struct {
	Base
}

// SchedulerCount returns the number of schedulers.
func (cs *ConcurrentScheduler) SchedulerCount() int { return len(cs.scheds) }

func (cs *ConcurrentScheduler) scheduler(id int) *Scheduler {
	if id < 0 || id >= len(cs.scheds) {
		panic(fmt.Sprintf("actor: scheduler %d out of range [0,%d)", id, len(cs.scheds)))
	}
	return cs.scheds[id]
}

func (cs *ConcurrentScheduler) leastLoaded() *Scheduler {
	best := cs.scheds[0]
	for _, s := range cs.scheds[1:] {
		if s.load.Load() < best.load.Load() {
			best = s
		}
	}
	return best
}

// Start spawns one goroutine per scheduler (skipping the main scheduler
// unless BackgroundMain is set). Starting twice panics.
func (cs *ConcurrentScheduler) Start() {
	if !cs.state.CompareAndSwap(stateCreated, stateStarted) {
		panic("actor: Start on a runtime that is not freshly created")
	}
	cs.eg = new(errgroup.Group)
	first := 1
	if cs.opts.BackgroundMain {
		first = 0
	}
	for _, s := range cs.scheds[first:] {
		cs.eg.Go(func() error {
			s.runLoop(cs.opts.PollInterval)
			return nil
		})
	}
	cs.log.Debug("runtime started", slog.Int("schedulers", len(cs.scheds)))
}

// RunMain executes one bounded pass of the main scheduler on the calling
// goroutine, waiting at most bound for new work. It returns false once the
// runtime has finished and no work remains. Must not be mixed with
// BackgroundMain.
func (cs *ConcurrentScheduler) RunMain(bound time.Duration) bool {
	if cs.opts.BackgroundMain {
		panic("actor: RunMain with BackgroundMain enabled")
	}
	if cs.state.Load() == stateCreated {
		panic("actor: RunMain before Start")
	}
	return cs.scheds[0].runPass(bound)
}

// Finish stops the runtime: the close flag flips, every scheduler tears down
// its remaining actors (running their TearDown hooks) and the worker
// goroutines are joined. Finishing twice, or without having started, panics.
func (cs *ConcurrentScheduler) Finish() {
	if !cs.state.CompareAndSwap(stateStarted, stateFinished) {
		panic("actor: Finish without a started runtime")
	}
	cs.closeFlag.Store(true)
	cs.cancel()

	// wait out in-flight send guards so their sends reach the final drain
	cs.finishBarrier.Lock()
	for _, s := range cs.scheds {
		s.inbound.Push(event{kind: evShutdown})
	}
	cs.finishBarrier.Unlock()

	if !cs.opts.BackgroundMain {
		main := cs.scheds[0]
		for main.runPass(10 * time.Millisecond) {
		}
	}
	_ = cs.eg.Wait()
	cs.log.Debug("runtime finished")
}

// CloseFlag reports whether shutdown has begun. Long-lived actors check it
// at resumption points and stop issuing new outbound work once set.
func (cs *ConcurrentScheduler) CloseFlag() bool { return cs.closeFlag.Load() }

// Context is canceled when Finish begins.
func (cs *ConcurrentScheduler) Context() context.Context { return cs.ctx }

// Guard is a scoped-acquisition token. Release is idempotent.
type Guard struct {
	once    sync.Once
	release func()
}

// Release gives the token back.
func (g *Guard) Release() {
	g.once.Do(g.release)
}

// GetSendGuard returns the token a foreign goroutine must hold while
// enqueueing closures or creating actors. While any send guard is held,
// Finish will not pass the point after which sends are dropped.
func (cs *ConcurrentScheduler) GetSendGuard() *Guard {
	cs.finishBarrier.RLock()
	return &Guard{release: cs.finishBarrier.RUnlock}
}

// GetMainGuard returns the embedder thread's token, valid around RunMain,
// actor creation and Finish itself. Unlike a send guard it does not block
// Finish, so it is safe to hold while calling it.
func (cs *ConcurrentScheduler) GetMainGuard() *Guard {
	if cs.state.Load() == stateFinished {
		panic("actor: main guard after Finish")
	}
	return &Guard{release: func() {}}
}

// RunOnScheduler executes fn inside the target scheduler's loop, serialized
// with that scheduler's actors. Dropped silently after shutdown.
func (cs *ConcurrentScheduler) RunOnScheduler(schedID int, fn func()) {
	svc := cs.scheduler(schedID).service
	if !svc.alive.Load() {
		return
	}
	svc.sched.inbound.Push(event{
		target: svc,
		kind:   evClosure,
		fn:     func(Behavior) { fn() },
	})
}

// DestroyOnScheduler ships value to the target scheduler and drops it there,
// closing it first when it implements io.Closer. Use it for values whose
// teardown must not race readers on other schedulers.
func (cs *ConcurrentScheduler) DestroyOnScheduler(schedID int, value any) {
	cs.RunOnScheduler(schedID, func() {
		if c, ok := value.(io.Closer); ok {
			_ = c.Close()
		}
	})
}

// DestroyOnGCScheduler is DestroyOnScheduler targeting the configured GC
// scheduler (0 unless SetGCSchedulerID changed it).
func (cs *ConcurrentScheduler) DestroyOnGCScheduler(value any) {
	cs.DestroyOnScheduler(int(cs.gcSchedID.Load()), value)
}

// SetGCSchedulerID pins destroy-on-GC-scheduler traffic to schedID.
func (cs *ConcurrentScheduler) SetGCSchedulerID(schedID int) {
	cs.scheduler(schedID) // bounds check
	cs.gcSchedID.Store(int32(schedID))
}

// GCSchedulerID returns the scheduler designated for pinned destruction.
func (cs *ConcurrentScheduler) GCSchedulerID() int { return int(cs.gcSchedID.Load()) }
