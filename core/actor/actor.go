package actor

import (
	"log/slog"
	"time"
)

// Behavior is the interface every actor implements by embedding [Base].
// The unexported method keeps arbitrary types out: only a struct that embeds
// Base can be registered with a scheduler.
type Behavior interface {
	base() *Base
}

// StartHandler is run exactly once, on the owning scheduler, when the actor
// is registered and before any message is delivered.
type StartHandler interface{ StartUp() }

// StopHandler is run exactly once when the actor's stop sequence begins.
// An actor holding unresolved promises must resolve them here (typically
// with promise.ErrAborted) so no caller is left waiting.
type StopHandler interface{ TearDown() }

// TimeoutHandler is run on the owning scheduler when the actor's armed
// deadline expires. Firing never rearms the deadline.
type TimeoutHandler interface{ TimeoutExpired() }

// HangupHandler overrides what happens when the last owning handle is
// released. The default is Stop; an override that never stops the actor
// leaks it until runtime shutdown.
type HangupHandler interface{ Hangup() }

// SharedHangupHandler is notified when a shared handle is released while the
// actor is still running.
type SharedHangupHandler interface{ HangupShared() }

// Base is the runtime core embedded in every actor. Its methods (except
// Alive) must only be called from the actor's own scheduler goroutine, i.e.
// from inside the actor's hooks and delivered closures.
type Base struct {
	info *info
}

func (b *Base) base() *Base { return b }

func (b *Base) self() *info {
	if b.info == nil {
		panic("actor: not registered with a scheduler")
	}
	return b.info
}

// Stop begins the actor's stop sequence: TearDown runs, external sends are
// rejected from now on, and the actor is destroyed once its shared ref-count
// reaches zero.
func (b *Base) Stop() {
	in := b.self()
	in.sched.doStopActor(in)
}

// Yield reschedules the actor to the back of the current ready queue,
// letting other actors on the same scheduler run first.
func (b *Base) Yield() {
	in := b.self()
	in.sched.addToMailbox(in, event{target: in, kind: evYield})
}

// SetTimeoutIn arms (or rearms) the actor's single deadline d from now.
func (b *Base) SetTimeoutIn(d time.Duration) {
	b.SetTimeoutAt(time.Now().Add(d))
}

// SetTimeoutAt arms (or rearms) the actor's single deadline.
func (b *Base) SetTimeoutAt(at time.Time) {
	in := b.self()
	in.sched.setTimeoutAt(in, at)
}

// CancelTimeout disarms the deadline. Canceling an unarmed timeout is a
// no-op.
func (b *Base) CancelTimeout() {
	in := b.self()
	in.sched.cancelTimeout(in)
}

// HasTimeout reports whether a deadline is armed.
func (b *Base) HasTimeout() bool {
	return b.self().timerIndex >= 0
}

// Timeout returns the armed deadline, zero when unarmed.
func (b *Base) Timeout() time.Time {
	return b.self().deadline
}

// Alive reports whether the actor still accepts external sends. Safe from
// any goroutine.
func (b *Base) Alive() bool {
	return b.info != nil && b.info.alive.Load()
}

// Name returns the actor's tag.
func (b *Base) Name() string { return b.self().name }

// ID returns the actor's numeric identity, stable for its lifetime.
func (b *Base) ID() uint64 { return b.self().id }

// SchedulerID returns the id of the scheduler the actor lives on.
func (b *Base) SchedulerID() int { return b.self().sched.id }

// Runtime returns the owning ConcurrentScheduler, giving actors access to
// the close flag and cross-scheduler primitives.
func (b *Base) Runtime() *ConcurrentScheduler { return b.self().rt }

// Log returns the actor's logger, tagged with its name and id.
func (b *Base) Log() *slog.Logger { return b.self().log }

// IDOf returns a typed weak reference to a registered actor. The result is
// empty when a was never registered.
func IDOf[T any](a *T) ActorID[T] {
	b, ok := any(a).(Behavior)
	if !ok {
		panic("actor: type does not embed actor.Base")
	}
	return ActorID[T]{ref: b.base().info}
}

// ShareOf creates a keep-alive handle to a registered actor, tagged with
// token. See [ActorShared].
func ShareOf[T any](a *T, token uint64) ActorShared[T] {
	return IDOf(a).Share(token)
}
