package actor

import (
	"fmt"
	"log/slog"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/loom-go/internal/reflector"
)

// CreateActor registers a on the least-loaded scheduler and returns the
// owning handle. StartUp runs on that scheduler before any message is
// delivered. An empty name gets a generated tag derived from the type.
func CreateActor[T any](rt *ConcurrentScheduler, name string, a *T) ActorOwn[T] {
	return CreateActorOnScheduler(rt, rt.leastLoaded().id, name, a)
}

// CreateActorOnScheduler registers a on the given scheduler.
func CreateActorOnScheduler[T any](rt *ConcurrentScheduler, schedID int, name string, a *T) ActorOwn[T] {
	return ActorOwn[T]{ref: rt.register(rt.scheduler(schedID), name, asBehavior(a), false)}
}

// CreateActorUnsafe registers a on the given scheduler without routing
// through its inbound queue. It may only be used during controlled startup,
// before Start; afterwards it panics.
func CreateActorUnsafe[T any](rt *ConcurrentScheduler, schedID int, name string, a *T) ActorOwn[T] {
	if rt.state.Load() != stateCreated {
		panic("actor: CreateActorUnsafe after Start")
	}
	return ActorOwn[T]{ref: rt.register(rt.scheduler(schedID), name, asBehavior(a), true)}
}

// Spawn registers a child actor on the parent's scheduler. Intended for use
// from inside the parent's hooks and closures; the child starts before any
// message sent to it afterwards.
func Spawn[T any](parent Behavior, name string, a *T) ActorOwn[T] {
	p := parent.base().self()
	return ActorOwn[T]{ref: p.rt.register(p.sched, name, asBehavior(a), false)}
}

func asBehavior(a any) Behavior {
	b, ok := a.(Behavior)
	if !ok {
		panic(fmt.Sprintf("actor: %T does not embed actor.Base", a))
	}
	return b
}

func (cs *ConcurrentScheduler) register(s *Scheduler, name string, b Behavior, direct bool) *info {
	bb := b.base()
	if bb.info != nil {
		panic("actor: behavior is already registered")
	}
	if name == "" {
		name = reflector.TypeInfoOf(b).Short + "-" + gonanoid.Must(6)
	}

	in := newInfo(cs.nextActorID.Add(1), name, cs, s, b)
	bb.info = in
	in.alive.Store(true)
	s.load.Add(1)
	cs.metrics.ActorCreated(s.id)

	ev := event{target: in, kind: evRegister}
	if direct {
		// startup path: the loop is not running yet, so the scheduler
		// structures are safe to touch from here
		s.actors[in.id] = in
		s.addToMailbox(in, ev)
	} else {
		s.inbound.Push(ev)
	}
	in.log.Debug("actor created", slog.Int("scheduler", s.id))
	return in
}
