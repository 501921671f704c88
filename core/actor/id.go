package actor

// ActorID is a weak, non-owning reference to an actor of type T. It is valid
// for routing messages; once the actor is gone, sends through it are silent
// no-ops and never touch reclaimed state.
type ActorID[T any] struct {
	ref *info
}

// Empty reports whether the reference was ever bound to an actor.
func (id ActorID[T]) Empty() bool { return id.ref == nil }

// IsAlive reports whether the target still accepts sends.
func (id ActorID[T]) IsAlive() bool { return id.ref != nil && id.ref.alive.Load() }

// ID returns the numeric actor identity, 0 for an empty reference.
func (id ActorID[T]) ID() uint64 {
	if id.ref == nil {
		return 0
	}
	return id.ref.id
}

// Name returns the actor's tag, "" for an empty reference.
func (id ActorID[T]) Name() string {
	if id.ref == nil {
		return ""
	}
	return id.ref.name
}

// Share creates a keep-alive handle tagged with token. The actor will not be
// destroyed until every shared handle is released, even after its owner let
// go.
func (id ActorID[T]) Share(token uint64) ActorShared[T] {
	if id.ref == nil {
		return ActorShared[T]{}
	}
	id.ref.sharedRefs.Add(1)
	return ActorShared[T]{ref: id.ref, token: token}
}

// ActorOwn is the exclusive owning handle. Releasing it (or resetting it
// with another handle) triggers the actor's stop sequence. Treat it as
// move-only: hand it over, don't copy it.
type ActorOwn[T any] struct {
	ref *info
}

// ID returns a weak reference for routing messages.
func (o *ActorOwn[T]) ID() ActorID[T] { return ActorID[T]{ref: o.ref} }

// Empty reports whether the handle currently owns an actor.
func (o *ActorOwn[T]) Empty() bool { return o.ref == nil }

// IsAlive reports whether the owned actor still accepts sends.
func (o *ActorOwn[T]) IsAlive() bool { return o.ref != nil && o.ref.alive.Load() }

// Share creates a keep-alive handle without giving up ownership.
func (o *ActorOwn[T]) Share(token uint64) ActorShared[T] { return o.ID().Share(token) }

// Release triggers the owned actor's stop sequence. Safe from any goroutine;
// releasing an empty handle is a no-op.
func (o *ActorOwn[T]) Release() {
	in := o.ref
	if in == nil {
		return
	}
	o.ref = nil
	in.sched.inbound.Push(event{target: in, kind: evHangup})
}

// Reset releases the current actor and takes ownership of the one owned by
// n.
func (o *ActorOwn[T]) Reset(n ActorOwn[T]) {
	o.Release()
	o.ref = n.ref
}

// ActorShared is a counted keep-alive reference. A stopping actor is only
// destroyed once every shared handle has been released. The token tells
// independent holders apart (a parent can hand each child a distinct token).
type ActorShared[T any] struct {
	ref   *info
	token uint64
}

// Token returns the token given at Share time.
func (s *ActorShared[T]) Token() uint64 { return s.token }

// ID returns a weak reference for routing messages.
func (s *ActorShared[T]) ID() ActorID[T] { return ActorID[T]{ref: s.ref} }

// Empty reports whether the handle holds a reference.
func (s *ActorShared[T]) Empty() bool { return s.ref == nil }

// Release drops the keep-alive edge. Safe from any goroutine; releasing an
// empty handle is a no-op.
func (s *ActorShared[T]) Release() {
	in := s.ref
	if in == nil {
		return
	}
	s.ref = nil
	in.sharedRefs.Add(-1)
	in.sched.inbound.Push(event{target: in, kind: evSharedReleased})
}
