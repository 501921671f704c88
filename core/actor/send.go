package actor

// SendClosure delivers fn to the target actor's scheduler, to be executed
// against the actor's state with single-writer discipline. The send is a
// silent no-op when the actor no longer exists; callers that need a response
// register a promise before sending.
//
// Sends from one goroutine to one actor execute in send order. Closures are
// always enqueued, never run inline, so a send from inside an actor cannot
// deepen the caller's stack or reorder ahead of earlier sends.
func SendClosure[T any](id ActorID[T], fn func(*T)) {
	in := id.ref
	if in == nil || !in.alive.Load() {
		return
	}
	in.sched.inbound.Push(event{
		target: in,
		kind:   evClosure,
		fn:     func(b Behavior) { fn(any(b).(*T)) },
	})
}

// SendClosureLater is the explicit reentrancy-breaking form: the closure is
// guaranteed to execute only after the currently running callback returns.
// With the runtime's always-enqueue dispatch the delivery path is the same
// as SendClosure; use Later where the code depends on that guarantee.
func SendClosureLater[T any](id ActorID[T], fn func(*T)) {
	SendClosure(id, fn)
}

// SendLambda delivers fn without giving it access to the actor's state.
// It still executes on the target's scheduler, serialized with the actor's
// other closures, and is dropped if the actor is gone.
func SendLambda[T any](id ActorID[T], fn func()) {
	SendClosure(id, func(*T) { fn() })
}
