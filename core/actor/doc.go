// Package actor provides a single-process, multi-scheduler actor runtime:
// location-transparent message dispatch, deadline-based wakeups, safe
// cross-goroutine ownership transfer and graceful shutdown.
//
// Actors are the unit of sequential execution. Each actor:
//   - embeds [Base] and optionally implements the lifecycle hooks
//     [StartHandler], [StopHandler], [TimeoutHandler]
//   - owns private state that is only ever touched by closures executed on
//     its scheduler's goroutine, strictly one at a time
//   - is reachable through reference handles, never through shared pointers
//
// # Creating actors
//
//	type Counter struct {
//	    actor.Base
//	    count int
//	}
//
//	func (c *Counter) Increment() { c.count++ }
//
//	rt := actor.New(actor.Options{Schedulers: 4})
//	rt.Start()
//	own := actor.CreateActor(rt, "counter", &Counter{})
//
// # Sending messages
//
// A message is a closure executed against the target actor on its owning
// scheduler. Sends to an actor that no longer exists are silent no-ops;
// request/response correctness is layered on top with [promise.Promise].
//
//	id := own.ID()
//	actor.SendClosure(id, func(c *Counter) { c.Increment() })
//	actor.SendClosureLater(id, (*Counter).Increment)
//
// # Ownership
//
// [ActorOwn] is the owning handle: releasing the last one triggers the
// actor's stop sequence. [ActorID] is a weak routing reference. [ActorShared]
// is a counted keep-alive edge; a stopping actor is not destroyed until its
// shared count reaches zero.
//
// # Scheduling
//
// A [ConcurrentScheduler] owns N schedulers, each bound to one goroutine
// (scheduler 0, the main scheduler, is driven by the embedder through
// RunMain unless BackgroundMain is set). Every scheduler loop pass drains
// its inbound queue, flushes ready mailboxes FIFO, fires expired timeouts in
// deadline order and then blocks until the next wakeup or deadline.
package actor
