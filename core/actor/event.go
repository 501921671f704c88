package actor

type eventKind uint8

const (
	// evClosure executes fn against the target actor.
	evClosure eventKind = iota
	// evRegister inserts the actor into the scheduler table and runs StartUp.
	evRegister
	// evHangup is sent by the last owning handle being released.
	evHangup
	// evSharedReleased is sent when a shared handle dropped the ref-count,
	// possibly to zero.
	evSharedReleased
	// evYield forces another mailbox round for the target.
	evYield
	// evShutdown tells the scheduler to tear down all actors and stop.
	// It carries no target.
	evShutdown
)

// event is one unit of deliverable work. Events travel through a scheduler's
// inbound queue and are executed only on that scheduler's goroutine.
type event struct {
	target *info
	kind   eventKind
	fn     func(Behavior)
}
