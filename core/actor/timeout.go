package actor

// Timeout is a standalone actor wrapping a single rearmable deadline and a
// plain callback. It serves owners that are not actors themselves; actors
// arm their own deadline through [Base] directly.
//
// All methods must be called on the timeout's scheduler (from the owner's
// closures, or via SendClosure to the Timeout itself).
type Timeout struct {
	Base
	callback func(data any)
	data     any
}

// SetCallback binds the callback and its opaque data. Bind once, before the
// first arm; the callback must not block.
func (t *Timeout) SetCallback(fn func(data any), data any) {
	t.callback = fn
	t.data = data
}

// TimeoutExpired fires the callback. Firing does not rearm.
func (t *Timeout) TimeoutExpired() {
	if t.callback != nil {
		t.callback(t.data)
	}
}

// Active reports whether a deadline is armed.
func (t *Timeout) Active() bool { return t.HasTimeout() }

// Cancel disarms the deadline; canceling an unarmed timeout is a no-op.
func (t *Timeout) Cancel() { t.CancelTimeout() }

var (
	_ TimeoutHandler = (*Timeout)(nil)
	_ Behavior       = (*Timeout)(nil)
)
