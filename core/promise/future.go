package promise

import (
	"context"

	"github.com/codewandler/loom-go/core/status"
)

// Future is the waiting end of a promise, for code that lives outside the
// actor world (main goroutines, tests). Actor code should never block on a
// future; it registers a continuation instead.
type Future[T any] struct {
	ch chan status.Result[T]
}

// NewFuture creates a connected future/promise pair.
func NewFuture[T any]() (*Future[T], Promise[T]) {
	f := &Future[T]{ch: make(chan status.Result[T], 1)}
	p := Lambda(func(r status.Result[T]) { f.ch <- r })
	return f, p
}

// Get blocks until the promise is resolved or ctx is done.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-f.ch:
		return r.Unpack()
	}
}

// Done returns a channel that delivers the result once resolved.
func (f *Future[T]) Done() <-chan status.Result[T] { return f.ch }

// TryGet returns the result without blocking. ok is false when the promise
// has not been resolved yet.
func (f *Future[T]) TryGet() (r status.Result[T], ok bool) {
	select {
	case r = <-f.ch:
		return r, true
	default:
		return r, false
	}
}
