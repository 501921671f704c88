// Package promise provides single-shot result channels used to carry an
// asynchronous outcome across actor and goroutine boundaries.
//
// A promise is resolved exactly once, with either a value or an error.
// Resolving it a second time is a programming error and panics. A promise
// that is dropped without being resolved must be resolved by its owner with
// [ErrAborted] (actors do this in their TearDown hook), so waiters are never
// left blocked.
package promise

import (
	"sync/atomic"

	"github.com/codewandler/loom-go/core/status"
)

// ErrAborted resolves promises whose owner went away before producing a
// value, typically during actor teardown.
var ErrAborted = status.New(500, "request aborted")

// Promise is a one-shot correspondent for a value of type T.
// All methods are safe to call from any goroutine, but only one of them may
// ever be called, once.
type Promise[T any] interface {
	SetValue(v T)
	SetError(err error)
	SetResult(r status.Result[T])
}

type lambdaPromise[T any] struct {
	fn       func(status.Result[T])
	resolved atomic.Bool
}

// Lambda wraps fn into a promise. fn runs on whatever goroutine resolves the
// promise; forward into an actor with a closure send when the result must be
// observed on the actor's scheduler.
func Lambda[T any](fn func(status.Result[T])) Promise[T] {
	return &lambdaPromise[T]{fn: fn}
}

func (p *lambdaPromise[T]) SetResult(r status.Result[T]) {
	if !p.resolved.CompareAndSwap(false, true) {
		panic("promise: resolved twice")
	}
	p.fn(r)
}

func (p *lambdaPromise[T]) SetValue(v T)       { p.SetResult(status.OK(v)) }
func (p *lambdaPromise[T]) SetError(err error) { p.SetResult(status.Err[T](err)) }

// Map adapts a Promise[B] into a Promise[A]: a successful A is transformed
// by fn and forwarded, an error is forwarded unchanged.
func Map[A, B any](next Promise[B], fn func(A) status.Result[B]) Promise[A] {
	return Lambda(func(r status.Result[A]) {
		v, err := r.Unpack()
		if err != nil {
			next.SetError(err)
			return
		}
		next.SetResult(fn(v))
	})
}
