package promise

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codewandler/loom-go/core/status"
)

func TestLambda_set_value(t *testing.T) {
	var got status.Result[int]
	p := Lambda(func(r status.Result[int]) { got = r })
	p.SetValue(7)
	require.True(t, got.IsOK())
	require.Equal(t, 7, got.MustOK())
}

func TestLambda_set_error(t *testing.T) {
	var got status.Result[int]
	p := Lambda(func(r status.Result[int]) { got = r })
	p.SetError(ErrAborted)
	require.Equal(t, 500, status.Code(got.Err()))
}

func TestLambda_double_resolve_panics(t *testing.T) {
	p := Lambda(func(status.Result[int]) {})
	p.SetValue(1)

	panics := 0
	func() {
		defer func() {
			if recover() != nil {
				panics++
			}
		}()
		p.SetValue(2)
	}()
	require.Equal(t, 1, panics)
}

func TestMap_adapts_value(t *testing.T) {
	var got status.Result[string]
	next := Lambda(func(r status.Result[string]) { got = r })

	p := Map(next, func(n int) status.Result[string] {
		return status.OK(time.Duration(n).String())
	})
	p.SetValue(int(time.Second))
	require.Equal(t, "1s", got.MustOK())
}

func TestMap_forwards_error(t *testing.T) {
	var got status.Result[string]
	next := Lambda(func(r status.Result[string]) { got = r })

	Map(next, func(int) status.Result[string] {
		t.Fatal("must not be called")
		return status.OK("")
	}).SetError(status.New(400, "bad"))
	require.Equal(t, 400, status.Code(got.Err()))
}

func TestFuture_get(t *testing.T) {
	f, p := NewFuture[int]()

	_, ok := f.TryGet()
	require.False(t, ok)

	go p.SetValue(42)

	v, err := f.Get(t.Context())
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestFuture_get_canceled_context(t *testing.T) {
	f, _ := NewFuture[int]()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := f.Get(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
