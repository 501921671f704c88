package status

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatus_error(t *testing.T) {
	s := New(404, "actor not found")
	require.Equal(t, 404, s.Code())
	require.Equal(t, "actor not found", s.Message())
	require.Equal(t, "actor not found (404)", s.Error())
}

func TestStatus_wrap(t *testing.T) {
	s := Wrap(500, "teardown failed", io.ErrClosedPipe)
	require.ErrorIs(t, s, io.ErrClosedPipe)
	require.Equal(t, 500, Code(s))
	require.Equal(t, 500, Code(fmt.Errorf("outer: %w", s)))
}

func TestCode_plain_error(t *testing.T) {
	require.Equal(t, 0, Code(nil))
	require.Equal(t, 0, Code(errors.New("plain")))
}

func TestResult_ok(t *testing.T) {
	r := OK(42)
	require.True(t, r.IsOK())
	require.NoError(t, r.Err())

	v, err := r.Unpack()
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, 42, r.MustOK())
}

func TestResult_err(t *testing.T) {
	r := Err[int](New(500, "boom"))
	require.False(t, r.IsOK())
	require.Equal(t, 500, Code(r.Err()))
	require.Panics(t, func() { r.MustOK() })
}

func TestResult_err_nil_panics(t *testing.T) {
	require.Panics(t, func() { Err[int](nil) })
}
