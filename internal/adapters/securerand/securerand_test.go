package securerand

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_LoopsOnShortReads(t *testing.T) {
	var calls int
	s := &Source{call: func(p []byte, _ bool) (int, error) {
		calls++
		// Hand out at most three bytes per call.
		n := min(3, len(p))
		for i := 0; i < n; i++ {
			p[i] = byte(calls)
		}
		return n, nil
	}}

	buf := make([]byte, 7)
	require.NoError(t, s.TryFillBytes(buf))
	assert.Equal(t, []byte{1, 1, 1, 2, 2, 2, 3}, buf)
	assert.Equal(t, 3, calls)
}

func TestSource_FailureCarriesStatus(t *testing.T) {
	cause := errors.New("boom")
	var sawNonBlocking bool
	s := &Source{
		opts: Options{NonBlocking: true},
		call: func(p []byte, nonBlocking bool) (int, error) {
			sawNonBlocking = nonBlocking
			return 0, cause
		},
	}

	err := s.TryFillBytes(make([]byte, 4))
	var secErr *Error
	require.True(t, errors.As(err, &secErr))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, -1, secErr.Code)
	assert.True(t, sawNonBlocking)
}

func TestSource_EmptyBuffer(t *testing.T) {
	s := &Source{call: func(p []byte, _ bool) (int, error) {
		t.Fatal("no call expected for an empty buffer")
		return 0, nil
	}}
	assert.NoError(t, s.TryFillBytes(nil))
}

func TestNew_Platform(t *testing.T) {
	s, err := New(Options{})
	if runtime.GOOS != "linux" {
		assert.ErrorIs(t, err, ErrUnsupported)
		return
	}
	require.NoError(t, err)

	buf := make([]byte, 300)
	require.NoError(t, s.TryFillBytes(buf))
	assert.NotEqual(t, make([]byte, 300), buf)
}
