// Package securerand provides a random source backed by the platform's
// secure random system call. On Linux that is getrandom(2).
package securerand

import (
	"errors"
	"fmt"

	"github.com/acolita/chance/internal/ports"
)

// ErrUnsupported is returned by New on platforms without a supported call.
var ErrUnsupported = errors.New("securerand: no secure random system call on this platform")

// Error carries the status code of a failed system call.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("securerand: system call failed with status %d: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options configures a Source.
type Options struct {
	// NonBlocking fails with a status code instead of waiting when the
	// kernel entropy pool is not yet initialised.
	NonBlocking bool
}

// syscallFunc fills p and returns the number of bytes written.
type syscallFunc func(p []byte, nonBlocking bool) (int, error)

// Source fills buffers through the platform call. A single call may
// return fewer bytes than requested; Source keeps calling until the buffer
// is full or a call fails.
type Source struct {
	opts Options
	call syscallFunc
}

// New returns a Source, or ErrUnsupported.
func New(opts Options) (*Source, error) {
	if platformCall == nil {
		return nil, ErrUnsupported
	}
	return &Source{opts: opts, call: platformCall}, nil
}

// TryFillBytes implements ports.TryRng. Failures are *Error values.
func (s *Source) TryFillBytes(buf []byte) error {
	for len(buf) > 0 {
		n, err := s.call(buf, s.opts.NonBlocking)
		if err != nil {
			return &Error{Code: statusCode(err), Err: err}
		}
		buf = buf[n:]
	}
	return nil
}

// Ensure Source implements ports.TryRng.
var _ ports.TryRng = (*Source)(nil)
