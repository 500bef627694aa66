package rng

import "fmt"

// SourceError is the panic value raised by Panicking when the wrapped
// source fails.
type SourceError struct {
	Op  string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("rng: %s: %v", e.Op, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// unreachable builds the panic value for an error that an infallible source
// produced anyway. Reaching it means a wrapper broke its contract.
func unreachable(err error) error {
	return fmt.Errorf("rng: infallible source returned an error: %w", err)
}
