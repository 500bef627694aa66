package rng

import "github.com/acolita/chance/internal/ports"

// InfallibleRng presents an infallible source through the fallible
// interface. Every Try method returns a nil error.
type InfallibleRng struct {
	R ports.Rng
}

// Infallible wraps r so it can be passed to code written against
// ports.TryRng. If r already satisfies ports.TryRng through an earlier
// Infallible call, the existing wrapper is returned.
func Infallible(r ports.Rng) *InfallibleRng {
	if w, ok := r.(*InfallibleRng); ok {
		return w
	}
	return &InfallibleRng{R: r}
}

// IsInfallible reports whether r can never return an error.
func IsInfallible(r ports.TryRng) bool {
	_, ok := r.(*InfallibleRng)
	return ok
}

// FillBytes implements ports.Rng.
func (w *InfallibleRng) FillBytes(buf []byte) {
	w.R.FillBytes(buf)
}

// TryFillBytes implements ports.TryRng.
func (w *InfallibleRng) TryFillBytes(buf []byte) error {
	w.R.FillBytes(buf)
	return nil
}

func (w *InfallibleRng) TryNextUint8() (uint8, error)   { return NextUint8(w.R), nil }
func (w *InfallibleRng) TryNextUint16() (uint16, error) { return NextUint16(w.R), nil }
func (w *InfallibleRng) TryNextUint32() (uint32, error) { return NextUint32(w.R), nil }
func (w *InfallibleRng) TryNextUint64() (uint64, error) { return NextUint64(w.R), nil }

func (w *InfallibleRng) TryNextUint128() (Uint128, error) { return NextUint128(w.R), nil }

var (
	_ ports.Rng             = (*InfallibleRng)(nil)
	_ ports.TryRng          = (*InfallibleRng)(nil)
	_ ports.TryUint64Source = (*InfallibleRng)(nil)
	_ TryUint128Source      = (*InfallibleRng)(nil)
)
