package rng

import (
	"math"
	"math/bits"

	"github.com/acolita/chance/internal/ports"
	"golang.org/x/exp/constraints"
)

// In returns a uniformly distributed value in [lo, hi). It reports false
// when the range is empty.
func In[T constraints.Integer](r ports.Rng, lo, hi T) (T, bool) {
	if hi <= lo {
		return 0, false
	}
	return InUnchecked(r, lo, hi), true
}

// TryIn is In for fallible sources. An empty range yields false and a nil
// error without drawing from r.
func TryIn[T constraints.Integer](r ports.TryRng, lo, hi T) (T, bool, error) {
	if hi <= lo {
		return 0, false, nil
	}
	v, err := TryInUnchecked(r, lo, hi)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// InUnchecked returns a uniformly distributed value in [lo, hi).
//
// The caller must guarantee hi > lo. The result for an empty range is
// unspecified; it is only detected in builds tagged chance_debug.
func InUnchecked[T constraints.Integer](r ports.Rng, lo, hi T) T {
	v, err := TryInUnchecked(Infallible(r), lo, hi)
	if err != nil {
		panic(unreachable(err))
	}
	return v
}

// TryInUnchecked is InUnchecked for fallible sources. Source errors are
// returned unchanged.
//
// Spans that fit in 32 bits draw 32-bit words, wider spans draw 64-bit
// words. Each draw is mapped with Lemire's multiply-shift method; a draw
// whose low product word falls below 2^w mod span is rejected and redrawn,
// which removes modulo bias. Power-of-two spans never redraw.
func TryInUnchecked[T constraints.Integer](r ports.TryRng, lo, hi T) (T, error) {
	if debugChecks && hi <= lo {
		panic("rng: empty range passed to unchecked selection")
	}

	// Two's complement subtraction gives the width for signed types too.
	span := uint64(hi) - uint64(lo)

	var off uint64
	if span <= math.MaxUint32 {
		x, err := uniform32(r, uint32(span))
		if err != nil {
			return 0, err
		}
		off = uint64(x)
	} else {
		x, err := uniform64(r, span)
		if err != nil {
			return 0, err
		}
		off = x
	}
	return lo + T(off), nil
}

// uniform32 returns a value in [0, n) for n > 0.
func uniform32(r ports.TryRng, n uint32) (uint32, error) {
	x, err := TryNextUint32(r)
	if err != nil {
		return 0, err
	}
	m := uint64(x) * uint64(n)
	if low := uint32(m); low < n {
		thresh := -n % n
		for low < thresh {
			if x, err = TryNextUint32(r); err != nil {
				return 0, err
			}
			m = uint64(x) * uint64(n)
			low = uint32(m)
		}
	}
	return uint32(m >> 32), nil
}

// uniform64 returns a value in [0, n) for n > 0.
func uniform64(r ports.TryRng, n uint64) (uint64, error) {
	x, err := TryNextUint64(r)
	if err != nil {
		return 0, err
	}
	hi, low := bits.Mul64(x, n)
	if low < n {
		thresh := -n % n
		for low < thresh {
			if x, err = TryNextUint64(r); err != nil {
				return 0, err
			}
			hi, low = bits.Mul64(x, n)
		}
	}
	return hi, nil
}

// Index returns a uniformly distributed index in [0, n). It reports false
// when n <= 0.
func Index(r ports.Rng, n int) (int, bool) {
	return In(r, 0, n)
}

// TryIndex is Index for fallible sources.
func TryIndex(r ports.TryRng, n int) (int, bool, error) {
	return TryIn(r, 0, n)
}
