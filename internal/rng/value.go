package rng

import (
	"unsafe"

	"github.com/acolita/chance/internal/ports"
	"golang.org/x/exp/constraints"
)

// Value returns a random value of the integer type T.
//
// The word drawn matches the width of T. For int, uint and uintptr that is
// the platform's pointer width, fixed when the package is compiled. Signed
// types reinterpret the bits of the unsigned word of the same width.
func Value[T constraints.Integer](r ports.Rng) T {
	var v T
	switch unsafe.Sizeof(v) {
	case 1:
		return T(NextUint8(r))
	case 2:
		return T(NextUint16(r))
	case 4:
		return T(NextUint32(r))
	default:
		return T(NextUint64(r))
	}
}

// TryValue returns a random value of the integer type T, or the error of
// the underlying source.
func TryValue[T constraints.Integer](r ports.TryRng) (T, error) {
	var v T
	switch unsafe.Sizeof(v) {
	case 1:
		w, err := TryNextUint8(r)
		return T(w), err
	case 2:
		w, err := TryNextUint16(r)
		return T(w), err
	case 4:
		w, err := TryNextUint32(r)
		return T(w), err
	default:
		w, err := TryNextUint64(r)
		return T(w), err
	}
}

// ReadValue overwrites *v with a random value.
func ReadValue[T constraints.Integer](r ports.Rng, v *T) {
	*v = Value[T](r)
}

// TryReadValue overwrites *v with a random value. On error *v is left
// unchanged.
func TryReadValue[T constraints.Integer](r ports.TryRng, v *T) error {
	x, err := TryValue[T](r)
	if err != nil {
		return err
	}
	*v = x
	return nil
}
