// Package rng implements generic random value generation, selection and
// shuffling on top of the ports.Rng and ports.TryRng capabilities.
//
// Every algorithm is written once against ports.TryRng. Infallible sources
// reach it through Infallible, whose error is always nil.
package rng

import (
	"encoding/binary"

	"github.com/acolita/chance/internal/ports"
)

// Uint128 is a 128-bit unsigned word.
type Uint128 struct {
	Hi, Lo uint64
}

// Uint128Source produces 128-bit words without failing.
type Uint128Source interface {
	NextUint128() Uint128
}

// TryUint128Source produces 128-bit words and may fail.
type TryUint128Source interface {
	TryNextUint128() (Uint128, error)
}

// NextUint8 draws an 8-bit word from r.
func NextUint8(r ports.Rng) uint8 {
	if s, ok := r.(ports.Uint8Source); ok {
		return s.NextUint8()
	}
	var b [1]byte
	r.FillBytes(b[:])
	return b[0]
}

// NextUint16 draws a 16-bit word from r in native byte order.
func NextUint16(r ports.Rng) uint16 {
	if s, ok := r.(ports.Uint16Source); ok {
		return s.NextUint16()
	}
	var b [2]byte
	r.FillBytes(b[:])
	return binary.NativeEndian.Uint16(b[:])
}

// NextUint32 draws a 32-bit word from r in native byte order.
func NextUint32(r ports.Rng) uint32 {
	if s, ok := r.(ports.Uint32Source); ok {
		return s.NextUint32()
	}
	var b [4]byte
	r.FillBytes(b[:])
	return binary.NativeEndian.Uint32(b[:])
}

// NextUint64 draws a 64-bit word from r in native byte order.
func NextUint64(r ports.Rng) uint64 {
	if s, ok := r.(ports.Uint64Source); ok {
		return s.NextUint64()
	}
	var b [8]byte
	r.FillBytes(b[:])
	return binary.NativeEndian.Uint64(b[:])
}

// NextUint128 draws a 128-bit word from r in native byte order.
func NextUint128(r ports.Rng) Uint128 {
	if s, ok := r.(Uint128Source); ok {
		return s.NextUint128()
	}
	var b [16]byte
	r.FillBytes(b[:])
	return decode128(b[:])
}

// TryNextUint8 draws an 8-bit word from r.
func TryNextUint8(r ports.TryRng) (uint8, error) {
	if s, ok := r.(ports.TryUint8Source); ok {
		return s.TryNextUint8()
	}
	var b [1]byte
	if err := r.TryFillBytes(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// TryNextUint16 draws a 16-bit word from r in native byte order.
func TryNextUint16(r ports.TryRng) (uint16, error) {
	if s, ok := r.(ports.TryUint16Source); ok {
		return s.TryNextUint16()
	}
	var b [2]byte
	if err := r.TryFillBytes(b[:]); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint16(b[:]), nil
}

// TryNextUint32 draws a 32-bit word from r in native byte order.
func TryNextUint32(r ports.TryRng) (uint32, error) {
	if s, ok := r.(ports.TryUint32Source); ok {
		return s.TryNextUint32()
	}
	var b [4]byte
	if err := r.TryFillBytes(b[:]); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint32(b[:]), nil
}

// TryNextUint64 draws a 64-bit word from r in native byte order.
func TryNextUint64(r ports.TryRng) (uint64, error) {
	if s, ok := r.(ports.TryUint64Source); ok {
		return s.TryNextUint64()
	}
	var b [8]byte
	if err := r.TryFillBytes(b[:]); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint64(b[:]), nil
}

// TryNextUint128 draws a 128-bit word from r in native byte order.
func TryNextUint128(r ports.TryRng) (Uint128, error) {
	if s, ok := r.(TryUint128Source); ok {
		return s.TryNextUint128()
	}
	var b [16]byte
	if err := r.TryFillBytes(b[:]); err != nil {
		return Uint128{}, err
	}
	return decode128(b[:]), nil
}

// decode128 reads a 128-bit word laid out the way the host would store it.
func decode128(b []byte) Uint128 {
	lo := binary.NativeEndian.Uint64(b[:8])
	hi := binary.NativeEndian.Uint64(b[8:])
	if binary.NativeEndian.Uint16([]byte{1, 0}) != 1 {
		lo, hi = hi, lo
	}
	return Uint128{Hi: hi, Lo: lo}
}
