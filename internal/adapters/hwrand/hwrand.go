// Package hwrand provides random sources backed by the x86 RDRAND and
// RDSEED instructions.
//
// RDRAND returns the output of an on-chip DRBG and suits direct use.
// RDSEED returns conditioned entropy intended for seeding other generators
// and runs out more readily under load. Both may report that no value was
// produced; every draw retries once and then fails with an *Error.
package hwrand

import (
	"errors"
	"fmt"

	"github.com/acolita/chance/internal/ports"
	"github.com/acolita/chance/internal/rng"
	"golang.org/x/sys/cpu"
)

// ErrNoValue is wrapped by every *Error.
var ErrNoValue = errors.New("instruction produced no value")

// Error reports that an instruction failed twice in a row.
type Error struct {
	Instr string
}

func (e *Error) Error() string {
	return fmt.Sprintf("hwrand: %s: %v", e.Instr, ErrNoValue)
}

func (e *Error) Unwrap() error {
	return ErrNoValue
}

// steps holds the single-attempt primitives of one instruction. The bool
// result reports whether the CPU produced a value.
type steps struct {
	instr  string
	step16 func() (uint16, bool)
	step32 func() (uint32, bool)
	step64 func() (uint64, bool)
}

// retryOnce runs step, and runs it a second time if the first attempt
// produced nothing.
func retryOnce[T any](instr string, step func() (T, bool)) (T, error) {
	if v, ok := step(); ok {
		return v, nil
	}
	if v, ok := step(); ok {
		return v, nil
	}
	var zero T
	return zero, &Error{Instr: instr}
}

func (s *steps) TryNextUint8() (uint8, error) {
	v, err := retryOnce(s.instr, s.step16)
	return uint8(v), err
}

func (s *steps) TryNextUint16() (uint16, error) {
	return retryOnce(s.instr, s.step16)
}

func (s *steps) TryNextUint32() (uint32, error) {
	return retryOnce(s.instr, s.step32)
}

func (s *steps) TryNextUint64() (uint64, error) {
	return retryOnce(s.instr, s.step64)
}

// TryNextUint128 draws the low half first.
func (s *steps) TryNextUint128() (rng.Uint128, error) {
	lo, err := s.TryNextUint64()
	if err != nil {
		return rng.Uint128{}, err
	}
	hi, err := s.TryNextUint64()
	if err != nil {
		return rng.Uint128{}, err
	}
	return rng.Uint128{Hi: hi, Lo: lo}, nil
}

func (s *steps) TryFillBytes(buf []byte) error {
	return rng.TryFillBytesVia(s, buf)
}

// RdRand draws from the RDRAND instruction.
type RdRand struct {
	steps
}

// NewRdRand returns an RDRAND source, or false if the CPU lacks the
// instruction.
func NewRdRand() (*RdRand, bool) {
	if !hasAsm || !cpu.X86.HasRDRAND {
		return nil, false
	}
	return NewRdRandUnchecked(), true
}

// NewRdRandUnchecked returns an RDRAND source without checking CPU
// support. Executing it on a CPU without RDRAND faults.
func NewRdRandUnchecked() *RdRand {
	return &RdRand{steps{instr: "rdrand", step16: rdrand16, step32: rdrand32, step64: rdrand64}}
}

// RdSeed draws from the RDSEED instruction.
type RdSeed struct {
	steps
}

// NewRdSeed returns an RDSEED source, or false if the CPU lacks the
// instruction.
func NewRdSeed() (*RdSeed, bool) {
	if !hasAsm || !cpu.X86.HasRDSEED {
		return nil, false
	}
	return NewRdSeedUnchecked(), true
}

// NewRdSeedUnchecked returns an RDSEED source without checking CPU
// support. Executing it on a CPU without RDSEED faults.
func NewRdSeedUnchecked() *RdSeed {
	return &RdSeed{steps{instr: "rdseed", step16: rdseed16, step32: rdseed32, step64: rdseed64}}
}

var (
	_ ports.TryRng          = (*RdRand)(nil)
	_ ports.TryUint64Source = (*RdRand)(nil)
	_ rng.TryUint128Source  = (*RdRand)(nil)
	_ ports.TryRng          = (*RdSeed)(nil)
	_ rng.TryWordSource     = (*RdSeed)(nil)
)
