package rng

import "github.com/acolita/chance/internal/ports"

// Panicking presents a fallible source as an infallible one. Any error from
// R ends the current goroutine's work with a panic carrying a *SourceError;
// nothing is retried or recovered here.
//
// Use it only where a caller needs ports.Rng and has decided that a failure
// of R is fatal, such as an OS device that practically never errors.
type Panicking struct {
	R ports.TryRng
}

// Must wraps r in a Panicking adapter.
func Must(r ports.TryRng) *Panicking {
	return &Panicking{R: r}
}

// FillBytes implements ports.Rng.
func (p *Panicking) FillBytes(buf []byte) {
	if err := p.R.TryFillBytes(buf); err != nil {
		panic(&SourceError{Op: "fill bytes", Err: err})
	}
}

// NextUint8 implements ports.Uint8Source.
func (p *Panicking) NextUint8() uint8 {
	return check(TryNextUint8(p.R))
}

// NextUint16 implements ports.Uint16Source.
func (p *Panicking) NextUint16() uint16 {
	return check(TryNextUint16(p.R))
}

// NextUint32 implements ports.Uint32Source.
func (p *Panicking) NextUint32() uint32 {
	return check(TryNextUint32(p.R))
}

// NextUint64 implements ports.Uint64Source.
func (p *Panicking) NextUint64() uint64 {
	return check(TryNextUint64(p.R))
}

// NextUint128 implements Uint128Source.
func (p *Panicking) NextUint128() Uint128 {
	return check(TryNextUint128(p.R))
}

func check[T any](v T, err error) T {
	if err != nil {
		panic(&SourceError{Op: "next word", Err: err})
	}
	return v
}

var (
	_ ports.Rng          = (*Panicking)(nil)
	_ ports.Uint64Source = (*Panicking)(nil)
	_ Uint128Source      = (*Panicking)(nil)
)
