package ports

// Rng is a source of random bytes that cannot fail.
type Rng interface {
	// FillBytes fills all of buf with random bytes.
	FillBytes(buf []byte)
}

// TryRng is a source of random bytes that may fail.
//
// Implementations document the concrete error type they return. A failing
// call must not leave bytes it has not written looking like output: callers
// treat buf as undefined when an error is returned.
type TryRng interface {
	// TryFillBytes fills all of buf with random bytes, or returns an error.
	TryFillBytes(buf []byte) error
}

// Word accelerators. Sources that produce fixed-width words natively
// implement these so the generic helpers in package rng can skip the
// byte-buffer round trip.

// Uint8Source produces 8-bit words without failing.
type Uint8Source interface {
	NextUint8() uint8
}

// Uint16Source produces 16-bit words without failing.
type Uint16Source interface {
	NextUint16() uint16
}

// Uint32Source produces 32-bit words without failing.
type Uint32Source interface {
	NextUint32() uint32
}

// Uint64Source produces 64-bit words without failing.
type Uint64Source interface {
	NextUint64() uint64
}

// TryUint8Source produces 8-bit words and may fail.
type TryUint8Source interface {
	TryNextUint8() (uint8, error)
}

// TryUint16Source produces 16-bit words and may fail.
type TryUint16Source interface {
	TryNextUint16() (uint16, error)
}

// TryUint32Source produces 32-bit words and may fail.
type TryUint32Source interface {
	TryNextUint32() (uint32, error)
}

// TryUint64Source produces 64-bit words and may fail.
type TryUint64Source interface {
	TryNextUint64() (uint64, error)
}
