package fakerand

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/acolita/chance/internal/ports"
)

// ErrInjected is the default error returned by failing fakes.
var ErrInjected = errors.New("fakerand: injected failure")

// Words replays a fixed sequence of 64-bit words, cycling when exhausted.
// A 32-bit draw takes the low half of the next word, smaller draws take the
// low bits likewise. Every draw consumes exactly one word.
type Words struct {
	mu     sync.Mutex
	words  []uint64
	offset int
	failAt int
	err    error
}

// NewWords creates a word source that cycles through words.
func NewWords(words ...uint64) *Words {
	if len(words) == 0 {
		words = []uint64{0}
	}
	return &Words{words: words, failAt: -1}
}

// NewIndexes creates a source whose range draws over [0, n) return the
// given indexes in order. It relies on range selection mapping a 32-bit
// word x to (x*n)>>32 and on the chosen words never being rejected.
func NewIndexes(n int, indexes ...int) *Words {
	words := make([]uint64, len(indexes))
	for i, idx := range indexes {
		words[i] = uint64(WordForIndex(idx, n))
	}
	return NewWords(words...)
}

// WordForIndex returns the largest 32-bit word that multiply-shift maps to
// idx within [0, n). The largest such word leaves a low product half of at
// least 2^32-n, above any rejection threshold for n <= 2^31.
func WordForIndex(idx, n int) uint32 {
	return uint32((uint64(idx+1)<<32 - 1) / uint64(n))
}

// FailAt makes the draw with the given zero-based number fail with err, and
// every draw after it too. A nil err means ErrInjected.
func (w *Words) FailAt(draw int, err error) *Words {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err == nil {
		err = ErrInjected
	}
	w.failAt = draw
	w.err = err
	return w
}

// Draws returns the number of draws made so far, failed ones included.
func (w *Words) Draws() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.offset
}

func (w *Words) next() (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := w.offset
	w.offset++
	if w.failAt >= 0 && n >= w.failAt {
		return 0, w.err
	}
	return w.words[n%len(w.words)], nil
}

func (w *Words) mustNext() uint64 {
	v, err := w.next()
	if err != nil {
		panic(err)
	}
	return v
}

// TryNextUint64 draws the next word.
func (w *Words) TryNextUint64() (uint64, error) {
	return w.next()
}

// TryNextUint32 draws the low half of the next word.
func (w *Words) TryNextUint32() (uint32, error) {
	v, err := w.next()
	return uint32(v), err
}

// TryNextUint16 draws the low 16 bits of the next word.
func (w *Words) TryNextUint16() (uint16, error) {
	v, err := w.next()
	return uint16(v), err
}

// TryNextUint8 draws the low 8 bits of the next word.
func (w *Words) TryNextUint8() (uint8, error) {
	v, err := w.next()
	return uint8(v), err
}

// TryFillBytes writes whole words little-endian, truncating the last one.
func (w *Words) TryFillBytes(buf []byte) error {
	var b [8]byte
	for len(buf) > 0 {
		v, err := w.next()
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(b[:], v)
		buf = buf[copy(buf, b[:]):]
	}
	return nil
}

// The infallible methods panic if a failure was injected.

func (w *Words) NextUint64() uint64 { return w.mustNext() }
func (w *Words) NextUint32() uint32 { return uint32(w.mustNext()) }
func (w *Words) NextUint16() uint16 { return uint16(w.mustNext()) }
func (w *Words) NextUint8() uint8   { return uint8(w.mustNext()) }

// FillBytes is TryFillBytes for callers that never inject failures.
func (w *Words) FillBytes(buf []byte) {
	if err := w.TryFillBytes(buf); err != nil {
		panic(err)
	}
}

// Failing is a source that always fails.
type Failing struct {
	Err   error
	Calls int
}

// NewFailing returns a source failing with err, or ErrInjected if nil.
func NewFailing(err error) *Failing {
	if err == nil {
		err = ErrInjected
	}
	return &Failing{Err: err}
}

// TryFillBytes always returns f.Err without touching buf.
func (f *Failing) TryFillBytes(buf []byte) error {
	f.Calls++
	return f.Err
}

var (
	_ ports.Rng             = (*Words)(nil)
	_ ports.TryRng          = (*Words)(nil)
	_ ports.Uint32Source    = (*Words)(nil)
	_ ports.TryUint64Source = (*Words)(nil)
	_ ports.TryRng          = (*Failing)(nil)
)
