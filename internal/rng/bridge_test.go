package rng_test

import (
	"encoding/binary"
	"testing"

	"github.com/acolita/chance/internal/rng"
	"github.com/acolita/chance/internal/testing/fakes/fakerand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// widthRecorder is a word source that records the width of every draw.
type widthRecorder struct {
	words  *fakerand.Words
	widths []int
}

func (w *widthRecorder) TryNextUint32() (uint32, error) {
	w.widths = append(w.widths, 32)
	return w.words.TryNextUint32()
}

func (w *widthRecorder) TryNextUint64() (uint64, error) {
	w.widths = append(w.widths, 64)
	return w.words.TryNextUint64()
}

func TestTryFillBytesVia_RecordedScenario(t *testing.T) {
	src := fakerand.NewWords(0x0102030405060708)

	buf := make([]byte, 10)
	require.NoError(t, rng.TryFillBytesVia(src, buf))

	assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, 0x08, 0x07}, buf)
	assert.Equal(t, 2, src.Draws())
}

func TestTryFillBytesVia_AllLengths(t *testing.T) {
	words := []uint64{
		0x1112131415161718,
		0x2122232425262728,
		0x3132333435363738,
		0x4142434445464748,
	}

	for n := 0; n <= 24; n++ {
		// Expected output: each draw contributes the little-endian bytes of
		// its word, truncated to what is left of the buffer.
		var want []byte
		for i := 0; len(want) < n; i++ {
			var b [8]byte
			binary.LittleEndian.PutUint64(b[:], words[i%len(words)])
			want = append(want, b[:min(8, n-len(want))]...)
		}
		if want == nil {
			want = []byte{}
		}

		rec := &widthRecorder{words: fakerand.NewWords(words...)}
		buf := make([]byte, n)
		require.NoError(t, rng.TryFillBytesVia(rec, buf))
		assert.Equal(t, want, buf, "length %d", n)

		// Width schedule: full 64-bit words, then one word for the tail.
		var wantWidths []int
		for i := 0; i < n/8; i++ {
			wantWidths = append(wantWidths, 64)
		}
		switch rem := n % 8; {
		case rem > 4:
			wantWidths = append(wantWidths, 64)
		case rem > 0:
			wantWidths = append(wantWidths, 32)
		}
		assert.Equal(t, wantWidths, rec.widths, "length %d", n)
	}
}

func TestTryFillBytesVia_StopsOnFirstError(t *testing.T) {
	src := fakerand.NewWords(0x0102030405060708).FailAt(1, nil)

	buf := make([]byte, 20)
	for i := range buf {
		buf[i] = 0xAA
	}

	err := rng.TryFillBytesVia(src, buf)
	require.ErrorIs(t, err, fakerand.ErrInjected)

	assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, buf[:8])
	for i := 8; i < len(buf); i++ {
		assert.Equal(t, byte(0xAA), buf[i], "byte %d touched after failure", i)
	}
	assert.Equal(t, 2, src.Draws())
}

func TestTryFillBytesVia_TailFailure(t *testing.T) {
	src := fakerand.NewWords(1).FailAt(0, nil)

	err := rng.TryFillBytesVia(src, make([]byte, 3))
	assert.ErrorIs(t, err, fakerand.ErrInjected)
}

func TestFillBytesVia(t *testing.T) {
	src := fakerand.NewWords(0x0102030405060708)

	buf := make([]byte, 3)
	rng.FillBytesVia(src, buf)

	assert.Equal(t, []byte{0x08, 0x07, 0x06}, buf)
}
