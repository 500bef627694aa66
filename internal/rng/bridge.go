package rng

import "encoding/binary"

// TryWordSource is a fallible source that natively emits 32- and 64-bit
// words. Hardware instruction generators are the typical example.
type TryWordSource interface {
	TryNextUint32() (uint32, error)
	TryNextUint64() (uint64, error)
}

// WordSource is the infallible counterpart of TryWordSource.
type WordSource interface {
	NextUint32() uint32
	NextUint64() uint64
}

// TryFillBytesVia fills buf from word-sized draws of src.
//
// Whole 8-byte chunks come from 64-bit words. A tail of 5 to 7 bytes takes
// the low-order bytes of one more 64-bit word, a tail of 1 to 4 bytes the
// low-order bytes of a 32-bit word. Words are laid out little-endian on
// every host, so a recorded word stream always yields the same bytes.
//
// The first failing draw is returned as is. Bytes written before it stay
// written; nothing after it is touched.
func TryFillBytesVia(src TryWordSource, buf []byte) error {
	for len(buf) >= 8 {
		w, err := src.TryNextUint64()
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(buf, w)
		buf = buf[8:]
	}

	switch n := len(buf); {
	case n > 4:
		w, err := src.TryNextUint64()
		if err != nil {
			return err
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], w)
		copy(buf, b[:n])
	case n > 0:
		w, err := src.TryNextUint32()
		if err != nil {
			return err
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], w)
		copy(buf, b[:n])
	}
	return nil
}

// FillBytesVia is TryFillBytesVia for sources that cannot fail.
func FillBytesVia(src WordSource, buf []byte) {
	// The adapter never errors, so the result is always nil.
	_ = TryFillBytesVia(wordAdapter{src}, buf)
}

type wordAdapter struct{ WordSource }

func (a wordAdapter) TryNextUint32() (uint32, error) { return a.NextUint32(), nil }
func (a wordAdapter) TryNextUint64() (uint64, error) { return a.NextUint64(), nil }
