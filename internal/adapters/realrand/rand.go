// Package realrand provides random sources backed by the operating system:
// crypto/rand, the /dev/random and /dev/urandom devices, and arbitrary
// io.Readers.
package realrand

import (
	"crypto/rand"
	"io"

	"github.com/acolita/chance/internal/ports"
)

// Crypto implements ports.Rng using crypto/rand.
type Crypto struct{}

// New returns a new crypto/rand backed source.
func New() *Crypto {
	return &Crypto{}
}

// FillBytes fills b with cryptographically secure random bytes.
// crypto/rand.Read does not return errors; if the platform source breaks
// the runtime terminates the process.
func (c *Crypto) FillBytes(b []byte) {
	rand.Read(b)
}

// Reader adapts an io.Reader into a fallible source. Each fill reads
// exactly len(buf) bytes with io.ReadFull, so a short stream surfaces as
// io.ErrUnexpectedEOF or io.EOF.
type Reader struct {
	R io.Reader
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{R: r}
}

// TryFillBytes reads len(buf) bytes from the wrapped reader.
func (r *Reader) TryFillBytes(buf []byte) error {
	_, err := io.ReadFull(r.R, buf)
	return err
}

// Ensure the sources implement their ports.
var (
	_ ports.Rng    = (*Crypto)(nil)
	_ ports.TryRng = (*Reader)(nil)
)
