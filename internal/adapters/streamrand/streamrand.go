// Package streamrand provides a fast infallible source that expands a key
// drawn from another source into a ChaCha20 keystream.
package streamrand

import (
	"fmt"
	"sync"

	"github.com/acolita/chance/internal/ports"
	"golang.org/x/crypto/chacha20"
)

// Stream emits the ChaCha20 keystream for a key and nonce.
//
// The cipher's 32-bit block counter caps output at 256 GiB per key;
// exceeding it panics inside the cipher.
type Stream struct {
	mu     sync.Mutex
	cipher *chacha20.Cipher
}

// New keys a Stream with chacha20.KeySize+chacha20.NonceSize bytes read
// from seed.
func New(seed ports.TryRng) (*Stream, error) {
	var material [chacha20.KeySize + chacha20.NonceSize]byte
	if err := seed.TryFillBytes(material[:]); err != nil {
		return nil, fmt.Errorf("read stream key: %w", err)
	}
	defer clear(material[:])

	return NewWithKey(material[:chacha20.KeySize], material[chacha20.KeySize:])
}

// NewWithKey builds a Stream from an explicit key and nonce. Identical
// inputs yield identical output.
func NewWithKey(key, nonce []byte) (*Stream, error) {
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, fmt.Errorf("init chacha20: %w", err)
	}
	return &Stream{cipher: c}, nil
}

// FillBytes implements ports.Rng.
func (s *Stream) FillBytes(buf []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(buf)
	s.cipher.XORKeyStream(buf, buf)
}

// Ensure Stream implements ports.Rng.
var _ ports.Rng = (*Stream)(nil)
