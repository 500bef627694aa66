package realrand

import (
	"fmt"
	"os"
	"sync"

	"github.com/acolita/chance/internal/ports"
)

const (
	// RandomPath is the blocking kernel entropy device.
	RandomPath = "/dev/random"
	// URandomPath is the non-blocking kernel entropy device.
	URandomPath = "/dev/urandom"
)

// Device reads random bytes from a character device. Reads block for as
// long as the device does; /dev/random may stall until the kernel pool is
// initialised. Errors are the *fs.PathError values returned by os.File.
type Device struct {
	mu     sync.Mutex
	file   *os.File
	reader *Reader
}

// OpenRandom opens /dev/random.
func OpenRandom() (*Device, error) {
	return OpenDevice(RandomPath)
}

// OpenURandom opens /dev/urandom.
func OpenURandom() (*Device, error) {
	return OpenDevice(URandomPath)
}

// OpenDevice opens the device or file at path for reading.
func OpenDevice(path string) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open random device: %w", err)
	}
	return &Device{file: f, reader: NewReader(f)}, nil
}

// Name returns the path the device was opened from.
func (d *Device) Name() string {
	return d.file.Name()
}

// TryFillBytes reads len(buf) bytes from the device.
func (d *Device) TryFillBytes(buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reader.TryFillBytes(buf)
}

// Close closes the underlying file.
func (d *Device) Close() error {
	return d.file.Close()
}

// Ensure Device implements ports.TryRng.
var _ ports.TryRng = (*Device)(nil)
