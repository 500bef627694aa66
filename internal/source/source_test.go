package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/acolita/chance/internal/adapters/streamrand"
	"github.com/acolita/chance/internal/config"
	"github.com/acolita/chance/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entropy.bin")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func counting(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestOpen_DefaultsToCrypto(t *testing.T) {
	src, closer, err := Open(config.SourceConfig{})
	require.NoError(t, err)
	defer closer.Close()

	assert.True(t, rng.IsInfallible(src))
	buf := make([]byte, 32)
	require.NoError(t, src.TryFillBytes(buf))
	assert.NotEqual(t, make([]byte, 32), buf)
}

func TestOpen_UnknownSource(t *testing.T) {
	_, _, err := Open(config.SourceConfig{Name: "dice"})
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestOpen_Device(t *testing.T) {
	path := writeSeedFile(t, counting(8))

	src, closer, err := Open(config.SourceConfig{Name: config.SourceDevice, DevicePath: path})
	require.NoError(t, err)
	defer closer.Close()

	assert.False(t, rng.IsInfallible(src))
	buf := make([]byte, 8)
	require.NoError(t, src.TryFillBytes(buf))
	assert.Equal(t, counting(8), buf)

	// The file is exhausted now.
	assert.Error(t, src.TryFillBytes(buf))
}

func TestOpen_DeviceErrors(t *testing.T) {
	_, _, err := Open(config.SourceConfig{Name: config.SourceDevice})
	assert.Error(t, err)

	_, _, err = Open(config.SourceConfig{
		Name:       config.SourceDevice,
		DevicePath: filepath.Join(t.TempDir(), "missing"),
	})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOpen_URandom(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no /dev/urandom")
	}
	src, closer, err := Open(config.SourceConfig{Name: config.SourceURandom})
	require.NoError(t, err)
	defer closer.Close()

	require.NoError(t, src.TryFillBytes(make([]byte, 16)))
}

func TestOpen_HardwareSources(t *testing.T) {
	for _, name := range []string{config.SourceRdRand, config.SourceRdSeed} {
		t.Run(name, func(t *testing.T) {
			src, closer, err := Open(config.SourceConfig{Name: name})
			if err != nil {
				assert.ErrorIs(t, err, ErrUnavailable)
				return
			}
			defer closer.Close()

			if _, err := rng.TryNextUint64(src); err != nil {
				// RDSEED may legitimately run dry twice in a row.
				t.Skipf("%s returned no value: %v", name, err)
			}
		})
	}
}

func TestOpen_Getrandom(t *testing.T) {
	src, closer, err := Open(config.SourceConfig{Name: config.SourceGetrandom})
	if runtime.GOOS != "linux" {
		assert.ErrorIs(t, err, ErrUnavailable)
		return
	}
	require.NoError(t, err)
	defer closer.Close()

	require.NoError(t, src.TryFillBytes(make([]byte, 300)))
}

func TestOpen_ChaCha20SeededFromDevice(t *testing.T) {
	material := counting(44)
	path := writeSeedFile(t, material)

	src, closer, err := Open(config.SourceConfig{
		Name:       config.SourceChaCha20,
		StreamSeed: config.SourceDevice,
		DevicePath: path,
	})
	require.NoError(t, err)
	defer closer.Close()
	assert.True(t, rng.IsInfallible(src))

	want, err := streamrand.NewWithKey(material[:32], material[32:])
	require.NoError(t, err)

	got := make([]byte, 100)
	require.NoError(t, src.TryFillBytes(got))
	expected := make([]byte, 100)
	want.FillBytes(expected)
	assert.Equal(t, expected, got)
}

func TestOpen_ChaCha20SeededFromCrypto(t *testing.T) {
	src, closer, err := Open(config.SourceConfig{
		Name:       config.SourceChaCha20,
		StreamSeed: config.SourceCrypto,
	})
	require.NoError(t, err)
	defer closer.Close()
	assert.True(t, rng.IsInfallible(src))

	a := make([]byte, 64)
	b := make([]byte, 64)
	require.NoError(t, src.TryFillBytes(a))
	require.NoError(t, src.TryFillBytes(b))
	assert.NotEqual(t, make([]byte, 64), a)
	assert.NotEqual(t, a, b)

	v, ok, err := rng.TryIn(src, 10, 20)
	require.NoError(t, err)
	require.True(t, ok)
	assert.GreaterOrEqual(t, v, 10)
	assert.Less(t, v, 20)
}

func TestOpen_ChaCha20ShortSeed(t *testing.T) {
	path := writeSeedFile(t, counting(10))

	_, _, err := Open(config.SourceConfig{
		Name:       config.SourceChaCha20,
		StreamSeed: config.SourceDevice,
		DevicePath: path,
	})
	assert.Error(t, err)
}

func TestOpen_ChaCha20CannotSeedItself(t *testing.T) {
	_, _, err := Open(config.SourceConfig{
		Name:       config.SourceChaCha20,
		StreamSeed: config.SourceChaCha20,
	})
	assert.Error(t, err)
}

func TestOpen_PanicOnError(t *testing.T) {
	path := writeSeedFile(t, counting(4))

	src, closer, err := Open(config.SourceConfig{
		Name:         config.SourceDevice,
		DevicePath:   path,
		PanicOnError: true,
	})
	require.NoError(t, err)
	defer closer.Close()
	assert.True(t, rng.IsInfallible(src))

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		_ = src.TryFillBytes(make([]byte, 8))
	}()

	var srcErr *rng.SourceError
	require.NotNil(t, recovered)
	err, ok := recovered.(error)
	require.True(t, ok, "panic value %v is not an error", recovered)
	assert.True(t, errors.As(err, &srcErr))
}
