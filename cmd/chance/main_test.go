package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/acolita/chance/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runChance executes the root command with args and returns its stdout.
func runChance(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Keep a config file in the real home directory out of the test.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func deviceFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "device.bin")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestBytes_HexFromDevice(t *testing.T) {
	path := deviceFile(t, []byte{0xde, 0xad, 0xbe, 0xef, 0x01})

	out, err := runChance(t, "--source", "device", "--device", path, "--hex", "bytes", "4")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef\n", out)
}

func TestBytes_Raw(t *testing.T) {
	out, err := runChance(t, "bytes", "100")
	require.NoError(t, err)
	assert.Len(t, out, 100)
}

func TestBytes_Zero(t *testing.T) {
	out, err := runChance(t, "bytes", "0")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBytes_InvalidCount(t *testing.T) {
	_, err := runChance(t, "bytes", "lots")
	assert.ErrorContains(t, err, "invalid byte count")
}

func TestBytes_DeviceExhausted(t *testing.T) {
	path := deviceFile(t, []byte{1, 2})

	_, err := runChance(t, "--source", "device", "--device", path, "bytes", "8")
	assert.ErrorContains(t, err, "generate bytes")
}

func TestBytes_ChaCha20(t *testing.T) {
	out, err := runChance(t, "--source", "chacha20", "--hex", "bytes", "16")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 32)
}

func TestInt_WithinRange(t *testing.T) {
	out, err := runChance(t, "int", "--count", "50", "--", "-5", "5")
	require.NoError(t, err)

	lines := strings.Fields(out)
	require.Len(t, lines, 50)
	for _, line := range lines {
		v, err := strconv.ParseInt(line, 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, int64(-5))
		assert.Less(t, v, int64(5))
	}
}

func TestInt_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"empty range", []string{"int", "3", "3"}, "empty range"},
		{"reversed range", []string{"int", "4", "1"}, "empty range"},
		{"bad low", []string{"int", "x", "3"}, "invalid LOW"},
		{"bad high", []string{"int", "1", "y"}, "invalid HIGH"},
		{"bad count", []string{"int", "1", "3", "-n", "0"}, "--count"},
		{"unknown source", []string{"--source", "dice", "int", "1", "3"}, "unknown source"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runChance(t, tt.args...)
			assert.ErrorContains(t, err, tt.contains)
		})
	}
}

func TestPick(t *testing.T) {
	items := []string{"rock", "paper", "scissors"}

	out, err := runChance(t, append([]string{"pick", "-n", "20"}, items...)...)
	require.NoError(t, err)

	lines := strings.Fields(out)
	require.Len(t, lines, 20)
	for _, line := range lines {
		assert.Contains(t, items, line)
	}
}

func TestPick_RequiresItems(t *testing.T) {
	_, err := runChance(t, "pick")
	assert.Error(t, err)
}

func TestShuffle(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	out, err := runChance(t, append([]string{"shuffle"}, items...)...)
	require.NoError(t, err)
	assert.ElementsMatch(t, items, strings.Fields(out))
}

func TestShuffle_NoItems(t *testing.T) {
	out, err := runChance(t, "shuffle")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestConfigFileSelectsSource(t *testing.T) {
	dev := deviceFile(t, []byte{0x0a, 0x0b})
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("source:\n  name: device\n  device_path: "+dev+"\n"), 0600))

	out, err := runChance(t, "--config", cfgPath, "--hex", "bytes", "2")
	require.NoError(t, err)
	assert.Equal(t, "0a0b\n", out)
}

func TestOnReload_OverridesApplyToCopy(t *testing.T) {
	a := &app{sourceName: config.SourceDevice, devicePath: "/dev/zero", debug: true}
	reloaded := config.DefaultConfig()
	reloaded.Server.MaxItems = 7

	var got *config.Config
	a.onReload(func(c *config.Config) { got = c })(reloaded)

	require.NotNil(t, got)
	assert.NotSame(t, reloaded, got)
	assert.Equal(t, config.SourceDevice, got.Source.Name)
	assert.Equal(t, "/dev/zero", got.Source.DevicePath)
	assert.Equal(t, "debug", got.Logging.Level)
	assert.Equal(t, 7, got.Server.MaxItems)

	assert.Equal(t, config.SourceCrypto, reloaded.Source.Name)
	assert.Empty(t, reloaded.Source.DevicePath)
	assert.Equal(t, "info", reloaded.Logging.Level)
}

func TestOnReload_RejectsInvalidAfterOverrides(t *testing.T) {
	a := &app{sourceName: config.SourceDevice}

	called := false
	a.onReload(func(*config.Config) { called = true })(config.DefaultConfig())
	assert.False(t, called)
}

func TestVersion(t *testing.T) {
	out, err := runChance(t, "--source", "dice", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "chance version "+Version)
}
