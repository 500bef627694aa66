// Package source opens the random source named in the configuration.
package source

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/acolita/chance/internal/adapters/hwrand"
	"github.com/acolita/chance/internal/adapters/realrand"
	"github.com/acolita/chance/internal/adapters/securerand"
	"github.com/acolita/chance/internal/adapters/streamrand"
	"github.com/acolita/chance/internal/config"
	"github.com/acolita/chance/internal/ports"
	"github.com/acolita/chance/internal/rng"
)

var (
	// ErrUnknownSource is returned for a name no adapter is registered under.
	ErrUnknownSource = errors.New("unknown random source")
	// ErrUnavailable is returned when a source exists but cannot run here,
	// such as RDSEED on a CPU without it.
	ErrUnavailable = errors.New("random source unavailable")
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// opener builds one named source.
type opener func(cfg config.SourceConfig) (ports.TryRng, io.Closer, error)

// openers is filled in init because openChaCha20 opens its seed through Open.
var openers map[string]opener

func init() {
	openers = map[string]opener{
		config.SourceCrypto:    openCrypto,
		config.SourceURandom:   openURandom,
		config.SourceRandom:    openRandom,
		config.SourceDevice:    openDevice,
		config.SourceRdRand:    openRdRand,
		config.SourceRdSeed:    openRdSeed,
		config.SourceGetrandom: openGetrandom,
		config.SourceChaCha20:  openChaCha20,
	}
}

// Open returns the source selected by cfg.Name together with a Closer that
// releases it. The Closer is never nil. An empty name selects crypto.
//
// With PanicOnError set, the returned source is infallible to its callers:
// a failure of the underlying source panics with a *rng.SourceError.
func Open(cfg config.SourceConfig) (ports.TryRng, io.Closer, error) {
	name := cfg.Name
	if name == "" {
		name = config.SourceCrypto
	}
	open, ok := openers[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}

	src, closer, err := open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open source %q: %w", name, err)
	}

	slog.Debug("random source opened",
		slog.String("source", name),
		slog.Bool("infallible", rng.IsInfallible(src)),
		slog.Bool("panic_on_error", cfg.PanicOnError),
	)

	if cfg.PanicOnError && !rng.IsInfallible(src) {
		src = rng.Infallible(rng.Must(src))
	}
	return src, closer, nil
}

func openCrypto(config.SourceConfig) (ports.TryRng, io.Closer, error) {
	return rng.Infallible(realrand.New()), nopCloser{}, nil
}

func openURandom(config.SourceConfig) (ports.TryRng, io.Closer, error) {
	d, err := realrand.OpenURandom()
	if err != nil {
		return nil, nil, err
	}
	return d, d, nil
}

func openRandom(config.SourceConfig) (ports.TryRng, io.Closer, error) {
	d, err := realrand.OpenRandom()
	if err != nil {
		return nil, nil, err
	}
	return d, d, nil
}

func openDevice(cfg config.SourceConfig) (ports.TryRng, io.Closer, error) {
	if cfg.DevicePath == "" {
		return nil, nil, errors.New("device_path is empty")
	}
	d, err := realrand.OpenDevice(cfg.DevicePath)
	if err != nil {
		return nil, nil, err
	}
	return d, d, nil
}

func openRdRand(config.SourceConfig) (ports.TryRng, io.Closer, error) {
	r, ok := hwrand.NewRdRand()
	if !ok {
		return nil, nil, fmt.Errorf("%w: CPU does not support RDRAND", ErrUnavailable)
	}
	return r, nopCloser{}, nil
}

func openRdSeed(config.SourceConfig) (ports.TryRng, io.Closer, error) {
	r, ok := hwrand.NewRdSeed()
	if !ok {
		return nil, nil, fmt.Errorf("%w: CPU does not support RDSEED", ErrUnavailable)
	}
	return r, nopCloser{}, nil
}

func openGetrandom(cfg config.SourceConfig) (ports.TryRng, io.Closer, error) {
	s, err := securerand.New(securerand.Options{NonBlocking: cfg.NonBlocking})
	if errors.Is(err, securerand.ErrUnsupported) {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return nil, nil, err
	}
	return s, nopCloser{}, nil
}

// openChaCha20 keys a keystream from the stream_seed source, which is only
// needed during construction and is closed before returning.
func openChaCha20(cfg config.SourceConfig) (ports.TryRng, io.Closer, error) {
	seedName := cfg.StreamSeed
	if seedName == "" {
		seedName = config.SourceCrypto
	}
	if seedName == config.SourceChaCha20 {
		return nil, nil, errors.New("stream_seed cannot be chacha20")
	}

	seedCfg := cfg
	seedCfg.Name = seedName
	seedCfg.PanicOnError = false
	seed, seedCloser, err := Open(seedCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open stream seed: %w", err)
	}
	defer seedCloser.Close()

	s, err := streamrand.New(seed)
	if err != nil {
		return nil, nil, err
	}
	return rng.Infallible(s), nopCloser{}, nil
}
