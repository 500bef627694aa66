package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/acolita/chance/internal/config"
	"github.com/acolita/chance/internal/logging"
	"github.com/acolita/chance/internal/ports"
	"github.com/acolita/chance/internal/source"
	"github.com/spf13/cobra"
)

// app holds the flag values and the configuration they resolve to.
type app struct {
	configPath string
	sourceName string
	devicePath string
	debug      bool
	hex        bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "chance",
		Short:         "Draw random values from a selectable source",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to configuration file (default: "+config.DefaultConfigPath()+")")
	flags.StringVar(&a.sourceName, "source", "", "Random source, overrides config (one of: crypto, urandom, random, device, rdrand, rdseed, getrandom, chacha20)")
	flags.StringVar(&a.devicePath, "device", "", "Path read by the device source")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&a.hex, "hex", false, "Print bytes as hex instead of raw")

	root.AddCommand(
		newBytesCmd(a),
		newIntCmd(a),
		newPickCmd(a),
		newShuffleCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads the config file and applies command line overrides.
func (a *app) loadConfig() error {
	path := a.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.applyOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Sanitize)
	a.cfg = cfg
	return nil
}

func (a *app) applyOverrides(cfg *config.Config) {
	if a.sourceName != "" {
		cfg.Source.Name = a.sourceName
	}
	if a.devicePath != "" {
		cfg.Source.DevicePath = a.devicePath
	}
	if a.debug {
		cfg.Logging.Level = "debug"
	}
}

// openSource opens the configured source. The caller must close the
// returned Closer.
func (a *app) openSource() (ports.TryRng, io.Closer, error) {
	src, closer, err := source.Open(a.cfg.Source)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("using random source", slog.String("source", a.cfg.Source.Name))
	return src, closer, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "chance version %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}
