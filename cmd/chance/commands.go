package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/acolita/chance/internal/config"
	"github.com/acolita/chance/internal/logging"
	"github.com/acolita/chance/internal/mcp"
	"github.com/acolita/chance/internal/rng"
	"github.com/spf13/cobra"
)

// chunkSize bounds the buffer used when streaming bytes.
const chunkSize = 64 << 10

var (
	errEmptyRange = errors.New("empty range: LOW must be less than HIGH")
	errBadCount   = errors.New("--count must be at least 1")
)

func newBytesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bytes N",
		Short: "Write N random bytes to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return fmt.Errorf("invalid byte count %q", args[0])
			}

			src, closer, err := a.openSource()
			if err != nil {
				return err
			}
			defer closer.Close()

			out := cmd.OutOrStdout()
			buf := make([]byte, min(n, chunkSize))
			for n > 0 {
				chunk := buf[:min(n, len(buf))]
				if err := src.TryFillBytes(chunk); err != nil {
					return fmt.Errorf("generate bytes: %w", err)
				}
				slog.Debug("chunk generated", logging.Sample("chunk", chunk))

				if a.hex {
					_, err = fmt.Fprint(out, hex.EncodeToString(chunk))
				} else {
					_, err = out.Write(chunk)
				}
				if err != nil {
					return err
				}
				n -= len(chunk)
			}
			if a.hex {
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func newIntCmd(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "int LOW HIGH",
		Short: "Print uniformly distributed integers from [LOW, HIGH)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			low, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid LOW %q: %w", args[0], err)
			}
			high, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid HIGH %q: %w", args[1], err)
			}
			if low >= high {
				return errEmptyRange
			}
			if count < 1 {
				return errBadCount
			}

			src, closer, err := a.openSource()
			if err != nil {
				return err
			}
			defer closer.Close()

			for range count {
				v, _, err := rng.TryIn(src, low, high)
				if err != nil {
					return fmt.Errorf("draw integer: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of values")
	return cmd
}

func newPickCmd(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "pick ITEM...",
		Short: "Print items chosen uniformly at random, with replacement",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return errBadCount
			}
			src, closer, err := a.openSource()
			if err != nil {
				return err
			}
			defer closer.Close()

			for range count {
				item, err := rng.TryPickUnchecked(src, args)
				if err != nil {
					return fmt.Errorf("pick item: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), item)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of picks")
	return cmd
}

func newShuffleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shuffle ITEM...",
		Short: "Print the items in a random order, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closer, err := a.openSource()
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := rng.TryShuffle(src, args); err != nil {
				return fmt.Errorf("shuffle: %w", err)
			}
			for _, item := range args {
				fmt.Fprintln(cmd.OutOrStdout(), item)
			}
			return nil
		},
	}
}

// onReload returns a watcher callback that applies the command-line
// overrides to a copy of each reloaded config before handing it to update.
// The watcher's published config is left as read from disk.
func (a *app) onReload(update func(*config.Config)) func(*config.Config) {
	return func(newCfg *config.Config) {
		cfg := *newCfg
		a.applyOverrides(&cfg)
		if err := cfg.Validate(); err != nil {
			slog.Warn("reloaded config rejected after overrides", slog.String("error", err.Error()))
			return
		}
		update(&cfg)
	}
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run an MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closer, err := a.openSource()
			if err != nil {
				return err
			}
			defer closer.Close()

			slog.Info("starting chance",
				slog.String("version", Version),
				slog.String("source", a.cfg.Source.Name),
			)
			server := mcp.NewServer(a.cfg, src)

			// Hot-reload only applies to an explicitly named config file.
			var configWatcher *config.Watcher
			if a.configPath != "" {
				configWatcher, err = config.NewWatcher(a.configPath, a.onReload(server.UpdateConfig))
				if err != nil {
					slog.Warn("config hot-reload disabled", slog.String("error", err.Error()))
					configWatcher = nil
				} else {
					slog.Info("config hot-reload enabled", slog.String("path", a.configPath))
					defer configWatcher.Close()
				}
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigChan
				slog.Info("received shutdown signal")
				if configWatcher != nil {
					configWatcher.Close()
				}
				closer.Close()
				os.Exit(0)
			}()

			if err := server.Run(); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
}
