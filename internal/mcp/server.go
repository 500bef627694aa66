// Package mcp implements the MCP protocol server for chance.
package mcp

import (
	"log/slog"
	"sync"

	"github.com/acolita/chance/internal/adapters/realclock"
	"github.com/acolita/chance/internal/config"
	"github.com/acolita/chance/internal/ports"
	"github.com/acolita/chance/internal/quota"
	"github.com/mark3labs/mcp-go/server"
)

// Version is reported to MCP clients during initialization.
var Version = "0.1.0"

// Server wraps the MCP server implementation.
//
// The random source is not safe for concurrent use, so every handler takes
// mu for the duration of its draws. mu also guards limits and budget.
type Server struct {
	mcpServer *server.MCPServer
	clock     ports.Clock

	mu     sync.Mutex
	src    ports.TryRng
	limits config.ServerConfig
	source config.SourceConfig
	budget *quota.Budget
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithClock sets the clock used for the byte budget.
func WithClock(c ports.Clock) ServerOption {
	return func(s *Server) {
		s.clock = c
	}
}

// NewServer creates a new MCP server drawing from src.
func NewServer(cfg *config.Config, src ports.TryRng, opts ...ServerOption) *Server {
	mcpServer := server.NewMCPServer(
		"chance",
		Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
	)

	s := &Server{
		mcpServer: mcpServer,
		clock:     realclock.New(),
		src:       src,
		limits:    cfg.Server,
		source:    cfg.Source,
	}

	// Apply options
	for _, opt := range opts {
		opt(s)
	}

	s.budget = s.newBudget(cfg.Server.BytesPerMinute)
	s.registerTools()

	return s
}

// Run starts the MCP server on stdio transport.
func (s *Server) Run() error {
	slog.Info("starting MCP server on stdio transport", slog.String("source", s.source.Name))
	return server.ServeStdio(s.mcpServer)
}

// UpdateConfig applies a new configuration at runtime. Request limits take
// effect immediately; a different source needs a restart.
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg.Source != s.source {
		slog.Warn("source settings changed; restart to apply",
			slog.String("running", s.source.Name),
			slog.String("configured", cfg.Source.Name),
		)
	}

	if cfg.Server.BytesPerMinute != s.limits.BytesPerMinute {
		s.budget = s.newBudget(cfg.Server.BytesPerMinute)
	}
	s.limits = cfg.Server
	slog.Info("configuration hot-reloaded",
		slog.Int("max_bytes", s.limits.MaxBytes),
		slog.Int("max_items", s.limits.MaxItems),
		slog.Int("bytes_per_minute", s.limits.BytesPerMinute),
	)
}

func (s *Server) newBudget(bytesPerMinute int) *quota.Budget {
	return quota.New(bytesPerMinute, quota.DefaultWindow, quota.WithClock(s.clock))
}
