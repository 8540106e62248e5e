package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"mcplab/internal/config"
	"mcplab/internal/logging"
	"mcplab/internal/taskstore"
	"mcplab/internal/version"

	"github.com/mark3labs/mcp-go/server"
	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"
)

// Server wires the task store onto an MCP server from the mcp-go
// framework. All protocol handling (framing, dispatch, sessions) is the
// framework's; this type only registers tools, resources and prompts and
// selects a transport.
type Server struct {
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	sseServer  *server.SSEServer
	store      *taskstore.Store
	config     *config.Config
	notesFS    afero.Fs
	statsCron  *cron.Cron
	startTime  time.Time
}

func NewServer(store *taskstore.Store, cfg *config.Config) *Server {
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		version.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
		config:    cfg,
		startTime: time.Now(),
	}

	if cfg.NotesDir != "" {
		s.notesFS = afero.NewBasePathFs(afero.NewOsFs(), cfg.NotesDir)
	}

	if cfg.Seed {
		s.seedTasks()
	}

	s.setupTools()
	s.setupResources()
	s.setupPrompts()

	return s
}

// seedTasks inserts the sample tasks the server starts out with.
func (s *Server) seedTasks() {
	s.store.Create(
		"Setup MCP Server",
		"Create an advanced MCP server",
		[]string{"development", "mcp"},
	)
	s.store.Create(
		"Add Authentication",
		"Implement authentication for the MCP server",
		[]string{"security", "enhancement"},
	)
	logging.Debug("Seeded %d sample tasks", len(s.store.List("")))
}

// Start runs the server on the configured transport and blocks until it
// stops or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.startStatsLogging()
	defer s.stopStatsLogging()

	switch s.config.Transport {
	case config.TransportStdio:
		return s.startStdio()
	case config.TransportSSE:
		return s.startSSE(ctx)
	case config.TransportHTTP:
		return s.startHTTP(ctx)
	}
	return fmt.Errorf("unknown transport %q", s.config.Transport)
}

func (s *Server) startStdio() error {
	logging.Info("Starting %s using stdio transport", s.config.ServerName)

	errLogger := log.New(os.Stderr, "", log.LstdFlags)
	if err := server.ServeStdio(s.mcpServer, server.WithErrorLogger(errLogger)); err != nil {
		return fmt.Errorf("stdio server error: %w", err)
	}
	return nil
}

func (s *Server) startSSE(ctx context.Context) error {
	s.sseServer = server.NewSSEServer(s.mcpServer)
	logging.Info("Starting %s using SSE transport on %s", s.config.ServerName, s.config.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.sseServer.Start(s.config.Addr())
	}()

	select {
	case <-ctx.Done():
		return s.shutdownWithTimeout()
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("SSE server error: %w", err)
		}
		return nil
	}
}

func (s *Server) startHTTP(ctx context.Context) error {
	s.httpServer = server.NewStreamableHTTPServer(s.mcpServer)
	logging.Info("Starting %s using streamable HTTP transport on %s", s.config.ServerName, s.config.Addr())
	logging.Info("MCP endpoint available at http://%s/mcp", s.config.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Start(s.config.Addr())
	}()

	select {
	case <-ctx.Done():
		return s.shutdownWithTimeout()
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	}
}

// shutdownWithTimeout bounds the shutdown triggered by context
// cancellation so a wedged connection cannot hold the process open.
func (s *Server) shutdownWithTimeout() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// startStatsLogging schedules the periodic task-count heartbeat when a
// stats interval is configured.
func (s *Server) startStatsLogging() {
	if s.config.StatsInterval <= 0 {
		return
	}

	s.statsCron = cron.New()
	spec := fmt.Sprintf("@every %s", s.config.StatsInterval)
	if _, err := s.statsCron.AddFunc(spec, func() {
		stats := s.store.Stats()
		logging.Info("Task stats: %d total, %d completed, %d pending", stats.Total, stats.Completed, stats.Pending)
	}); err != nil {
		logging.Error("Failed to schedule stats logging: %v", err)
		s.statsCron = nil
		return
	}
	s.statsCron.Start()
	logging.Debug("Stats logging scheduled every %s", s.config.StatsInterval)
}

func (s *Server) stopStatsLogging() {
	if s.statsCron != nil {
		s.statsCron.Stop()
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Server shutting down...")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("HTTP server shutdown: %w", err)
		}
	}
	if s.sseServer != nil {
		if err := s.sseServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("SSE server shutdown: %w", err)
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}

// Uptime reports how long the server has been running.
func (s *Server) Uptime() time.Duration {
	return time.Since(s.startTime)
}
