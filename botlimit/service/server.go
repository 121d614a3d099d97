package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/go-harden/botlimit/botlimit/config"
	"github.com/go-harden/botlimit/botlimit/limit"
	"github.com/go-harden/botlimit/botlimit/service/store"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	flags   DaemonFlags
	logger  *slog.Logger
	watcher *config.Watcher
	limits  *limit.Service
	history *store.HistoryStore
	mcp     *server.MCPServer

	// stdin and stdout carry MCP messages in stdio mode.
	stdin  io.Reader
	stdout io.Writer

	started      chan struct{}
	startOnce    sync.Once
	shutdown     chan struct{}
	shutdownOnce sync.Once

	mu   sync.Mutex
	addr string
}

func NewServer(flags DaemonFlags) (*Server, error) {
	if flags.WorkDir == "" {
		return nil, errors.New("workdir is required for service mode")
	}

	logger, err := newLogger(flags.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	if flags.ConfigPath == "" {
		flags.ConfigPath = config.DefaultPath(flags.WorkDir)
	}
	watcher, err := config.NewWatcher(flags.ConfigPath, logger)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	svcCfg := watcher.Current().GetService()
	if flags.ListenAddr == "" {
		flags.ListenAddr = svcCfg.ListenAddr
	}

	s := &Server{
		flags:    flags,
		logger:   logger,
		watcher:  watcher,
		limits:   limit.NewService(watcher.Limits),
		history:  store.NewHistoryStore(svcCfg.HistorySize),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		started:  make(chan struct{}),
		shutdown: make(chan struct{}),
	}
	s.mcp = server.NewMCPServer("botlimit", config.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	watcher.OnReload(s.applyConfig)
	s.registerTools()
	return s, nil
}

// applyConfig updates service settings that can change without a restart.
// Limits need no action, they are read through the watcher on every call.
func (s *Server) applyConfig(cfg *config.Config) {
	size := cfg.GetService().HistorySize
	s.history.SetCapacity(size)
	s.logger.Debug("service settings applied", "history_size", size)
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// MCPServer exposes the underlying MCP server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Addr returns the bound HTTP address once started, or "" in stdio mode.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// URL returns the MCP endpoint URL once started.
func (s *Server) URL() string {
	if addr := s.Addr(); addr != "" {
		return "http://" + addr + config.MCPPath
	}
	return ""
}

// WaitTillStarted blocks until Run is serving, or has failed to start.
func (s *Server) WaitTillStarted() {
	<-s.started
}

// RequestShutdown asks a running server to stop. Safe to call more than once.
func (s *Server) RequestShutdown() {
	s.shutdownOnce.Do(func() { close(s.shutdown) })
}

func (s *Server) markStarted() {
	s.startOnce.Do(func() { close(s.started) })
}

// Run serves until ctx is done or RequestShutdown is called.
func (s *Server) Run(ctx context.Context) error {
	defer s.markStarted()

	if err := s.watcher.Start(); err != nil {
		s.logger.Warn("config watch unavailable, changes need a restart", "error", err)
	}
	defer func() { _ = s.watcher.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	if s.flags.Stdio {
		return s.runStdio(ctx)
	}
	return s.runHTTP(ctx)
}

func (s *Server) runHTTP(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.flags.ListenAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.flags.ListenAddr, err)
	}
	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	mux := http.NewServeMux()
	mux.Handle(config.MCPPath, server.NewStreamableHTTPServer(s.mcp))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	serveErr := make(chan error, 1)
	go func() { serveErr <- httpSrv.Serve(ln) }()

	s.logger.Info("botlimit service started",
		"url", s.URL(), "config", s.watcher.Path(), "version", config.VersionString())
	s.markStarted()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.logger.Info("botlimit service stopped")
	return nil
}

func (s *Server) runStdio(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	s.logger.Info("botlimit service started on stdio",
		"config", s.watcher.Path(), "version", config.VersionString())
	s.markStarted()

	err := stdio.Listen(ctx, s.stdin, s.stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
