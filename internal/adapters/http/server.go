package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/go-result/internal/platform/config"
)

const defaultShutdownTimeout = 10 * time.Second

// Server is an http.Server with graceful shutdown. net/http's own error log
// is routed into the structured logger at warn.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// NewServer creates a server for handler. A nil logger discards output.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger: logger,
	}
}

// Start listens and serves until the server is shut down, then returns nil.
// Any other failure, such as a port already in use, is returned.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", slog.String("addr", s.srv.Addr))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving on %s: %w", s.srv.Addr, err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx ends. A ctx without a deadline gets a 10 second one.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultShutdownTimeout)
		defer cancel()
	}

	s.logger.Info("shutting down HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down %s: %w", s.srv.Addr, err)
	}
	return nil
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}
