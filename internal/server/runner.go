// Package server runs the HTTP API and its background jobs under one lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/bingeworthy/internal/cache"
)

// DefaultShutdownTimeout bounds graceful HTTP shutdown.
const DefaultShutdownTimeout = 30 * time.Second

// Pruner deletes cache rows older than a cutoff.
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Config for the runner.
type Config struct {
	Addr            string
	PruneInterval   time.Duration // zero disables pruning
	PruneOlderThan  time.Duration // defaults to the longest cache TTL
	ShutdownTimeout time.Duration
}

// Runner manages the HTTP server and the cache prune job.
type Runner struct {
	handler http.Handler
	pruner  Pruner
	config  Config
	logger  *slog.Logger
}

// NewRunner creates a new runner. A nil pruner disables pruning.
func NewRunner(handler http.Handler, pruner Pruner, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PruneOlderThan == 0 {
		cfg.PruneOlderThan = cache.LongestTTL
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	return &Runner{
		handler: handler,
		pruner:  pruner,
		config:  cfg,
		logger:  logger,
	}
}

// Run listens on the configured address and serves until ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return r.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts the server down
// gracefully. It returns nil after a clean shutdown.
func (r *Runner) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           r.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Use errgroup to manage component lifecycle
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		r.logger.Info("http server stopped")
		return nil
	})

	if r.pruner != nil && r.config.PruneInterval > 0 {
		g.Go(func() error {
			r.runPruner(gctx)
			return nil
		})
	}

	return g.Wait()
}

func (r *Runner) runPruner(ctx context.Context) {
	ticker := time.NewTicker(r.config.PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.prune(ctx)
		}
	}
}

func (r *Runner) prune(ctx context.Context) {
	n, err := r.pruner.Prune(ctx, r.config.PruneOlderThan)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Warn("cache prune failed", "error", err)
		}
		return
	}
	if n > 0 {
		r.logger.Info("cache pruned", "rows", n)
	}
}
