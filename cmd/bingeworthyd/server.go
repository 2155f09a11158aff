package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vmunix/bingeworthy/internal/ai"
	v1 "github.com/vmunix/bingeworthy/internal/api/v1"
	"github.com/vmunix/bingeworthy/internal/auth"
	"github.com/vmunix/bingeworthy/internal/cache"
	"github.com/vmunix/bingeworthy/internal/config"
	"github.com/vmunix/bingeworthy/internal/database"
	"github.com/vmunix/bingeworthy/internal/metadata"
	"github.com/vmunix/bingeworthy/internal/metrics"
	"github.com/vmunix/bingeworthy/internal/omdb"
	"github.com/vmunix/bingeworthy/internal/server"
	"github.com/vmunix/bingeworthy/internal/settings"
	"github.com/vmunix/bingeworthy/internal/tmdb"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger writes to stdout and, when [log] file is set, to a rotated file.
func newLogger(cfg *config.Config) (*slog.Logger, func()) {
	var out io.Writer = os.Stdout
	closeFn := func() {}
	if cfg.Log.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotated)
		closeFn = func() { _ = rotated.Close() }
	}

	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Server.LogLevel)}
	if cfg.Server.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(out, opts)), closeFn
	}
	return slog.New(slog.NewTextHandler(out, opts)), closeFn
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger, closeLog := newLogger(cfg)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open database and run migrations
	db, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	m := metrics.New()
	store := cache.New(db,
		cache.WithLogger(logger.With("component", "cache")),
		cache.WithMetrics(m),
	)

	// === Clients (unconfigured when their key is empty) ===
	tmdbOpts := []tmdb.Option{tmdb.WithMetrics(m), tmdb.WithLanguage(cfg.TMDB.Language)}
	if cfg.TMDB.BaseURL != "" {
		tmdbOpts = append(tmdbOpts, tmdb.WithBaseURL(cfg.TMDB.BaseURL))
	}
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, tmdbOpts...)

	omdbOpts := []omdb.Option{omdb.WithMetrics(m)}
	if cfg.OMDB.BaseURL != "" {
		omdbOpts = append(omdbOpts, omdb.WithBaseURL(cfg.OMDB.BaseURL))
	}
	omdbClient := omdb.NewClient(cfg.OMDB.APIKey, omdbOpts...)

	hfOpts := []ai.HFOption{ai.WithMetrics(m)}
	if cfg.TextGen.BaseURL != "" {
		hfOpts = append(hfOpts, ai.WithBaseURL(cfg.TextGen.BaseURL))
	}
	if cfg.TextGen.Model != "" {
		hfOpts = append(hfOpts, ai.WithModel(cfg.TextGen.Model))
	}
	textgen := ai.NewHuggingFaceProvider(cfg.TextGen.APIToken, hfOpts...)

	// === Services ===
	catalog := metadata.NewService(tmdbClient, omdbClient, store,
		metadata.WithTextGenerator(textgen),
		metadata.WithLogger(logger.With("component", "metadata")),
		metadata.WithWorkers(cfg.Enrich.Workers),
		metadata.WithRegion(cfg.TMDB.Region),
	)

	authSvc := auth.New(db, cfg.Auth.SecretKey,
		auth.WithTokenTTL(cfg.Auth.TokenTTL),
		auth.WithLogger(logger.With("component", "auth")),
	)
	if _, err := authSvc.Bootstrap(ctx, cfg.Auth.DefaultAdminUser, cfg.Auth.DefaultAdminPassword); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	settingsStore := settings.New(db, store, logger.With("component", "settings"))

	// === HTTP Setup ===
	apiV1, err := v1.New(v1.ServerDeps{
		Catalog:  catalog,
		Auth:     authSvc,
		Settings: settingsStore,
		Cache:    store,
		Metrics:  m,
		Logger:   logger.With("component", "api"),
	}, v1.Config{
		Version:        version,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}

	logger.Info("server starting",
		"addr", cfg.Addr(),
		"database", cfg.Database.Path,
		"tmdb", tmdbClient.IsConfigured(),
		"omdb", omdbClient.IsConfigured(),
		"textgen", textgen.IsConfigured(),
		"region", cfg.TMDB.Region,
		"log_level", cfg.Server.LogLevel,
	)

	runner := server.NewRunner(logRequests(apiV1.Handler(), logger), store, server.Config{
		Addr:          cfg.Addr(),
		PruneInterval: cfg.Cache.PruneInterval,
	}, logger.With("component", "runner"))

	if err := runner.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
