// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/venlow/laguz/internal/applescript"
	"github.com/venlow/laguz/internal/embed"
	"github.com/venlow/laguz/internal/mcpserver"
	"github.com/venlow/laguz/internal/notes"
	"github.com/venlow/laguz/internal/syncer"
	"github.com/venlow/laguz/internal/vecstore"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Structured JSON logger on stderr; stdout belongs to the MCP stdio
	// transport.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	storePath, err := cfg.Vector.StorePath()
	if err != nil {
		return fmt.Errorf("resolve store path: %w", err)
	}

	logger.Info("Configuration loaded",
		slog.String("store_path", storePath),
		slog.String("embedder_provider", cfg.Embedder.Provider),
		slog.String("embedder_model", cfg.Embedder.Model),
		slog.Int("dimensions", cfg.Embedder.Dimensions),
		slog.String("log_level", cfg.App.LogLevel.String()))

	embedder, err := embed.New(embed.Config{
		Provider:   cfg.Embedder.Provider,
		BaseURL:    cfg.Embedder.BaseURL,
		Model:      cfg.Embedder.Model,
		APIKey:     cfg.Embedder.APIKey,
		Dimensions: cfg.Embedder.Dimensions,
	})
	if err != nil {
		return fmt.Errorf("init embedder: %w", err)
	}

	runner := applescript.NewOSARunner(cfg.Notes.ScriptTimeout())
	ops := notes.NewOps(runner)

	// Store handles are acquired per operation so that migration-on-open
	// runs every time.
	openStore := func() (vecstore.Index, error) {
		return vecstore.Open(storePath, cfg.Embedder.Dimensions, embedder)
	}

	sync := syncer.New(ops, openStore, logger)
	srv := mcpserver.New(ops, sync)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		logger.Info("Starting MCP server on stdio")
		if err := srv.Listen(gCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
			cancel()
		case <-gCtx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
