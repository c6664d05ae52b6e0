package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fc-manager-backend/internal/cache"
	"fc-manager-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fc-manager-backend",
		Short: "Football career tracker API",
		Long: `Serves the career tracker API: squads, transfers, season budgets,
journal entries and the derived dashboard metrics.

Configuration is read from the environment (PORT, BACKEND, DATABASE_URL,
SQLITE_PATH, REDIS_URL, ...).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	cmd.AddCommand(migrateCmd(), seedDemoCmd())
	return cmd
}

// setup loads configuration and opens the logger and the selected backend.
func setup(ctx context.Context) (Config, *zap.Logger, *store.SQLStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return cfg, nil, nil, err
	}
	st, err := store.Open(ctx, cfg.storeConfig(), logger)
	if err != nil {
		_ = logger.Sync()
		return cfg, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, logger, st, nil
}

func serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, st, err := setup(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	c, err := cache.Connect(ctx, cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		logger.Warn("Failed to initialize Redis, continuing without cache", zap.Error(err))
		c = nil
	}
	defer c.Close()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: newServer(st, c, logger).router(cfg.CORSOrigins),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("backend", cfg.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
