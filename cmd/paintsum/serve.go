package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rcwtools/paintsum/internal/gasrig"
	"github.com/rcwtools/paintsum/internal/server"
	"github.com/rcwtools/paintsum/internal/signal"
	"github.com/rcwtools/paintsum/internal/storage"
	"github.com/rcwtools/paintsum/internal/worker"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload/processing HTTP API",
		RunE:  runServe,
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("data-dir", "data", "directory for uploads, outputs, and the job database")
	cmd.Flags().Int("workers", 2, "number of concurrent processing workers")
	cmd.Flags().Int("queue-depth", 16, "maximum queued jobs before uploads are rejected")
	cmd.Flags().Float64("gas-rig-rate", gasrig.DefaultRate, "gas and rig dollars per crew hour")

	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.data_dir", cmd.Flags().Lookup("data-dir"))
	_ = viper.BindPFlag("server.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("server.queue_depth", cmd.Flags().Lookup("queue-depth"))
	_ = viper.BindPFlag("server.gas_rig_rate", cmd.Flags().Lookup("gas-rig-rate"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	dataDir := viper.GetString("server.data_dir")
	uploadDir := filepath.Join(dataDir, "uploads")
	outputDir := filepath.Join(dataDir, "outputs")

	store, err := storage.NewStore(filepath.Join(dataDir, "jobs.db"))
	if err != nil {
		return fmt.Errorf("failed to open job store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close job store", "error", closeErr)
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	pipeline := worker.NewPipeline(store, signal.DefaultConfig(), outputDir)
	pool := worker.NewPool(pipeline, viper.GetInt("server.workers"), viper.GetInt("server.queue_depth"))
	pool.Start(ctx)
	defer pool.Stop()

	srv := server.New(store, pool, server.Config{
		UploadDir:  uploadDir,
		OutputDir:  outputDir,
		Version:    version,
		GasRigRate: viper.GetFloat64("server.gas_rig_rate"),
	})

	addr := viper.GetString("server.addr")
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}
