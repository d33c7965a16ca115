package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tunegrab/tunegrab/internal/archive"
	"github.com/tunegrab/tunegrab/internal/config"
	"github.com/tunegrab/tunegrab/internal/convert"
	"github.com/tunegrab/tunegrab/internal/platform"
	"github.com/tunegrab/tunegrab/internal/server"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	logger.Info("starting tunegrab", "version", version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Prepare the downloads root. Jobs are in-memory only, so anything left
	// on disk from a previous run is garbage.
	if err := platform.CreateDirectoryIfNotExists(cfg.DownloadsDir); err != nil {
		logger.Error("failed to create downloads directory", "dir", cfg.DownloadsDir, "error", err)
		os.Exit(1)
	}
	platform.ClearDirectory(cfg.DownloadsDir)

	// Root context: cancelled on SIGINT/SIGTERM so the sweeper and in-flight
	// requests wind down promptly during graceful shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	store := convert.NewStore()
	packager := archive.NewService(logger)
	converter := convert.NewService(store, packager, logger, convert.Options{
		DownloadsRoot: cfg.DownloadsDir,
		WorkerCommand: cfg.WorkerCommand,
		JobTTL:        cfg.JobTTL(),
		SweepInterval: cfg.SweepInterval(),
		MaxConcurrent: cfg.MaxConcurrent,
	})
	prober := platform.NewProber(cfg.WorkerCommand)

	// Expiry sweep: evicts aged-out jobs and orphaned directories
	sweepDone := make(chan struct{})
	go func() {
		converter.Sweep(rootCtx)
		close(sweepDone)
	}()

	srv := server.New(rootCtx, cfg.Port, converter, prober, cfg.AllowedOrigins)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("server started", "port", cfg.Port, "downloads", cfg.DownloadsDir)
	<-done

	rootCancel()
	<-sweepDone

	// Terminate any still-running workers, then drain connections.
	converter.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("server stopped")
}
