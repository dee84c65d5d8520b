package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/duckmesh/filequery/internal/cli/filequery"
	"github.com/duckmesh/filequery/internal/config"
	"github.com/duckmesh/filequery/internal/observability"
	s3store "github.com/duckmesh/filequery/internal/storage/s3"
)

func main() {
	cfg, err := config.LoadFromEnv("filequery")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg, os.Stderr)

	options := filequery.Options{
		KeepOpen:   !cfg.Reader.OneShot,
		StagingDir: cfg.Reader.StagingDir,
		Logger:     logger,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
	if cfg.ObjectStore.Enabled() {
		store, err := s3store.New(s3store.Config{
			Endpoint:        cfg.ObjectStore.Endpoint,
			Region:          cfg.ObjectStore.Region,
			AccessKeyID:     cfg.ObjectStore.AccessKeyID,
			SecretAccessKey: cfg.ObjectStore.SecretAccessKey,
			UseSSL:          cfg.ObjectStore.UseSSL,
		})
		if err != nil {
			logger.Error("failed to initialize object store", slog.Any("error", err))
			os.Exit(1)
		}
		options.ObjectStore = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := filequery.Run(ctx, os.Args[1:], options)
	stop()
	os.Exit(code)
}
