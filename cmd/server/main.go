// Package main is the entry point for the photo album API server.
//
// main stays minimal: load configuration, build the logger, create the
// server, run it. Everything else lives in internal packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/photoapp/photoapp/internal/config"
	"github.com/photoapp/photoapp/internal/server"
)

func main() {
	// Bootstrap logger at Info so configuration errors are reported even
	// before we know the configured level.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	// Ensure the database directory exists (DB_PATH defaults to
	// data/photoapp.db; ":memory:" has no directory).
	if dir := filepath.Dir(cfg.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
