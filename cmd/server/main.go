// Package main is the entry point for the student-records web server.
//
// main stays minimal: load config, build the logger, create the server,
// start it. Everything else lives under internal/.
//
//	go run ./cmd/server --config=config/local.yaml
package main

import (
	"log/slog"
	"os"

	"github.com/sakif/student-records/internal/config"
	"github.com/sakif/student-records/internal/server"
)

func main() {
	cfg := config.MustLoad()
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until Ctrl+C or SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
