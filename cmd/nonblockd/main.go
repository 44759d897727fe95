package main

import (
	"log"
	"os"

	"github.com/seantiz/nonblock/internal/api"
	"github.com/seantiz/nonblock/internal/config"
	"github.com/seantiz/nonblock/internal/deadline"
	"github.com/seantiz/nonblock/internal/engine"
	"github.com/seantiz/nonblock/internal/probe"
	"github.com/seantiz/nonblock/internal/store"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	logger.Info("nonblockd: starting",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"default_timeout_ms", cfg.DefaultTimeout.Milliseconds(),
	)

	runner, err := deadline.NewDefaultRunner(logger)
	if err != nil {
		log.Fatalf("failed to set up signal pool: %v", err)
	}
	logger.Info("signal pool ready", "size", runner.Pool().Size())

	db, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	reg := probe.NewRegistry()
	probe.RegisterDefaults(reg)

	eng := engine.NewEngine(db, reg, runner, cfg.DefaultTimeout, logger)
	srv := api.NewServer(cfg.ListenAddr, db, reg, eng, logger)

	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
