package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/sociotyper/sociotyper/internal/config"
	"github.com/sociotyper/sociotyper/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment as-is")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Warn("could not load config file, using defaults", "path", cfgPath, "err", err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})
	if cfg.Server.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	srv, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize server", "err", err)
	}

	r := srv.SetupRouter()
	logger.Info("starting server", "port", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server exited", "err", err)
	}
}
