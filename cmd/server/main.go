package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/matchday-service/internal/config"
	"github.com/preston-bernstein/matchday-service/internal/logging"
	"github.com/preston-bernstein/matchday-service/internal/server"
)

const (
	serviceName = "matchday-service"
	appVersion  = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	// Load first so LOG_LEVEL and LOG_FORMAT can come from the .env file.
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: serviceName,
		Version: appVersion,
	})
	logging.Info(logger, "configuration loaded",
		"source", cfg.Source,
		"storage_driver", cfg.Storage.Driver,
		"league_id", cfg.SportsDB.LeagueID,
		"season", cfg.SportsDB.Season,
		"refresh_interval", cfg.RefreshInterval.String(),
		"otlp_export", cfg.Metrics.Exporting(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}
