package server

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/preston-bernstein/matchday-service/internal/config"
	"github.com/preston-bernstein/matchday-service/internal/gateway"
	"github.com/preston-bernstein/matchday-service/internal/logging"
	"github.com/preston-bernstein/matchday-service/internal/sportsdb"
	"github.com/preston-bernstein/matchday-service/internal/sportsdb/fixture"
	"github.com/preston-bernstein/matchday-service/internal/storage"
)

const (
	sourceSportsDB = "sportsdb"
	sourceFixture  = "fixture"
)

var openStorage = storage.Open

// selectSource picks the upstream the gateway talks to. Unknown names fall
// back to the offline fixture so the service still boots.
func selectSource(cfg config.Config, logger *zerolog.Logger) gateway.Source {
	switch strings.ToLower(strings.TrimSpace(cfg.Source)) {
	case sourceSportsDB, "":
		return sportsdb.NewClient(sportsdb.Config{
			BaseURL: cfg.SportsDB.BaseURL,
			APIKey:  cfg.SportsDB.APIKey,
		})
	case sourceFixture:
		return fixture.New()
	default:
		logging.Warn(logger, "unknown source, falling back to fixture", "source", cfg.Source)
		return fixture.New()
	}
}

// buildStorage opens the configured backend. Favorites degrade to process
// memory when the backend is unavailable.
func buildStorage(ctx context.Context, cfg config.Config, logger *zerolog.Logger) storage.Backend {
	backend, err := openStorage(ctx, storage.Config{
		Driver:      cfg.Storage.Driver,
		Path:        cfg.Storage.Path,
		DatabaseURL: cfg.Storage.DatabaseURL,
	})
	if err != nil {
		logging.Error(logger, "storage unavailable, favorites will not persist", err, "driver", cfg.Storage.Driver)
		return storage.NewMemoryKV()
	}
	logging.Info(logger, "storage ready", "driver", cfg.Storage.Driver)
	return backend
}
