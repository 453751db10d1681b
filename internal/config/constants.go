package config

import "time"

const (
	envPort           = "PORT"
	envEnvFile        = "ENV_FILE"
	envSource         = "SOURCE"
	envRefresh        = "REFRESH_INTERVAL"
	envMatchesLimit   = "MATCHES_LIMIT"
	envCORSOrigins    = "CORS_ALLOWED_ORIGINS"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"
	envStorageDriver  = "STORAGE_DRIVER"
	envStoragePath    = "STORAGE_PATH"
	envDatabaseURL    = "DATABASE_URL"
	envFavoritesKey   = "FAVORITES_KEY"
	envSportsDBURL    = "SPORTSDB_BASE_URL"
	envSportsDBAPIKey = "SPORTSDB_API_KEY"
	envSportsDBLeague = "SPORTSDB_LEAGUE_ID"
	envSportsDBSeason = "SPORTSDB_SEASON"

	defaultPort    = "4000"
	defaultEnvFile = ".env"
	defaultSource  = "sportsdb"
	// The free TheSportsDB key is heavily throttled; refreshing every few minutes is plenty.
	defaultRefreshInterval = 10 * Duration(time.Minute)
	// The home screen only ever lists the first 20 upcoming matches.
	defaultMatchesLimit  = 20
	defaultCORSOrigins   = "*"
	defaultMetricsPort   = "9090"
	defaultServiceName   = "matchday-service"
	defaultStorageDriver = "file"
	defaultStoragePath   = "data/storage"
	defaultFavoritesKey  = "favorites"
	defaultSportsDBURL   = "https://www.thesportsdb.com/api/v1/json"
	defaultSportsDBKey   = "3"
	// English Premier League, 2024-2025.
	defaultSportsDBLeague = "4328"
	defaultSportsDBSeason = "2024-2025"
)
