package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	Source          string
	RefreshInterval Duration
	MatchesLimit    int
	CORSOrigins     []string
	SportsDB        SportsDBConfig
	Storage         StorageConfig
	Metrics         MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file (ENV_FILE, default .env) is applied first when present; real
// environment variables always win over it.
func Load() Config {
	loadDotEnv(envOrDefault(envEnvFile, defaultEnvFile))

	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		Source:          envOrDefault(envSource, defaultSource),
		RefreshInterval: durationEnvOrDefault(envRefresh, defaultRefreshInterval),
		MatchesLimit:    intEnvOrDefault(envMatchesLimit, defaultMatchesLimit),
		CORSOrigins:     listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		SportsDB:        loadSportsDB(),
		Storage:         loadStorage(),
		Metrics:         loadMetrics(),
	}
}

func loadDotEnv(path string) {
	if path == "" {
		return
	}
	// Missing files are expected outside local development.
	_ = godotenv.Load(path)
}
