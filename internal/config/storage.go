package config

// StorageConfig selects the durable key-value backend for favorites.
type StorageConfig struct {
	Driver       string // file, memory, postgres
	Path         string // base directory for the file driver
	DatabaseURL  string // DSN for the postgres driver
	FavoritesKey string
}

func loadStorage() StorageConfig {
	return StorageConfig{
		Driver:       envOrDefault(envStorageDriver, defaultStorageDriver),
		Path:         envOrDefault(envStoragePath, defaultStoragePath),
		DatabaseURL:  envOrDefault(envDatabaseURL, ""),
		FavoritesKey: envOrDefault(envFavoritesKey, defaultFavoritesKey),
	}
}
