package config

// SportsDBConfig controls how we talk to TheSportsDB.
type SportsDBConfig struct {
	BaseURL  string
	APIKey   string
	LeagueID string
	Season   string
}

func loadSportsDB() SportsDBConfig {
	return SportsDBConfig{
		BaseURL:  envOrDefault(envSportsDBURL, defaultSportsDBURL),
		APIKey:   envOrDefault(envSportsDBAPIKey, defaultSportsDBKey),
		LeagueID: envOrDefault(envSportsDBLeague, defaultSportsDBLeague),
		Season:   envOrDefault(envSportsDBSeason, defaultSportsDBSeason),
	}
}
