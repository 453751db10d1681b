package gateway

const (
	defaultLeagueID       = "4328"
	defaultSeason         = "2024-2025"
	defaultPlayersPerTeam = 6
)

// DefaultTopTeamIDs are the clubs whose rosters make up the top players list.
var DefaultTopTeamIDs = []string{"133604", "133602", "133613", "133612", "133739"}

// Operation names used for logs and metrics.
const (
	OpUpcomingMatches = "upcoming_matches"
	OpMatchDetails    = "match_details"
	OpTeamDetails     = "team_details"
	OpTopPlayers      = "top_players"
	OpPlayerDetails   = "player_details"
)

// Config fixes the competition and roster sampling the gateway reads.
type Config struct {
	LeagueID       string
	Season         string
	TopTeamIDs     []string
	PlayersPerTeam int
}

func (c Config) withDefaults() Config {
	if c.LeagueID == "" {
		c.LeagueID = defaultLeagueID
	}
	if c.Season == "" {
		c.Season = defaultSeason
	}
	if len(c.TopTeamIDs) == 0 {
		c.TopTeamIDs = DefaultTopTeamIDs
	}
	c.TopTeamIDs = append([]string(nil), c.TopTeamIDs...)
	if c.PlayersPerTeam <= 0 {
		c.PlayersPerTeam = defaultPlayersPerTeam
	}
	return c
}
