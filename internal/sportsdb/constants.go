package sportsdb

import "time"

const (
	defaultBaseURL     = "https://www.thesportsdb.com/api/v1/json"
	defaultAPIKey      = "3"
	defaultHTTPTimeout = 10 * time.Second
	// Upper bound on how much of an error body ends up in StatusError.
	errorBodyLimit = 512

	pathSeasonEvents = "eventsseason.php"
	pathLookupEvent  = "lookupevent.php"
	pathLookupTeam   = "lookupteam.php"
	pathTeamPlayers  = "lookup_all_players.php"
	pathLookupPlayer = "lookupplayer.php"
)
