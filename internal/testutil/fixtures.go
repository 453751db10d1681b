package testutil

import (
	"fmt"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
	"github.com/preston-bernstein/matchday-service/internal/domain/players"
	"github.com/preston-bernstein/matchday-service/internal/domain/teams"
)

// SampleMatch returns a minimal match fixture with the provided id.
func SampleMatch(id string) matches.MatchEvent {
	return matches.MatchEvent{
		ID:         id,
		League:     "English Premier League",
		LeagueID:   "4328",
		Season:     "2024-2025",
		HomeTeamID: "133604",
		HomeTeam:   "Arsenal",
		AwayTeamID: "133602",
		AwayTeam:   "Manchester City",
		Date:       "2024-08-17",
		Time:       "15:00:00",
	}
}

// SampleMatches returns n matches with ids "1".."n".
func SampleMatches(n int) []matches.MatchEvent {
	out := make([]matches.MatchEvent, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, SampleMatch(fmt.Sprintf("%d", i)))
	}
	return out
}

// SampleTeam returns a minimal team fixture.
func SampleTeam(id string) teams.Team {
	return teams.Team{ID: id, Name: "Team " + id, League: "English Premier League"}
}

// SampleRoster returns n players for teamID with ids "{teamID}-{i}".
func SampleRoster(teamID string, n int) []players.Player {
	out := make([]players.Player, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, players.Player{
			ID:     fmt.Sprintf("%s-%d", teamID, i),
			Name:   fmt.Sprintf("Player %d", i),
			TeamID: teamID,
			Team:   "Team " + teamID,
		})
	}
	return out
}
