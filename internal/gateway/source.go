package gateway

import (
	"context"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
	"github.com/preston-bernstein/matchday-service/internal/domain/players"
	"github.com/preston-bernstein/matchday-service/internal/domain/teams"
)

// Source is an upstream that reports failures explicitly. The TheSportsDB
// client and the fixture source both satisfy it.
type Source interface {
	SeasonEvents(ctx context.Context, leagueID, season string) ([]matches.MatchEvent, error)
	LookupEvent(ctx context.Context, id string) (matches.MatchEvent, error)
	LookupTeam(ctx context.Context, id string) (teams.Team, error)
	TeamPlayers(ctx context.Context, teamID string) ([]players.Player, error)
	LookupPlayer(ctx context.Context, id string) (players.Player, error)
}
