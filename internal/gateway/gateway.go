package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
	"github.com/preston-bernstein/matchday-service/internal/domain/players"
	"github.com/preston-bernstein/matchday-service/internal/domain/teams"
	"github.com/preston-bernstein/matchday-service/internal/logging"
	"github.com/preston-bernstein/matchday-service/internal/metrics"
	"github.com/preston-bernstein/matchday-service/internal/sportsdb"
)

// Gateway is the only component that talks to the upstream source. Every
// operation is total: failures are logged and recorded, and callers get an
// empty slice or ok=false instead of an error.
type Gateway struct {
	source  Source
	cfg     Config
	logger  *zerolog.Logger
	metrics *metrics.Recorder
}

// New wraps a source. logger and recorder may be nil.
func New(source Source, cfg Config, logger *zerolog.Logger, recorder *metrics.Recorder) *Gateway {
	return &Gateway{
		source:  source,
		cfg:     cfg.withDefaults(),
		logger:  logger,
		metrics: recorder,
	}
}

// UpcomingMatches returns the season's events in upstream order.
func (g *Gateway) UpcomingMatches(ctx context.Context) []matches.MatchEvent {
	start := time.Now()
	events, err := g.source.SeasonEvents(ctx, g.cfg.LeagueID, g.cfg.Season)
	g.observe(ctx, OpUpcomingMatches, start, err)
	if err != nil || events == nil {
		return []matches.MatchEvent{}
	}
	return events
}

// MatchDetails looks up one event.
func (g *Gateway) MatchDetails(ctx context.Context, id string) (matches.MatchEvent, bool) {
	start := time.Now()
	event, err := g.source.LookupEvent(ctx, id)
	g.observe(ctx, OpMatchDetails, start, err, logging.FieldEventID, id)
	if err != nil {
		return matches.MatchEvent{}, false
	}
	return event, true
}

// TeamDetails looks up one team.
func (g *Gateway) TeamDetails(ctx context.Context, id string) (teams.Team, bool) {
	start := time.Now()
	team, err := g.source.LookupTeam(ctx, id)
	g.observe(ctx, OpTeamDetails, start, err, logging.FieldTeamID, id)
	if err != nil {
		return teams.Team{}, false
	}
	return team, true
}

// TopPlayers concatenates the first PlayersPerTeam players of each top team,
// in team order. Teams are fetched one after another; if any fetch fails the
// whole result is empty rather than partial.
func (g *Gateway) TopPlayers(ctx context.Context) []players.Player {
	start := time.Now()
	out := make([]players.Player, 0, len(g.cfg.TopTeamIDs)*g.cfg.PlayersPerTeam)
	for _, teamID := range g.cfg.TopTeamIDs {
		roster, err := g.source.TeamPlayers(ctx, teamID)
		if err != nil {
			g.observe(ctx, OpTopPlayers, start, err, logging.FieldTeamID, teamID)
			return []players.Player{}
		}
		if len(roster) > g.cfg.PlayersPerTeam {
			roster = roster[:g.cfg.PlayersPerTeam]
		}
		out = append(out, roster...)
	}
	g.observe(ctx, OpTopPlayers, start, nil)
	return out
}

// PlayerDetails looks up one player.
func (g *Gateway) PlayerDetails(ctx context.Context, id string) (players.Player, bool) {
	start := time.Now()
	player, err := g.source.LookupPlayer(ctx, id)
	g.observe(ctx, OpPlayerDetails, start, err, logging.FieldPlayerID, id)
	if err != nil {
		return players.Player{}, false
	}
	return player, true
}

// observe records the attempt and logs anything other than success.
// A not-found lookup is an answer, not a failure.
func (g *Gateway) observe(ctx context.Context, op string, start time.Time, err error, fields ...any) {
	duration := time.Since(start)
	logger := logging.FromContext(ctx, g.logger)
	fields = append(fields, logging.FieldOperation, op, logging.FieldDurationMS, duration.Milliseconds())

	switch {
	case err == nil:
		g.metrics.RecordGatewayCall(op, duration, nil)
	case errors.Is(err, sportsdb.ErrNotFound):
		g.metrics.RecordGatewayCall(op, duration, nil)
		logging.Info(logger, "upstream item not found", fields...)
	default:
		g.metrics.RecordGatewayCall(op, duration, err)
		if rlErr, ok := sportsdb.AsRateLimitError(err); ok {
			g.metrics.RecordRateLimit(op, rlErr.RetryAfter)
			fields = append(fields, "retry_after", rlErr.RetryAfter.String())
		}
		logging.Warn(logger, "upstream call failed", append(fields, "error", err.Error())...)
	}
}
