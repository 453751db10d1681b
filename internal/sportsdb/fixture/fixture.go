package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
	"github.com/preston-bernstein/matchday-service/internal/domain/players"
	"github.com/preston-bernstein/matchday-service/internal/domain/teams"
	"github.com/preston-bernstein/matchday-service/internal/sportsdb"
	"github.com/preston-bernstein/matchday-service/internal/timeutil"
)

const (
	leagueName     = "English Premier League"
	leagueID       = "4328"
	season         = "2024-2025"
	playersPerTeam = 8
)

var clubs = []teams.Team{
	{ID: "133604", Name: "Arsenal", ShortName: "ARS", League: leagueName, Country: "England", Stadium: "Emirates Stadium", StadiumCapacity: intPtr(60338), FormedYear: intPtr(1886)},
	{ID: "133602", Name: "Manchester City", ShortName: "MCI", League: leagueName, Country: "England", Stadium: "Etihad Stadium", StadiumCapacity: intPtr(53400), FormedYear: intPtr(1880)},
	{ID: "133613", Name: "Chelsea", ShortName: "CHE", League: leagueName, Country: "England", Stadium: "Stamford Bridge", StadiumCapacity: intPtr(40341), FormedYear: intPtr(1905)},
	{ID: "133612", Name: "Liverpool", ShortName: "LIV", League: leagueName, Country: "England", Stadium: "Anfield", StadiumCapacity: intPtr(61276), FormedYear: intPtr(1892)},
	{ID: "133739", Name: "Real Madrid", ShortName: "RMA", League: "Spanish La Liga", Country: "Spain", Stadium: "Santiago Bernabeu", StadiumCapacity: intPtr(81044), FormedYear: intPtr(1902)},
}

var positions = []string{"Goalkeeper", "Centre-Back", "Left-Back", "Right-Back", "Defensive Midfield", "Attacking Midfield", "Left Winger", "Centre-Forward"}

// Source serves a static league suitable for local runs and tests. It
// satisfies the same contract as the TheSportsDB client.
type Source struct {
	now func() time.Time
}

// New creates a fixture source with a time source.
func New() *Source {
	return &Source{now: time.Now}
}

// SeasonEvents returns one round of fixtures starting tomorrow.
func (s *Source) SeasonEvents(ctx context.Context, league, seasonName string) ([]matches.MatchEvent, error) {
	_ = ctx
	if league != "" && league != leagueID {
		return []matches.MatchEvent{}, nil
	}
	_ = seasonName
	return s.events(), nil
}

// LookupEvent returns a fixture event by id.
func (s *Source) LookupEvent(ctx context.Context, id string) (matches.MatchEvent, error) {
	_ = ctx
	for _, e := range s.events() {
		if e.ID == id {
			return e, nil
		}
	}
	return matches.MatchEvent{}, fmt.Errorf("event %s: %w", id, sportsdb.ErrNotFound)
}

// LookupTeam returns a fixture club by id.
func (s *Source) LookupTeam(ctx context.Context, id string) (teams.Team, error) {
	_ = ctx
	for _, t := range clubs {
		if t.ID == id {
			return t, nil
		}
	}
	return teams.Team{}, fmt.Errorf("team %s: %w", id, sportsdb.ErrNotFound)
}

// TeamPlayers returns a generated roster. Unknown teams have no roster.
func (s *Source) TeamPlayers(ctx context.Context, teamID string) ([]players.Player, error) {
	_ = ctx
	for _, t := range clubs {
		if t.ID == teamID {
			return roster(t), nil
		}
	}
	return []players.Player{}, nil
}

// LookupPlayer returns a generated player by id.
func (s *Source) LookupPlayer(ctx context.Context, id string) (players.Player, error) {
	_ = ctx
	for _, t := range clubs {
		for _, p := range roster(t) {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return players.Player{}, fmt.Errorf("player %s: %w", id, sportsdb.ErrNotFound)
}

func (s *Source) events() []matches.MatchEvent {
	start := s.now().UTC().Truncate(24 * time.Hour)
	out := make([]matches.MatchEvent, 0, len(clubs)*(len(clubs)-1))
	n := 0
	for i, home := range clubs {
		for j, away := range clubs {
			if i == j {
				continue
			}
			n++
			kickoff := start.AddDate(0, 0, n).Add(15 * time.Hour)
			out = append(out, matches.MatchEvent{
				ID:         fmt.Sprintf("fixture-%d", n),
				League:     leagueName,
				LeagueID:   leagueID,
				Season:     season,
				Round:      fmt.Sprintf("%d", (n+1)/2),
				HomeTeamID: home.ID,
				HomeTeam:   home.Name,
				AwayTeamID: away.ID,
				AwayTeam:   away.Name,
				Date:       timeutil.FormatDate(kickoff),
				Time:       timeutil.FormatClock(kickoff),
				Status:     "Not Started",
				Venue:      home.Stadium,
				Country:    home.Country,
				Capacity:   home.StadiumCapacity,
				HeadToHead: &matches.HeadToHead{HomeWins: (i + j) % 4, Draws: j % 3, AwayWins: i % 4},
			})
		}
	}
	return out
}

func roster(t teams.Team) []players.Player {
	out := make([]players.Player, 0, playersPerTeam)
	for i := 0; i < playersPerTeam; i++ {
		out = append(out, players.Player{
			ID:          fmt.Sprintf("%s-%02d", t.ID, i+1),
			Name:        fmt.Sprintf("%s Player %d", t.ShortName, i+1),
			TeamID:      t.ID,
			Team:        t.Name,
			Position:    positions[i%len(positions)],
			Nationality: t.Country,
		})
	}
	return out
}

func intPtr(v int) *int { return &v }
