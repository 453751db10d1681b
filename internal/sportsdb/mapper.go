package sportsdb

import (
	"strings"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
	"github.com/preston-bernstein/matchday-service/internal/domain/players"
	"github.com/preston-bernstein/matchday-service/internal/domain/teams"
	"github.com/preston-bernstein/matchday-service/internal/timeutil"
)

func mapEvent(e eventResponse) matches.MatchEvent {
	return matches.MatchEvent{
		ID:            strings.TrimSpace(string(e.ID)),
		League:        e.League,
		LeagueID:      string(e.LeagueID),
		Season:        e.Season,
		Round:         string(e.Round),
		HomeTeamID:    string(e.HomeTeamID),
		HomeTeam:      e.HomeTeam,
		AwayTeamID:    string(e.AwayTeamID),
		AwayTeam:      e.AwayTeam,
		HomeTeamBadge: e.HomeBadge,
		AwayTeamBadge: e.AwayBadge,
		Date:          e.Date,
		Time:          timeutil.NormalizeClock(e.Time),
		Status:        e.Status,
		Venue:         e.Venue,
		City:          e.City,
		Country:       e.Country,
		Capacity:      firstSet(e.Capacity, e.Spectators).ptr(),
		HomeScore:     e.HomeScore.ptr(),
		AwayScore:     e.AwayScore.ptr(),
		HeadToHead:    mapHeadToHead(e),
		Description:   e.Description,
	}
}

// mapHeadToHead is nil unless upstream sent at least one counter.
func mapHeadToHead(e eventResponse) *matches.HeadToHead {
	if !e.HomeWins.set && !e.Draws.set && !e.AwayWins.set {
		return nil
	}
	return &matches.HeadToHead{
		HomeWins: e.HomeWins.value,
		Draws:    e.Draws.value,
		AwayWins: e.AwayWins.value,
	}
}

func firstSet(values ...flexInt) flexInt {
	for _, v := range values {
		if v.set {
			return v
		}
	}
	return flexInt{}
}

func mapEvents(in []eventResponse) []matches.MatchEvent {
	out := make([]matches.MatchEvent, 0, len(in))
	for _, e := range in {
		out = append(out, mapEvent(e))
	}
	return out
}

func mapTeam(t teamResponse) teams.Team {
	badge := t.Badge
	if badge == "" {
		badge = t.TeamBadge
	}
	return teams.Team{
		ID:              strings.TrimSpace(string(t.ID)),
		Name:            t.Name,
		ShortName:       t.ShortName,
		League:          t.League,
		Country:         t.Country,
		Stadium:         t.Stadium,
		StadiumCapacity: t.Capacity.ptr(),
		FormedYear:      t.FormedYear.ptr(),
		Badge:           badge,
		Description:     t.Description,
	}
}

func mapPlayer(p playerResponse) players.Player {
	thumb := p.Thumbnail
	if thumb == "" {
		thumb = p.Cutout
	}
	return players.Player{
		ID:          strings.TrimSpace(string(p.ID)),
		Name:        p.Name,
		TeamID:      string(p.TeamID),
		Team:        p.Team,
		Position:    p.Position,
		Nationality: p.Nationality,
		Height:      p.Height,
		Weight:      p.Weight,
		BornOn:      p.BornOn,
		Thumbnail:   thumb,
		Description: p.Description,
	}
}

func mapPlayers(in []playerResponse) []players.Player {
	out := make([]players.Player, 0, len(in))
	for _, p := range in {
		out = append(out, mapPlayer(p))
	}
	return out
}
