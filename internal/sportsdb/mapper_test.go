package sportsdb

import (
	"testing"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
)

func TestMapEventCopiesFields(t *testing.T) {
	e := eventResponse{
		ID:         " 2052 ",
		League:     "English Premier League",
		LeagueID:   "4328",
		Season:     "2024-2025",
		HomeTeamID: "133604",
		HomeTeam:   "Arsenal",
		AwayTeamID: "133602",
		AwayTeam:   "Liverpool",
		Date:       "2024-08-17",
		Time:       "14:00:00+00:00",
		HomeScore:  flexInt{value: 2, set: true},
	}

	got := mapEvent(e)
	if got.ID != "2052" || got.HomeTeam != "Arsenal" || got.AwayTeamID != "133602" {
		t.Fatalf("unexpected mapping %+v", got)
	}
	if got.Time != "14:00:00" {
		t.Fatalf("expected offset trimmed from kickoff time, got %q", got.Time)
	}
	if got.HomeScore == nil || *got.HomeScore != 2 {
		t.Fatalf("expected home score 2, got %v", got.HomeScore)
	}
	if got.AwayScore != nil || got.Capacity != nil {
		t.Fatalf("expected unset numbers to stay nil")
	}
}

func TestMapTeamFallsBackToLegacyBadge(t *testing.T) {
	got := mapTeam(teamResponse{ID: "133604", Name: "Arsenal", TeamBadge: "legacy.png"})
	if got.Badge != "legacy.png" {
		t.Fatalf("expected legacy badge, got %q", got.Badge)
	}
	got = mapTeam(teamResponse{ID: "133604", Badge: "new.png", TeamBadge: "legacy.png"})
	if got.Badge != "new.png" {
		t.Fatalf("expected current badge to win, got %q", got.Badge)
	}
}

func TestMapPlayerFallsBackToCutout(t *testing.T) {
	got := mapPlayer(playerResponse{ID: "34145937", Name: "Bukayo Saka", Cutout: "cut.png"})
	if got.Thumbnail != "cut.png" {
		t.Fatalf("expected cutout thumbnail, got %q", got.Thumbnail)
	}
}

func TestMapSlicesNeverNil(t *testing.T) {
	if got := mapEvents(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil events, got %v", got)
	}
	if got := mapPlayers(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil players, got %v", got)
	}
}

func TestMapEventHeadToHeadAndCapacity(t *testing.T) {
	cases := []struct {
		name         string
		event        eventResponse
		wantCapacity *int
		wantH2H      *matches.HeadToHead
	}{
		{
			name: "capacity preferred over spectators",
			event: eventResponse{
				Capacity:   flexInt{value: 60000, set: true},
				Spectators: flexInt{value: 41000, set: true},
			},
			wantCapacity: intPtr(60000),
		},
		{
			name:         "spectators used when capacity absent",
			event:        eventResponse{Spectators: flexInt{value: 41000, set: true}},
			wantCapacity: intPtr(41000),
		},
		{
			name:    "one counter is enough for head to head",
			event:   eventResponse{Draws: flexInt{value: 2, set: true}},
			wantH2H: &matches.HeadToHead{Draws: 2},
		},
		{
			name: "all counters",
			event: eventResponse{
				HomeWins: flexInt{value: 3, set: true},
				Draws:    flexInt{value: 2, set: true},
				AwayWins: flexInt{value: 1, set: true},
			},
			wantH2H: &matches.HeadToHead{HomeWins: 3, Draws: 2, AwayWins: 1},
		},
		{name: "nothing set"},
	}
	for _, tc := range cases {
		got := mapEvent(tc.event)
		if (got.Capacity == nil) != (tc.wantCapacity == nil) ||
			(got.Capacity != nil && *got.Capacity != *tc.wantCapacity) {
			t.Fatalf("%s: unexpected capacity %v", tc.name, got.Capacity)
		}
		if (got.HeadToHead == nil) != (tc.wantH2H == nil) ||
			(got.HeadToHead != nil && *got.HeadToHead != *tc.wantH2H) {
			t.Fatalf("%s: unexpected head to head %+v", tc.name, got.HeadToHead)
		}
	}
}

func intPtr(v int) *int { return &v }
