package matches

import "fmt"

// badgeURLFormat is TheSportsDB's conventional badge location, used when an
// event carries no badge of its own.
const badgeURLFormat = "https://www.thesportsdb.com/images/media/team/badge/%s.png"

// HeadToHead carries historical counters between the two teams.
type HeadToHead struct {
	HomeWins int `json:"homeWins"`
	Draws    int `json:"draws"`
	AwayWins int `json:"awayWins"`
}

// MatchEvent is one scheduled fixture. Values are treated as immutable once
// fetched: callers display them or copy them into favorites, never edit them.
type MatchEvent struct {
	ID            string      `json:"id"`
	League        string      `json:"league"`
	LeagueID      string      `json:"leagueId,omitempty"`
	Season        string      `json:"season"`
	Round         string      `json:"round,omitempty"`
	HomeTeamID    string      `json:"homeTeamId"`
	HomeTeam      string      `json:"homeTeam"`
	AwayTeamID    string      `json:"awayTeamId"`
	AwayTeam      string      `json:"awayTeam"`
	HomeTeamBadge string      `json:"homeTeamBadge,omitempty"`
	AwayTeamBadge string      `json:"awayTeamBadge,omitempty"`
	Date          string      `json:"date"`
	Time          string      `json:"time,omitempty"`
	Status        string      `json:"status,omitempty"`
	Venue         string      `json:"venue,omitempty"`
	City          string      `json:"city,omitempty"`
	Country       string      `json:"country,omitempty"`
	Capacity      *int        `json:"capacity,omitempty"`
	HomeScore     *int        `json:"homeScore,omitempty"`
	AwayScore     *int        `json:"awayScore,omitempty"`
	HeadToHead    *HeadToHead `json:"headToHead,omitempty"`
	Description   string      `json:"description,omitempty"`
}

// HomeBadge returns the home badge, falling back to the conventional path.
func (m MatchEvent) HomeBadge() string {
	return BadgeURL(m.HomeTeamID, m.HomeTeamBadge)
}

// AwayBadge returns the away badge, falling back to the conventional path.
func (m MatchEvent) AwayBadge() string {
	return BadgeURL(m.AwayTeamID, m.AwayTeamBadge)
}

// BadgeURL returns badge when set, otherwise the conventional badge path for teamID.
func BadgeURL(teamID, badge string) string {
	if badge != "" {
		return badge
	}
	if teamID == "" {
		return ""
	}
	return fmt.Sprintf(badgeURLFormat, teamID)
}
