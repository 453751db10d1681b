package sportsdb

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// TheSportsDB is loose with types: numeric fields arrive as "12", 12, "" or null.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*s = flexString(raw)
		return nil
	}
	*s = flexString(string(data))
	return nil
}

type flexInt struct {
	value int
	set   bool
}

func (n *flexInt) UnmarshalJSON(data []byte) error {
	*n = flexInt{}
	var raw flexString
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil
	}
	if v, err := strconv.Atoi(text); err == nil {
		*n = flexInt{value: v, set: true}
		return nil
	}
	// Some capacities come through as "52,000" or "1.5e4"; ignore what cannot
	// be read or does not fit an int.
	v, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", ""), 64)
	if err != nil || math.IsNaN(v) || v >= math.MaxInt || v < math.MinInt {
		return nil
	}
	*n = flexInt{value: int(v), set: true}
	return nil
}

func (n flexInt) ptr() *int {
	if !n.set {
		return nil
	}
	v := n.value
	return &v
}

type eventsResponse struct {
	Events []eventResponse `json:"events"`
}

type eventResponse struct {
	ID          flexString `json:"idEvent"`
	Name        string     `json:"strEvent"`
	League      string     `json:"strLeague"`
	LeagueID    flexString `json:"idLeague"`
	Season      string     `json:"strSeason"`
	Round       flexString `json:"intRound"`
	HomeTeamID  flexString `json:"idHomeTeam"`
	HomeTeam    string     `json:"strHomeTeam"`
	AwayTeamID  flexString `json:"idAwayTeam"`
	AwayTeam    string     `json:"strAwayTeam"`
	HomeBadge   string     `json:"strHomeTeamBadge"`
	AwayBadge   string     `json:"strAwayTeamBadge"`
	HomeScore   flexInt    `json:"intHomeScore"`
	AwayScore   flexInt    `json:"intAwayScore"`
	Date        string     `json:"dateEvent"`
	Time        string     `json:"strTime"`
	Status      string     `json:"strStatus"`
	Venue       string     `json:"strVenue"`
	City        string     `json:"strCity"`
	Country     string     `json:"strCountry"`
	Capacity    flexInt    `json:"intCapacity"`
	Spectators  flexInt    `json:"intSpectators"`
	HomeWins    flexInt    `json:"intHomeWins"`
	Draws       flexInt    `json:"intDraws"`
	AwayWins    flexInt    `json:"intAwayWins"`
	Description string     `json:"strDescriptionEN"`
}

type teamsResponse struct {
	Teams []teamResponse `json:"teams"`
}

type teamResponse struct {
	ID          flexString `json:"idTeam"`
	Name        string     `json:"strTeam"`
	ShortName   string     `json:"strTeamShort"`
	League      string     `json:"strLeague"`
	Country     string     `json:"strCountry"`
	Stadium     string     `json:"strStadium"`
	Capacity    flexInt    `json:"intStadiumCapacity"`
	FormedYear  flexInt    `json:"intFormedYear"`
	Badge       string     `json:"strBadge"`
	TeamBadge   string     `json:"strTeamBadge"`
	Description string     `json:"strDescriptionEN"`
}

// lookup_all_players.php uses "player"; lookupplayer.php uses "players".
type rosterResponse struct {
	Player []playerResponse `json:"player"`
}

type playerLookupResponse struct {
	Players []playerResponse `json:"players"`
}

type playerResponse struct {
	ID          flexString `json:"idPlayer"`
	Name        string     `json:"strPlayer"`
	TeamID      flexString `json:"idTeam"`
	Team        string     `json:"strTeam"`
	Position    string     `json:"strPosition"`
	Nationality string     `json:"strNationality"`
	Height      string     `json:"strHeight"`
	Weight      string     `json:"strWeight"`
	BornOn      string     `json:"dateBorn"`
	Thumbnail   string     `json:"strThumb"`
	Cutout      string     `json:"strCutout"`
	Description string     `json:"strDescriptionEN"`
}
