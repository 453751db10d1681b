package players

import "strings"

// Matches reports whether query appears, ignoring case, in the player's
// name, team, nationality or position. An empty query matches everyone.
func (p Player) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{p.Name, p.Team, p.Nationality, p.Position} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Filter keeps the players matching query, preserving order.
func Filter(items []Player, query string) []Player {
	if strings.TrimSpace(query) == "" {
		return items
	}
	out := make([]Player, 0, len(items))
	for _, p := range items {
		if p.Matches(query) {
			out = append(out, p)
		}
	}
	return out
}
