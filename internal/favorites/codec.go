package favorites

import (
	"encoding/json"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
)

// encode serializes the full set as a JSON array in insertion order.
func encode(items []matches.MatchEvent) ([]byte, error) {
	if items == nil {
		items = []matches.MatchEvent{}
	}
	return json.Marshal(items)
}

// decode is the inverse of encode. A JSON null decodes to an empty set.
func decode(data []byte) ([]matches.MatchEvent, error) {
	var items []matches.MatchEvent
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []matches.MatchEvent{}
	}
	return items, nil
}
