package teststubs

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
	"github.com/preston-bernstein/matchday-service/internal/domain/players"
	"github.com/preston-bernstein/matchday-service/internal/domain/teams"
	"github.com/preston-bernstein/matchday-service/internal/sportsdb"
	"github.com/preston-bernstein/matchday-service/internal/storage"
)

// StubSource is a test double for gateway.Source.
type StubSource struct {
	Events    []matches.MatchEvent
	EventsErr error
	Teams     map[string]teams.Team
	Rosters   map[string][]players.Player // keyed by team id
	RosterErr map[string]error            // keyed by team id
	Players   map[string]players.Player
	Err       error // returned by every lookup when set

	// CancelAware makes SeasonEvents and TeamPlayers fail on a done ctx,
	// the way the real client does.
	CancelAware bool

	Calls  atomic.Int32
	Notify chan struct{}

	mu         sync.Mutex
	rosterHits []string
}

// SeasonEvents returns the configured events.
func (s *StubSource) SeasonEvents(ctx context.Context, leagueID, season string) ([]matches.MatchEvent, error) {
	_ = leagueID
	_ = season
	s.track()
	if s.CancelAware && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if s.EventsErr != nil {
		return nil, s.EventsErr
	}
	return s.Events, s.Err
}

// LookupEvent searches the configured events.
func (s *StubSource) LookupEvent(ctx context.Context, id string) (matches.MatchEvent, error) {
	_ = ctx
	s.track()
	if s.Err != nil {
		return matches.MatchEvent{}, s.Err
	}
	for _, e := range s.Events {
		if e.ID == id {
			return e, nil
		}
	}
	return matches.MatchEvent{}, fmt.Errorf("event %s: %w", id, sportsdb.ErrNotFound)
}

// LookupTeam returns a configured team.
func (s *StubSource) LookupTeam(ctx context.Context, id string) (teams.Team, error) {
	_ = ctx
	s.track()
	if s.Err != nil {
		return teams.Team{}, s.Err
	}
	if t, ok := s.Teams[id]; ok {
		return t, nil
	}
	return teams.Team{}, fmt.Errorf("team %s: %w", id, sportsdb.ErrNotFound)
}

// TeamPlayers returns the configured roster and records the request order.
func (s *StubSource) TeamPlayers(ctx context.Context, teamID string) ([]players.Player, error) {
	s.track()
	s.mu.Lock()
	s.rosterHits = append(s.rosterHits, teamID)
	s.mu.Unlock()
	if s.CancelAware && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if err := s.RosterErr[teamID]; err != nil {
		return nil, err
	}
	return s.Rosters[teamID], nil
}

// LookupPlayer returns a configured player.
func (s *StubSource) LookupPlayer(ctx context.Context, id string) (players.Player, error) {
	_ = ctx
	s.track()
	if s.Err != nil {
		return players.Player{}, s.Err
	}
	if p, ok := s.Players[id]; ok {
		return p, nil
	}
	return players.Player{}, fmt.Errorf("player %s: %w", id, sportsdb.ErrNotFound)
}

// RosterRequests lists team ids passed to TeamPlayers, in call order.
func (s *StubSource) RosterRequests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.rosterHits...)
}

func (s *StubSource) track() {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
}

// RecordingKV wraps a MemoryKV and counts writes.
type RecordingKV struct {
	*storage.MemoryKV
	Sets atomic.Int32
}

// NewRecordingKV returns an empty recording store.
func NewRecordingKV() *RecordingKV {
	return &RecordingKV{MemoryKV: storage.NewMemoryKV()}
}

// Set counts the write and forwards it.
func (r *RecordingKV) Set(ctx context.Context, key string, value []byte) error {
	r.Sets.Add(1)
	return r.MemoryKV.Set(ctx, key, value)
}

// FailingKV returns the configured errors from Get and Set.
type FailingKV struct {
	GetErr error
	SetErr error
	Sets   atomic.Int32
}

// Get returns GetErr, or storage.ErrNotFound when none is set.
func (f *FailingKV) Get(ctx context.Context, key string) ([]byte, error) {
	_ = ctx
	_ = key
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	return nil, storage.ErrNotFound
}

// Set counts the attempt and returns SetErr.
func (f *FailingKV) Set(ctx context.Context, key string, value []byte) error {
	_ = ctx
	_ = key
	_ = value
	f.Sets.Add(1)
	return f.SetErr
}
