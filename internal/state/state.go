package state

import (
	"sync"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
	"github.com/preston-bernstein/matchday-service/internal/domain/players"
	"github.com/preston-bernstein/matchday-service/internal/domain/users"
)

// Kind names the slice of state an event changed.
type Kind string

const (
	KindMatches   Kind = "matches"
	KindPlayers   Kind = "players"
	KindFavorites Kind = "favorites"
	KindUser      Kind = "user"
	// KindSnapshot marks the first message a new stream subscriber receives.
	KindSnapshot Kind = "snapshot"
)

const defaultBuffer = 16

// State is the application-wide view shared by every client surface.
type State struct {
	Matches        []matches.MatchEvent `json:"matches"`
	MatchesLoading bool                 `json:"matchesLoading"`
	Players        []players.Player     `json:"players"`
	PlayersLoading bool                 `json:"playersLoading"`
	Favorites      []matches.MatchEvent `json:"favorites"`
	User           *users.User          `json:"user"`
}

// Event is published after every change and carries the full resulting state.
type Event struct {
	Kind  Kind  `json:"kind"`
	State State `json:"state"`
}

// Store is an observable container. All writes go through its setters.
type Store struct {
	mu    sync.RWMutex
	state State

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan Event
}

// New returns an empty store.
func New() *Store {
	return &Store{
		state: State{
			Matches:   []matches.MatchEvent{},
			Players:   []players.Player{},
			Favorites: []matches.MatchEvent{},
		},
		subs: make(map[int]chan Event),
	}
}

// Snapshot returns a copy safe to read without locks.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// SetMatchesLoading toggles the matches loading flag.
func (s *Store) SetMatchesLoading(loading bool) {
	s.update(KindMatches, func(st *State) { st.MatchesLoading = loading })
}

// SetMatches stores the match list and clears the loading flag.
func (s *Store) SetMatches(items []matches.MatchEvent) {
	items = cloneMatches(items)
	s.update(KindMatches, func(st *State) {
		st.Matches = items
		st.MatchesLoading = false
	})
}

// SetPlayersLoading toggles the players loading flag.
func (s *Store) SetPlayersLoading(loading bool) {
	s.update(KindPlayers, func(st *State) { st.PlayersLoading = loading })
}

// SetPlayers stores the player list and clears the loading flag.
func (s *Store) SetPlayers(items []players.Player) {
	items = append(make([]players.Player, 0, len(items)), items...)
	s.update(KindPlayers, func(st *State) {
		st.Players = items
		st.PlayersLoading = false
	})
}

// SetFavorites mirrors the favorites set. Only the favorites store should call it.
func (s *Store) SetFavorites(items []matches.MatchEvent) {
	items = cloneMatches(items)
	s.update(KindFavorites, func(st *State) { st.Favorites = items })
}

// SetUser records the signed-in user; nil signs out.
func (s *Store) SetUser(u *users.User) {
	if u != nil {
		cp := *u
		u = &cp
	}
	s.update(KindUser, func(st *State) { st.User = u })
}

// Subscribe returns a channel of events and a cancel func. A subscriber that
// falls behind by more than buffer events misses the overflow; publishers
// never block on it.
func (s *Store) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	ch := make(chan Event, buffer)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers reports the number of live subscriptions.
func (s *Store) Subscribers() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}

func (s *Store) update(kind Kind, mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.publish(Event{Kind: kind, State: snapshot})
}

func (s *Store) publish(evt Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

func (st State) clone() State {
	out := st
	out.Matches = cloneMatches(st.Matches)
	out.Players = append(make([]players.Player, 0, len(st.Players)), st.Players...)
	out.Favorites = cloneMatches(st.Favorites)
	if st.User != nil {
		u := *st.User
		out.User = &u
	}
	return out
}

func cloneMatches(in []matches.MatchEvent) []matches.MatchEvent {
	return append(make([]matches.MatchEvent, 0, len(in)), in...)
}
