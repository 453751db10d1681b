package favorites

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
	"github.com/preston-bernstein/matchday-service/internal/logging"
	"github.com/preston-bernstein/matchday-service/internal/metrics"
	"github.com/preston-bernstein/matchday-service/internal/storage"
)

// DefaultKey is the storage key holding the favorites snapshot.
const DefaultKey = "favorites"

// Listener receives a copy of the set after every change.
type Listener func(items []matches.MatchEvent)

// Store owns the saved-match set and mirrors it to durable storage.
//
// Mutations are serialized: Add and Remove hold writeMu across the in-memory
// change and the flush, so the last snapshot written always matches the last
// mutation applied. The in-memory set is authoritative; a failed flush is
// logged and counted, never returned.
//
// The persisted snapshot is loaded at most once, under writeMu. A mutation
// that arrives before Hydrate loads it first, so a flush can never overwrite
// saved favorites with a set that never saw them.
type Store struct {
	kv      storage.KV
	key     string
	logger  *zerolog.Logger
	metrics *metrics.Recorder

	writeMu  sync.Mutex
	hydrated bool // guarded by writeMu

	mu       sync.RWMutex
	items    []matches.MatchEvent
	onChange Listener
}

// New builds an empty store. Call Hydrate to pull the persisted snapshot.
func New(kv storage.KV, key string, logger *zerolog.Logger, recorder *metrics.Recorder) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		kv:      kv,
		key:     key,
		logger:  logger,
		metrics: recorder,
		items:   []matches.MatchEvent{},
	}
}

// OnChange registers the listener notified after each mutation. The listener
// runs while the write lock is held and must not call back into the store's
// mutating methods.
func (s *Store) OnChange(fn Listener) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Load reads the persisted snapshot. Missing or unreadable data is an empty set.
func (s *Store) Load(ctx context.Context) []matches.MatchEvent {
	logger := logging.FromContext(ctx, s.logger)
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logging.Error(logger, "favorites load failed", err, logging.FieldKey, s.key)
		}
		return []matches.MatchEvent{}
	}
	items, err := decode(data)
	if err != nil {
		logging.Warn(logger, "favorites snapshot unreadable, starting empty", logging.FieldKey, s.key, "error", err.Error())
		return []matches.MatchEvent{}
	}
	return items
}

// Hydrate pulls the persisted snapshot into memory and returns the set size.
// Once the store holds loaded or mutated state, later calls only report the
// current size; they never discard mutations whose flush failed.
func (s *Store) Hydrate(ctx context.Context) int {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.hydrated {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return len(s.items)
	}
	snapshot, listener := s.hydrateLocked(ctx)
	logging.Info(logging.FromContext(ctx, s.logger), "favorites hydrated", logging.FieldCount, len(snapshot))
	notify(listener, snapshot)
	return len(snapshot)
}

// Hydrated reports whether the persisted snapshot has been applied.
func (s *Store) Hydrated() bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.hydrated
}

// ensureHydratedLocked loads the snapshot ahead of a mutation; the mutation
// itself notifies the listener. Callers hold writeMu.
func (s *Store) ensureHydratedLocked(ctx context.Context) {
	if s.hydrated {
		return
	}
	snapshot, _ := s.hydrateLocked(ctx)
	logging.Warn(logging.FromContext(ctx, s.logger), "favorites mutated before hydration, loaded snapshot first", logging.FieldCount, len(snapshot))
}

// hydrateLocked ignores cancellation: a half-read snapshot followed by a
// flush would erase the saved set.
func (s *Store) hydrateLocked(ctx context.Context) ([]matches.MatchEvent, Listener) {
	return s.replaceLocked(s.Load(context.WithoutCancel(ctx)))
}

// Add inserts match unless its id is already present, then flushes the set.
// The flush happens even when nothing changed.
func (s *Store) Add(ctx context.Context, match matches.MatchEvent) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.ensureHydratedLocked(ctx)

	s.mu.Lock()
	if indexOf(s.items, match.ID) < 0 {
		s.items = append(s.items, match)
	}
	snapshot := s.copyLocked()
	listener := s.onChange
	s.mu.Unlock()

	s.flush(ctx, snapshot)
	notify(listener, snapshot)
}

// Remove deletes the entry with id, if any, then flushes the set.
func (s *Store) Remove(ctx context.Context, id string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.ensureHydratedLocked(ctx)

	s.mu.Lock()
	if i := indexOf(s.items, id); i >= 0 {
		s.items = append(s.items[:i:i], s.items[i+1:]...)
	}
	snapshot := s.copyLocked()
	listener := s.onChange
	s.mu.Unlock()

	s.flush(ctx, snapshot)
	notify(listener, snapshot)
}

// ReplaceAll overwrites the in-memory set without flushing. Duplicate ids
// keep their first occurrence. The replacement counts as hydration.
func (s *Store) ReplaceAll(items []matches.MatchEvent) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	snapshot, listener := s.replaceLocked(items)
	notify(listener, snapshot)
}

func (s *Store) replaceLocked(items []matches.MatchEvent) ([]matches.MatchEvent, Listener) {
	next := make([]matches.MatchEvent, 0, len(items))
	for _, m := range items {
		if indexOf(next, m.ID) < 0 {
			next = append(next, m)
		}
	}

	s.mu.Lock()
	s.items = next
	snapshot := s.copyLocked()
	listener := s.onChange
	s.mu.Unlock()

	s.hydrated = true
	return snapshot, listener
}

// IsFavorite reports whether id is in the in-memory set.
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.items, id) >= 0
}

// List returns a copy of the set in insertion order.
func (s *Store) List() []matches.MatchEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Get returns the saved match with id.
func (s *Store) Get(id string) (matches.MatchEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.items, id); i >= 0 {
		return s.items[i], true
	}
	return matches.MatchEvent{}, false
}

// flush overwrites the durable record with snapshot. The request context's
// cancellation is dropped so a disconnecting client cannot skip the write.
func (s *Store) flush(ctx context.Context, snapshot []matches.MatchEvent) {
	logger := logging.FromContext(ctx, s.logger)
	start := time.Now()

	data, err := encode(snapshot)
	if err == nil {
		err = s.kv.Set(context.WithoutCancel(ctx), s.key, data)
	}
	duration := time.Since(start)
	s.metrics.RecordFlush(duration, err)

	if err != nil {
		logging.Error(logger, "favorites flush failed", err,
			logging.FieldKey, s.key,
			logging.FieldCount, len(snapshot),
			logging.FieldDurationMS, duration.Milliseconds(),
		)
	}
}

func (s *Store) copyLocked() []matches.MatchEvent {
	return append(make([]matches.MatchEvent, 0, len(s.items)), s.items...)
}

func indexOf(items []matches.MatchEvent, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func notify(fn Listener, snapshot []matches.MatchEvent) {
	if fn != nil {
		fn(snapshot)
	}
}
