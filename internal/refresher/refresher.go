package refresher

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
	"github.com/preston-bernstein/matchday-service/internal/domain/players"
	"github.com/preston-bernstein/matchday-service/internal/logging"
	"github.com/preston-bernstein/matchday-service/internal/metrics"
)

const (
	defaultInterval     = 10 * time.Minute
	defaultMatchesLimit = 20
)

// Gateway is the subset of the remote data gateway the refresher reads.
type Gateway interface {
	UpcomingMatches(ctx context.Context) []matches.MatchEvent
	TopPlayers(ctx context.Context) []players.Player
}

// StateWriter receives refreshed lists and loading flags.
type StateWriter interface {
	SetMatchesLoading(loading bool)
	SetMatches(items []matches.MatchEvent)
	SetPlayersLoading(loading bool)
	SetPlayers(items []players.Player)
}

// Hydrator restores persisted favorites.
type Hydrator interface {
	Hydrate(ctx context.Context) int
}

// Config controls refresh cadence and list sizes.
type Config struct {
	Interval     time.Duration
	MatchesLimit int
}

// Status describes the recent history of the refresh loop.
type Status struct {
	Cycles           int
	LastAttempt      time.Time
	LastCompleted    time.Time
	LastMatchCount   int
	LastPlayerCount  int
	ConsecutiveEmpty int
	FavoritesLoaded  bool
}

// IsReady reports whether favorites are hydrated and one cycle has finished.
// Empty results do not block readiness; the gateway reports failures as empty.
func (s Status) IsReady() bool {
	return s.FavoritesLoaded && !s.LastCompleted.IsZero()
}

// Refresher hydrates favorites on start, then keeps the shared match and
// player lists current on an interval.
type Refresher struct {
	gateway   Gateway
	state     StateWriter
	favorites Hydrator
	logger    *zerolog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	limit     int
	now       func() time.Time

	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	// cycleMu keeps an on-demand refresh from interleaving with a scheduled one.
	cycleMu sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// New constructs a Refresher with defaults applied. favorites may be nil.
func New(gw Gateway, st StateWriter, favorites Hydrator, logger *zerolog.Logger, recorder *metrics.Recorder, cfg Config) *Refresher {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.MatchesLimit <= 0 {
		cfg.MatchesLimit = defaultMatchesLimit
	}
	return &Refresher{
		gateway:   gw,
		state:     st,
		favorites: favorites,
		logger:    logger,
		metrics:   recorder,
		interval:  cfg.Interval,
		limit:     cfg.MatchesLimit,
		now:       time.Now,
		done:      make(chan struct{}),
		exited:    make(chan struct{}),
	}
}

// Start runs the loop until ctx is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	go func() {
		defer close(r.exited)
		logging.Info(r.logger, "refresher started", logging.FieldDurationMS, r.interval.Milliseconds())

		r.hydrateFavorites(ctx)
		r.RefreshAll(ctx)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logging.Info(r.logger, "refresher stopped")
				return
			case <-r.done:
				logging.Info(r.logger, "refresher stopped")
				return
			case <-ticker.C:
				r.RefreshAll(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for it to exit, bounded by ctx.
func (r *Refresher) Stop(ctx context.Context) error {
	r.stopOnce.Do(func() { close(r.done) })

	r.startMu.Lock()
	started := r.started
	r.startMu.Unlock()
	if !started {
		return nil
	}
	select {
	case <-r.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RefreshAll runs one full cycle: matches, then players.
func (r *Refresher) RefreshAll(ctx context.Context) {
	start := r.now()
	r.statusMu.Lock()
	r.status.LastAttempt = start
	r.statusMu.Unlock()

	nMatches := len(r.RefreshMatches(ctx))
	nPlayers := len(r.RefreshPlayers(ctx))

	duration := time.Since(start)
	r.metrics.RecordRefreshCycle(duration)

	r.statusMu.Lock()
	r.status.Cycles++
	r.status.LastCompleted = r.now()
	r.status.LastMatchCount = nMatches
	r.status.LastPlayerCount = nPlayers
	if nMatches == 0 && nPlayers == 0 {
		r.status.ConsecutiveEmpty++
	} else {
		r.status.ConsecutiveEmpty = 0
	}
	r.statusMu.Unlock()

	logging.Info(r.logger, "refresher cycle complete",
		"matches", nMatches,
		"players", nPlayers,
		logging.FieldDurationMS, duration.Milliseconds(),
	)
}

// RefreshMatches fetches upcoming matches, keeps the first MatchesLimit and publishes them.
func (r *Refresher) RefreshMatches(ctx context.Context) []matches.MatchEvent {
	r.cycleMu.Lock()
	defer r.cycleMu.Unlock()

	r.state.SetMatchesLoading(true)
	items := r.gateway.UpcomingMatches(ctx)
	if len(items) > r.limit {
		items = items[:r.limit]
	}
	r.state.SetMatches(items)
	return items
}

// RefreshPlayers fetches the top players list and publishes it.
func (r *Refresher) RefreshPlayers(ctx context.Context) []players.Player {
	r.cycleMu.Lock()
	defer r.cycleMu.Unlock()

	r.state.SetPlayersLoading(true)
	items := r.gateway.TopPlayers(ctx)
	r.state.SetPlayers(items)
	return items
}

// Status returns a snapshot of the loop's recent history.
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

func (r *Refresher) hydrateFavorites(ctx context.Context) {
	if r.favorites != nil {
		n := r.favorites.Hydrate(ctx)
		logging.Info(r.logger, "refresher loaded favorites", logging.FieldCount, n)
	}
	r.statusMu.Lock()
	r.status.FavoritesLoaded = true
	r.statusMu.Unlock()
}
