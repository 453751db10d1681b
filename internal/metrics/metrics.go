package metrics

import (
	"sync"
	"time"
)

type gatewayStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type flushStats struct {
	flushes      int
	errors       int
	lastDuration time.Duration
}

// Recorder captures lightweight, in-memory metrics about gateway calls and
// favorites flushes, mirroring them to OpenTelemetry when configured.
type Recorder struct {
	mu      sync.Mutex
	gateway map[string]*gatewayStats
	flush   flushStats
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		gateway: make(map[string]*gatewayStats),
		otel:    otel,
	}
}

// RecordGatewayCall increments counters for a gateway operation and stores the last observed latency.
func (r *Recorder) RecordGatewayCall(operation string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureStats(operation)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordGatewayCall(operation, duration, err)
	}
}

// RecordRateLimit tracks that an upstream response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(operation string, retryAfter time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureStats(operation)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(operation, retryAfter)
	}
}

// RecordFlush tracks a favorites snapshot write.
func (r *Recorder) RecordFlush(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.flush.flushes++
	r.flush.lastDuration = duration
	if err != nil {
		r.flush.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFlush(duration, err)
	}
}

// GatewayCalls returns the total attempts recorded for an operation.
func (r *Recorder) GatewayCalls(operation string) int {
	return r.Snapshot(operation).Calls
}

// GatewayErrors returns the total failed attempts recorded for an operation.
func (r *Recorder) GatewayErrors(operation string) int {
	return r.Snapshot(operation).Errors
}

// RateLimitHits returns the number of rate limit events seen for an operation.
func (r *Recorder) RateLimitHits(operation string) int {
	return r.Snapshot(operation).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for an operation.
func (r *Recorder) LastRetryAfter(operation string) time.Duration {
	return r.Snapshot(operation).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for an operation.
func (r *Recorder) LastCallLatency(operation string) time.Duration {
	return r.Snapshot(operation).LastCallLatency
}

// Flushes returns the number of favorites flushes and how many of them failed.
func (r *Recorder) Flushes() (total int, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flush.flushes, r.flush.errors
}

// Snapshot is a copy of the current stats for one gateway operation.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(operation string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.gateway[operation]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordRefreshCycle tracks refresher cycles.
func (r *Recorder) RecordRefreshCycle(duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordRefresh(duration)
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(operation string) *gatewayStats {
	stats, ok := r.gateway[operation]
	if !ok {
		stats = &gatewayStats{}
		r.gateway[operation] = stats
	}
	return stats
}
