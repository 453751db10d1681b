package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
)

// StubRefresher records lifecycle calls made by the server.
type StubRefresher struct {
	StartCalls atomic.Int32
	StopCalls  atomic.Int32
	StopErr    error
	Started    chan struct{}
}

func (r *StubRefresher) Start(ctx context.Context) {
	_ = ctx
	if r.StartCalls.Add(1) == 1 && r.Started != nil {
		close(r.Started)
	}
}

func (r *StubRefresher) Stop(ctx context.Context) error {
	_ = ctx
	r.StopCalls.Add(1)
	return r.StopErr
}

// StubHTTPServer implements the server's httpServer contract.
type StubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenErr     error
	ShutdownErr   error
	ListenCalls   atomic.Int32
	ShutdownCalls atomic.Int32
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls.Add(1)
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.ShutdownCalls.Add(1)
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string          { return s.AddrVal }
func (s *StubHTTPServer) Handler() http.Handler { return s.HandlerVal }

// BlockingHTTPServer holds Shutdown until Unblock closes or ctx expires.
type BlockingHTTPServer struct {
	AddrVal       string
	Unblock       chan struct{}
	ShutdownCalls atomic.Int32
}

func (b *BlockingHTTPServer) ListenAndServe() error { return http.ErrServerClosed }

func (b *BlockingHTTPServer) Shutdown(ctx context.Context) error {
	b.ShutdownCalls.Add(1)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.Unblock:
		return nil
	}
}

func (b *BlockingHTTPServer) Addr() string          { return b.AddrVal }
func (b *BlockingHTTPServer) Handler() http.Handler { return http.NotFoundHandler() }

// ErrListen is returned by ErrHTTPServer.
var ErrListen = errors.New("listen failure")

// ErrHTTPServer fails straight away from ListenAndServe.
type ErrHTTPServer struct {
	ShutdownCalls atomic.Int32
}

func (e *ErrHTTPServer) ListenAndServe() error { return ErrListen }

func (e *ErrHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	e.ShutdownCalls.Add(1)
	return nil
}

func (e *ErrHTTPServer) Addr() string          { return ":0" }
func (e *ErrHTTPServer) Handler() http.Handler { return http.NotFoundHandler() }
