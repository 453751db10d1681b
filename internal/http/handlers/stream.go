package handlers

import (
	nethttp "net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/matchday-service/internal/logging"
	"github.com/preston-bernstein/matchday-service/internal/state"
)

const (
	streamBuffer = 32
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
)

// Stream upgrades to a websocket and pushes state events. The optional
// ?kinds=matches,favorites query narrows which events are sent; the initial
// snapshot is always sent.
type Stream struct {
	h        *Handler
	upgrader websocket.Upgrader
}

// NewStream builds the websocket endpoint. allowOrigin nil accepts every origin.
func NewStream(h *Handler, allowOrigin func(r *nethttp.Request) bool) *Stream {
	if allowOrigin == nil {
		allowOrigin = func(*nethttp.Request) bool { return true }
	}
	return &Stream{
		h: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     allowOrigin,
		},
	}
}

func (s *Stream) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, s.h.logger)
	filter := parseKinds(r.URL.Query().Get("kinds"))

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logger, "websocket upgrade failed", "error", err.Error())
		return
	}
	defer conn.Close()

	events, cancel := s.h.state.Subscribe(streamBuffer)
	defer cancel()

	logging.Info(logger, "stream subscriber connected")
	defer logging.Info(logger, "stream subscriber disconnected")

	closed := make(chan struct{})
	go readPump(conn, closed)

	if err := writeEvent(conn, state.Event{Kind: state.KindSnapshot, State: s.h.state.Snapshot()}); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				time.Now().Add(writeWait))
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			if len(filter) > 0 && !filter[evt.Kind] {
				continue
			}
			if err := writeEvent(conn, evt); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so control messages are processed, and
// signals when the peer goes away.
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeEvent(conn *websocket.Conn, evt state.Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(evt)
}

func parseKinds(raw string) map[state.Kind]bool {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	out := make(map[state.Kind]bool)
	for _, part := range strings.Split(raw, ",") {
		if k := strings.TrimSpace(part); k != "" {
			out[state.Kind(k)] = true
		}
	}
	return out
}
