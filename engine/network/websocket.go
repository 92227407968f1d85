package network

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/spaghettifunk/lumina/engine/core"
)

// MAX_MESSAGE_SIZE bounds one websocket message. A full frame is 1021 bytes.
const MAX_MESSAGE_SIZE = 64 << 10

/**
 * @brief Accepts live updates over websocket. Every binary message carries
 * one or more frames in the TCP wire format. A malformed message ends the
 * connection, like a short read does on TCP.
 */
type WebSocketHandler struct {
	table     *EmitterTable
	stats     *Stats
	upgrader  websocket.Upgrader
	readLimit int64
	logger    *log.Logger
}

func NewWebSocketHandler(table *EmitterTable, stats *Stats) *WebSocketHandler {
	if stats == nil {
		stats = NewStats()
	}
	return &WebSocketHandler{
		table:     table,
		stats:     stats,
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		readLimit: MAX_MESSAGE_SIZE,
		logger:    core.Logger().WithPrefix("ws"),
	}
}

func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(h.readLimit)

	logger := h.logger.With("conn", uuid.NewString(), "peer", r.RemoteAddr)
	logger.Info("connection opened")
	h.stats.connOpened()
	defer h.stats.connClosed()

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Info("connection closed")
			} else {
				logger.Warn("connection dropped", "err", err)
			}
			return
		}
		if kind != websocket.BinaryMessage {
			logger.Debug("ignoring non-binary message", "type", kind)
			continue
		}
		records, err := DecodeFrames(data)
		if err != nil {
			logger.Warn("malformed frame", "err", err)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "malformed frame"),
				time.Now().Add(time.Second))
			return
		}
		if _, discarded := h.stats.deliver(h.table, records); discarded > 0 {
			logger.Debug("discarded records for unknown emitters", "count", discarded)
		}
	}
}

// HealthHandler reports the table size and the shared connection counters as JSON.
func HealthHandler(table *EmitterTable, stats *Stats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stats.Snapshot(table.Len()))
	}
}

// NewHTTPServer serves /ws (live updates) and /health on addr.
func NewHTTPServer(addr string, table *EmitterTable, stats *Stats) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", NewWebSocketHandler(table, stats))
	mux.HandleFunc("/health", HealthHandler(table, stats))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
