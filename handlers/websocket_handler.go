package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dosada05/gaming-portal/brackets"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *brackets.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler accepts connections from allowedOrigins, or from any
// origin when the list is empty or contains "*".
func NewWebSocketHandler(hub *brackets.Hub, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

func validRoom(room string) bool {
	switch room {
	case brackets.RoomEvents, brackets.RoomStandings:
		return true
	}
	idStr, ok := strings.CutPrefix(room, "event_")
	if !ok {
		return false
	}
	id, err := strconv.Atoi(idStr)
	return err == nil && id > 0
}

// ServeWs subscribes the client to one room: events, standings or event_<id>.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")
	if !validRoom(room) {
		notFoundResponse(w, r, "unknown room")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("room", room), slog.Any("error", err))
		return
	}

	client := brackets.NewClient(h.hub, conn, room)
	if !h.hub.RegisterClient(client) {
		h.logger.Debug("websocket hub stopped, closing connection", slog.String("room", room))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
