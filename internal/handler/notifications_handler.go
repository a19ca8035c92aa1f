package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/api"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/middleware"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/observability"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin enforcement happens in the CORS middleware; the stream
		// carries only the caller's own notifications.
		return true
	},
}

const (
	notificationPollInterval = 15 * time.Second
	writeWait                = 10 * time.Second
)

// NotificationsHandler serves the notification list endpoints and a
// WebSocket stream that relays upstream notification polls so the page
// header updates without the browser polling itself.
type NotificationsHandler struct {
	client   *api.Client
	sessions *session.Manager
}

// NewNotificationsHandler creates a notifications handler
func NewNotificationsHandler(client *api.Client, sessions *session.Manager) *NotificationsHandler {
	return &NotificationsHandler{client: client, sessions: sessions}
}

// List returns the user's notifications. Transient upstream failure on
// this read degrades to an empty list rather than breaking the page.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.client.Notifications(r.Context())
	if err != nil {
		slog.Warn("notification list degraded", slog.String("error", err.Error()))
		respondJSON(w, http.StatusOK, []domain.Notification{})
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

// MarkRead marks one notification as read
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid notification id")
		return
	}
	if err := h.client.MarkNotificationRead(r.Context(), id); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// MarkAllRead marks every notification as read
func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.client.MarkAllNotificationsRead(r.Context()); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// streamPayload is one push on the notification stream
type streamPayload struct {
	Unread        int                   `json:"unread"`
	Notifications []domain.Notification `json:"notifications"`
}

// Stream upgrades to a WebSocket and pushes the notification list on
// connect and then on every poll tick. Upstream failures are skipped
// silently; the stream keeps running.
func (h *NotificationsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		if h.sessions.Current(r.Context()) == nil {
			http.Error(w, `{"error":"Not authenticated"}`, http.StatusUnauthorized)
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	observability.NotificationStreamsActive.Inc()
	defer observability.NotificationStreamsActive.Dec()

	// Reader goroutine: drain control frames and detect disconnect
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(notificationPollInterval)
	defer ticker.Stop()

	if err := h.push(r, conn); err != nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := h.push(r, conn); err != nil {
				return
			}
		}
	}
}

func (h *NotificationsHandler) push(r *http.Request, conn *websocket.Conn) error {
	notifications, err := h.client.Notifications(r.Context())
	if err != nil {
		// Transient read failure: skip this tick
		slog.Debug("notification poll failed", slog.String("error", err.Error()))
		return nil
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(streamPayload{Unread: unread, Notifications: notifications})
}
