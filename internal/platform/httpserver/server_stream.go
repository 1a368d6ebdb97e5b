package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"claimdesk/internal/shared/events"
)

// handleNotificationStream delivers lifecycle notifications over
// server-sent events. Each connected client receives the broadcasts plus
// anything addressed to its role or user id.
func (s *Server) handleNotificationStream(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}

	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported", "response writer does not support streaming")
		return
	}
	if s.hub == nil {
		writeError(w, http.StatusServiceUnavailable, "stream_unavailable", "notification stream is not configured")
		return
	}

	sub := s.hub.Subscribe(identity.UserID, identity.Role)
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	s.logger.Info("notification stream opened",
		"event", "notification_stream_opened",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"user_id", identity.UserID,
		"role", identity.Role,
	)

	for {
		select {
		case <-r.Context().Done():
			return
		case notification := <-sub.C:
			envelope := events.Envelope{
				EventID:       fmt.Sprintf("%s-%d", notification.Event, time.Now().UnixNano()),
				EventType:     notification.Event,
				SourceService: "creator-earnings",
				OccurredAtUTC: time.Now().UTC(),
				Payload:       notification.Payload,
			}
			data, err := json.Marshal(envelope)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", notification.Event, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
