package messaging

import (
	"context"
	"log/slog"
	"sync"

	"claimdesk/contexts/creator-earnings/claim-service/ports"
)

// Hub is the in-process notification channel. Lifecycle events fan out to
// connected clients addressed by broadcast, role, or user id. Delivery is
// best-effort: a slow subscriber drops events rather than blocking the
// publishing request.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscription]struct{}
	logger      *slog.Logger
}

type Subscription struct {
	UserID string
	Role   string
	C      chan ports.Notification

	hub *Hub
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[*Subscription]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a client identified by user id and role. The caller
// must Close the subscription when the client disconnects.
func (h *Hub) Subscribe(userID string, role string) *Subscription {
	sub := &Subscription{
		UserID: userID,
		Role:   role,
		C:      make(chan ports.Notification, 128),
		hub:    h,
	}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (s *Subscription) Close() {
	s.hub.mu.Lock()
	delete(s.hub.subscribers, s)
	s.hub.mu.Unlock()
}

// Publish implements the claim service's Notifier port.
func (h *Hub) Publish(ctx context.Context, notification ports.Notification) error {
	h.mu.RLock()
	targets := make([]*Subscription, 0, len(h.subscribers))
	for sub := range h.subscribers {
		if matches(notification.Audience, sub) {
			targets = append(targets, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub.C <- notification:
		default:
			if h.logger != nil {
				h.logger.Warn("dropping notification for slow subscriber",
					"event", "hub_publish_drop",
					"module", "internal/platform/messaging",
					"layer", "platform",
					"notification_event", notification.Event,
					"subscriber_user", sub.UserID,
				)
			}
		}
	}

	if h.logger != nil {
		h.logger.Info("notification published",
			"event", "hub_publish",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"notification_event", notification.Event,
			"broadcast", notification.Audience.Broadcast,
			"role", notification.Audience.Role,
			"user_id", notification.Audience.UserID,
			"subscribers", len(targets),
		)
	}
	return nil
}

func matches(audience ports.Audience, sub *Subscription) bool {
	switch {
	case audience.Broadcast:
		return true
	case audience.Role != "":
		return sub.Role == audience.Role
	case audience.UserID != "":
		return sub.UserID == audience.UserID
	default:
		return false
	}
}
