package application

import (
	"context"
	"log/slog"

	"claimdesk/contexts/creator-earnings/claim-service/ports"
)

// PublishBestEffort sends a notification and logs a failure instead of
// propagating it. State mutations must never roll back because a
// connected client could not be reached.
func PublishBestEffort(ctx context.Context, notifier ports.Notifier, logger *slog.Logger, notification ports.Notification) {
	if notifier == nil {
		return
	}
	if err := notifier.Publish(ctx, notification); err != nil {
		ResolveLogger(logger).Warn("notification publish failed",
			"event", "claim_notification_publish_failed",
			"module", "creator-earnings/claim-service",
			"layer", "application",
			"notification_event", notification.Event,
			"error", err.Error(),
		)
	}
}
