package noop

import (
	"context"

	"claimdesk/contexts/creator-earnings/claim-service/ports"
)

// Notifier discards every notification. Used by tests and by deployments
// that run without a realtime channel.
type Notifier struct{}

func (Notifier) Publish(_ context.Context, _ ports.Notification) error {
	return nil
}
