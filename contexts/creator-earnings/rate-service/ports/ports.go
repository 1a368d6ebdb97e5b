package ports

import (
	"context"
	"time"

	"claimdesk/contexts/creator-earnings/rate-service/domain/entities"
)

type Repository interface {
	// ReplaceActiveRate deactivates the current active record and installs
	// the new one atomically, so the single-active invariant holds even
	// under concurrent admin writes.
	ReplaceActiveRate(ctx context.Context, rate entities.RateConfiguration) error
	GetActiveRate(ctx context.Context) (entities.RateConfiguration, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
