package workers

import (
	"context"
	"log/slog"
	"time"

	application "claimdesk/contexts/creator-earnings/claim-service/application"
	"claimdesk/contexts/creator-earnings/claim-service/ports"
)

// LockSweeper releases review locks that were abandoned past the TTL.
// Lock reclaim already works passively on the next Lock call; the sweeper
// keeps the claim list honest for clients that only read LockedBy.
type LockSweeper struct {
	Claims    ports.ClaimRepository
	Notifier  ports.Notifier
	Clock     ports.Clock
	LockTTL   time.Duration
	BatchSize int
	Disabled  bool
	Logger    *slog.Logger
}

func (j LockSweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	if j.Disabled {
		logger.Info("lock sweeper disabled by feature flag",
			"event", "claim_lock_sweeper_disabled",
			"module", "creator-earnings/claim-service",
			"layer", "worker",
		)
		return nil
	}
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}
	ttl := j.LockTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	limit := j.BatchSize
	if limit <= 0 {
		limit = 100
	}

	stale, err := j.Claims.ListStaleLocks(ctx, now.Add(-ttl), limit)
	if err != nil {
		logger.Error("stale lock listing failed",
			"event", "claim_lock_sweep_list_failed",
			"module", "creator-earnings/claim-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	for _, claim := range stale {
		holder := claim.LockedBy
		expectedVersion := claim.Version
		claim.LockedBy = ""
		claim.LockedAt = nil
		claim.UpdatedAt = now
		if err := j.Claims.UpdateClaim(ctx, claim, expectedVersion); err != nil {
			// A concurrent lock/unlock won the race; skip and move on.
			logger.Warn("stale lock release skipped",
				"event", "claim_lock_sweep_release_skipped",
				"module", "creator-earnings/claim-service",
				"layer", "worker",
				"claim_id", claim.ClaimID,
				"error", err.Error(),
			)
			continue
		}
		application.PublishBestEffort(ctx, j.Notifier, j.Logger, ports.Notification{
			Event:    "claim_unlocked",
			Audience: ports.BroadcastAudience(),
			Payload: map[string]any{
				"claimId":   claim.ClaimID,
				"userId":    holder,
				"message":   "abandoned review lock released",
				"timestamp": now,
			},
		})
		logger.Info("stale lock released",
			"event", "claim_lock_sweep_released",
			"module", "creator-earnings/claim-service",
			"layer", "worker",
			"claim_id", claim.ClaimID,
			"previous_holder", holder,
		)
	}
	return nil
}
