package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "claimdesk/contexts/creator-earnings/claim-service/application"
	domainerrors "claimdesk/contexts/creator-earnings/claim-service/domain/errors"
	"claimdesk/contexts/creator-earnings/claim-service/ports"
)

const DefaultLockTTL = 30 * time.Minute

type LockClaimCommand struct {
	ClaimID string
	ActorID string
}

// LockClaimUseCase implements the advisory review lock. The lock never
// gates the lifecycle transitions; it only tells other reviewers to stay
// out of the edit UI. Contention is an expected outcome, not an error.
type LockClaimUseCase struct {
	Claims   ports.ClaimRepository
	Notifier ports.Notifier
	Clock    ports.Clock
	LockTTL  time.Duration
	Logger   *slog.Logger
}

// Lock returns true when the actor now holds the lock. A lock held by
// someone else is respected until it is older than the TTL, after which
// it is silently reclaimable.
func (uc LockClaimUseCase) Lock(ctx context.Context, cmd LockClaimCommand) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	actorID := strings.TrimSpace(cmd.ActorID)
	if actorID == "" {
		return false, domainerrors.ErrUnauthorizedActor
	}
	claim, err := uc.Claims.GetClaim(ctx, strings.TrimSpace(cmd.ClaimID))
	if err != nil {
		return false, err
	}

	now := uc.Clock.Now().UTC()
	if claim.LockedBy != "" && claim.LockedBy != actorID && claim.Locked(now, uc.lockTTL()) {
		application.PublishBestEffort(ctx, uc.Notifier, uc.Logger, ports.Notification{
			Event:    "lock_failed",
			Audience: ports.UserAudience(actorID),
			Payload: map[string]any{
				"claimId":   claim.ClaimID,
				"lockedBy":  claim.LockedBy,
				"message":   "claim is being reviewed by someone else",
				"timestamp": now,
			},
		})
		return false, nil
	}

	expectedVersion := claim.Version
	claim.LockedBy = actorID
	claim.LockedAt = &now
	claim.UpdatedAt = now
	if err := uc.Claims.UpdateClaim(ctx, claim, expectedVersion); err != nil {
		return false, err
	}

	application.PublishBestEffort(ctx, uc.Notifier, uc.Logger, ports.Notification{
		Event:    "claim_locked",
		Audience: ports.BroadcastAudience(),
		Payload: map[string]any{
			"claimId":   claim.ClaimID,
			"userId":    actorID,
			"message":   "claim locked for review",
			"timestamp": now,
		},
	})
	logger.Info("claim locked",
		"event", "claim_locked",
		"module", "creator-earnings/claim-service",
		"layer", "application",
		"claim_id", claim.ClaimID,
		"locked_by", actorID,
	)
	return true, nil
}

// Unlock clears the lock only when the caller holds it. Anything else is a
// silent no-op so stale clients cannot break an active review session.
func (uc LockClaimUseCase) Unlock(ctx context.Context, cmd LockClaimCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	actorID := strings.TrimSpace(cmd.ActorID)
	if actorID == "" {
		return domainerrors.ErrUnauthorizedActor
	}
	claim, err := uc.Claims.GetClaim(ctx, strings.TrimSpace(cmd.ClaimID))
	if err != nil {
		return err
	}
	if claim.LockedBy != actorID {
		return nil
	}

	now := uc.Clock.Now().UTC()
	expectedVersion := claim.Version
	claim.LockedBy = ""
	claim.LockedAt = nil
	claim.UpdatedAt = now
	if err := uc.Claims.UpdateClaim(ctx, claim, expectedVersion); err != nil {
		return err
	}

	application.PublishBestEffort(ctx, uc.Notifier, uc.Logger, ports.Notification{
		Event:    "claim_unlocked",
		Audience: ports.BroadcastAudience(),
		Payload: map[string]any{
			"claimId":   claim.ClaimID,
			"userId":    actorID,
			"message":   "claim unlocked",
			"timestamp": now,
		},
	})
	logger.Info("claim unlocked",
		"event", "claim_unlocked",
		"module", "creator-earnings/claim-service",
		"layer", "application",
		"claim_id", claim.ClaimID,
		"unlocked_by", actorID,
	)
	return nil
}

func (uc LockClaimUseCase) lockTTL() time.Duration {
	if uc.LockTTL <= 0 {
		return DefaultLockTTL
	}
	return uc.LockTTL
}
