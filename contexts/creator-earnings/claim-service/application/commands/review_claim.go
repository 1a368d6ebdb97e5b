package commands

import (
	"context"
	"log/slog"
	"strings"

	application "claimdesk/contexts/creator-earnings/claim-service/application"
	"claimdesk/contexts/creator-earnings/claim-service/domain/entities"
	domainerrors "claimdesk/contexts/creator-earnings/claim-service/domain/errors"
	"claimdesk/contexts/creator-earnings/claim-service/ports"
)

type AccountApproveCommand struct {
	ClaimID string
	ActorID string
}

type AccountRejectCommand struct {
	ClaimID string
	ActorID string
	Reason  string
}

// ReviewClaimUseCase holds the account-reviewer transitions. Both accept a
// claim in pending or user_rejected state: a rejected claim loops back into
// review rather than terminating.
type ReviewClaimUseCase struct {
	Claims   ports.ClaimRepository
	Notifier ports.Notifier
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (uc ReviewClaimUseCase) Approve(ctx context.Context, cmd AccountApproveCommand) (entities.Claim, error) {
	logger := application.ResolveLogger(uc.Logger)
	claim, err := uc.Claims.GetClaim(ctx, strings.TrimSpace(cmd.ClaimID))
	if err != nil {
		return entities.Claim{}, err
	}
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Claim{}, domainerrors.ErrUnauthorizedActor
	}
	if !reviewable(claim) {
		return entities.Claim{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	expectedVersion := claim.Version
	claim.AppendHistory(entities.HistoryActionAccountApproved, cmd.ActorID, "", now)
	claim.Status = entities.ClaimStatusAccountApproved
	claim.ReviewedBy = strings.TrimSpace(cmd.ActorID)
	claim.UpdatedAt = now
	if err := uc.Claims.UpdateClaim(ctx, claim, expectedVersion); err != nil {
		return entities.Claim{}, err
	}
	claim.Version = expectedVersion + 1

	application.PublishBestEffort(ctx, uc.Notifier, uc.Logger, ports.Notification{
		Event:    "claim_status_changed",
		Audience: ports.BroadcastAudience(),
		Payload: map[string]any{
			"claimId":   claim.ClaimID,
			"userId":    claim.OwnerID,
			"status":    string(claim.Status),
			"message":   "claim approved by account review",
			"timestamp": now,
		},
	})

	logger.Info("claim approved by account review",
		"event", "claim_account_approved",
		"module", "creator-earnings/claim-service",
		"layer", "application",
		"claim_id", claim.ClaimID,
		"reviewed_by", claim.ReviewedBy,
	)
	return claim, nil
}

func (uc ReviewClaimUseCase) Reject(ctx context.Context, cmd AccountRejectCommand) (entities.Claim, error) {
	logger := application.ResolveLogger(uc.Logger)
	claim, err := uc.Claims.GetClaim(ctx, strings.TrimSpace(cmd.ClaimID))
	if err != nil {
		return entities.Claim{}, err
	}
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Claim{}, domainerrors.ErrUnauthorizedActor
	}
	if !reviewable(claim) {
		return entities.Claim{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	expectedVersion := claim.Version
	reason := strings.TrimSpace(cmd.Reason)
	claim.AppendHistory(entities.HistoryActionUserRejected, cmd.ActorID, reason, now)
	claim.Status = entities.ClaimStatusUserRejected
	claim.ReviewedBy = strings.TrimSpace(cmd.ActorID)
	claim.RejectionReason = reason
	claim.UpdatedAt = now
	if err := uc.Claims.UpdateClaim(ctx, claim, expectedVersion); err != nil {
		return entities.Claim{}, err
	}
	claim.Version = expectedVersion + 1

	payload := map[string]any{
		"claimId":   claim.ClaimID,
		"userId":    claim.OwnerID,
		"status":    string(claim.Status),
		"reason":    reason,
		"message":   "claim rejected by account review",
		"timestamp": now,
	}
	application.PublishBestEffort(ctx, uc.Notifier, uc.Logger, ports.Notification{
		Event:    "claim_status_changed",
		Audience: ports.BroadcastAudience(),
		Payload:  payload,
	})
	application.PublishBestEffort(ctx, uc.Notifier, uc.Logger, ports.Notification{
		Event:    "claim_status_changed",
		Audience: ports.UserAudience(claim.OwnerID),
		Payload:  payload,
	})
	application.PublishBestEffort(ctx, uc.Notifier, uc.Logger, ports.Notification{
		Event:    "claim_status_changed",
		Audience: ports.RoleAudience(RoleAdmin),
		Payload:  payload,
	})

	logger.Info("claim rejected by account review",
		"event", "claim_account_rejected",
		"module", "creator-earnings/claim-service",
		"layer", "application",
		"claim_id", claim.ClaimID,
		"reviewed_by", claim.ReviewedBy,
	)
	return claim, nil
}

func reviewable(claim entities.Claim) bool {
	if !claim.Active {
		return false
	}
	return claim.Status == entities.ClaimStatusPending || claim.Status == entities.ClaimStatusUserRejected
}
