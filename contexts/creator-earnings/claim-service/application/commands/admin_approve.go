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

type AdminApproveCommand struct {
	ClaimID string
	ActorID string
}

type AdminApproveUseCase struct {
	Claims   ports.ClaimRepository
	Notifier ports.Notifier
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (uc AdminApproveUseCase) Execute(ctx context.Context, cmd AdminApproveCommand) (entities.Claim, error) {
	logger := application.ResolveLogger(uc.Logger)
	claim, err := uc.Claims.GetClaim(ctx, strings.TrimSpace(cmd.ClaimID))
	if err != nil {
		return entities.Claim{}, err
	}
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Claim{}, domainerrors.ErrUnauthorizedActor
	}
	if !claim.Active ||
		(claim.Status != entities.ClaimStatusAccountApproved && claim.Status != entities.ClaimStatusUserAccepted) {
		return entities.Claim{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	expectedVersion := claim.Version
	claim.AppendHistory(entities.HistoryActionAdminApproved, cmd.ActorID, "", now)
	claim.Status = entities.ClaimStatusAdminApproved
	claim.FinalApprovedBy = strings.TrimSpace(cmd.ActorID)
	claim.UpdatedAt = now
	if err := uc.Claims.UpdateClaim(ctx, claim, expectedVersion); err != nil {
		return entities.Claim{}, err
	}
	claim.Version = expectedVersion + 1

	application.PublishBestEffort(ctx, uc.Notifier, uc.Logger, ports.Notification{
		Event:    "claim_status_changed",
		Audience: ports.BroadcastAudience(),
		Payload: map[string]any{
			"claimId":     claim.ClaimID,
			"userId":      claim.OwnerID,
			"status":      string(claim.Status),
			"finalAmount": claim.FinalAmount(),
			"message":     "claim received final approval",
			"timestamp":   now,
		},
	})

	logger.Info("claim approved by admin",
		"event", "claim_admin_approved",
		"module", "creator-earnings/claim-service",
		"layer", "application",
		"claim_id", claim.ClaimID,
		"final_approved_by", claim.FinalApprovedBy,
		"final_amount", claim.FinalAmount(),
	)
	return claim, nil
}
