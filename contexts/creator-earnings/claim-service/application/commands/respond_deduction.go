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

type RespondToDeductionCommand struct {
	ClaimID  string
	Accepted bool
	ActorID  string
}

type RespondToDeductionUseCase struct {
	Claims   ports.ClaimRepository
	Notifier ports.Notifier
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (uc RespondToDeductionUseCase) Execute(ctx context.Context, cmd RespondToDeductionCommand) (entities.Claim, error) {
	logger := application.ResolveLogger(uc.Logger)
	claim, err := uc.Claims.GetClaim(ctx, strings.TrimSpace(cmd.ClaimID))
	if err != nil {
		return entities.Claim{}, err
	}
	// Only the claim owner may answer a deduction, no matter what the
	// transport layer already checked.
	if strings.TrimSpace(cmd.ActorID) == "" || strings.TrimSpace(cmd.ActorID) != claim.OwnerID {
		return entities.Claim{}, domainerrors.ErrUnauthorizedActor
	}
	if !claim.Active || claim.Status != entities.ClaimStatusDeducted {
		return entities.Claim{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	expectedVersion := claim.Version
	if cmd.Accepted {
		claim.AppendHistory(entities.HistoryActionUserAccepted, cmd.ActorID, "", now)
		claim.Status = entities.ClaimStatusUserAccepted
	} else {
		claim.AppendHistory(entities.HistoryActionUserRejected, cmd.ActorID, "", now)
		claim.Status = entities.ClaimStatusUserRejected
		claim.DeductionAmount = 0
		claim.DeductionReason = ""
	}
	claim.UpdatedAt = now
	if err := uc.Claims.UpdateClaim(ctx, claim, expectedVersion); err != nil {
		return entities.Claim{}, err
	}
	claim.Version = expectedVersion + 1

	outcome := "rejected"
	if cmd.Accepted {
		outcome = "accepted"
	}
	application.PublishBestEffort(ctx, uc.Notifier, uc.Logger, ports.Notification{
		Event:    "deduction_response",
		Audience: ports.BroadcastAudience(),
		Payload: map[string]any{
			"claimId":   claim.ClaimID,
			"userId":    claim.OwnerID,
			"status":    string(claim.Status),
			"outcome":   outcome,
			"message":   "claim owner " + outcome + " the deduction",
			"timestamp": now,
		},
	})

	logger.Info("deduction response recorded",
		"event", "claim_deduction_response",
		"module", "creator-earnings/claim-service",
		"layer", "application",
		"claim_id", claim.ClaimID,
		"accepted", cmd.Accepted,
	)
	return claim, nil
}
