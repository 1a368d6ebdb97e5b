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

type ApplyDeductionCommand struct {
	ClaimID string
	Amount  float64
	Reason  string
	ActorID string
}

type ApplyDeductionUseCase struct {
	Claims   ports.ClaimRepository
	Notifier ports.Notifier
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (uc ApplyDeductionUseCase) Execute(ctx context.Context, cmd ApplyDeductionCommand) (entities.Claim, error) {
	logger := application.ResolveLogger(uc.Logger)
	claim, err := uc.Claims.GetClaim(ctx, strings.TrimSpace(cmd.ClaimID))
	if err != nil {
		return entities.Claim{}, err
	}
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Claim{}, domainerrors.ErrUnauthorizedActor
	}
	if !claim.Active || claim.Status != entities.ClaimStatusPending {
		return entities.Claim{}, domainerrors.ErrInvalidStatusTransition
	}
	// A deduction can never zero out a claim.
	if cmd.Amount <= 0 || cmd.Amount >= claim.CalculatedEarnings {
		return entities.Claim{}, domainerrors.ErrInvalidDeduction
	}

	now := uc.Clock.Now().UTC()
	expectedVersion := claim.Version
	claim.AppendHistory(entities.HistoryActionDeductionApplied, cmd.ActorID, strings.TrimSpace(cmd.Reason), now)
	claim.DeductionAmount = cmd.Amount
	claim.DeductionReason = strings.TrimSpace(cmd.Reason)
	claim.Status = entities.ClaimStatusDeducted
	claim.ReviewedBy = strings.TrimSpace(cmd.ActorID)
	claim.UpdatedAt = now
	if err := uc.Claims.UpdateClaim(ctx, claim, expectedVersion); err != nil {
		return entities.Claim{}, err
	}
	claim.Version = expectedVersion + 1

	payload := map[string]any{
		"claimId":     claim.ClaimID,
		"userId":      claim.OwnerID,
		"status":      string(claim.Status),
		"deduction":   claim.DeductionAmount,
		"reason":      claim.DeductionReason,
		"finalAmount": claim.FinalAmount(),
		"message":     "a deduction was applied to your claim",
		"timestamp":   now,
	}
	application.PublishBestEffort(ctx, uc.Notifier, uc.Logger, ports.Notification{
		Event:    "deduction_applied",
		Audience: ports.UserAudience(claim.OwnerID),
		Payload:  payload,
	})
	application.PublishBestEffort(ctx, uc.Notifier, uc.Logger, ports.Notification{
		Event:    "claim_status_changed",
		Audience: ports.BroadcastAudience(),
		Payload:  payload,
	})

	logger.Info("deduction applied",
		"event", "claim_deduction_applied",
		"module", "creator-earnings/claim-service",
		"layer", "application",
		"claim_id", claim.ClaimID,
		"deduction", claim.DeductionAmount,
		"final_amount", claim.FinalAmount(),
	)
	return claim, nil
}
