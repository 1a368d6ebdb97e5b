package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"claimdesk/contexts/creator-earnings/claim-service/application/commands"
	"claimdesk/contexts/creator-earnings/claim-service/application/queries"
	"claimdesk/contexts/creator-earnings/claim-service/domain/entities"
	httptransport "claimdesk/contexts/creator-earnings/claim-service/transport/http"
)

type Handler struct {
	CreateClaim        commands.CreateClaimUseCase
	ApplyDeduction     commands.ApplyDeductionUseCase
	RespondToDeduction commands.RespondToDeductionUseCase
	ReviewClaim        commands.ReviewClaimUseCase
	AdminApprove       commands.AdminApproveUseCase
	LockClaim          commands.LockClaimUseCase
	Queries            queries.QueryUseCase
	Logger             *slog.Logger
}

// @Summary Submit an earnings claim
// @Tags claims
// @Param request body http.CreateClaimRequest true "posts and proof files"
// @Success 200 {object} http.ClaimResponse
// @Router /v1/claims [post]
func (h Handler) CreateClaimHandler(
	ctx context.Context,
	userID string,
	req httptransport.CreateClaimRequest,
) (httptransport.ClaimResponse, error) {
	claim, err := h.CreateClaim.Execute(ctx, commands.CreateClaimCommand{
		OwnerID:       userID,
		PostIDs:       req.PostIDs,
		ProofFileURLs: req.ProofFileURLs,
		ActorID:       userID,
	})
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{Claim: mapClaim(claim)}, nil
}

// @Summary Get one claim
// @Tags claims
// @Success 200 {object} http.ClaimResponse
// @Router /v1/claims/{claim_id} [get]
func (h Handler) GetClaimHandler(ctx context.Context, claimID string) (httptransport.ClaimResponse, error) {
	claim, err := h.Queries.GetClaim(ctx, claimID)
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{Claim: mapClaim(claim)}, nil
}

// @Summary List claims with filters
// @Tags claims
// @Success 200 {object} http.ListClaimsResponse
// @Router /v1/claims [get]
func (h Handler) ListClaimsHandler(ctx context.Context, query queries.ListClaimsQuery) (httptransport.ListClaimsResponse, error) {
	page, err := h.Queries.ListClaims(ctx, query)
	if err != nil {
		return httptransport.ListClaimsResponse{}, err
	}
	items := make([]httptransport.ClaimDTO, 0, len(page.Items))
	for _, claim := range page.Items {
		items = append(items, mapClaim(claim))
	}
	resp := httptransport.ListClaimsResponse{
		Items: items,
		Total: page.Total,
		Page:  query.Page,
		Limit: query.Limit,
	}
	if resp.Page < 1 {
		resp.Page = 1
	}
	if resp.Limit < 1 {
		resp.Limit = 20
	}
	return resp, nil
}

// @Summary Check whether posts are already claimed
// @Tags claims
// @Param request body http.CheckPostsRequest true "post ids"
// @Success 200 {object} http.CheckPostsResponse
// @Router /v1/claims/check-posts [post]
func (h Handler) CheckPostsHandler(ctx context.Context, req httptransport.CheckPostsRequest) (httptransport.CheckPostsResponse, error) {
	result, err := h.Queries.CheckPostsAlreadyClaimed(ctx, req.PostIDs)
	if err != nil {
		return httptransport.CheckPostsResponse{}, err
	}
	conflicts := make([]httptransport.PostConflictDTO, 0, len(result.Conflicts))
	for _, c := range result.Conflicts {
		conflicts = append(conflicts, httptransport.PostConflictDTO{
			PostID:      c.PostID,
			ClaimID:     c.ClaimID,
			ClaimStatus: string(c.ClaimStatus),
			PostExcerpt: c.PostExcerpt,
		})
	}
	return httptransport.CheckPostsResponse{
		Conflict:  result.Conflict,
		Messages:  result.Descriptions,
		Conflicts: conflicts,
	}, nil
}

// @Summary Apply a deduction to a pending claim
// @Tags claims
// @Param request body http.ApplyDeductionRequest true "amount and reason"
// @Success 200 {object} http.ClaimResponse
// @Router /v1/claims/{claim_id}/deduction [post]
func (h Handler) ApplyDeductionHandler(
	ctx context.Context,
	actorID string,
	claimID string,
	req httptransport.ApplyDeductionRequest,
) (httptransport.ClaimResponse, error) {
	claim, err := h.ApplyDeduction.Execute(ctx, commands.ApplyDeductionCommand{
		ClaimID: claimID,
		Amount:  req.Amount,
		Reason:  req.Reason,
		ActorID: actorID,
	})
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{Claim: mapClaim(claim)}, nil
}

// @Summary Accept or reject a deduction
// @Tags claims
// @Param request body http.DeductionResponseRequest true "accepted flag"
// @Success 200 {object} http.ClaimResponse
// @Router /v1/claims/{claim_id}/deduction/response [post]
func (h Handler) RespondToDeductionHandler(
	ctx context.Context,
	actorID string,
	claimID string,
	req httptransport.DeductionResponseRequest,
) (httptransport.ClaimResponse, error) {
	claim, err := h.RespondToDeduction.Execute(ctx, commands.RespondToDeductionCommand{
		ClaimID:  claimID,
		Accepted: req.Accepted,
		ActorID:  actorID,
	})
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{Claim: mapClaim(claim)}, nil
}

// @Summary Approve a claim at account review
// @Tags claims
// @Success 200 {object} http.ClaimResponse
// @Router /v1/claims/{claim_id}/approve [post]
func (h Handler) AccountApproveHandler(ctx context.Context, actorID string, claimID string) (httptransport.ClaimResponse, error) {
	claim, err := h.ReviewClaim.Approve(ctx, commands.AccountApproveCommand{
		ClaimID: claimID,
		ActorID: actorID,
	})
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{Claim: mapClaim(claim)}, nil
}

// @Summary Reject a claim at account review
// @Tags claims
// @Param request body http.RejectClaimRequest true "rejection reason"
// @Success 200 {object} http.ClaimResponse
// @Router /v1/claims/{claim_id}/reject [post]
func (h Handler) AccountRejectHandler(
	ctx context.Context,
	actorID string,
	claimID string,
	req httptransport.RejectClaimRequest,
) (httptransport.ClaimResponse, error) {
	claim, err := h.ReviewClaim.Reject(ctx, commands.AccountRejectCommand{
		ClaimID: claimID,
		ActorID: actorID,
		Reason:  req.Reason,
	})
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{Claim: mapClaim(claim)}, nil
}

// @Summary Give final admin approval
// @Tags claims
// @Success 200 {object} http.ClaimResponse
// @Router /v1/claims/{claim_id}/final-approval [post]
func (h Handler) AdminApproveHandler(ctx context.Context, actorID string, claimID string) (httptransport.ClaimResponse, error) {
	claim, err := h.AdminApprove.Execute(ctx, commands.AdminApproveCommand{
		ClaimID: claimID,
		ActorID: actorID,
	})
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{Claim: mapClaim(claim)}, nil
}

// @Summary Take the advisory review lock
// @Tags claims
// @Success 200 {object} http.LockClaimResponse
// @Router /v1/claims/{claim_id}/lock [post]
func (h Handler) LockClaimHandler(ctx context.Context, actorID string, claimID string) (httptransport.LockClaimResponse, error) {
	locked, err := h.LockClaim.Lock(ctx, commands.LockClaimCommand{
		ClaimID: claimID,
		ActorID: actorID,
	})
	if err != nil {
		return httptransport.LockClaimResponse{}, err
	}
	resp := httptransport.LockClaimResponse{Locked: locked}
	if locked {
		resp.LockedBy = actorID
	}
	return resp, nil
}

// @Summary Release the advisory review lock
// @Tags claims
// @Success 204
// @Router /v1/claims/{claim_id}/lock [delete]
func (h Handler) UnlockClaimHandler(ctx context.Context, actorID string, claimID string) error {
	return h.LockClaim.Unlock(ctx, commands.LockClaimCommand{
		ClaimID: claimID,
		ActorID: actorID,
	})
}

func mapClaim(claim entities.Claim) httptransport.ClaimDTO {
	history := make([]httptransport.HistoryEntryDTO, 0, len(claim.History))
	for _, entry := range claim.History {
		history = append(history, httptransport.HistoryEntryDTO{
			Action:  string(entry.Action),
			ActorID: entry.ActorID,
			Note:    entry.Note,
			At:      entry.At.Format(time.RFC3339),
		})
	}
	dto := httptransport.ClaimDTO{
		ClaimID:            claim.ClaimID,
		OwnerID:            claim.OwnerID,
		PostIDs:            claim.PostIDs,
		ProofFileURLs:      claim.ProofFileURLs,
		CalculatedEarnings: claim.CalculatedEarnings,
		Status:             string(claim.Status),
		DeductionAmount:    claim.DeductionAmount,
		DeductionReason:    claim.DeductionReason,
		RejectionReason:    claim.RejectionReason,
		FinalAmount:        claim.FinalAmount(),
		ReviewedBy:         claim.ReviewedBy,
		FinalApprovedBy:    claim.FinalApprovedBy,
		LockedBy:           claim.LockedBy,
		History:            history,
		Version:            claim.Version,
		CreatedAt:          claim.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          claim.UpdatedAt.Format(time.RFC3339),
	}
	if claim.LockedAt != nil {
		dto.LockedAt = claim.LockedAt.Format(time.RFC3339)
	}
	return dto
}
