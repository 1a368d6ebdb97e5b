package commands

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	application "claimdesk/contexts/creator-earnings/claim-service/application"
	"claimdesk/contexts/creator-earnings/claim-service/domain/entities"
	domainerrors "claimdesk/contexts/creator-earnings/claim-service/domain/errors"
	"claimdesk/contexts/creator-earnings/claim-service/domain/services"
	"claimdesk/contexts/creator-earnings/claim-service/ports"
)

const (
	RoleAccount = "account"
	RoleAdmin   = "admin"
)

type CreateClaimCommand struct {
	OwnerID       string
	PostIDs       []string
	ProofFileURLs []string
	ActorID       string
}

type CreateClaimUseCase struct {
	Claims   ports.ClaimRepository
	Posts    ports.PostReader
	Rates    ports.RateReader
	Notifier ports.Notifier
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// Execute runs the submission workflow:
// 1) validate input
// 2) friendly duplicate pre-check across every claim ever created
// 3) ownership check on every referenced post
// 4) earnings snapshot against the active rate
// 5) atomic persist (the store enforces post uniqueness under races)
// 6) best-effort notification.
func (uc CreateClaimUseCase) Execute(ctx context.Context, cmd CreateClaimCommand) (entities.Claim, error) {
	logger := application.ResolveLogger(uc.Logger)

	postIDs, ok := normalizePostIDs(cmd.PostIDs)
	if !ok {
		return entities.Claim{}, domainerrors.ErrInvalidClaimInput
	}
	proofURLs := normalizeStrings(cmd.ProofFileURLs)

	conflicts, err := uc.Claims.FindPostConflicts(ctx, postIDs)
	if err != nil {
		return entities.Claim{}, err
	}
	if len(conflicts) > 0 {
		return entities.Claim{}, &domainerrors.DuplicateClaimError{Conflicts: conflicts}
	}

	posts, err := uc.Posts.GetPostsByIDs(ctx, postIDs)
	if err != nil {
		return entities.Claim{}, err
	}
	if forbidden := forbiddenPostIDs(postIDs, posts, strings.TrimSpace(cmd.OwnerID)); len(forbidden) > 0 {
		return entities.Claim{}, &domainerrors.ForbiddenPostError{PostIDs: forbidden}
	}

	rate, err := uc.Rates.GetActiveRate(ctx)
	if err != nil {
		return entities.Claim{}, err
	}
	earnings := services.CalculateEarnings(posts, rate)

	claimID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Claim{}, err
	}
	now := uc.Clock.Now().UTC()
	claim := entities.Claim{
		ClaimID:            claimID,
		OwnerID:            strings.TrimSpace(cmd.OwnerID),
		PostIDs:            postIDs,
		ProofFileURLs:      proofURLs,
		CalculatedEarnings: earnings,
		Status:             entities.ClaimStatusPending,
		Active:             true,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	claim.AppendHistory(entities.HistoryActionSubmitted, cmd.ActorID, "", now)
	if !claim.ValidateCreate() {
		return entities.Claim{}, domainerrors.ErrInvalidClaimInput
	}

	// Concurrent submissions can slip past the pre-check; the store's
	// uniqueness guarantee is authoritative and its duplicate errors
	// surface to the caller unchanged.
	if err := uc.Claims.CreateClaim(ctx, claim); err != nil {
		return entities.Claim{}, err
	}

	payload := map[string]any{
		"claimId":   claim.ClaimID,
		"userId":    claim.OwnerID,
		"status":    string(claim.Status),
		"earnings":  claim.CalculatedEarnings,
		"message":   "new earnings claim submitted",
		"timestamp": now,
	}
	application.PublishBestEffort(ctx, uc.Notifier, uc.Logger, ports.Notification{
		Event:    "new_claim",
		Audience: ports.RoleAudience(RoleAccount),
		Payload:  payload,
	})
	application.PublishBestEffort(ctx, uc.Notifier, uc.Logger, ports.Notification{
		Event:    "new_claim",
		Audience: ports.RoleAudience(RoleAdmin),
		Payload:  payload,
	})
	application.PublishBestEffort(ctx, uc.Notifier, uc.Logger, ports.Notification{
		Event:    "new_claim",
		Audience: ports.BroadcastAudience(),
		Payload:  payload,
	})

	logger.Info("claim created",
		"event", "claim_created",
		"module", "creator-earnings/claim-service",
		"layer", "application",
		"claim_id", claim.ClaimID,
		"owner_id", claim.OwnerID,
		"post_count", len(claim.PostIDs),
		"earnings", claim.CalculatedEarnings,
	)
	return claim, nil
}

// normalizePostIDs trims, drops empties, and rejects duplicates within a
// single submission.
func normalizePostIDs(raw []string) ([]string, bool) {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			return nil, false
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func normalizeStrings(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func forbiddenPostIDs(requested []string, posts []ports.PostForClaim, ownerID string) []string {
	owned := make(map[string]string, len(posts))
	for _, post := range posts {
		owned[post.PostID] = post.OwnerID
	}
	var forbidden []string
	for _, id := range requested {
		postOwner, found := owned[id]
		if !found || postOwner != ownerID {
			forbidden = append(forbidden, id)
		}
	}
	sort.Strings(forbidden)
	return forbidden
}
