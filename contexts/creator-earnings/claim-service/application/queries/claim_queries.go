package queries

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "claimdesk/contexts/creator-earnings/claim-service/application"
	"claimdesk/contexts/creator-earnings/claim-service/domain/entities"
	domainerrors "claimdesk/contexts/creator-earnings/claim-service/domain/errors"
	"claimdesk/contexts/creator-earnings/claim-service/ports"
)

const maxListLimit = 100

type ListClaimsQuery struct {
	OwnerID         string
	Status          string // single value or comma-separated list
	ReviewedBy      string
	FinalApprovedBy string
	HasDeduction    *bool
	StartDate       string // RFC3339
	EndDate         string // RFC3339
	MinEarnings     *float64
	MaxEarnings     *float64
	Page            int
	Limit           int
}

type ClaimPage struct {
	Items []entities.Claim
	Total int64
}

type QueryUseCase struct {
	Claims ports.ClaimRepository
	Posts  ports.PostReader
	Logger *slog.Logger
}

func (uc QueryUseCase) GetClaim(ctx context.Context, claimID string) (entities.Claim, error) {
	return uc.Claims.GetClaim(ctx, strings.TrimSpace(claimID))
}

func (uc QueryUseCase) ListClaims(ctx context.Context, query ListClaimsQuery) (ClaimPage, error) {
	filter := ports.ClaimFilter{
		OwnerID:         strings.TrimSpace(query.OwnerID),
		ReviewedBy:      strings.TrimSpace(query.ReviewedBy),
		FinalApprovedBy: strings.TrimSpace(query.FinalApprovedBy),
		HasDeduction:    query.HasDeduction,
		MinEarnings:     query.MinEarnings,
		MaxEarnings:     query.MaxEarnings,
		Page:            query.Page,
		Limit:           query.Limit,
	}
	for _, raw := range strings.Split(query.Status, ",") {
		raw = strings.TrimSpace(raw)
		if raw != "" {
			filter.Statuses = append(filter.Statuses, entities.ClaimStatus(raw))
		}
	}
	var err error
	if filter.StartDate, err = parseOptionalTime(query.StartDate); err != nil {
		return ClaimPage{}, domainerrors.ErrInvalidClaimInput
	}
	if filter.EndDate, err = parseOptionalTime(query.EndDate); err != nil {
		return ClaimPage{}, domainerrors.ErrInvalidClaimInput
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	items, total, err := uc.Claims.ListClaims(ctx, filter)
	if err != nil {
		return ClaimPage{}, err
	}
	application.ResolveLogger(uc.Logger).Debug("claims listed",
		"event", "claims_listed",
		"module", "creator-earnings/claim-service",
		"layer", "application",
		"total", total,
		"page", filter.Page,
	)
	return ClaimPage{Items: items, Total: total}, nil
}

type PostCheckResult struct {
	Conflict     bool
	Descriptions []string
	Conflicts    []entities.PostConflict
}

// CheckPostsAlreadyClaimed is the read-only pre-submission variant of the
// duplicate check, run by the UI before it bothers uploading proof files.
func (uc QueryUseCase) CheckPostsAlreadyClaimed(ctx context.Context, postIDs []string) (PostCheckResult, error) {
	trimmed := make([]string, 0, len(postIDs))
	for _, id := range postIDs {
		if id = strings.TrimSpace(id); id != "" {
			trimmed = append(trimmed, id)
		}
	}
	if len(trimmed) == 0 {
		return PostCheckResult{}, domainerrors.ErrInvalidClaimInput
	}

	conflicts, err := uc.Claims.FindPostConflicts(ctx, trimmed)
	if err != nil {
		return PostCheckResult{}, err
	}
	if len(conflicts) == 0 {
		return PostCheckResult{}, nil
	}

	excerpts := uc.postExcerpts(ctx, conflicts)
	descriptions := make([]string, 0, len(conflicts))
	for i := range conflicts {
		if excerpt, found := excerpts[conflicts[i].PostID]; found {
			conflicts[i].PostExcerpt = excerpt
		}
		descriptions = append(descriptions, describeConflict(conflicts[i]))
	}
	return PostCheckResult{
		Conflict:     true,
		Descriptions: descriptions,
		Conflicts:    conflicts,
	}, nil
}

func (uc QueryUseCase) postExcerpts(ctx context.Context, conflicts []entities.PostConflict) map[string]string {
	if uc.Posts == nil {
		return nil
	}
	ids := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.PostID)
	}
	posts, err := uc.Posts.GetPostsByIDs(ctx, ids)
	if err != nil {
		// Excerpts are decoration on an advisory check.
		application.ResolveLogger(uc.Logger).Warn("post excerpt lookup failed",
			"event", "claim_post_check_excerpt_failed",
			"module", "creator-earnings/claim-service",
			"layer", "application",
			"error", err.Error(),
		)
		return nil
	}
	excerpts := make(map[string]string, len(posts))
	for _, post := range posts {
		excerpts[post.PostID] = truncate(post.Content, 50)
	}
	return excerpts
}

func describeConflict(c entities.PostConflict) string {
	if c.PostExcerpt != "" {
		return fmt.Sprintf("post %s (%q) is already part of claim %s with status %s", c.PostID, c.PostExcerpt, c.ClaimID, c.ClaimStatus)
	}
	return fmt.Sprintf("post %s is already part of claim %s with status %s", c.PostID, c.ClaimID, c.ClaimStatus)
}

func truncate(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "..."
}

func parseOptionalTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	utc := parsed.UTC()
	return &utc, nil
}
