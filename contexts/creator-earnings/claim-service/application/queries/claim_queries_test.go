package queries

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"claimdesk/contexts/creator-earnings/claim-service/adapters/memory"
	"claimdesk/contexts/creator-earnings/claim-service/domain/entities"
	domainerrors "claimdesk/contexts/creator-earnings/claim-service/domain/errors"
	"claimdesk/contexts/creator-earnings/claim-service/ports"
)

func seedClaim(t *testing.T, store *memory.Store, claim entities.Claim) {
	t.Helper()
	if claim.ProofFileURLs == nil {
		claim.ProofFileURLs = []string{"u"}
	}
	claim.Active = true
	claim.Version = 1
	if err := store.CreateClaim(context.Background(), claim); err != nil {
		t.Fatalf("seed claim %s: %v", claim.ClaimID, err)
	}
}

func TestListClaimsFiltersAndPaginates(t *testing.T) {
	store := memory.NewStore(nil, nil)
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	seedClaim(t, store, entities.Claim{
		ClaimID: "c1", OwnerID: "creator-1", PostIDs: []string{"p1"},
		CalculatedEarnings: 1.00, Status: entities.ClaimStatusPending,
		CreatedAt: base, UpdatedAt: base,
	})
	seedClaim(t, store, entities.Claim{
		ClaimID: "c2", OwnerID: "creator-1", PostIDs: []string{"p2"},
		CalculatedEarnings: 5.00, Status: entities.ClaimStatusDeducted,
		DeductionAmount: 1.00, ReviewedBy: "reviewer-1",
		CreatedAt: base.AddDate(0, 0, 1), UpdatedAt: base.AddDate(0, 0, 1),
	})
	seedClaim(t, store, entities.Claim{
		ClaimID: "c3", OwnerID: "creator-2", PostIDs: []string{"p3"},
		CalculatedEarnings: 10.00, Status: entities.ClaimStatusAdminApproved,
		FinalApprovedBy: "admin-1",
		CreatedAt:       base.AddDate(0, 0, 2), UpdatedAt: base.AddDate(0, 0, 2),
	})

	uc := QueryUseCase{Claims: store, Posts: store}
	ctx := context.Background()

	page, err := uc.ListClaims(ctx, ListClaimsQuery{OwnerID: "creator-1"})
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 claims for creator-1, got %d", page.Total)
	}

	page, err = uc.ListClaims(ctx, ListClaimsQuery{Status: "pending,admin_approved"})
	if err != nil {
		t.Fatalf("list by statuses: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 claims for status list, got %d", page.Total)
	}

	hasDeduction := true
	page, err = uc.ListClaims(ctx, ListClaimsQuery{HasDeduction: &hasDeduction})
	if err != nil {
		t.Fatalf("list by deduction: %v", err)
	}
	if page.Total != 1 || page.Items[0].ClaimID != "c2" {
		t.Fatalf("expected only c2 with deduction, got %+v", page.Items)
	}

	minEarnings := 4.0
	page, err = uc.ListClaims(ctx, ListClaimsQuery{MinEarnings: &minEarnings})
	if err != nil {
		t.Fatalf("list by earnings: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 claims above 4.0, got %d", page.Total)
	}

	page, err = uc.ListClaims(ctx, ListClaimsQuery{
		StartDate: base.AddDate(0, 0, 1).Format(time.RFC3339),
		EndDate:   base.AddDate(0, 0, 1).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("list by date range: %v", err)
	}
	if page.Total != 1 || page.Items[0].ClaimID != "c2" {
		t.Fatalf("expected only c2 in the window, got %+v", page.Items)
	}

	// Newest first, one per page.
	page, err = uc.ListClaims(ctx, ListClaimsQuery{Page: 2, Limit: 1})
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 1 || page.Items[0].ClaimID != "c2" {
		t.Fatalf("expected c2 on page 2 of 3, got %+v", page.Items)
	}
}

func TestListClaimsRejectsMalformedDates(t *testing.T) {
	uc := QueryUseCase{Claims: memory.NewStore(nil, nil)}
	_, err := uc.ListClaims(context.Background(), ListClaimsQuery{StartDate: "last tuesday"})
	if !errors.Is(err, domainerrors.ErrInvalidClaimInput) {
		t.Fatalf("expected ErrInvalidClaimInput, got %v", err)
	}
}

func TestCheckPostsAlreadyClaimedDescribesConflicts(t *testing.T) {
	longContent := strings.Repeat("x", 60)
	store := memory.NewStore([]ports.PostForClaim{
		{PostID: "p1", OwnerID: "creator-1", Content: longContent, Active: true},
	}, nil)
	seedClaim(t, store, entities.Claim{
		ClaimID: "c1", OwnerID: "creator-1", PostIDs: []string{"p1"},
		Status: entities.ClaimStatusPending, CreatedAt: time.Now().UTC(),
	})

	uc := QueryUseCase{Claims: store, Posts: store}
	result, err := uc.CheckPostsAlreadyClaimed(context.Background(), []string{"p1", "p-free"})
	if err != nil {
		t.Fatalf("check posts: %v", err)
	}
	if !result.Conflict {
		t.Fatalf("expected a conflict for p1")
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0].ClaimID != "c1" {
		t.Fatalf("unexpected conflicts: %+v", result.Conflicts)
	}
	if got := result.Conflicts[0].PostExcerpt; len([]rune(got)) != 53 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected 50-rune excerpt with ellipsis, got %q", got)
	}
	if len(result.Descriptions) != 1 || !strings.Contains(result.Descriptions[0], "c1") {
		t.Fatalf("expected a description naming the claim, got %+v", result.Descriptions)
	}

	clean, err := uc.CheckPostsAlreadyClaimed(context.Background(), []string{"p-free"})
	if err != nil {
		t.Fatalf("check free post: %v", err)
	}
	if clean.Conflict {
		t.Fatalf("expected no conflict for an unclaimed post")
	}
}

func TestCheckPostsRequiresInput(t *testing.T) {
	uc := QueryUseCase{Claims: memory.NewStore(nil, nil)}
	_, err := uc.CheckPostsAlreadyClaimed(context.Background(), []string{" ", ""})
	if !errors.Is(err, domainerrors.ErrInvalidClaimInput) {
		t.Fatalf("expected ErrInvalidClaimInput, got %v", err)
	}
}
