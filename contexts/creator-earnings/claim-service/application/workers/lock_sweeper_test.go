package workers

import (
	"context"
	"testing"
	"time"

	"claimdesk/contexts/creator-earnings/claim-service/adapters/memory"
	"claimdesk/contexts/creator-earnings/claim-service/domain/entities"
	"claimdesk/contexts/creator-earnings/claim-service/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type captureNotifier struct {
	published []ports.Notification
}

func (n *captureNotifier) Publish(_ context.Context, notification ports.Notification) error {
	n.published = append(n.published, notification)
	return nil
}

func seedLockedClaim(t *testing.T, store *memory.Store, claimID string, lockedAt time.Time) {
	t.Helper()
	claim := entities.Claim{
		ClaimID:            claimID,
		OwnerID:            "creator-1",
		PostIDs:            []string{claimID + "-post"},
		ProofFileURLs:      []string{"u"},
		CalculatedEarnings: 1.00,
		Status:             entities.ClaimStatusPending,
		LockedBy:           "reviewer-1",
		LockedAt:           &lockedAt,
		Active:             true,
		Version:            1,
		CreatedAt:          lockedAt,
		UpdatedAt:          lockedAt,
	}
	if err := store.CreateClaim(context.Background(), claim); err != nil {
		t.Fatalf("seed claim %s: %v", claimID, err)
	}
}

func TestLockSweeperReleasesOnlyStaleLocks(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil, nil)
	notifier := &captureNotifier{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	seedLockedClaim(t, store, "claim-stale", now.Add(-45*time.Minute))
	seedLockedClaim(t, store, "claim-fresh", now.Add(-5*time.Minute))

	sweeper := LockSweeper{
		Claims:   store,
		Notifier: notifier,
		Clock:    fixedClock{now: now},
		LockTTL:  30 * time.Minute,
	}
	if err := sweeper.RunOnce(ctx); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	stale, err := store.GetClaim(ctx, "claim-stale")
	if err != nil {
		t.Fatalf("get stale claim: %v", err)
	}
	if stale.LockedBy != "" || stale.LockedAt != nil {
		t.Fatalf("expected stale lock released, got %+v", stale)
	}

	fresh, err := store.GetClaim(ctx, "claim-fresh")
	if err != nil {
		t.Fatalf("get fresh claim: %v", err)
	}
	if fresh.LockedBy != "reviewer-1" {
		t.Fatalf("fresh lock must survive the sweep, got %q", fresh.LockedBy)
	}

	if len(notifier.published) != 1 || notifier.published[0].Event != "claim_unlocked" {
		t.Fatalf("expected one claim_unlocked notification, got %+v", notifier.published)
	}
	if !notifier.published[0].Audience.Broadcast {
		t.Fatalf("expected broadcast audience")
	}
}

func TestLockSweeperDisabledDoesNothing(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil, nil)
	notifier := &captureNotifier{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	seedLockedClaim(t, store, "claim-stale", now.Add(-2*time.Hour))

	sweeper := LockSweeper{
		Claims:   store,
		Notifier: notifier,
		Clock:    fixedClock{now: now},
		LockTTL:  30 * time.Minute,
		Disabled: true,
	}
	if err := sweeper.RunOnce(ctx); err != nil {
		t.Fatalf("disabled sweep failed: %v", err)
	}

	claim, err := store.GetClaim(ctx, "claim-stale")
	if err != nil {
		t.Fatalf("get claim: %v", err)
	}
	if claim.LockedBy == "" {
		t.Fatalf("disabled sweeper must not release locks")
	}
	if len(notifier.published) != 0 {
		t.Fatalf("disabled sweeper must not notify, got %+v", notifier.published)
	}
}
