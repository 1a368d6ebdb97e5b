package ports

import (
	"context"
	"time"

	"claimdesk/contexts/creator-earnings/claim-service/domain/entities"
)

type ClaimFilter struct {
	OwnerID         string
	Statuses        []entities.ClaimStatus
	ReviewedBy      string
	FinalApprovedBy string
	HasDeduction    *bool
	StartDate       *time.Time
	EndDate         *time.Time
	MinEarnings     *float64
	MaxEarnings     *float64
	Page            int
	Limit           int
}

type ClaimRepository interface {
	// CreateClaim persists the claim and its post references atomically.
	// The store owns the authoritative cross-claim post uniqueness guarantee
	// and returns ErrDuplicateClaim when it is violated.
	CreateClaim(ctx context.Context, claim entities.Claim) error
	// UpdateClaim persists a mutation only when the stored version matches
	// expectedVersion, and bumps the version on success.
	UpdateClaim(ctx context.Context, claim entities.Claim, expectedVersion int64) error
	GetClaim(ctx context.Context, claimID string) (entities.Claim, error)
	// FindPostConflicts returns, for each requested post id, any claim that
	// already references it. The scan spans all claims regardless of status
	// or active flag.
	FindPostConflicts(ctx context.Context, postIDs []string) ([]entities.PostConflict, error)
	ListClaims(ctx context.Context, filter ClaimFilter) ([]entities.Claim, int64, error)
	// ListStaleLocks returns claims whose lock is older than threshold.
	ListStaleLocks(ctx context.Context, threshold time.Time, limit int) ([]entities.Claim, error)
}

// PostForClaim is the projection of a post the claim core needs.
type PostForClaim struct {
	PostID    string
	OwnerID   string
	Content   string
	LikeCount int
	ViewCount int
	Active    bool
}

type PostReader interface {
	// GetPostsByIDs returns the posts it found; missing ids are simply absent.
	GetPostsByIDs(ctx context.Context, postIDs []string) ([]PostForClaim, error)
}

type RateConfiguration struct {
	RateID          string
	RatePerLike     float64
	RatePer100Views float64
}

type RateReader interface {
	// GetActiveRate returns ErrRateConfigurationMissing when no record is active.
	GetActiveRate(ctx context.Context) (RateConfiguration, error)
}

// Audience addresses a notification: everyone, one role, or one user.
type Audience struct {
	Broadcast bool
	Role      string
	UserID    string
}

func BroadcastAudience() Audience       { return Audience{Broadcast: true} }
func RoleAudience(role string) Audience { return Audience{Role: role} }
func UserAudience(userID string) Audience {
	return Audience{UserID: userID}
}

type Notification struct {
	Event    string
	Audience Audience
	Payload  map[string]any
}

// Notifier is best-effort: publish failures never roll back the state
// mutation that produced the event.
type Notifier interface {
	Publish(ctx context.Context, notification Notification) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
