package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"claimdesk/contexts/creator-earnings/claim-service/domain/entities"
	domainerrors "claimdesk/contexts/creator-earnings/claim-service/domain/errors"
	"claimdesk/contexts/creator-earnings/claim-service/ports"

	"github.com/google/uuid"
)

// Store keeps the claim aggregate plus the post/rate projections the core
// reads. postClaims is the in-memory stand-in for the junction-table
// uniqueness constraint: one entry per post, kept for the claim's lifetime.
type Store struct {
	mu sync.RWMutex

	claims     map[string]entities.Claim
	postClaims map[string]string
	posts      map[string]ports.PostForClaim
	rate       *ports.RateConfiguration
}

func NewStore(seedPosts []ports.PostForClaim, rate *ports.RateConfiguration) *Store {
	posts := make(map[string]ports.PostForClaim, len(seedPosts))
	for _, post := range seedPosts {
		posts[post.PostID] = post
	}
	return &Store{
		claims:     make(map[string]entities.Claim),
		postClaims: make(map[string]string),
		posts:      posts,
		rate:       rate,
	}
}

// SeedPost adds or replaces a post projection.
func (s *Store) SeedPost(post ports.PostForClaim) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.PostID] = post
}

// SetActiveRate installs the rate configuration claims are priced against.
func (s *Store) SetActiveRate(rate ports.RateConfiguration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rate = &rate
}

func (s *Store) CreateClaim(_ context.Context, claim entities.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var conflicts []entities.PostConflict
	for _, postID := range claim.PostIDs {
		if claimID, taken := s.postClaims[postID]; taken {
			conflicts = append(conflicts, entities.PostConflict{
				PostID:      postID,
				ClaimID:     claimID,
				ClaimStatus: s.claims[claimID].Status,
			})
		}
	}
	if len(conflicts) > 0 {
		return &domainerrors.DuplicateClaimError{Conflicts: conflicts}
	}

	for _, postID := range claim.PostIDs {
		s.postClaims[postID] = claim.ClaimID
	}
	s.claims[claim.ClaimID] = copyClaim(claim)
	return nil
}

func (s *Store) UpdateClaim(_ context.Context, claim entities.Claim, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.claims[claim.ClaimID]
	if !exists {
		return domainerrors.ErrClaimNotFound
	}
	if existing.Version != expectedVersion {
		return domainerrors.ErrVersionConflict
	}
	claim.Version = expectedVersion + 1
	s.claims[claim.ClaimID] = copyClaim(claim)
	return nil
}

func (s *Store) GetClaim(_ context.Context, claimID string) (entities.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claim, exists := s.claims[strings.TrimSpace(claimID)]
	if !exists {
		return entities.Claim{}, domainerrors.ErrClaimNotFound
	}
	return copyClaim(claim), nil
}

func (s *Store) FindPostConflicts(_ context.Context, postIDs []string) ([]entities.PostConflict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var conflicts []entities.PostConflict
	for _, postID := range postIDs {
		if claimID, taken := s.postClaims[postID]; taken {
			conflicts = append(conflicts, entities.PostConflict{
				PostID:      postID,
				ClaimID:     claimID,
				ClaimStatus: s.claims[claimID].Status,
			})
		}
	}
	return conflicts, nil
}

func (s *Store) ListClaims(_ context.Context, filter ports.ClaimFilter) ([]entities.Claim, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.Claim, 0, len(s.claims))
	for _, claim := range s.claims {
		if !matchesFilter(claim, filter) {
			continue
		}
		matched = append(matched, copyClaim(claim))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return []entities.Claim{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *Store) ListStaleLocks(_ context.Context, threshold time.Time, limit int) ([]entities.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	var stale []entities.Claim
	for _, claim := range s.claims {
		if claim.LockedBy == "" || claim.LockedAt == nil {
			continue
		}
		if claim.LockedAt.After(threshold) {
			continue
		}
		stale = append(stale, copyClaim(claim))
		if len(stale) >= limit {
			break
		}
	}
	return stale, nil
}

func (s *Store) GetPostsByIDs(_ context.Context, postIDs []string) ([]ports.PostForClaim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.PostForClaim, 0, len(postIDs))
	for _, postID := range postIDs {
		if post, found := s.posts[strings.TrimSpace(postID)]; found {
			items = append(items, post)
		}
	}
	return items, nil
}

func (s *Store) GetActiveRate(_ context.Context) (ports.RateConfiguration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.rate == nil {
		return ports.RateConfiguration{}, domainerrors.ErrRateConfigurationMissing
	}
	return *s.rate, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func matchesFilter(claim entities.Claim, filter ports.ClaimFilter) bool {
	if filter.OwnerID != "" && claim.OwnerID != filter.OwnerID {
		return false
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, status := range filter.Statuses {
			if claim.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.ReviewedBy != "" && claim.ReviewedBy != filter.ReviewedBy {
		return false
	}
	if filter.FinalApprovedBy != "" && claim.FinalApprovedBy != filter.FinalApprovedBy {
		return false
	}
	if filter.HasDeduction != nil {
		if *filter.HasDeduction != (claim.DeductionAmount > 0) {
			return false
		}
	}
	if filter.StartDate != nil && claim.CreatedAt.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && claim.CreatedAt.After(*filter.EndDate) {
		return false
	}
	if filter.MinEarnings != nil && claim.CalculatedEarnings < *filter.MinEarnings {
		return false
	}
	if filter.MaxEarnings != nil && claim.CalculatedEarnings > *filter.MaxEarnings {
		return false
	}
	return true
}

func copyClaim(claim entities.Claim) entities.Claim {
	claim.PostIDs = append([]string(nil), claim.PostIDs...)
	claim.ProofFileURLs = append([]string(nil), claim.ProofFileURLs...)
	claim.History = append([]entities.HistoryEntry(nil), claim.History...)
	if claim.LockedAt != nil {
		lockedAt := *claim.LockedAt
		claim.LockedAt = &lockedAt
	}
	return claim
}
