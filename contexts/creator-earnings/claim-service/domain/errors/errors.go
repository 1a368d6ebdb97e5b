package errors

import (
	"errors"
	"fmt"
	"strings"

	"claimdesk/contexts/creator-earnings/claim-service/domain/entities"
)

var (
	ErrClaimNotFound            = errors.New("claim not found")
	ErrInvalidClaimInput        = errors.New("invalid claim input")
	ErrDuplicateClaim           = errors.New("one or more posts are already claimed")
	ErrForbiddenPost            = errors.New("post does not belong to the claim owner")
	ErrRateConfigurationMissing = errors.New("no active rate configuration")
	ErrInvalidStatusTransition  = errors.New("invalid claim status transition")
	ErrInvalidDeduction         = errors.New("deduction amount must be greater than zero and less than calculated earnings")
	ErrUnauthorizedActor        = errors.New("actor is not authorized")
	ErrVersionConflict          = errors.New("claim was modified concurrently")
)

// DuplicateClaimError carries every conflicting post so callers can tell the
// submitter exactly which posts are blocked and by which claim.
type DuplicateClaimError struct {
	Conflicts []entities.PostConflict
}

func (e *DuplicateClaimError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("post %s already claimed (claim %s, status %s)", c.PostID, c.ClaimID, c.ClaimStatus))
	}
	return "duplicate claim: " + strings.Join(parts, "; ")
}

func (e *DuplicateClaimError) Is(target error) bool {
	return target == ErrDuplicateClaim
}

// ForbiddenPostError names the posts that do not belong to the submitter.
type ForbiddenPostError struct {
	PostIDs []string
}

func (e *ForbiddenPostError) Error() string {
	return "posts not owned by claim owner: " + strings.Join(e.PostIDs, ", ")
}

func (e *ForbiddenPostError) Is(target error) bool {
	return target == ErrForbiddenPost
}
