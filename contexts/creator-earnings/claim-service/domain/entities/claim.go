package entities

import (
	"strings"
	"time"
)

type ClaimStatus string

const (
	ClaimStatusPending         ClaimStatus = "pending"
	ClaimStatusDeducted        ClaimStatus = "deducted"
	ClaimStatusUserAccepted    ClaimStatus = "user_accepted"
	ClaimStatusUserRejected    ClaimStatus = "user_rejected"
	ClaimStatusAccountApproved ClaimStatus = "account_approved"
	ClaimStatusAdminApproved   ClaimStatus = "admin_approved"
	ClaimStatusSettled         ClaimStatus = "settled"
)

// HistoryAction is the closed vocabulary of claim history entries.
// Anything outside this set loaded from storage is treated as a
// data-quality problem, not a valid entry.
type HistoryAction string

const (
	HistoryActionSubmitted        HistoryAction = "submitted"
	HistoryActionDeductionApplied HistoryAction = "deduction_applied"
	HistoryActionUserAccepted     HistoryAction = "user_accepted"
	HistoryActionUserRejected     HistoryAction = "user_rejected"
	HistoryActionAccountApproved  HistoryAction = "account_approved"
	HistoryActionAdminApproved    HistoryAction = "admin_approved"
	HistoryActionSettled          HistoryAction = "settled"
)

func (a HistoryAction) Valid() bool {
	switch a {
	case HistoryActionSubmitted,
		HistoryActionDeductionApplied,
		HistoryActionUserAccepted,
		HistoryActionUserRejected,
		HistoryActionAccountApproved,
		HistoryActionAdminApproved,
		HistoryActionSettled:
		return true
	}
	return false
}

type HistoryEntry struct {
	Action  HistoryAction
	ActorID string
	Note    string
	At      time.Time
}

type Claim struct {
	ClaimID            string
	OwnerID            string
	PostIDs            []string
	ProofFileURLs      []string
	CalculatedEarnings float64
	Status             ClaimStatus
	DeductionAmount    float64
	DeductionReason    string
	RejectionReason    string
	ReviewedBy         string
	FinalApprovedBy    string
	LockedBy           string
	LockedAt           *time.Time
	History            []HistoryEntry
	Active             bool
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (c Claim) ValidateCreate() bool {
	return strings.TrimSpace(c.OwnerID) != "" &&
		len(c.PostIDs) > 0 &&
		len(c.ProofFileURLs) > 0
}

// FinalAmount is what the claim pays out after any deduction.
func (c Claim) FinalAmount() float64 {
	return c.CalculatedEarnings - c.DeductionAmount
}

// Locked reports whether the claim carries a lock younger than ttl.
// An older lock is considered abandoned and reclaimable.
func (c Claim) Locked(now time.Time, ttl time.Duration) bool {
	if c.LockedBy == "" || c.LockedAt == nil {
		return false
	}
	return now.Sub(*c.LockedAt) < ttl
}

// AppendHistory records a transition on the aggregate.
func (c *Claim) AppendHistory(action HistoryAction, actorID string, note string, at time.Time) {
	c.History = append(c.History, HistoryEntry{
		Action:  action,
		ActorID: strings.TrimSpace(actorID),
		Note:    strings.TrimSpace(note),
		At:      at,
	})
}

// PostConflict describes a post that is already referenced by another claim.
type PostConflict struct {
	PostID      string
	ClaimID     string
	ClaimStatus ClaimStatus
	PostExcerpt string
}
