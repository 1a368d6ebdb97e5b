package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateClaimRequest struct {
	PostIDs       []string `json:"post_ids"`
	ProofFileURLs []string `json:"proof_file_urls"`
}

type CheckPostsRequest struct {
	PostIDs []string `json:"post_ids"`
}

type CheckPostsResponse struct {
	Conflict  bool              `json:"conflict"`
	Messages  []string          `json:"messages,omitempty"`
	Conflicts []PostConflictDTO `json:"conflicts,omitempty"`
}

type PostConflictDTO struct {
	PostID      string `json:"post_id"`
	ClaimID     string `json:"claim_id"`
	ClaimStatus string `json:"claim_status"`
	PostExcerpt string `json:"post_excerpt,omitempty"`
}

type ApplyDeductionRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

type DeductionResponseRequest struct {
	Accepted bool `json:"accepted"`
}

type RejectClaimRequest struct {
	Reason string `json:"reason"`
}

type LockClaimResponse struct {
	Locked   bool   `json:"locked"`
	LockedBy string `json:"locked_by,omitempty"`
}

type HistoryEntryDTO struct {
	Action  string `json:"action"`
	ActorID string `json:"actor_id"`
	Note    string `json:"note,omitempty"`
	At      string `json:"at"`
}

type ClaimDTO struct {
	ClaimID            string            `json:"claim_id"`
	OwnerID            string            `json:"owner_id"`
	PostIDs            []string          `json:"post_ids"`
	ProofFileURLs      []string          `json:"proof_file_urls"`
	CalculatedEarnings float64           `json:"calculated_earnings"`
	Status             string            `json:"status"`
	DeductionAmount    float64           `json:"deduction_amount"`
	DeductionReason    string            `json:"deduction_reason,omitempty"`
	RejectionReason    string            `json:"rejection_reason,omitempty"`
	FinalAmount        float64           `json:"final_amount"`
	ReviewedBy         string            `json:"reviewed_by,omitempty"`
	FinalApprovedBy    string            `json:"final_approved_by,omitempty"`
	LockedBy           string            `json:"locked_by,omitempty"`
	LockedAt           string            `json:"locked_at,omitempty"`
	History            []HistoryEntryDTO `json:"history"`
	Version            int64             `json:"version"`
	CreatedAt          string            `json:"created_at"`
	UpdatedAt          string            `json:"updated_at"`
}

type ClaimResponse struct {
	Claim ClaimDTO `json:"claim"`
}

type ListClaimsResponse struct {
	Items []ClaimDTO `json:"items"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}
