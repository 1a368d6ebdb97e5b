package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"claimdesk/contexts/creator-earnings/claim-service/application/queries"
	claimerrors "claimdesk/contexts/creator-earnings/claim-service/domain/errors"
	claimhttp "claimdesk/contexts/creator-earnings/claim-service/transport/http"
)

func (s *Server) handleCreateClaim(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req claimhttp.CreateClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.claims.Handler.CreateClaimHandler(r.Context(), identity.UserID, req)
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetClaim(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.identity(w, r); !ok {
		return
	}
	resp, err := s.claims.Handler.GetClaimHandler(r.Context(), r.PathValue("claim_id"))
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListClaims(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	listQuery := queries.ListClaimsQuery{
		OwnerID:         query.Get("owner_id"),
		Status:          query.Get("status"),
		ReviewedBy:      query.Get("reviewed_by"),
		FinalApprovedBy: query.Get("final_approved_by"),
		StartDate:       query.Get("start_date"),
		EndDate:         query.Get("end_date"),
	}

	// Creators only see their own claims regardless of the filter they ask
	// for. Reviewers and admins may scope by any owner.
	if identity.Role != RoleAccount && identity.Role != RoleAdmin {
		listQuery.OwnerID = identity.UserID
	}

	if raw := query.Get("has_deduction"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_has_deduction", "has_deduction must be a boolean")
			return
		}
		listQuery.HasDeduction = &parsed
	}
	if raw := query.Get("min_earnings"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_min_earnings", "min_earnings must be a number")
			return
		}
		listQuery.MinEarnings = &parsed
	}
	if raw := query.Get("max_earnings"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_max_earnings", "max_earnings must be a number")
			return
		}
		listQuery.MaxEarnings = &parsed
	}
	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_page", "page must be an integer")
			return
		}
		listQuery.Page = parsed
	}
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		listQuery.Limit = parsed
	}

	resp, err := s.claims.Handler.ListClaimsHandler(r.Context(), listQuery)
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheckPosts(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.identity(w, r); !ok {
		return
	}

	var req claimhttp.CheckPostsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.claims.Handler.CheckPostsHandler(r.Context(), req)
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApplyDeduction(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identityWithRole(w, r, RoleAccount)
	if !ok {
		return
	}

	var req claimhttp.ApplyDeductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.claims.Handler.ApplyDeductionHandler(r.Context(), identity.UserID, r.PathValue("claim_id"), req)
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRespondToDeduction(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req claimhttp.DeductionResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.claims.Handler.RespondToDeductionHandler(r.Context(), identity.UserID, r.PathValue("claim_id"), req)
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAccountApprove(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identityWithRole(w, r, RoleAccount)
	if !ok {
		return
	}
	resp, err := s.claims.Handler.AccountApproveHandler(r.Context(), identity.UserID, r.PathValue("claim_id"))
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAccountReject(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identityWithRole(w, r, RoleAccount)
	if !ok {
		return
	}

	var req claimhttp.RejectClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.claims.Handler.AccountRejectHandler(r.Context(), identity.UserID, r.PathValue("claim_id"), req)
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminApprove(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identityWithRole(w, r, RoleAdmin)
	if !ok {
		return
	}
	resp, err := s.claims.Handler.AdminApproveHandler(r.Context(), identity.UserID, r.PathValue("claim_id"))
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLockClaim(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identityWithRole(w, r, RoleAccount, RoleAdmin)
	if !ok {
		return
	}
	resp, err := s.claims.Handler.LockClaimHandler(r.Context(), identity.UserID, r.PathValue("claim_id"))
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnlockClaim(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identityWithRole(w, r, RoleAccount, RoleAdmin)
	if !ok {
		return
	}
	if err := s.claims.Handler.UnlockClaimHandler(r.Context(), identity.UserID, r.PathValue("claim_id")); err != nil {
		writeClaimDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeClaimDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, claimerrors.ErrInvalidClaimInput):
		writeError(w, http.StatusBadRequest, "invalid_claim_input", err.Error())
	case errors.Is(err, claimerrors.ErrInvalidDeduction):
		writeError(w, http.StatusBadRequest, "invalid_deduction", err.Error())
	case errors.Is(err, claimerrors.ErrForbiddenPost):
		writeError(w, http.StatusForbidden, "forbidden_post", err.Error())
	case errors.Is(err, claimerrors.ErrUnauthorizedActor):
		writeError(w, http.StatusForbidden, "unauthorized_actor", err.Error())
	case errors.Is(err, claimerrors.ErrClaimNotFound):
		writeError(w, http.StatusNotFound, "claim_not_found", err.Error())
	case errors.Is(err, claimerrors.ErrDuplicateClaim):
		writeError(w, http.StatusConflict, "duplicate_claim", err.Error())
	case errors.Is(err, claimerrors.ErrInvalidStatusTransition):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, claimerrors.ErrVersionConflict):
		writeError(w, http.StatusConflict, "version_conflict", err.Error())
	case errors.Is(err, claimerrors.ErrRateConfigurationMissing):
		writeError(w, http.StatusUnprocessableEntity, "rate_configuration_missing", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
