package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	rateerrors "claimdesk/contexts/creator-earnings/rate-service/domain/errors"
	ratehttp "claimdesk/contexts/creator-earnings/rate-service/transport/http"
)

func (s *Server) handleSetRate(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identityWithRole(w, r, RoleAdmin)
	if !ok {
		return
	}

	var req ratehttp.SetRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.rates.Handler.SetRateHandler(r.Context(), identity.UserID, req)
	if err != nil {
		writeRateDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetActiveRate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.identity(w, r); !ok {
		return
	}
	resp, err := s.rates.Handler.GetActiveRateHandler(r.Context())
	if err != nil {
		writeRateDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeRateDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rateerrors.ErrInvalidRateInput):
		writeError(w, http.StatusBadRequest, "invalid_rate_input", err.Error())
	case errors.Is(err, rateerrors.ErrNoActiveRate):
		writeError(w, http.StatusNotFound, "no_active_rate", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
