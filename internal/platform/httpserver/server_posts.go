package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	posterrors "claimdesk/contexts/creator-earnings/post-service/domain/errors"
	posthttp "claimdesk/contexts/creator-earnings/post-service/transport/http"
)

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req posthttp.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.posts.Handler.CreatePostHandler(r.Context(), identity.UserID, req)
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	ownerID := query.Get("owner_id")
	if ownerID == "" {
		ownerID = identity.UserID
	}
	activeOnly := true
	if raw := query.Get("active_only"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_active_only", "active_only must be a boolean")
			return
		}
		activeOnly = parsed
	}

	resp, err := s.posts.Handler.ListPostsHandler(r.Context(), ownerID, activeOnly)
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddLike(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.identity(w, r); !ok {
		return
	}
	resp, err := s.posts.Handler.AddLikeHandler(r.Context(), r.PathValue("post_id"))
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddView(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.identity(w, r); !ok {
		return
	}
	resp, err := s.posts.Handler.AddViewHandler(r.Context(), r.PathValue("post_id"))
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeactivatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}
	if err := s.posts.Handler.DeactivatePostHandler(r.Context(), identity.UserID, r.PathValue("post_id")); err != nil {
		writePostDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writePostDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, posterrors.ErrInvalidPostInput):
		writeError(w, http.StatusBadRequest, "invalid_post_input", err.Error())
	case errors.Is(err, posterrors.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "post_not_found", err.Error())
	case errors.Is(err, posterrors.ErrPostInactive):
		writeError(w, http.StatusConflict, "post_inactive", err.Error())
	case errors.Is(err, posterrors.ErrNotPostOwner):
		writeError(w, http.StatusForbidden, "not_post_owner", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
