package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	claimservice "claimdesk/contexts/creator-earnings/claim-service"
	claimhttp "claimdesk/contexts/creator-earnings/claim-service/transport/http"
	postservice "claimdesk/contexts/creator-earnings/post-service"
	rateservice "claimdesk/contexts/creator-earnings/rate-service"
	"claimdesk/internal/platform/messaging"

	_ "claimdesk/internal/platform/httpserver/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	auth   Authenticator
	claims claimservice.Module
	posts  postservice.Module
	rates  rateservice.Module
	hub    *messaging.Hub
}

func New(
	claims claimservice.Module,
	posts postservice.Module,
	rates rateservice.Module,
	hub *messaging.Hub,
	auth Authenticator,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		auth:   auth,
		claims: claims,
		posts:  posts,
		rates:  rates,
		hub:    hub,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Mux exposes the routing table so tests can drive the server through
// httptest without binding a port.
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/posts", s.handleCreatePost)
	s.mux.HandleFunc("GET /v1/posts", s.handleListPosts)
	s.mux.HandleFunc("POST /v1/posts/{post_id}/like", s.handleAddLike)
	s.mux.HandleFunc("POST /v1/posts/{post_id}/view", s.handleAddView)
	s.mux.HandleFunc("DELETE /v1/posts/{post_id}", s.handleDeactivatePost)

	s.mux.HandleFunc("PUT /v1/rates", s.handleSetRate)
	s.mux.HandleFunc("GET /v1/rates/active", s.handleGetActiveRate)

	s.mux.HandleFunc("POST /v1/claims", s.handleCreateClaim)
	s.mux.HandleFunc("GET /v1/claims", s.handleListClaims)
	s.mux.HandleFunc("GET /v1/claims/{claim_id}", s.handleGetClaim)
	s.mux.HandleFunc("POST /v1/claims/check-posts", s.handleCheckPosts)
	s.mux.HandleFunc("POST /v1/claims/{claim_id}/deduction", s.handleApplyDeduction)
	s.mux.HandleFunc("POST /v1/claims/{claim_id}/deduction/response", s.handleRespondToDeduction)
	s.mux.HandleFunc("POST /v1/claims/{claim_id}/approve", s.handleAccountApprove)
	s.mux.HandleFunc("POST /v1/claims/{claim_id}/reject", s.handleAccountReject)
	s.mux.HandleFunc("POST /v1/claims/{claim_id}/final-approval", s.handleAdminApprove)
	s.mux.HandleFunc("POST /v1/claims/{claim_id}/lock", s.handleLockClaim)
	s.mux.HandleFunc("DELETE /v1/claims/{claim_id}/lock", s.handleUnlockClaim)

	s.mux.HandleFunc("GET /v1/notifications/stream", s.handleNotificationStream)
}

// identity authenticates the request, writing a 401 and returning false on
// failure.
func (s *Server) identity(w http.ResponseWriter, r *http.Request) (Identity, bool) {
	identity, err := s.auth.Resolve(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "a valid token or X-User-Id header is required")
		return Identity{}, false
	}
	return identity, true
}

// identityWithRole additionally enforces that the caller holds one of the
// listed roles.
func (s *Server) identityWithRole(w http.ResponseWriter, r *http.Request, roles ...string) (Identity, bool) {
	identity, ok := s.identity(w, r)
	if !ok {
		return Identity{}, false
	}
	for _, role := range roles {
		if identity.Role == role {
			return identity, true
		}
	}
	writeError(w, http.StatusForbidden, "forbidden", "caller role is not allowed to perform this action")
	return Identity{}, false
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, claimhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
