package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	claimservice "claimdesk/contexts/creator-earnings/claim-service"
	"claimdesk/contexts/creator-earnings/claim-service/ports"
	postservice "claimdesk/contexts/creator-earnings/post-service"
	rateservice "claimdesk/contexts/creator-earnings/rate-service"
	"claimdesk/internal/platform/messaging"
)

const testSecret = "test-secret"

// newTestServer runs in header-identity mode (no JWT secret configured);
// newJWTTestServer exercises the token path.
func newTestServer() *Server {
	return newServerWithAuth(Authenticator{})
}

func newJWTTestServer() *Server {
	return newServerWithAuth(Authenticator{Secret: []byte(testSecret)})
}

func newServerWithAuth(auth Authenticator) *Server {
	claims := claimservice.NewInMemoryModule(
		[]ports.PostForClaim{
			{PostID: "post-1", OwnerID: "creator-1", Content: "recap", LikeCount: 10, Active: true},
		},
		&ports.RateConfiguration{RateID: "rate-1", RatePerLike: 0.01, RatePer100Views: 0.50},
		nil,
	)
	return New(
		claims,
		postservice.NewInMemoryModule(nil, nil),
		rateservice.NewInMemoryModule(nil, nil),
		messaging.NewHub(nil),
		auth,
		nil,
		":0",
	)
}

func doRequest(t *testing.T, s *Server, method string, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)
	return rec
}

func asUser(userID string, role string) map[string]string {
	return map[string]string{"X-User-Id": userID, "X-User-Role": role}
}

func TestRequestsWithoutIdentityAreRejected(t *testing.T) {
	s := newTestServer()
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/v1/claims"},
		{http.MethodGet, "/v1/claims"},
		{http.MethodPost, "/v1/posts"},
		{http.MethodPut, "/v1/rates"},
		{http.MethodGet, "/v1/notifications/stream"},
	}
	for _, tc := range paths {
		rec := doRequest(t, s, tc.method, tc.path, "{}", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestPrivilegedRoutesEnforceRoles(t *testing.T) {
	s := newTestServer()
	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/v1/claims/any/deduction", `{"amount":0.01,"reason":"r"}`},
		{http.MethodPost, "/v1/claims/any/approve", ""},
		{http.MethodPost, "/v1/claims/any/reject", `{"reason":"r"}`},
		{http.MethodPost, "/v1/claims/any/final-approval", ""},
		{http.MethodPost, "/v1/claims/any/lock", ""},
		{http.MethodDelete, "/v1/claims/any/lock", ""},
		{http.MethodPut, "/v1/rates", `{"rate_per_like":0.01,"rate_per_100_views":0.5}`},
	}
	for _, tc := range cases {
		rec := doRequest(t, s, tc.method, tc.path, tc.body, asUser("creator-1", "creator"))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s %s as creator: expected 403, got %d", tc.method, tc.path, rec.Code)
		}
	}

	// account role may not give final approval
	rec := doRequest(t, s, http.MethodPost, "/v1/claims/any/final-approval", "", asUser("reviewer-1", "account"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("final approval as account: expected 403, got %d", rec.Code)
	}
}

func TestBearerTokenIdentityIsAccepted(t *testing.T) {
	s := newJWTTestServer()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "creator-1",
		"role":    "creator",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := doRequest(t, s, http.MethodPost, "/v1/claims",
		`{"post_ids":["post-1"],"proof_file_urls":["https://files.example/p.png"]}`,
		map[string]string{"Authorization": "Bearer " + signed},
	)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestForgedBearerTokenIsRejected(t *testing.T) {
	s := newJWTTestServer()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "creator-1",
		"role":    "admin",
	})
	signed, err := token.SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := doRequest(t, s, http.MethodGet, "/v1/claims", "",
		map[string]string{"Authorization": "Bearer " + signed},
	)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", rec.Code)
	}
}

func TestHeaderIdentityRejectedWhenSecretConfigured(t *testing.T) {
	s := newJWTTestServer()

	// Identity headers must not bypass token verification once a secret
	// is in place.
	rec := doRequest(t, s, http.MethodGet, "/v1/claims", "", asUser("creator-1", "creator"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for header identity with secret configured, got %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodPost, "/v1/claims",
		`{"post_ids":["post-1"],"proof_file_urls":["u"]}`, asUser("creator-1", "creator"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for header identity with secret configured, got %d", rec.Code)
	}
}

func TestDomainErrorsMapToStatusCodes(t *testing.T) {
	s := newTestServer()

	// Unknown claim -> 404
	rec := doRequest(t, s, http.MethodGet, "/v1/claims/no-such-claim", "", asUser("creator-1", "creator"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	// Duplicate claim -> 409
	create := `{"post_ids":["post-1"],"proof_file_urls":["u"]}`
	rec = doRequest(t, s, http.MethodPost, "/v1/claims", create, asUser("creator-1", "creator"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, s, http.MethodPost, "/v1/claims", create, asUser("creator-1", "creator"))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate, got %d", rec.Code)
	}
	var errBody struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil || errBody.Code != "duplicate_claim" {
		t.Fatalf("expected duplicate_claim code, got %s", rec.Body.String())
	}

	// Foreign post -> 403
	rec = doRequest(t, s, http.MethodPost, "/v1/claims",
		`{"post_ids":["post-1"],"proof_file_urls":["u"]}`, asUser("creator-2", "creator"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign post, got %d", rec.Code)
	}

	// Malformed JSON -> 400
	rec = doRequest(t, s, http.MethodPost, "/v1/claims", "{not json", asUser("creator-1", "creator"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad JSON, got %d", rec.Code)
	}
}

func TestLockContentionReturnsOKWithLockedFalse(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/v1/claims",
		`{"post_ids":["post-1"],"proof_file_urls":["u"]}`, asUser("creator-1", "creator"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create claim: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Claim struct {
			ClaimID string `json:"claim_id"`
		} `json:"claim"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode claim: %v", err)
	}

	rec = doRequest(t, s, http.MethodPost, "/v1/claims/"+created.Claim.ClaimID+"/lock", "", asUser("reviewer-1", "account"))
	if rec.Code != http.StatusOK {
		t.Fatalf("first lock: %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodPost, "/v1/claims/"+created.Claim.ClaimID+"/lock", "", asUser("reviewer-2", "account"))
	if rec.Code != http.StatusOK {
		t.Fatalf("contended lock must still be 200, got %d", rec.Code)
	}
	var lock struct {
		Locked   bool   `json:"locked"`
		LockedBy string `json:"locked_by"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &lock); err != nil {
		t.Fatalf("decode lock response: %v", err)
	}
	if lock.Locked {
		t.Fatalf("expected locked=false under contention, got %+v", lock)
	}
}

func TestCreatorsOnlySeeTheirOwnClaims(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/v1/claims",
		`{"post_ids":["post-1"],"proof_file_urls":["u"]}`, asUser("creator-1", "creator"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create claim: %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/v1/claims?owner_id=creator-1", "", asUser("creator-2", "creator"))
	if rec.Code != http.StatusOK {
		t.Fatalf("list claims: %d", rec.Code)
	}
	var list struct {
		Total int64 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 0 {
		t.Fatalf("creator-2 must not see creator-1's claims, got total %d", list.Total)
	}

	rec = doRequest(t, s, http.MethodGet, "/v1/claims?owner_id=creator-1", "", asUser("reviewer-1", "account"))
	if rec.Code != http.StatusOK {
		t.Fatalf("reviewer list: %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode reviewer list: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("reviewer should see creator-1's claim, got total %d", list.Total)
	}
}
