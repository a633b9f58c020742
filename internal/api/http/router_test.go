package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harambee-backend/internal/repository/memory"
	"harambee-backend/internal/security"
	"harambee-backend/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewStore()
	tokens := security.NewTokenManager("test-secret", time.Hour, 24*time.Hour)

	notifier := service.NewNotifier(store.Notifications, store.Groups, store.Members, store.Users, nil)
	ledger := service.NewLedgerService(store.Ledger)
	contributions := service.NewContributionService(store.Contributions, store.Members, store.Groups, ledger, notifier)
	groups := service.NewGroupService(store.Groups, store.Members, store.Users, notifier)
	projects := service.NewProjectService(store.Projects, store.Groups)
	links := service.NewLinkService(store.Groups, store.Projects, groups)
	otp := service.NewOTPService(store.OTPs, nil)
	auth := service.NewAuthService(store.Users, store.OTPs, tokens)
	notes := service.NewNotificationService(store.Notifications)

	router := NewRouter(Services{
		Auth:          auth,
		OTP:           otp,
		Contributions: contributions,
		Groups:        groups,
		Projects:      projects,
		Ledger:        ledger,
		Notifications: notes,
		Links:         links,
		Tokens:        tokens,
		EchoOTPCodes:  true,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

// registerUser walks the OTP gate and returns the new user's access token.
func registerUser(t *testing.T, srv *httptest.Server, phone, name string) string {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/otp/request", "", map[string]string{"phone_number": phone})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	code, _ := body["code"].(string)
	require.NotEmpty(t, code, "echo mode should return the issued code")

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/otp/verify", "", map[string]string{"phone_number": phone, "code": code})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", map[string]string{
		"phone_number": phone,
		"name":         name,
		"password":     "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestContributionLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	adminToken := registerUser(t, srv, "+254700000001", "Alice")
	memberToken := registerUser(t, srv, "+254700000002", "Mary")

	// Admin creates a group.
	resp, group := doJSON(t, http.MethodPost, srv.URL+"/api/v1/groups", adminToken, map[string]string{"name": "Building Fund", "currency": "KES"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	groupID := int(group["id"].(float64))
	slug := group["slug"].(string)

	// The member follows the shareable link and is auto-enrolled.
	resp, resolved := doJSON(t, http.MethodGet, srv.URL+"/api/v1/links/"+slug, memberToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, resolved["is_member"])

	// Member submits a payment claim.
	resp, contribution := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/v1/groups/%d/contributions", srv.URL, groupID), memberToken, map[string]interface{}{
		"amount":       "150.00",
		"payment_type": "mpesa",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "PENDING", contribution["status"])
	contributionID := int(contribution["id"].(float64))

	// The member cannot confirm their own claim.
	resp, _ = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/v1/contributions/%d/confirm", srv.URL, contributionID), memberToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The admin confirms it.
	resp, confirmed := doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/v1/contributions/%d/confirm", srv.URL, contributionID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CONFIRMED", confirmed["status"])

	// A second confirm is a conflict, not a repeat.
	resp, _ = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/v1/contributions/%d/confirm", srv.URL, contributionID), adminToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The totals reflect exactly one confirmation.
	resp, summary := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/groups/%d/summary", srv.URL, groupID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(15000), summary["collected_cents"])
	assert.Equal(t, float64(0), summary["pending_count"])

	// The member was notified of the outcome.
	resp, notes := doJSON(t, http.MethodGet, srv.URL+"/api/v1/notifications", memberToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), notes["total"])
}

func TestRegisterValidationIsBadRequest(t *testing.T) {
	srv := newTestServer(t)
	phone := "+254700000099"

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/otp/request", "", map[string]string{"phone_number": phone})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	code, _ := body["code"].(string)
	require.NotEmpty(t, code)
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/otp/verify", "", map[string]string{"phone_number": phone, "code": code})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", map[string]string{
		"phone_number": phone,
		"name":         "Alice",
		"password":     "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	msg, _ := body["error"].(string)
	assert.Contains(t, msg, "password must be at least 8 characters")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/notifications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/groups", "garbage-token", map[string]string{"name": "X"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLinkResolutionIsAnonymousFriendly(t *testing.T) {
	srv := newTestServer(t)

	adminToken := registerUser(t, srv, "+254700000001", "Alice")
	resp, group := doJSON(t, http.MethodPost, srv.URL+"/api/v1/groups", adminToken, map[string]string{"name": "Harvest Drive"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, resolved := doJSON(t, http.MethodGet, srv.URL+"/api/v1/links/"+group["slug"].(string), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, resolved["is_member"])

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/links/no-such-group", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
