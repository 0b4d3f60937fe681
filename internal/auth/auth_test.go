package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, ParseToken(testSecret, token))
	assert.Error(t, ParseToken([]byte("other-secret"), token))
	assert.Error(t, ParseToken(testSecret, "not-a-token"))
}

func TestMiddleware(t *testing.T) {
	mw := New(testSecret)

	called := false
	handler := mw.Wrap(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	// no header
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	// garbage token
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	handler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	// valid token
	token, err := GenerateToken(testSecret)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestIssueToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-key"), bcrypt.MinCost)
	require.NoError(t, err)

	h := &TokenHandler{Secret: testSecret, APIKeyHash: hash}

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(body))
		h.IssueToken(rec, req)
		return rec
	}

	rec := post(`{"api_key":"super-key"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NoError(t, ParseToken(testSecret, resp.Token))

	assert.Equal(t, http.StatusForbidden, post(`{"api_key":"wrong"}`).Code)
	assert.Equal(t, http.StatusForbidden, post(`{"api_key":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{`).Code)

	// GET is rejected
	rec = httptest.NewRecorder()
	h.IssueToken(rec, httptest.NewRequest(http.MethodGet, "/auth/token", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestIssueTokenWithoutConfiguredHash(t *testing.T) {
	h := &TokenHandler{Secret: testSecret}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/token",
		bytes.NewBufferString(`{"api_key":"anything"}`))
	h.IssueToken(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
