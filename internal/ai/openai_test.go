package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeOpenAI(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Messages, 2)

		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestOpenAIAdvisor(baseURL string) *OpenAIAdvisor {
	a := NewOpenAIAdvisor("test-key", "gpt-4o-mini")
	a.BaseURL = baseURL
	return a
}

func TestOpenAIAdvisorParsesReply(t *testing.T) {
	srv := newFakeOpenAI(t, http.StatusOK,
		"PRIORITY: high\nREASON: mentions a production incident and the word urgent")

	a := newTestOpenAIAdvisor(srv.URL)
	got, err := a.Assess(context.Background(), "Fix login", "production incident, urgent")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, got.Priority)
	assert.Equal(t, "mentions a production incident and the word urgent", got.Reason)
	assert.Equal(t, StrategyOpenAI, got.Strategy)
}

func TestOpenAIAdvisorNormalizesLabelCase(t *testing.T) {
	srv := newFakeOpenAI(t, http.StatusOK, "PRIORITY:  Medium \nREASON: routine chore")

	a := newTestOpenAIAdvisor(srv.URL)
	got, err := a.Assess(context.Background(), "Water plants", "")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, got.Priority)
}

func TestOpenAIAdvisorUnrecognizedLabel(t *testing.T) {
	srv := newFakeOpenAI(t, http.StatusOK, "PRIORITY: banana\nREASON: who knows")

	a := newTestOpenAIAdvisor(srv.URL)
	_, err := a.Assess(context.Background(), "Water plants", "")
	assert.Error(t, err)
}

func TestOpenAIAdvisorNonSuccessStatus(t *testing.T) {
	srv := newFakeOpenAI(t, http.StatusInternalServerError, "")

	a := newTestOpenAIAdvisor(srv.URL)
	_, err := a.Assess(context.Background(), "Water plants", "")
	assert.Error(t, err)
}

func TestOpenAIAdvisorUnreachableEndpoint(t *testing.T) {
	srv := newFakeOpenAI(t, http.StatusOK, "PRIORITY: low\nREASON: fine")
	srv.Close()

	a := newTestOpenAIAdvisor(srv.URL)
	_, err := a.Assess(context.Background(), "Water plants", "")
	assert.Error(t, err)
}

func TestOpenAIAdvisorEmptyTitleSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	a := newTestOpenAIAdvisor(srv.URL)
	_, err := a.Assess(context.Background(), "  ", "desc")
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.False(t, called)
}

func TestParseAssessment(t *testing.T) {
	got, err := parseAssessment("PRIORITY: low\nREASON: nothing urgent here")
	require.NoError(t, err)
	assert.Equal(t, PriorityLow, got.Priority)
	assert.Equal(t, "nothing urgent here", got.Reason)

	// label without a reason still yields a non-empty reason
	got, err = parseAssessment("PRIORITY: high")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, got.Priority)
	assert.NotEmpty(t, got.Reason)

	// free text without the labels is a parse failure
	_, err = parseAssessment("This task looks pretty important to me!")
	assert.Error(t, err)

	_, err = parseAssessment("")
	assert.Error(t, err)
}

func TestBuildUserPrompt(t *testing.T) {
	assert.Equal(t, "Title: Fix bug", BuildUserPrompt("Fix bug", ""))
	assert.Equal(t, "Title: Fix bug\nDescription: in prod", BuildUserPrompt("Fix bug", "in prod"))
	assert.Equal(t, "Title: Fix bug", BuildUserPrompt("Fix bug", "   "))
}
