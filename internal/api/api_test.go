package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compasshq/compass/server/internal/store/memory"
	"github.com/compasshq/compass/server/internal/timeparse"
)

type scriptedOracle struct {
	responses []string
	err       error
}

func (o *scriptedOracle) Complete(ctx context.Context, prompt string) (string, error) {
	if o.err != nil {
		return "", o.err
	}
	if len(o.responses) == 0 {
		return "", errors.New("scripted oracle exhausted")
	}
	out := o.responses[0]
	o.responses = o.responses[1:]
	return out, nil
}

func (o *scriptedOracle) Healthy(ctx context.Context) error { return o.err }

func newTestServer(o *scriptedOracle) *httptest.Server {
	router := NewRouter(Deps{
		Store:        memory.New(),
		Oracle:       o,
		Dates:        timeparse.New(time.UTC),
		HistoryLimit: 20,
		Log:          zerolog.Nop(),
	})
	return httptest.NewServer(router)
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(&scriptedOracle{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "healthy", body["status"])

	// In-memory store reports healthy without a database.
	resp, err = http.Get(srv.URL + "/api/health/db")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAIHealthUnavailable(t *testing.T) {
	srv := newTestServer(&scriptedOracle{err: errors.New("gemini: API key not configured")})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health/ai")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestGoalCRUDOverHTTP(t *testing.T) {
	srv := newTestServer(&scriptedOracle{})
	defer srv.Close()
	base := srv.URL + "/api/users/u1/goals"

	resp := postJSON(t, base, map[string]interface{}{"title": "Learn Spanish"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]interface{}
	decodeBody(t, resp, &created)
	goalID, _ := created["goalId"].(string)
	require.NotEmpty(t, goalID)

	resp, err := http.Get(base)
	require.NoError(t, err)
	var listed struct {
		Count int `json:"count"`
	}
	decodeBody(t, resp, &listed)
	assert.Equal(t, 1, listed.Count)

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/%s", base, goalID), nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = http.Get(fmt.Sprintf("%s/%s", base, goalID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestGoalValidationOverHTTP(t *testing.T) {
	srv := newTestServer(&scriptedOracle{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/users/u1/goals", map[string]interface{}{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/users/NOT%20VALID/goals", map[string]interface{}{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestChatEndpoint(t *testing.T) {
	o := &scriptedOracle{responses: []string{
		`{"domain": "task", "operation": "create", "confidence": "high", "reasoning": "add request"}`,
		`{"success": true, "title": "review documents"}`,
	}}
	srv := newTestServer(o)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/users/u1/ai/chat", map[string]interface{}{"message": "Add a task to review documents"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
		Actions []struct {
			ActionType string `json:"action_type"`
			EntityType string `json:"entity_type"`
		} `json:"actions"`
	}
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Message, "review documents")
	require.Len(t, body.Actions, 1)
	assert.Equal(t, "create", body.Actions[0].ActionType)
	assert.Equal(t, "task", body.Actions[0].EntityType)
}

func TestChatEndpoint_EmptyMessage(t *testing.T) {
	srv := newTestServer(&scriptedOracle{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/users/u1/ai/chat", map[string]interface{}{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestChatEndpoint_ThreadPersistence(t *testing.T) {
	o := &scriptedOracle{responses: []string{
		`{"domain": "task", "operation": "read", "confidence": "high", "reasoning": "list request"}`,
	}}
	srv := newTestServer(o)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/users/u1/threads", map[string]interface{}{"title": "planning"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var th map[string]interface{}
	decodeBody(t, resp, &th)
	threadID, _ := th["threadId"].(string)
	require.NotEmpty(t, threadID)

	resp = postJSON(t, srv.URL+"/api/users/u1/ai/chat", map[string]interface{}{"message": "Show my tasks", "threadId": threadID})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/users/u1/threads/" + threadID + "/messages")
	require.NoError(t, err)
	var msgs struct {
		Count    int `json:"count"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	decodeBody(t, resp, &msgs)
	require.Equal(t, 2, msgs.Count)
	assert.Equal(t, "user", msgs.Messages[0].Role)
	assert.Equal(t, "assistant", msgs.Messages[1].Role)
}

func TestSuggestionsStaticFallback(t *testing.T) {
	srv := newTestServer(&scriptedOracle{err: errors.New("quota exceeded")})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/users/u1/ai/suggestions")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Suggestions []string `json:"suggestions"`
		Source      string   `json:"source"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "static", body.Source)
	assert.NotEmpty(t, body.Suggestions)
}

func TestSuggestionsFromModel(t *testing.T) {
	srv := newTestServer(&scriptedOracle{responses: []string{"- Run a 5k\n- Journal nightly\n\n- Drink more water"}})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/users/u1/ai/suggestions")
	require.NoError(t, err)
	var body struct {
		Suggestions []string `json:"suggestions"`
		Source      string   `json:"source"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "ai", body.Source)
	assert.Equal(t, []string{"Run a 5k", "Journal nightly", "Drink more water"}, body.Suggestions)
}
