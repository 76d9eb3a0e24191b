package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicelog-go/internal/config"
	"voicelog-go/internal/fault"
)

func completionBody(content string) []byte {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": content}}},
	})
	return b
}

func newTestAdvisor(t *testing.T, handler http.HandlerFunc) *Advisor {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	a := New(config.Config{
		OpenAIAPIKey:  "sk-test",
		OpenAIBaseURL: ts.URL + "/v1",
		AdvisorModel:  "gpt-4o-mini",
	})
	a.maxWait = 3 * time.Second
	return a
}

func TestAdviseReturnsAnswer(t *testing.T) {
	var gotUser string
	a := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) && len(req.Messages) > 0 {
			gotUser = req.Messages[len(req.Messages)-1].Content
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionBody("Focus on the retainer clients first."))
	})

	answer, err := a.Advise(context.Background(), Request{
		Question: "Where should I spend next week?",
		Context:  map[string]any{"revenue_target": 10000},
	})
	require.NoError(t, err)
	assert.Equal(t, "Focus on the retainer clients first.", answer)
	assert.Contains(t, gotUser, "revenue_target")
	assert.Contains(t, gotUser, "Where should I spend next week?")
}

func TestAdviseRetriesTransientFailure(t *testing.T) {
	calls := 0
	a := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": {"message": "rate limit exceeded", "type": "requests"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionBody("Retry worked."))
	})

	answer, err := a.Advise(context.Background(), Request{Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, "Retry worked.", answer)
	assert.GreaterOrEqual(t, calls, 2)
}

func TestAdviseDoesNotRetryClientError(t *testing.T) {
	calls := 0
	a := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "invalid model", "type": "invalid_request_error"}}`))
	})

	_, err := a.Advise(context.Background(), Request{Question: "q"})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "4xx other than 429 is permanent")
	assert.True(t, fault.Is(err, fault.UpstreamUnavailable))
}

func TestAdviseEmptyQuestion(t *testing.T) {
	a := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := a.Advise(context.Background(), Request{})
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.Input))
}

func TestAdviseMissingCredential(t *testing.T) {
	a := New(config.Config{})
	_, err := a.Advise(context.Background(), Request{Question: "q"})
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.Configuration))
}
