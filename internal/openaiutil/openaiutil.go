// Package openaiutil holds the shared go-openai client plumbing: construction
// from injected config and mapping SDK errors onto the fault taxonomy.
package openaiutil

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"voicelog-go/internal/config"
	"voicelog-go/internal/fault"
)

// NewClient builds an API client from injected configuration. The credential
// check happens here, once, so a missing key is caught at startup rather than
// on the first request.
func NewClient(cfg config.Config) (*openai.Client, error) {
	if !cfg.HasCredential() {
		return nil, fault.Configurationf("OPENAI_API_KEY not configured")
	}
	c := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		c.BaseURL = cfg.OpenAIBaseURL
	}
	if cfg.HTTPTimeout > 0 {
		// a stalled provider must surface as an upstream fault, not a hang
		c.HTTPClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	return openai.NewClientWithConfig(c), nil
}

// WrapError converts an SDK error into an UpstreamUnavailable fault carrying
// the provider's status code and message body for diagnostics. Timeouts and
// transport failures have no status and map to status 0.
func WrapError(err error, op string) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fault.Upstream(apiErr.HTTPStatusCode, err, op+": "+apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fault.Upstream(reqErr.HTTPStatusCode, err, op+" request failed")
	}
	return fault.Upstream(0, err, op+" unreachable")
}

// UpstreamStatus extracts the provider status from an SDK error, 0 if none.
func UpstreamStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
