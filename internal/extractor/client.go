// Package extractor converts free text into schema-conformant records via a
// language-model completion in JSON mode. The prompt builder is pure; the
// client makes exactly one upstream call per invocation.
package extractor

import (
	"context"
	"encoding/json"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"voicelog-go/internal/config"
	"voicelog-go/internal/fault"
	"voicelog-go/internal/logger"
	"voicelog-go/internal/openaiutil"
)

type Client struct {
	api         *openai.Client
	model       string
	temperature float32
}

func New(cfg config.Config) (*Client, error) {
	api, err := openaiutil.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{api: api, model: cfg.ExtractionModel, temperature: cfg.Temperature}, nil
}

// Extract sends the system prompt and transcript to the completion endpoint
// in JSON mode and returns the raw JSON object the model produced. Content
// that does not parse as a single JSON object fails with a malformed-response
// fault; no partial structure is guessed at.
func (c *Client) Extract(ctx context.Context, systemPrompt, transcript string) (json.RawMessage, error) {
	log := logger.Component("extractor").
		WithField("transcript", logger.Truncate(transcript, 100))

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: transcript},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: c.temperature,
	})
	if err != nil {
		log.WithError(err).Warn("completion request failed")
		return nil, openaiutil.WrapError(err, "extraction")
	}
	if len(resp.Choices) == 0 {
		return nil, fault.Malformedf(nil, "completion returned no choices")
	}

	content := stripFences(resp.Choices[0].Message.Content)
	if !json.Valid([]byte(content)) || !strings.HasPrefix(strings.TrimSpace(content), "{") {
		log.Warn("completion content is not a JSON object")
		return nil, fault.Malformedf(nil, "completion content is not valid JSON")
	}

	log.WithField("content_len", len(content)).Info("extraction succeeded")
	return json.RawMessage(content), nil
}

// stripFences removes the markdown code fences models sometimes wrap JSON in.
// Normalization only; anything beyond a fenced object still has to parse whole.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	for _, fence := range []string{"```json", "```"} {
		s = strings.TrimPrefix(s, fence)
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
