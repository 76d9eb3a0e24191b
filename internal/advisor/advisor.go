// Package advisor answers free-form strategy questions with a plain chat
// completion. Unlike the extraction pipeline this endpoint has no downstream
// consumer waiting on structured output, so transient upstream failures are
// retried with exponential backoff.
package advisor

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"

	"voicelog-go/internal/config"
	"voicelog-go/internal/fault"
	"voicelog-go/internal/logger"
	"voicelog-go/internal/openaiutil"
)

const systemPrompt = `You are a strategic business advisor for a portfolio entrepreneur who juggles multiple clients and revenue streams.
Answer questions using the business context provided. Be specific and actionable.
If the context does not contain enough information to answer, say so instead of inventing figures.`

// Request mirrors the body the dashboard sends.
type Request struct {
	Question         string         `json:"question"`
	Context          map[string]any `json:"context,omitempty"`
	ConversationType string         `json:"conversation_type,omitempty"`
	SessionID        string         `json:"session_id,omitempty"`
}

type Advisor struct {
	api     *openai.Client
	model   string
	maxWait time.Duration
	confErr error
}

func New(cfg config.Config) *Advisor {
	api, err := openaiutil.NewClient(cfg)
	if err != nil {
		return &Advisor{confErr: err}
	}
	return &Advisor{api: api, model: cfg.AdvisorModel, maxWait: 20 * time.Second}
}

// Advise answers one question. 429 and 5xx responses are retried until the
// backoff budget runs out; other client errors are permanent.
func (a *Advisor) Advise(ctx context.Context, req Request) (string, error) {
	if req.Question == "" {
		return "", fault.Inputf("no question provided")
	}
	if a.confErr != nil {
		return "", a.confErr
	}
	log := logger.Component("advisor").
		WithField("question", logger.Truncate(req.Question, 80)).
		WithField("conversation_type", req.ConversationType)

	user := req.Question
	if len(req.Context) > 0 {
		if ctxJSON, err := json.Marshal(req.Context); err == nil {
			user = "Business context:\n" + string(ctxJSON) + "\n\nQuestion: " + req.Question
		}
	}

	var answer string
	op := func() error {
		resp, err := a.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: a.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			Temperature: 0.7,
		})
		if err != nil {
			status := openaiutil.UpstreamStatus(err)
			wrapped := openaiutil.WrapError(err, "advisor")
			log.WithError(err).WithField("http_status", status).Warn("advisor completion failed")
			if status >= 400 && status < 500 && status != 429 {
				return backoff.Permanent(wrapped)
			}
			return wrapped
		}
		if len(resp.Choices) == 0 {
			return backoff.Permanent(fault.Malformedf(nil, "advisor completion returned no choices"))
		}
		answer = resp.Choices[0].Message.Content
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = a.maxWait
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	return answer, nil
}
