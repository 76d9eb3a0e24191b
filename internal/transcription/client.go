// Package transcription sends recorded audio to the speech-to-text provider
// and returns plain text. One outbound call per invocation, single attempt;
// the caller decides whether to retry.
package transcription

import (
	"bytes"
	"context"

	openai "github.com/sashabaranov/go-openai"

	"voicelog-go/internal/config"
	"voicelog-go/internal/fault"
	"voicelog-go/internal/logger"
	"voicelog-go/internal/openaiutil"
)

type Client struct {
	api      *openai.Client
	model    string
	language string
}

// New constructs the client. The credential is validated here, once; a missing
// key fails construction with a configuration fault rather than failing every
// request at call time.
func New(cfg config.Config) (*Client, error) {
	api, err := openaiutil.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{api: api, model: cfg.TranscriptionModel, language: cfg.TranscriptionLang}, nil
}

// Transcribe uploads the audio bytes tagged with the given container format
// and returns the recognized text.
func (c *Client) Transcribe(ctx context.Context, data []byte, format string) (string, error) {
	if len(data) == 0 {
		return "", fault.Inputf("no audio bytes to transcribe")
	}
	log := logger.Component("transcription")

	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: "audio." + format,
		Reader:   bytes.NewReader(data),
		Language: c.language,
	})
	if err != nil {
		log.WithError(err).Warn("transcription request failed")
		return "", openaiutil.WrapError(err, "transcription")
	}

	log.WithField("text_len", len(resp.Text)).Info("transcription succeeded")
	return resp.Text, nil
}
