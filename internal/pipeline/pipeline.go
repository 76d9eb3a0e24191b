// Package pipeline wires decode, transcribe, prompt and extract into the two
// parsing flows. Each run is a stateless request/response unit: the first
// stage error aborts the run and no partial record is ever returned.
package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"voicelog-go/internal/audio"
	"voicelog-go/internal/config"
	"voicelog-go/internal/extractor"
	"voicelog-go/internal/fault"
	"voicelog-go/internal/logger"
	"voicelog-go/internal/transcription"
	"voicelog-go/internal/types"
)

// Transcriber converts audio bytes into text.
type Transcriber interface {
	Transcribe(ctx context.Context, data []byte, format string) (string, error)
}

// Extractor runs a JSON-mode completion against a system prompt.
type Extractor interface {
	Extract(ctx context.Context, systemPrompt, transcript string) (json.RawMessage, error)
}

// ActivityRequest is the voice-log pipeline input. Either Audio or Transcript
// must be present; when both are, the transcript wins and no upstream
// transcription is spent.
type ActivityRequest struct {
	Transcript string              `json:"transcript,omitempty"`
	Audio      string              `json:"audio,omitempty"`
	Format     string              `json:"format,omitempty"`
	Clients    []types.KnownEntity `json:"clients,omitempty"`
	Context    map[string]any      `json:"context,omitempty"`
}

// OnboardingRequest is the text-only onboarding pipeline input.
type OnboardingRequest struct {
	Transcript string `json:"transcript"`
}

// TranscribeRequest is the transcription-only operation input.
type TranscribeRequest struct {
	Audio  string `json:"audio"`
	Format string `json:"format,omitempty"`
}

type Pipeline struct {
	transcriber Transcriber
	extract     Extractor
	// confErr is the startup credential fault, nil when configured. It is
	// checked once here so every request fails identically until fixed.
	confErr error
}

// New builds the orchestrator from injected config. A missing credential does
// not prevent startup; it is recorded and returned verbatim on every run so
// the diagnostic endpoint stays reachable.
func New(cfg config.Config) *Pipeline {
	tc, err := transcription.New(cfg)
	if err != nil {
		return &Pipeline{confErr: err}
	}
	ec, err := extractor.New(cfg)
	if err != nil {
		return &Pipeline{confErr: err}
	}
	return &Pipeline{transcriber: tc, extract: ec}
}

// NewWithClients is the test seam.
func NewWithClients(t Transcriber, e Extractor) *Pipeline {
	return &Pipeline{transcriber: t, extract: e}
}

// ParseActivity runs the voice-log pipeline: decode and transcribe when the
// input is audio, then prompt and extract. Input validation precedes every
// network call.
func (p *Pipeline) ParseActivity(ctx context.Context, req ActivityRequest) (*types.ActivityResult, error) {
	log := logger.Component("pipeline").WithField("schema", extractor.SchemaActivity)

	transcript := strings.TrimSpace(req.Transcript)
	if transcript == "" && strings.TrimSpace(req.Audio) == "" {
		return nil, fault.Inputf("no transcript or audio provided")
	}
	if err := p.confErr; err != nil {
		return nil, err
	}

	if transcript == "" {
		data, err := audio.Decode(req.Audio)
		if err != nil {
			log.WithError(err).Warn("audio decode failed")
			return nil, err
		}
		transcript, err = p.transcriber.Transcribe(ctx, data, audio.NormalizeFormat(req.Format))
		if err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, fault.Inputf("transcription produced no text")
	}

	prompt := extractor.BuildPrompt(extractor.SchemaActivity, req.Clients)
	raw, err := p.extract.Extract(ctx, prompt, transcript)
	if err != nil {
		return nil, err
	}
	record, err := extractor.ValidateActivity(raw)
	if err != nil {
		log.WithError(err).WithField("transcript", logger.Truncate(transcript, 100)).
			Warn("activity validation failed")
		return nil, err
	}

	return &types.ActivityResult{Parsed: record, RawTranscript: transcript}, nil
}

// ParseOnboarding runs the text-only pipeline: no decode, no transcription.
func (p *Pipeline) ParseOnboarding(ctx context.Context, req OnboardingRequest) (*types.OnboardingResult, error) {
	log := logger.Component("pipeline").WithField("schema", extractor.SchemaOnboarding)

	transcript := strings.TrimSpace(req.Transcript)
	if transcript == "" {
		return nil, fault.Inputf("no transcript provided")
	}
	if err := p.confErr; err != nil {
		return nil, err
	}

	prompt := extractor.BuildPrompt(extractor.SchemaOnboarding, nil)
	raw, err := p.extract.Extract(ctx, prompt, transcript)
	if err != nil {
		return nil, err
	}
	profile, err := extractor.ValidateOnboarding(raw)
	if err != nil {
		log.WithError(err).WithField("transcript", logger.Truncate(transcript, 100)).
			Warn("onboarding validation failed")
		return nil, err
	}

	return &types.OnboardingResult{Parsed: profile, RawTranscript: transcript}, nil
}

// Transcribe is the transcription-only operation: decode then one upstream
// call, no extraction.
func (p *Pipeline) Transcribe(ctx context.Context, req TranscribeRequest) (string, error) {
	if strings.TrimSpace(req.Audio) == "" {
		return "", fault.Inputf("no audio data provided")
	}
	if err := p.confErr; err != nil {
		return "", err
	}
	data, err := audio.Decode(req.Audio)
	if err != nil {
		return "", err
	}
	return p.transcriber.Transcribe(ctx, data, audio.NormalizeFormat(req.Format))
}
