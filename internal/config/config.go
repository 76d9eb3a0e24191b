package config

import (
	"os"
	"strconv"
	"time"
)

// Config is read from the environment once at process start and passed into
// each constructor. Nothing reads os.Getenv after startup.
type Config struct {
	OpenAIAPIKey string
	// OpenAIBaseURL overrides the API host, mainly for tests and gateways.
	// Empty means the public endpoint.
	OpenAIBaseURL string

	TranscriptionModel string
	TranscriptionLang  string
	ExtractionModel    string
	AdvisorModel       string
	Temperature        float32

	HTTPTimeout time.Duration
	Port        string
}

func FromEnv() Config {
	return Config{
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:      os.Getenv("OPENAI_BASE_URL"),
		TranscriptionModel: envOr("TRANSCRIPTION_MODEL", "whisper-1"),
		TranscriptionLang:  envOr("TRANSCRIPTION_LANG", "en"),
		ExtractionModel:    envOr("EXTRACTION_MODEL", "gpt-4o-mini"),
		AdvisorModel:       envOr("ADVISOR_MODEL", "gpt-4o-mini"),
		Temperature:        envFloat("EXTRACTION_TEMPERATURE", 0.3),
		HTTPTimeout:        time.Duration(envInt("HTTP_TIMEOUT_SEC", 25)) * time.Second,
		Port:               envOr("PORT", "8080"),
	}
}

// HasCredential reports whether the provider key is configured at all.
// Clients check this once at construction, not per request.
func (c Config) HasCredential() bool { return c.OpenAIAPIKey != "" }

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(k string, def float32) float32 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return def
}
