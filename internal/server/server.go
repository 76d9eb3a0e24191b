// Package server exposes the parsing pipelines over HTTP with the same
// surface the dashboard's edge functions had: JSON bodies, a permissive CORS
// policy, and a uniform { "error": message } envelope on failure.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"voicelog-go/internal/advisor"
	"voicelog-go/internal/config"
	"voicelog-go/internal/export"
	"voicelog-go/internal/fault"
	"voicelog-go/internal/logger"
	"voicelog-go/internal/metrics"
	"voicelog-go/internal/pipeline"
	"voicelog-go/internal/types"
)

// VoiceParser is what the handlers need from the pipeline.
type VoiceParser interface {
	ParseActivity(ctx context.Context, req pipeline.ActivityRequest) (*types.ActivityResult, error)
	ParseOnboarding(ctx context.Context, req pipeline.OnboardingRequest) (*types.OnboardingResult, error)
	Transcribe(ctx context.Context, req pipeline.TranscribeRequest) (string, error)
}

// Adviser answers free-form questions.
type Adviser interface {
	Advise(ctx context.Context, req advisor.Request) (string, error)
}

type Server struct {
	parser  VoiceParser
	adviser Adviser
	cfg     config.Config
}

func New(parser VoiceParser, adviser Adviser, cfg config.Config) *Server {
	return &Server{parser: parser, adviser: adviser, cfg: cfg}
}

// Mux wires every route behind the CORS wrapper.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})
	mux.HandleFunc("/v1/parse-activity", s.cors(s.handleParseActivity))
	mux.HandleFunc("/v1/parse-onboarding", s.cors(s.handleParseOnboarding))
	mux.HandleFunc("/v1/transcribe", s.cors(s.handleTranscribe))
	mux.HandleFunc("/v1/advise", s.cors(s.handleAdvise))
	mux.HandleFunc("/v1/export", s.cors(s.handleExport))
	mux.HandleFunc("/v1/diag/credentials", s.cors(s.handleDiag))
	return mux
}

// cors applies the headers the original edge functions set and answers the
// preflight probe with success and no body.
func (s *Server) cors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleParseActivity(w http.ResponseWriter, r *http.Request) {
	reqLog := logger.New().WithRequest(r).WithField("handler", "parse-activity")
	var req pipeline.ActivityRequest
	if !decodeBody(w, r, reqLog, &req) {
		return
	}
	start := time.Now()
	res, err := s.parser.ParseActivity(r.Context(), req)
	reqLog = reqLog.WithField("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		writeError(w, reqLog, err)
		return
	}
	reqLog.WithField("activity_type", res.Parsed.ActivityType).Info("activity parsed")
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleParseOnboarding(w http.ResponseWriter, r *http.Request) {
	reqLog := logger.New().WithRequest(r).WithField("handler", "parse-onboarding")
	var req pipeline.OnboardingRequest
	if !decodeBody(w, r, reqLog, &req) {
		return
	}
	res, err := s.parser.ParseOnboarding(r.Context(), req)
	if err != nil {
		writeError(w, reqLog, err)
		return
	}
	reqLog.WithField("clients", len(res.Parsed.Clients)).Info("onboarding parsed")
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	reqLog := logger.New().WithRequest(r).WithField("handler", "transcribe")
	var req pipeline.TranscribeRequest
	if !decodeBody(w, r, reqLog, &req) {
		return
	}
	text, err := s.parser.Transcribe(r.Context(), req)
	if err != nil {
		writeError(w, reqLog, err)
		return
	}
	reqLog.WithField("text_len", len(text)).Info("transcribed")
	writeJSON(w, http.StatusOK, map[string]string{"transcript": text})
}

func (s *Server) handleAdvise(w http.ResponseWriter, r *http.Request) {
	reqLog := logger.New().WithRequest(r).WithField("handler", "advise")
	var req advisor.Request
	if !decodeBody(w, r, reqLog, &req) {
		return
	}
	answer, err := s.adviser.Advise(r.Context(), req)
	if err != nil {
		writeError(w, reqLog, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": answer})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	reqLog := logger.New().WithRequest(r).WithField("handler", "export")
	var req struct {
		Activities []metrics.LoggedActivity `json:"activities"`
	}
	if !decodeBody(w, r, reqLog, &req) {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="activity-log.xlsx"`)
	if err := export.Workbook(req.Activities, w); err != nil {
		// headers are gone by now; log and drop the connection
		reqLog.WithError(err).Error("workbook write failed")
		return
	}
	reqLog.WithField("rows", len(req.Activities)).Info("workbook exported")
}

// handleDiag reports credential presence and shape without touching any
// provider. No auth required; it never echoes the key itself.
func (s *Server) handleDiag(w http.ResponseWriter, r *http.Request) {
	logger.New().WithRequest(r).Info("credential diagnostic")
	key := s.cfg.OpenAIAPIKey
	writeJSON(w, http.StatusOK, map[string]any{
		"has_key":             key != "",
		"key_length":          len(key),
		"key_shape_ok":        strings.HasPrefix(key, "sk-"),
		"base_url_set":        s.cfg.OpenAIBaseURL != "",
		"extraction_model":    s.cfg.ExtractionModel,
		"transcription_model": s.cfg.TranscriptionModel,
		"timestamp":           time.Now().UTC().Format(time.RFC3339),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, log *logrus.Entry, dst any) bool {
	if r.Method != http.MethodPost {
		writeError(w, log, fault.Inputf("method %s not allowed", r.Method))
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, log, fault.Inputf("invalid JSON body"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, log *logrus.Entry, err error) {
	status := http.StatusInternalServerError
	var fe *fault.Error
	if errors.As(err, &fe) {
		status = fe.HTTPStatus()
	}
	log.WithField("error", err.Error()).WithField("status", status).Warn("request failed")
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
