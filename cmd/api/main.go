package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"voicelog-go/internal/advisor"
	"voicelog-go/internal/config"
	"voicelog-go/internal/logger"
	"voicelog-go/internal/pipeline"
	"voicelog-go/internal/server"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "voicelog-go").Info("starting service")

	cfg := config.FromEnv()
	if !cfg.HasCredential() {
		// still serve: the diagnostic endpoint must stay reachable, and every
		// parse request will fail with the same configuration error
		log.Warn("OPENAI_API_KEY not configured; parse endpoints will fail until it is set")
	}

	pipe := pipeline.New(cfg)
	adv := advisor.New(cfg)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      server.New(pipe, adv, cfg).Mux(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
