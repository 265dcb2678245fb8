package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"reelpipe/internal/adapters/downloader"
	"reelpipe/internal/adapters/instagram"
	"reelpipe/internal/adapters/localstorage"
	"reelpipe/internal/adapters/ollama"
	"reelpipe/internal/adapters/transcriber"
	"reelpipe/internal/api"
	"reelpipe/internal/config"
	"reelpipe/internal/inflight"
	"reelpipe/internal/logger"
	"reelpipe/internal/service"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "reelpipe").Info("starting service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache := inflight.New()
	cache.StartJanitor(ctx, cfg.CacheClearInterval)

	orchestrator := service.NewOrchestrator(
		instagram.NewResolver(cfg.ResolverEnabled),
		downloader.NewHTTPDownloader(),
		transcriber.NewClient(cfg.TranscriberURL, cfg.TranscribeAttempts, cfg.TranscribeRetryDelay, cfg.TranscribeTimeout),
		ollama.NewExtractor(cfg.LLMURL, cfg.LLMModel, cfg.LLMTimeout),
		localstorage.NewLocalStorage(cfg.DataDir),
		cache,
		log,
	)

	debug := os.Getenv("ENVIRONMENT") == "" || os.Getenv("ENVIRONMENT") == "local"
	srv := api.NewServer(api.NewPipelineHandler(orchestrator), cfg.Port, debug, log)

	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server terminated")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
}
