package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"pixlift/internal/adapter/repo"
	"pixlift/internal/http/handlers"
	"pixlift/internal/http/httpapi"
	"pixlift/internal/infra"
	"pixlift/internal/pipeline"
	"pixlift/internal/providers/enhance"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "api")

	ctx := context.Background()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	store := repo.NewJobRepository(pool)
	enhancer := buildEnhancer(cfg, &logger)
	dispatcher := pipeline.NewDispatcher(store, enhancer, pipeline.Config{
		BatchSize:   cfg.BatchSize,
		MaxAttempts: cfg.MaxAttempts,
		JobDeadline: cfg.JobDeadline,
	}, logger)

	app := handlers.NewApp(store, dispatcher, logger)
	router := httpapi.NewRouter(app, cfg.DispatchToken)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown failed")
	}
	logger.Info().Msg("api: stopped")
}

func buildEnhancer(cfg *infra.Config, logger *infra.Logger) enhance.Enhancer {
	if strings.TrimSpace(cfg.EnhanceAPIKey) == "" {
		logger.Warn().Msg("api: enhancement api key missing, using synthetic enhancer")
		return enhance.NewSynthetic()
	}
	client, err := enhance.NewClient(enhance.Options{
		APIKey:  cfg.EnhanceAPIKey,
		BaseURL: cfg.EnhanceBaseURL,
		Model:   cfg.EnhanceModel,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to configure enhancement client")
	}
	return client
}
