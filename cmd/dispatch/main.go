package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"pixlift/internal/adapter/repo"
	"pixlift/internal/infra"
	"pixlift/internal/pipeline"
	"pixlift/internal/providers/enhance"
)

// One-shot dispatcher invocation. A cron or serverless scheduler runs this
// binary on a fixed interval; overlapping runs are safe because job ownership
// is arbitrated by the store's conditional claim, not by this process.
func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "dispatch")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.DispatchBudget)
	defer cancel()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("dispatch: db connection failed")
	}
	defer pool.Close()

	store := repo.NewJobRepository(pool)
	dispatcher := pipeline.NewDispatcher(store, buildEnhancer(cfg, &logger), pipeline.Config{
		BatchSize:   cfg.BatchSize,
		MaxAttempts: cfg.MaxAttempts,
		JobDeadline: cfg.JobDeadline,
	}, logger)

	summary, err := dispatcher.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("dispatch: invocation failed")
		os.Exit(1)
	}

	out, _ := json.Marshal(summary)
	fmt.Println(string(out))
}

func buildEnhancer(cfg *infra.Config, logger *infra.Logger) enhance.Enhancer {
	if strings.TrimSpace(cfg.EnhanceAPIKey) == "" {
		logger.Warn().Msg("dispatch: enhancement api key missing, using synthetic enhancer")
		return enhance.NewSynthetic()
	}
	client, err := enhance.NewClient(enhance.Options{
		APIKey:  cfg.EnhanceAPIKey,
		BaseURL: cfg.EnhanceBaseURL,
		Model:   cfg.EnhanceModel,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("dispatch: failed to configure enhancement client")
	}
	return client
}
