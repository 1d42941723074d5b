package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pixlift/internal/domain"
	"pixlift/internal/infra"
	"pixlift/internal/providers/enhance"
)

const (
	defaultBatchSize   = 5
	defaultMaxAttempts = 3
	defaultJobDeadline = 45 * time.Second
)

// Config bounds one dispatcher invocation. It is passed explicitly so the
// pipeline stays testable without ambient process state.
type Config struct {
	// BatchSize caps how many jobs a single invocation may claim.
	BatchSize int
	// MaxAttempts bounds how often a job is retried before it fails for good.
	MaxAttempts int
	// JobDeadline bounds each provider call. It must stay well below the
	// wall-clock budget of the trigger so a timeout can still be recorded.
	JobDeadline time.Duration
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.JobDeadline <= 0 {
		c.JobDeadline = defaultJobDeadline
	}
	return c
}

// Summary reports what one dispatcher invocation did.
type Summary struct {
	Claimed   int `json:"claimed"`
	Succeeded int `json:"succeeded"`
	Requeued  int `json:"requeued"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	Reaped    int `json:"reaped"`
}

// Dispatcher is the time-triggered entry point of the pipeline. Each Run is
// stateless and safe to overlap with other invocations: the store's
// conditional claim is the only arbiter of job ownership.
type Dispatcher struct {
	store    domain.JobStore
	enhancer enhance.Enhancer
	cfg      Config
	logger   infra.Logger
}

// NewDispatcher wires a dispatcher over a job store and a provider adapter.
func NewDispatcher(store domain.JobStore, enhancer enhance.Enhancer, cfg Config, logger infra.Logger) *Dispatcher {
	return &Dispatcher{
		store:    store,
		enhancer: enhancer,
		cfg:      cfg.withDefaults(),
		logger:   logger,
	}
}

// Run performs one invocation: recover orphaned jobs, scan for claimable
// work, process at most BatchSize jobs, and report the outcome counts.
func (d *Dispatcher) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	// Jobs stuck in PROCESSING past the grace period were abandoned by a
	// killed invocation; re-arm them before the PENDING scan so they are
	// eligible again. Orphans with no attempts left fail instead, keeping
	// the attempt bound intact.
	reaped, err := d.store.ReapOrphans(ctx, 2*d.cfg.JobDeadline, d.cfg.MaxAttempts)
	if err != nil {
		d.logger.Error().Err(err).Msg("dispatch: orphan recovery failed")
	}
	summary.Reaped = reaped
	if reaped > 0 {
		d.logger.Info().Int("reaped", reaped).Msg("dispatch: re-armed orphaned jobs")
	}

	jobs, err := d.store.ListClaimable(ctx, d.cfg.BatchSize)
	if err != nil {
		return summary, fmt.Errorf("scan claimable jobs: %w", err)
	}
	if len(jobs) == 0 {
		return summary, nil
	}

	w := &worker{
		store:    d.store,
		enhancer: d.enhancer,
		cfg:      d.cfg,
		logger:   d.logger,
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, job := range jobs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					d.logger.Error().Str("job_id", id).Any("panic", r).Msg("dispatch: worker panicked")
				}
			}()
			res := w.process(ctx, id)
			mu.Lock()
			summary.record(res)
			mu.Unlock()
		}(job.ID)
	}
	wg.Wait()

	d.logger.Info().
		Int("claimed", summary.Claimed).
		Int("succeeded", summary.Succeeded).
		Int("requeued", summary.Requeued).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Msg("dispatch: invocation finished")

	return summary, nil
}

func (s *Summary) record(res workResult) {
	if res.claimed {
		s.Claimed++
	}
	switch res.outcome {
	case workSucceeded:
		s.Succeeded++
	case workRequeued:
		s.Requeued++
	case workFailed:
		s.Failed++
	case workSkipped:
		s.Skipped++
	case workAborted:
		// Store unavailable mid-flight; nothing was durably decided, the
		// orphan sweep recovers the job. Counted nowhere on purpose.
	}
}
