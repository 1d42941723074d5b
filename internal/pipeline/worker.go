package pipeline

import (
	"context"
	"errors"
	"strings"

	"pixlift/internal/domain"
	"pixlift/internal/infra"
	"pixlift/internal/providers/enhance"
)

type workOutcome int

const (
	workSkipped workOutcome = iota
	workSucceeded
	workRequeued
	workFailed
	workAborted
)

type workResult struct {
	claimed bool
	outcome workOutcome
}

// worker drives one job from a successful claim to its next persisted state.
// It never touches a record it failed to claim.
type worker struct {
	store    domain.JobStore
	enhancer enhance.Enhancer
	cfg      Config
	logger   infra.Logger
}

func (w *worker) process(ctx context.Context, id string) workResult {
	job, err := w.store.Claim(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrClaimLost) {
			// Another invocation won the race. Expected under overlapping
			// triggers, not an error.
			w.logger.Debug().Str("job_id", id).Msg("worker: skipped, lost claim race")
			return workResult{outcome: workSkipped}
		}
		w.logger.Error().Err(err).Str("job_id", id).Msg("worker: claim failed, store unreachable")
		return workResult{outcome: workAborted}
	}

	w.logger.Info().
		Str("job_id", job.ID).
		Int("attempt", job.Attempts).
		Msg("worker: claimed job")

	if strings.TrimSpace(job.InputHandle) == "" {
		return w.finalize(ctx, job, domain.Outcome{Failure: domain.ErrorKindValidation},
			domain.JobError{Kind: domain.ErrorKindValidation, Message: "input handle is empty"})
	}

	attemptCtx, cancel := context.WithTimeout(ctx, w.cfg.JobDeadline)
	defer cancel()

	result, err := w.enhancer.Enhance(attemptCtx, enhance.Request{
		InputHandle: job.InputHandle,
		Quality:     enhance.NormalizeQuality(job.Quality),
		Style:       enhance.NormalizeStyle(job.Style),
		JobID:       job.ID,
	})

	if err == nil && (result == nil || strings.TrimSpace(result.OutputHandle) == "") {
		// A success without an output handle must never become COMPLETED.
		err = enhance.NewError(domain.ErrorKindUnknown, "provider returned no output handle")
	}

	if err != nil {
		kind := enhance.Classify(err)
		return w.finalize(ctx, job, domain.Outcome{Failure: kind},
			domain.JobError{Kind: kind, Message: shortMessage(err)})
	}

	if perr := w.store.Complete(ctx, job.ID, result.OutputHandle); perr != nil {
		w.logger.Error().Err(perr).Str("job_id", job.ID).Msg("worker: persist completion failed")
		return workResult{claimed: true, outcome: workAborted}
	}
	w.logger.Info().
		Str("job_id", job.ID).
		Str("output_handle", result.OutputHandle).
		Msg("worker: job completed")
	return workResult{claimed: true, outcome: workSucceeded}
}

// finalize persists the state the transition table demands for a failed
// attempt and maps it to the invocation counters.
func (w *worker) finalize(ctx context.Context, job *domain.Job, out domain.Outcome, jobErr domain.JobError) workResult {
	next := domain.NextStatus(out, job.Attempts, w.cfg.MaxAttempts)

	// A failed attempt only ever requeues or fails.
	var perr error
	var res workOutcome
	if next == domain.JobStatusPending {
		perr = w.store.Requeue(ctx, job.ID, jobErr)
		res = workRequeued
	} else {
		perr = w.store.Fail(ctx, job.ID, jobErr)
		res = workFailed
	}
	if perr != nil {
		w.logger.Error().Err(perr).Str("job_id", job.ID).Msg("worker: persist outcome failed")
		return workResult{claimed: true, outcome: workAborted}
	}

	w.logger.Warn().
		Str("job_id", job.ID).
		Str("error_kind", string(jobErr.Kind)).
		Str("next_status", string(next)).
		Int("attempt", job.Attempts).
		Int("max_attempts", w.cfg.MaxAttempts).
		Msg("worker: attempt failed")

	return workResult{claimed: true, outcome: res}
}

// shortMessage keeps the persisted error human-readable without leaking
// provider internals.
func shortMessage(err error) string {
	var pe *enhance.Error
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}
