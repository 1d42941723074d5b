package domain

import (
	"context"
	"time"
)

// JobStore defines persistence for enhancement jobs. The conditional claim
// and the status-guarded finalizers are the pipeline's only synchronization
// primitive; implementations must make each of them a single atomic
// compare-and-set on the job's status.
type JobStore interface {
	// Create inserts a new PENDING job with zero attempts.
	Create(ctx context.Context, job *Job) error

	// GetByID fetches a job by its identifier.
	GetByID(ctx context.Context, id string) (*Job, error)

	// ListClaimable returns up to limit PENDING jobs, oldest first.
	ListClaimable(ctx context.Context, limit int) ([]Job, error)

	// Claim atomically moves a job from PENDING to PROCESSING and increments
	// its attempt count. Returns ErrClaimLost when the job is no longer
	// PENDING, which callers treat as a lost race rather than a failure.
	Claim(ctx context.Context, id string) (*Job, error)

	// Complete finalizes a PROCESSING job as COMPLETED with its output handle.
	Complete(ctx context.Context, id, outputHandle string) error

	// Requeue returns a PROCESSING job to PENDING, recording the failure
	// that caused the retry.
	Requeue(ctx context.Context, id string, jobErr JobError) error

	// Fail finalizes a PROCESSING job as FAILED, recording the failure.
	Fail(ctx context.Context, id string, jobErr JobError) error

	// ReapOrphans recovers PROCESSING jobs whose last update is older than
	// the grace period: jobs with attempts left return to PENDING, jobs that
	// already spent their attempt budget become FAILED so the bound on
	// attempts holds even across repeated host kills. Reports how many jobs
	// were recovered either way.
	ReapOrphans(ctx context.Context, olderThan time.Duration, maxAttempts int) (int, error)

	// CountByStatus reports how many jobs are in each lifecycle state.
	CountByStatus(ctx context.Context) (map[JobStatus]int, error)
}
