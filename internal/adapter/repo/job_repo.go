package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pixlift/internal/domain"
)

const jobColumns = `id, owner_id, input_handle, output_handle, quality, style, status, attempts, error_kind, error_message, created_at, updated_at`

// JobRepositoryPG implements domain.JobStore on PostgreSQL. Every mutation is
// a single status-guarded UPDATE, so concurrent dispatcher invocations
// coordinate purely through row-level compare-and-set.
type JobRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewJobRepository creates a new job store backed by PostgreSQL.
func NewJobRepository(pool *pgxpool.Pool) *JobRepositoryPG {
	return &JobRepositoryPG{pool: pool}
}

// Create inserts a new job record in the initial claimable state.
func (r *JobRepositoryPG) Create(ctx context.Context, job *domain.Job) error {
	query := `
INSERT INTO enhancement_jobs (id, owner_id, input_handle, quality, style, status, attempts)
VALUES ($1, $2, $3, $4, $5, 'PENDING', 0)
RETURNING created_at, updated_at;
`
	row := r.pool.QueryRow(ctx, query, job.ID, job.OwnerID, job.InputHandle, job.Quality, job.Style)
	if err := row.Scan(&job.CreatedAt, &job.UpdatedAt); err != nil {
		return err
	}
	job.Status = domain.JobStatusPending
	job.Attempts = 0
	return nil
}

// GetByID fetches a job by its identifier.
func (r *JobRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `
SELECT ` + jobColumns + `
FROM enhancement_jobs
WHERE id = $1;
`
	job, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

// ListClaimable returns up to limit PENDING jobs, oldest first so no
// submission starves behind newer ones.
func (r *JobRepositoryPG) ListClaimable(ctx context.Context, limit int) ([]domain.Job, error) {
	query := `
SELECT ` + jobColumns + `
FROM enhancement_jobs
WHERE status = 'PENDING'
ORDER BY created_at ASC
LIMIT $1;
`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// Claim transitions a job from PENDING to PROCESSING and increments its
// attempt count in one conditional update. Zero rows means another invocation
// won the race; that is reported as domain.ErrClaimLost, never as a failure.
func (r *JobRepositoryPG) Claim(ctx context.Context, id string) (*domain.Job, error) {
	query := `
UPDATE enhancement_jobs
SET status = 'PROCESSING', attempts = attempts + 1, updated_at = now()
WHERE id = $1 AND status = 'PENDING'
RETURNING ` + jobColumns + `;
`
	job, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClaimLost
		}
		return nil, err
	}
	return job, nil
}

// Complete finalizes a claimed job as COMPLETED with its output handle.
func (r *JobRepositoryPG) Complete(ctx context.Context, id, outputHandle string) error {
	query := `
UPDATE enhancement_jobs
SET status = 'COMPLETED', output_handle = $2, error_kind = NULL, error_message = NULL, updated_at = now()
WHERE id = $1 AND status = 'PROCESSING';
`
	tag, err := r.pool.Exec(ctx, query, id, outputHandle)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Requeue returns a claimed job to PENDING after a transient failure,
// keeping the failure visible for observability.
func (r *JobRepositoryPG) Requeue(ctx context.Context, id string, jobErr domain.JobError) error {
	query := `
UPDATE enhancement_jobs
SET status = 'PENDING', error_kind = $2, error_message = $3, updated_at = now()
WHERE id = $1 AND status = 'PROCESSING';
`
	tag, err := r.pool.Exec(ctx, query, id, string(jobErr.Kind), jobErr.Message)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Fail finalizes a claimed job as FAILED, recording the failure.
func (r *JobRepositoryPG) Fail(ctx context.Context, id string, jobErr domain.JobError) error {
	query := `
UPDATE enhancement_jobs
SET status = 'FAILED', error_kind = $2, error_message = $3, updated_at = now()
WHERE id = $1 AND status = 'PROCESSING';
`
	tag, err := r.pool.Exec(ctx, query, id, string(jobErr.Kind), jobErr.Message)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReapOrphans recovers PROCESSING jobs abandoned by a killed invocation.
// Orphans that already spent their attempt budget go straight to FAILED so a
// reclaim cannot push attempts past the cap; the rest are re-armed to
// PENDING. Terminal rows are never matched, so finished work cannot be
// resurrected.
func (r *JobRepositoryPG) ReapOrphans(ctx context.Context, olderThan time.Duration, maxAttempts int) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	failQuery := `
UPDATE enhancement_jobs
SET status = 'FAILED', error_kind = 'timeout', error_message = 'abandoned after exhausting attempts', updated_at = now()
WHERE status = 'PROCESSING' AND updated_at < $1 AND attempts >= $2;
`
	failed, err := r.pool.Exec(ctx, failQuery, cutoff, maxAttempts)
	if err != nil {
		return 0, err
	}

	rearmQuery := `
UPDATE enhancement_jobs
SET status = 'PENDING', updated_at = now()
WHERE status = 'PROCESSING' AND updated_at < $1;
`
	rearmed, err := r.pool.Exec(ctx, rearmQuery, cutoff)
	if err != nil {
		return int(failed.RowsAffected()), err
	}
	return int(failed.RowsAffected() + rearmed.RowsAffected()), nil
}

// CountByStatus reports how many jobs are in each lifecycle state.
func (r *JobRepositoryPG) CountByStatus(ctx context.Context) (map[domain.JobStatus]int, error) {
	query := `
SELECT status, count(*)
FROM enhancement_jobs
GROUP BY status;
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.JobStatus]int)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[domain.JobStatus(status)] = int(n)
	}
	return counts, rows.Err()
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		job          domain.Job
		outputHandle *string
		errKind      *string
		errMessage   *string
	)
	if err := row.Scan(
		&job.ID,
		&job.OwnerID,
		&job.InputHandle,
		&outputHandle,
		&job.Quality,
		&job.Style,
		&job.Status,
		&job.Attempts,
		&errKind,
		&errMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if outputHandle != nil {
		job.OutputHandle = *outputHandle
	}
	if errKind != nil {
		jobErr := domain.JobError{Kind: domain.ErrorKind(*errKind)}
		if errMessage != nil {
			jobErr.Message = *errMessage
		}
		job.LastError = &jobErr
	}
	return &job, nil
}

var _ domain.JobStore = (*JobRepositoryPG)(nil)
