package domain

import "time"

// JobStatus enumerates enhancement job lifecycle states.
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)

// Terminal reports whether no further transition is legal from the status.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// ErrorKind classifies why an enhancement attempt failed. The provider
// adapter normalizes every failure into one of these before it reaches the
// worker, so retry policy never inspects provider-specific errors.
type ErrorKind string

const (
	ErrorKindTimeout      ErrorKind = "timeout"
	ErrorKindRateLimited  ErrorKind = "rate_limited"
	ErrorKindQuota        ErrorKind = "quota_exhausted"
	ErrorKindInvalidInput ErrorKind = "invalid_input"
	ErrorKindUnavailable  ErrorKind = "unavailable"
	ErrorKindValidation   ErrorKind = "validation"
	ErrorKindUnknown      ErrorKind = "unknown"
)

// Retryable reports whether a failure of this kind may be attempted again.
// Unknown failures are treated as transient; the attempt budget still bounds
// them.
func (k ErrorKind) Retryable() bool {
	switch k {
	case ErrorKindTimeout, ErrorKindRateLimited, ErrorKindUnavailable, ErrorKindUnknown:
		return true
	default:
		return false
	}
}

// JobError is the last failure recorded against a job.
type JobError struct {
	Kind    ErrorKind
	Message string
}

// Job encapsulates the lifecycle of one submitted image enhancement.
type Job struct {
	ID           string
	OwnerID      string
	InputHandle  string
	OutputHandle string
	Quality      string
	Style        string
	Status       JobStatus
	Attempts     int
	LastError    *JobError
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Outcome is the classified result of one enhancement attempt on a claimed
// job. Failure is only meaningful when Success is false.
type Outcome struct {
	Success bool
	Failure ErrorKind
}

// NextStatus maps the outcome of an attempt on a PROCESSING job to the status
// that must be persisted. It is the single authority for the
// PROCESSING -> {COMPLETED, PENDING, FAILED} transitions; attempts is the
// count after the claim incremented it.
func NextStatus(out Outcome, attempts, maxAttempts int) JobStatus {
	switch {
	case out.Success:
		return JobStatusCompleted
	case !out.Failure.Retryable():
		return JobStatusFailed
	case attempts < maxAttempts:
		return JobStatusPending
	default:
		return JobStatusFailed
	}
}
