package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pixlift/internal/domain"
	"pixlift/internal/providers/enhance"
)

type enqueueJobRequest struct {
	OwnerID     string `json:"owner_id"`
	InputHandle string `json:"input_handle"`
	Quality     string `json:"quality"`
	Style       string `json:"style"`
}

type jobResponse struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	OutputHandle string    `json:"output_handle,omitempty"`
	Attempts     int       `json:"attempts"`
	Quality      string    `json:"quality"`
	Style        string    `json:"style"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EnqueueJob accepts a submission from the upload collaborator and creates
// the job record in its initial claimable state. This is the only way a
// record enters the pipeline.
func (a *App) EnqueueJob(w http.ResponseWriter, r *http.Request) {
	var req enqueueJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.OwnerID = strings.TrimSpace(req.OwnerID)
	req.InputHandle = strings.TrimSpace(req.InputHandle)
	if req.OwnerID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "owner_id required")
		return
	}
	if req.InputHandle == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "input_handle required")
		return
	}

	job := &domain.Job{
		ID:          uuid.NewString(),
		OwnerID:     req.OwnerID,
		InputHandle: req.InputHandle,
		Quality:     string(enhance.NormalizeQuality(req.Quality)),
		Style:       string(enhance.NormalizeStyle(req.Style)),
	}
	if err := a.Store.Create(r.Context(), job); err != nil {
		a.Logger.Error().Err(err).Msg("jobs: enqueue failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to queue job")
		return
	}
	a.json(w, http.StatusAccepted, map[string]string{
		"id":     job.ID,
		"status": string(domain.JobStatusPending),
	})
}

// GetJob exposes the latest persisted status of a job. On failure only the
// short human-readable message is returned, never the internal
// classification.
func (a *App) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "id required")
		return
	}
	// Job IDs are UUIDs; reject malformed ones before they hit the store.
	if _, err := uuid.Parse(id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "job not found")
		return
	}
	job, err := a.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "job not found")
			return
		}
		a.Logger.Error().Err(err).Str("job_id", id).Msg("jobs: fetch failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load job")
		return
	}

	resp := jobResponse{
		ID:        job.ID,
		Status:    string(job.Status),
		Attempts:  job.Attempts,
		Quality:   enhance.NormalizeQuality(job.Quality).DisplayName(),
		Style:     enhance.NormalizeStyle(job.Style).DisplayName(),
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
	if job.Status == domain.JobStatusCompleted {
		resp.OutputHandle = job.OutputHandle
	}
	if job.Status == domain.JobStatusFailed && job.LastError != nil {
		resp.Error = job.LastError.Message
	}
	a.json(w, http.StatusOK, resp)
}
