package handlers

import (
	"net/http"

	"pixlift/internal/domain"
)

type statsResponse struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// Stats reports how many jobs sit in each lifecycle state.
func (a *App) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := a.Store.CountByStatus(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("stats: count failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, statsResponse{
		Pending:    counts[domain.JobStatusPending],
		Processing: counts[domain.JobStatusProcessing],
		Completed:  counts[domain.JobStatusCompleted],
		Failed:     counts[domain.JobStatusFailed],
	})
}
