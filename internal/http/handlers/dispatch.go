package handlers

import (
	"net/http"
)

// Dispatch runs one dispatcher invocation. The route is guarded by the
// shared-secret middleware, so by the time this handler runs the trigger is
// authenticated. The response is the invocation summary.
func (a *App) Dispatch(w http.ResponseWriter, r *http.Request) {
	summary, err := a.Dispatcher.Run(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("dispatch: invocation failed")
		a.error(w, http.StatusInternalServerError, "internal", "dispatch failed")
		return
	}
	a.json(w, http.StatusOK, summary)
}
