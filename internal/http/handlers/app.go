package handlers

import (
	"encoding/json"
	"net/http"

	"pixlift/internal/domain"
	"pixlift/internal/infra"
	"pixlift/internal/pipeline"
)

// App bundles the dependencies shared by all HTTP handlers.
type App struct {
	Store      domain.JobStore
	Dispatcher *pipeline.Dispatcher
	Logger     infra.Logger
}

// NewApp creates the handler container.
func NewApp(store domain.JobStore, dispatcher *pipeline.Dispatcher, logger infra.Logger) *App {
	return &App{Store: store, Dispatcher: dispatcher, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"code": code, "message": message})
}
