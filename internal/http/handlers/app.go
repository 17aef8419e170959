package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/infra"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/moderation"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/pipeline"
)

// App is the handler container: explicitly constructed services, no globals.
type App struct {
	Pipeline  *pipeline.Orchestrator
	Moderator moderation.Service
	Uploads   *UploadStore
	Cfg       *infra.Config
	Logger    zerolog.Logger
}

// NewApp wires the HTTP handlers to their collaborators.
func NewApp(p *pipeline.Orchestrator, mod moderation.Service, uploads *UploadStore, cfg *infra.Config, logger zerolog.Logger) *App {
	return &App{Pipeline: p, Moderator: mod, Uploads: uploads, Cfg: cfg, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) jsonError(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"error": msg})
}
