package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/brief"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/domain"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/middleware"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/pipeline"
)

type generateResponse struct {
	RunID    string           `json:"run_id"`
	Region   string           `json:"region"`
	Products []productSummary `json:"products"`
	Total    int              `json:"total_artifacts"`
	Uploaded int              `json:"uploaded"`
}

type productSummary struct {
	Product   string                  `json:"product"`
	Succeeded bool                    `json:"succeeded"`
	Error     string                  `json:"error,omitempty"`
	Artifacts []domain.OutputArtifact `json:"artifacts"`
}

// GenerateCampaign accepts a JSON brief, gates it on moderation, runs the
// pipeline, and reports the per-product outcome. Partial success is a normal
// 200: a failed product shows up with an empty artifact list.
func (a *App) GenerateCampaign(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		a.jsonError(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	b, err := brief.ParseJSON(body)
	if err != nil {
		a.jsonError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	// Briefs without a region inherit the one detected for the request.
	if b.Region == "" {
		if region := middleware.RegionFromContext(r.Context()); region != "" {
			b.Region = region
		}
	}

	if a.Moderator != nil {
		check, err := a.Moderator.Check(r.Context(), b)
		if err != nil {
			a.Logger.Error().Err(err).Msg("moderation check failed")
			a.jsonError(w, http.StatusBadGateway, "moderation unavailable")
			return
		}
		if !check.Passed {
			a.json(w, http.StatusUnprocessableEntity, map[string]any{
				"error":      domain.ErrModerationBlocked.Error(),
				"violations": check.Violations,
			})
			return
		}
	}

	result, err := a.Pipeline.Run(r.Context(), b)
	if err != nil {
		if errors.Is(err, domain.ErrBriefInvalid) {
			a.jsonError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		a.Logger.Error().Err(err).Msg("pipeline run failed")
		a.jsonError(w, http.StatusInternalServerError, "pipeline failed")
		return
	}

	a.json(w, http.StatusOK, buildGenerateResponse(b, result))
}

func buildGenerateResponse(b *domain.Brief, result *pipeline.RunResult) generateResponse {
	resp := generateResponse{
		RunID:    result.RunID,
		Region:   b.RegionOrGlobal(),
		Total:    result.TotalArtifacts(),
		Uploaded: result.Uploaded,
	}
	for _, res := range result.Results {
		summary := productSummary{
			Product:   res.Product,
			Succeeded: res.Err == nil,
			Artifacts: res.Artifacts,
		}
		if summary.Artifacts == nil {
			summary.Artifacts = []domain.OutputArtifact{}
		}
		if res.Err != nil {
			summary.Error = res.Err.Error()
		}
		resp.Products = append(resp.Products, summary)
	}
	return resp
}
