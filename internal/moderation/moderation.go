// Package moderation gates campaign briefs on content policy before the
// pipeline runs.
package moderation

import (
	"context"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/domain"
)

// Result is the outcome of a moderation check.
type Result struct {
	Passed     bool     `json:"passed"`
	Violations []string `json:"violations,omitempty"`
}

// Service checks a brief's text content. A failed check blocks the whole run.
type Service interface {
	Check(ctx context.Context, brief *domain.Brief) (Result, error)
}

// AllowAll is the noop service used when moderation is disabled or no
// credentials are configured.
type AllowAll struct{}

// Check always passes.
func (AllowAll) Check(context.Context, *domain.Brief) (Result, error) {
	return Result{Passed: true}, nil
}

// briefTexts collects every user-authored string worth checking.
func briefTexts(brief *domain.Brief) []string {
	texts := []string{brief.Message}
	for _, msg := range brief.LocalizedMessages {
		if msg != "" {
			texts = append(texts, msg)
		}
	}
	for _, p := range brief.Products {
		texts = append(texts, p.Name)
		if p.Description != "" {
			texts = append(texts, p.Description)
		}
	}
	return texts
}

var _ Service = AllowAll{}
