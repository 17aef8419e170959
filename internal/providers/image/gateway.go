package image

import (
	"context"
	"image"

	"github.com/rs/zerolog"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/domain"
)

// Gateway runs the generation fallback chain: primary engine, then secondary,
// then the deterministic placeholder. It always returns a bitmap; engine
// failures degrade silently and are only visible through logs and the
// returned attempt record.
type Gateway struct {
	primary     Service
	secondary   Service
	placeholder Service
	logger      zerolog.Logger
}

// NewGateway builds the chain. Either engine may be nil or unavailable; the
// placeholder terminal is always present.
func NewGateway(primary, secondary Service, logger zerolog.Logger) *Gateway {
	return &Gateway{
		primary:     primary,
		secondary:   secondary,
		placeholder: NewPlaceholder(),
		logger:      logger.With().Str("component", "imagegen").Logger(),
	}
}

// Generate resolves a hero image for the prompt. The returned attempt records
// which engine produced it.
func (g *Gateway) Generate(ctx context.Context, prompt string, size Size) (image.Image, domain.GenerationAttempt) {
	if img, ok := g.try(ctx, g.primary, prompt, size); ok {
		return img, domain.GenerationAttempt{Tier: domain.EnginePrimary, Engine: g.primary.Name()}
	}
	if img, ok := g.try(ctx, g.secondary, prompt, size); ok {
		return img, domain.GenerationAttempt{Tier: domain.EngineSecondary, Engine: g.secondary.Name()}
	}

	g.logger.Info().Str("prompt", truncate(prompt, 50)).Msg("generating placeholder image")
	img, _ := g.placeholder.Generate(ctx, prompt, size)
	return img, domain.GenerationAttempt{Tier: domain.EnginePlaceholder, Engine: g.placeholder.Name()}
}

func (g *Gateway) try(ctx context.Context, engine Service, prompt string, size Size) (image.Image, bool) {
	if engine == nil || !engine.Available() {
		return nil, false
	}
	g.logger.Info().Str("engine", engine.Name()).Str("prompt", truncate(prompt, 50)).Msg("generating image")
	img, err := engine.Generate(ctx, prompt, size)
	if err != nil {
		g.logger.Warn().Err(err).Str("engine", engine.Name()).Msg("engine failed, falling back")
		return nil, false
	}
	return img, true
}
