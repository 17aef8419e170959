// Package pipeline fans a campaign brief out into per-product rendering
// tasks and aggregates their artifacts.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/assets"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/compose"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/domain"
	imggen "github.com/jeujai/ScenarioCreativeAutomation/internal/providers/image"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/storage"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/translate"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/versioning"
)

// Options wires the orchestrator's collaborators. Everything is constructed
// explicitly at startup; the orchestrator holds no hidden global state.
type Options struct {
	Resolver   *assets.Resolver
	Gateway    *imggen.Gateway
	Compositor *compose.Compositor
	Versions   *versioning.Allocator
	Translator translate.Service
	// Outputs is the local artifact store; always written.
	Outputs *storage.FileStore
	// Blob enables the post-run sync pass when non-nil.
	Blob         storage.BlobStore
	RemotePrefix string
	Logger       zerolog.Logger
}

// Orchestrator runs the creative pipeline: one concurrent task per product,
// failures isolated per task, results in brief order.
type Orchestrator struct {
	resolver     *assets.Resolver
	gateway      *imggen.Gateway
	comp         *compose.Compositor
	versions     *versioning.Allocator
	translator   translate.Service
	outputs      *storage.FileStore
	blob         storage.BlobStore
	remotePrefix string
	logger       zerolog.Logger
}

// New constructs an orchestrator from explicit collaborators.
func New(opts Options) *Orchestrator {
	return &Orchestrator{
		resolver:     opts.Resolver,
		gateway:      opts.Gateway,
		comp:         opts.Compositor,
		versions:     opts.Versions,
		translator:   opts.Translator,
		outputs:      opts.Outputs,
		blob:         opts.Blob,
		remotePrefix: opts.RemotePrefix,
		logger:       opts.Logger.With().Str("component", "pipeline").Logger(),
	}
}

// ProductResult is the outcome of one product task. A failed task carries an
// error and an empty artifact list; it never goes missing from the run.
type ProductResult struct {
	Product   string                    `json:"product"`
	Artifacts []domain.OutputArtifact   `json:"artifacts"`
	Attempt   *domain.GenerationAttempt `json:"-"`
	Err       error                     `json:"-"`
}

// RunResult aggregates a full pipeline run.
type RunResult struct {
	RunID    string          `json:"run_id"`
	Results  []ProductResult `json:"results"`
	Uploaded int             `json:"uploaded"`
}

// TotalArtifacts counts artifacts across all products.
func (r *RunResult) TotalArtifacts() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Artifacts)
	}
	return n
}

// Run executes the pipeline for a validated brief. One task per product runs
// concurrently; each slot of the result slice is written only by its own
// task, so the final ordering always mirrors the brief regardless of which
// task finishes first. Only brief validation can fail the run.
func (o *Orchestrator) Run(ctx context.Context, brief *domain.Brief) (*RunResult, error) {
	if err := brief.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := o.logger.With().Str("run_id", runID).Logger()
	log.Info().
		Int("products", len(brief.Products)).
		Str("region", brief.RegionOrGlobal()).
		Str("audience", brief.Audience).
		Msg("starting campaign pipeline")

	results := make([]ProductResult, len(brief.Products))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, product := range brief.Products {
		product := product
		res := &results[i]
		res.Product = product.Name
		eg.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					res.Artifacts = nil
					res.Err = fmt.Errorf("task panic: %v", r)
					log.Error().Str("product", product.Name).Any("panic", r).Msg("product task panicked")
				}
			}()
			artifacts, attempt, err := o.processProduct(egCtx, log, product, brief)
			if err != nil {
				res.Err = err
				log.Error().Err(err).Str("product", product.Name).Msg("product task failed")
				return nil
			}
			res.Artifacts = artifacts
			res.Attempt = attempt
			return nil
		})
	}
	_ = eg.Wait()

	result := &RunResult{RunID: runID, Results: results}
	log.Info().Int("artifacts", result.TotalArtifacts()).Msg("local generation complete")

	if o.blob != nil {
		result.Uploaded = o.syncArtifacts(ctx, log, results)
	}
	return result, nil
}

// processProduct runs the full per-product state machine:
// resolving_hero -> (generating)? -> composing_variants -> done.
func (o *Orchestrator) processProduct(ctx context.Context, log zerolog.Logger, product domain.Product, brief *domain.Brief) ([]domain.OutputArtifact, *domain.GenerationAttempt, error) {
	plog := log.With().Str("product", product.Name).Logger()
	region := brief.RegionOrGlobal()

	plog.Info().Str("state", "resolving_hero").Msg("resolving hero image")
	hero, attempt, err := o.resolveHero(ctx, plog, product, region)
	if err != nil {
		return nil, nil, err
	}

	var logo image.Image
	if brief.Branding.LogoSelected {
		if logoPath, ok := o.resolver.FindLogo(); ok {
			logo, err = o.resolver.LoadImage(logoPath)
			if err != nil {
				plog.Warn().Err(err).Str("path", logoPath).Msg("logo unreadable, skipping overlay")
				logo = nil
			}
		} else {
			plog.Warn().Msg("logo selected but none found in logos directory")
		}
	}

	message := o.resolveMessage(ctx, brief, region)
	fill := o.comp.TextColor()
	if brief.Branding.BrandColor != "" {
		fill = compose.ParseHexColor(brief.Branding.BrandColor)
	}

	plog.Info().Str("state", "composing_variants").Msg("composing aspect variants")
	stem := assets.NormalizeName(product.Name)
	productDir := o.outputs.Path(stem)

	var artifacts []domain.OutputArtifact
	for _, variant := range domain.AspectCatalog() {
		creative := o.comp.ResizeToCover(hero, variant.Width, variant.Height)
		withText := o.comp.OverlayText(creative, message, "bottom", fill)
		final := withText
		if logo != nil {
			final = o.comp.OverlayLogo(withText, logo, brief.Branding.LogoPosition)
		}

		base := fmt.Sprintf("%s_%s", stem, variant.FileTag())
		version := o.versions.NextVersion(ctx, productDir, base)
		filename := versioning.VersionedName(base, version)

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, final, imaging.PNG); err != nil {
			return nil, nil, fmt.Errorf("encode %s: %w", filename, err)
		}
		key, err := o.outputs.Write(ctx, path.Join(stem, filename), buf.Bytes())
		if err != nil {
			return nil, nil, fmt.Errorf("persist %s: %w", filename, err)
		}

		artifact := domain.OutputArtifact{
			Product:    product.Name,
			AspectName: variant.Name,
			Version:    version,
			Path:       o.outputs.Path(key),
		}
		artifacts = append(artifacts, artifact)
		plog.Info().Str("aspect", variant.Name).Int("version", version).Str("path", artifact.Path).Msg("saved creative")
	}

	return artifacts, attempt, nil
}

// resolveHero returns the product hero image: an existing asset when one is
// on disk (uploads win over the generated cache), otherwise a fresh
// generation that is cached for reuse within the region.
func (o *Orchestrator) resolveHero(ctx context.Context, plog zerolog.Logger, product domain.Product, region string) (image.Image, *domain.GenerationAttempt, error) {
	if asset, ok := o.resolver.FindAny(product.Name, region); ok {
		img, err := o.resolver.LoadImage(asset.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("load hero asset: %w", err)
		}
		plog.Info().Str("origin", string(asset.Origin)).Str("path", asset.Path).Msg("using existing hero asset")
		return img, nil, nil
	}

	plog.Info().Str("state", "generating").Msg("no existing asset, generating hero image")
	prompt := imggen.BuildProductPrompt(product, region)
	img, attempt := o.gateway.Generate(ctx, prompt, imggen.DefaultSize)
	plog.Info().Str("engine", attempt.Engine).Str("tier", string(attempt.Tier)).Msg("hero image generated")

	if _, err := o.resolver.SaveGenerated(img, product.Name, region); err != nil {
		// Cache misses are recoverable; the in-memory image still renders.
		plog.Warn().Err(err).Msg("failed to cache generated hero")
	}
	return img, &attempt, nil
}

// resolveMessage picks the creative's text: a brief-supplied localized
// message for the region's language when present, otherwise the translator's
// best effort on the default message.
func (o *Orchestrator) resolveMessage(ctx context.Context, brief *domain.Brief, region string) string {
	lang := translate.LanguageForRegion(region)
	if msg, ok := brief.MessageFor(lang); ok {
		return msg
	}
	if o.translator != nil {
		return o.translator.Translate(ctx, brief.Message, region)
	}
	return brief.Message
}

// syncArtifacts mirrors every produced artifact to the blob store. It runs
// strictly after all local tasks have finished; failures are logged and do
// not affect the run's reported success.
func (o *Orchestrator) syncArtifacts(ctx context.Context, log zerolog.Logger, results []ProductResult) int {
	uploaded := 0
	for _, res := range results {
		for _, artifact := range res.Artifacts {
			rel, err := filepath.Rel(o.outputs.BasePath(), artifact.Path)
			if err != nil {
				log.Warn().Err(err).Str("path", artifact.Path).Msg("cannot derive remote name, skipping upload")
				continue
			}
			remoteName := path.Join(o.remotePrefix, filepath.ToSlash(rel))
			url, err := o.blob.Upload(ctx, artifact.Path, remoteName)
			if err != nil {
				log.Warn().Err(err).Str("key", remoteName).Msg("artifact upload failed")
				continue
			}
			uploaded++
			log.Info().Str("key", remoteName).Str("url", url).Msg("artifact uploaded")
		}
	}
	log.Info().Int("uploaded", uploaded).Msg("remote sync complete")
	return uploaded
}
