// Command pipeline renders a campaign brief into per-product, per-aspect
// advertising creatives.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/assets"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/brief"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/compose"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/infra"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/moderation"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/pipeline"
	imggen "github.com/jeujai/ScenarioCreativeAutomation/internal/providers/image"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/storage"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/translate"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/versioning"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		assetsDir      = flag.String("assets-dir", "", "directory containing input assets (overrides ASSETS_DIR)")
		outputsDir     = flag.String("outputs-dir", "", "directory for output creatives (overrides OUTPUTS_DIR)")
		verbose        = flag.Bool("verbose", false, "enable debug logging")
		skipModeration = flag.Bool("skip-moderation", false, "skip content moderation checks")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pipeline [flags] <brief.yaml|brief.json>")
		flag.PrintDefaults()
		return 1
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}
	if *outputsDir != "" {
		cfg.OutputsDir = *outputsDir
	}

	logger := infra.NewLogger(cfg.AppEnv)
	if *verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := brief.ParseFile(flag.Arg(0))
	if err != nil {
		logger.Error().Err(err).Msg("brief rejected")
		return 1
	}
	logger.Info().
		Int("products", len(b.Products)).
		Str("region", b.RegionOrGlobal()).
		Str("audience", b.Audience).
		Str("message", b.Message).
		Msg("parsed campaign brief")

	if !*skipModeration && cfg.ModerationEnabled && cfg.OpenAIAPIKey != "" {
		moderator := moderation.NewOpenAI(moderation.OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Logger:  logger,
		})
		check, err := moderator.Check(ctx, b)
		if err != nil {
			logger.Error().Err(err).Msg("moderation check failed")
			return 1
		}
		if !check.Passed {
			logger.Error().Strs("violations", check.Violations).Msg("brief blocked by moderation")
			return 1
		}
	}

	outputs, err := storage.NewFileStore(cfg.OutputsDir)
	if err != nil {
		logger.Error().Err(err).Msg("outputs store init failed")
		return 1
	}

	var blob storage.BlobStore
	if cfg.SyncEnabled {
		s3store, err := storage.NewS3Store(ctx, storage.S3Options{
			Bucket:  cfg.S3Bucket,
			Region:  cfg.S3Region,
			BaseURL: cfg.S3BaseURL,
			Logger:  logger,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("remote sync disabled, s3 init failed")
		} else {
			blob = s3store
		}
	}

	gateway := imggen.NewGateway(
		imggen.NewGemini(imggen.GeminiOptions{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModel,
			Logger:  logger,
		}),
		imggen.NewOpenAI(imggen.OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Logger:  logger,
		}),
		logger,
	)

	orchestrator := pipeline.New(pipeline.Options{
		Resolver:     assets.NewResolver(cfg.AssetsDir, logger),
		Gateway:      gateway,
		Compositor:   compose.New(logger),
		Versions:     versioning.NewAllocator(blob, cfg.RemotePrefix, logger),
		Translator:   translate.NewStatic(logger),
		Outputs:      outputs,
		Blob:         blob,
		RemotePrefix: cfg.RemotePrefix,
		Logger:       logger,
	})

	result, err := orchestrator.Run(ctx, b)
	if err != nil {
		logger.Error().Err(err).Msg("pipeline failed")
		return 1
	}

	for _, res := range result.Results {
		if res.Err != nil {
			logger.Warn().Str("product", res.Product).Err(res.Err).Msg("product failed")
			continue
		}
		for _, artifact := range res.Artifacts {
			logger.Info().Str("product", res.Product).Str("path", artifact.Path).Msg("creative ready")
		}
	}
	logger.Info().
		Int("artifacts", result.TotalArtifacts()).
		Int("uploaded", result.Uploaded).
		Str("outputs", cfg.OutputsDir).
		Msg("pipeline completed")
	return 0
}
