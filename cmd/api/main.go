package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/assets"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/compose"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/http/handlers"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/http/httpapi"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/infra"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/infra/geoip"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/middleware"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/moderation"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/pipeline"
	imggen "github.com/jeujai/ScenarioCreativeAutomation/internal/providers/image"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/storage"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/translate"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/versioning"
)

func main() {
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outputs, err := storage.NewFileStore(cfg.OutputsDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: outputs store init failed")
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
			logger.Warn().Err(err).Msg("api: remote sync disabled, s3 init failed")
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

	var moderator moderation.Service = moderation.AllowAll{}
	if cfg.ModerationEnabled && cfg.OpenAIAPIKey != "" {
		moderator = moderation.NewOpenAI(moderation.OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Logger:  logger,
		})
	}

	var countries middleware.CountryLookup
	if resolver, err := geoip.NewResolver(cfg.GeoIPDBPath); err != nil {
		logger.Warn().Err(err).Msg("api: geoip disabled")
	} else if resolver != nil {
		defer func() {
			if closer, ok := resolver.(interface{ Close() error }); ok {
				_ = closer.Close()
			}
		}()
		countries = resolver.CountryCode
	}

	app := handlers.NewApp(orchestrator, moderator, handlers.NewUploadStore(cfg.AssetsDir), cfg, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:        logger,
		OutputsDir:    cfg.OutputsDir,
		DefaultRegion: cfg.DefaultRegion,
		Countries:     countries,
		Regions:       geoip.RegionForCountry,
		RatePerMinute: 10,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("campaign API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
