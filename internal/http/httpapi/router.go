// Package httpapi assembles the chi router for the campaign API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/http/handlers"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/middleware"
)

// Options configures cross-cutting router behavior.
type Options struct {
	Logger        zerolog.Logger
	OutputsDir    string
	DefaultRegion string
	Countries     middleware.CountryLookup
	Regions       middleware.RegionLookup
	RatePerMinute int
}

// NewRouter wires the API surface: health, campaign generation, asset
// uploads, artifact archives, and static serving of the outputs tree.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS([]string{"*"}),
	)

	r.Get("/api/health", app.Health)

	r.Route("/api/campaigns", func(r chi.Router) {
		if opts.RatePerMinute > 0 {
			r.Use(middleware.RateLimit(opts.RatePerMinute, time.Minute))
		}
		r.With(middleware.Region(opts.DefaultRegion, opts.Countries, opts.Regions)).
			Post("/generate", app.GenerateCampaign)
		r.Get("/{product}/archive", app.DownloadArchive)
	})

	r.Post("/api/assets/upload", app.UploadAsset)

	fileServer := http.StripPrefix("/outputs/", http.FileServer(http.Dir(opts.OutputsDir)))
	r.Get("/outputs/*", fileServer.ServeHTTP)

	return r
}
