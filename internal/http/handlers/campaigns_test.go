package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/assets"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/compose"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/domain"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/infra"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/middleware"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/moderation"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/pipeline"
	imggen "github.com/jeujai/ScenarioCreativeAutomation/internal/providers/image"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/storage"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/translate"
	"github.com/jeujai/ScenarioCreativeAutomation/internal/versioning"
)

type stubModerator struct {
	result moderation.Result
	err    error
}

func (s *stubModerator) Check(context.Context, *domain.Brief) (moderation.Result, error) {
	return s.result, s.err
}

func testApp(t *testing.T, mod moderation.Service) (*App, string) {
	t.Helper()
	base := t.TempDir()
	assetsDir := filepath.Join(base, "assets")
	outputsDir := filepath.Join(base, "outputs")
	for _, dir := range []string{"uploads", "generated", "logos"} {
		if err := os.MkdirAll(filepath.Join(assetsDir, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	outputs, err := storage.NewFileStore(outputsDir)
	if err != nil {
		t.Fatal(err)
	}

	logger := zerolog.Nop()
	orch := pipeline.New(pipeline.Options{
		Resolver:   assets.NewResolver(assetsDir, logger),
		Gateway:    imggen.NewGateway(nil, nil, logger),
		Compositor: compose.New(logger),
		Versions:   versioning.NewAllocator(nil, "outputs", logger),
		Translator: translate.NewStatic(logger),
		Outputs:    outputs,
		Logger:     logger,
	})
	cfg := &infra.Config{AssetsDir: assetsDir, OutputsDir: outputsDir}
	return NewApp(orch, mod, NewUploadStore(assetsDir), cfg, logger), assetsDir
}

const generateBody = `{
	"products": [{"name": "Aurora Serum"}, {"name": "Glow Cream"}],
	"region": "Japan",
	"message": "Experience the pure, natural glow. Your skin deserves it"
}`

func TestGenerateCampaign(t *testing.T) {
	app, _ := testApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/campaigns/generate", strings.NewReader(generateBody))
	rec := httptest.NewRecorder()
	app.GenerateCampaign(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		RunID    string `json:"run_id"`
		Region   string `json:"region"`
		Products []struct {
			Product   string `json:"product"`
			Succeeded bool   `json:"succeeded"`
			Artifacts []struct {
				AspectName string `json:"aspect"`
				Version    int    `json:"version"`
			} `json:"artifacts"`
		} `json:"products"`
		Total int `json:"total_artifacts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RunID == "" || resp.Region != "Japan" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if len(resp.Products) != 2 || resp.Total != 6 {
		t.Fatalf("got %d products, %d artifacts", len(resp.Products), resp.Total)
	}
	for _, p := range resp.Products {
		if !p.Succeeded || len(p.Artifacts) != 3 {
			t.Fatalf("product %s: %+v", p.Product, p)
		}
	}
}

func TestGenerateCampaignInvalidBrief(t *testing.T) {
	app, _ := testApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/campaigns/generate",
		strings.NewReader(`{"products": [{"name": "Only One"}], "message": "hi"}`))
	rec := httptest.NewRecorder()
	app.GenerateCampaign(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", rec.Code)
	}
}

func TestGenerateCampaignModerationBlocked(t *testing.T) {
	app, _ := testApp(t, &stubModerator{result: moderation.Result{
		Passed:     false,
		Violations: []string{"violence: Aurora Serum"},
	}})

	req := httptest.NewRequest(http.MethodPost, "/api/campaigns/generate", strings.NewReader(generateBody))
	rec := httptest.NewRecorder()
	app.GenerateCampaign(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "violations") {
		t.Fatalf("violations missing from response: %s", rec.Body.String())
	}
}

func TestGenerateCampaignModerationUnavailable(t *testing.T) {
	app, _ := testApp(t, &stubModerator{err: errors.New("api down")})

	req := httptest.NewRequest(http.MethodPost, "/api/campaigns/generate", strings.NewReader(generateBody))
	rec := httptest.NewRecorder()
	app.GenerateCampaign(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status %d, want 502", rec.Code)
	}
}

func TestGenerateCampaignInheritsRequestRegion(t *testing.T) {
	app, _ := testApp(t, nil)

	body := `{
		"products": [{"name": "Aurora Serum"}, {"name": "Glow Cream"}],
		"message": "Experience the pure, natural glow. Your skin deserves it"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/campaigns/generate", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), middleware.RegionKey, "Germany"))
	rec := httptest.NewRecorder()
	app.GenerateCampaign(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Region string `json:"region"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Region != "Germany" {
		t.Fatalf("region = %q, want Germany from request context", resp.Region)
	}
}

func TestUploadAssetHero(t *testing.T) {
	app, assetsDir := testApp(t, nil)

	img := imaging.New(10, 10, color.NRGBA{R: 120, A: 255})
	var png bytes.Buffer
	if err := imaging.Encode(&png, img, imaging.PNG); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	app.UploadAsset(rec, multipartRequest(t, map[string]string{"kind": "hero", "product": "Aurora Serum"}, "hero.png", png.Bytes()))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if _, err := os.Stat(filepath.Join(assetsDir, "uploads", "aurora_serum_hero.png")); err != nil {
		t.Fatalf("hero not stored: %v", err)
	}
}

func TestUploadAssetRejectsUnknownType(t *testing.T) {
	app, _ := testApp(t, nil)

	rec := httptest.NewRecorder()
	app.UploadAsset(rec, multipartRequest(t, map[string]string{"kind": "hero", "product": "Aurora Serum"}, "notes.txt", []byte("plain text payload")))

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status %d, want 415", rec.Code)
	}
}

func TestUploadAssetRequiresProduct(t *testing.T) {
	app, _ := testApp(t, nil)

	img := imaging.New(10, 10, color.NRGBA{R: 120, A: 255})
	var png bytes.Buffer
	if err := imaging.Encode(&png, img, imaging.PNG); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	app.UploadAsset(rec, multipartRequest(t, map[string]string{"kind": "hero"}, "hero.png", png.Bytes()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}
