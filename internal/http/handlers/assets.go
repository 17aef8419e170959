package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/assets"
	zipkit "github.com/jeujai/ScenarioCreativeAutomation/pkg/zip"
)

// allowedUploadExtensions maps detected MIME types to the extension stored
// on disk.
var allowedUploadExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// UploadStore writes user-supplied hero images and logos into the assets
// layout the resolver probes.
type UploadStore struct {
	uploadsDir string
	logosDir   string
}

// NewUploadStore builds a store over the assets root.
func NewUploadStore(assetsDir string) *UploadStore {
	return &UploadStore{
		uploadsDir: filepath.Join(assetsDir, "uploads"),
		logosDir:   filepath.Join(assetsDir, "logos"),
	}
}

// SaveHero stores a hero image for a product as {normalized}_hero{ext}.
func (u *UploadStore) SaveHero(product, ext string, data []byte) (string, error) {
	name := assets.NormalizeName(product) + "_hero" + ext
	return u.save(u.uploadsDir, name, data)
}

// SaveLogo stores a brand logo under its original (sanitized) name.
func (u *UploadStore) SaveLogo(filename, ext string, data []byte) (string, error) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." {
		base = "logo"
	}
	return u.save(u.logosDir, assets.NormalizeName(base)+ext, data)
}

func (u *UploadStore) save(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("uploads: ensure directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("uploads: write file: %w", err)
	}
	return path, nil
}

// UploadAsset receives a multipart upload ("file" field) and stores it as a
// product hero or a brand logo depending on the "kind" field.
func (a *App) UploadAsset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		a.jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.jsonError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, 16<<20))
	if err != nil {
		a.jsonError(w, http.StatusBadRequest, "cannot read upload")
		return
	}

	ext, ok := allowedUploadExtensions[mimetype.Detect(data).String()]
	if !ok {
		a.jsonError(w, http.StatusUnsupportedMediaType, "only png, jpeg, and webp uploads are accepted")
		return
	}

	var path string
	switch kind := r.FormValue("kind"); kind {
	case "logo":
		path, err = a.Uploads.SaveLogo(header.Filename, ext, data)
	case "", "hero":
		product := r.FormValue("product")
		if strings.TrimSpace(product) == "" {
			a.jsonError(w, http.StatusBadRequest, "missing product field")
			return
		}
		path, err = a.Uploads.SaveHero(product, ext, data)
	default:
		a.jsonError(w, http.StatusBadRequest, fmt.Sprintf("unknown asset kind %q", kind))
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Msg("asset upload failed")
		a.jsonError(w, http.StatusInternalServerError, "cannot store upload")
		return
	}

	a.json(w, http.StatusCreated, map[string]string{"path": path})
}

// DownloadArchive streams every artifact of one product as a zip.
func (a *App) DownloadArchive(w http.ResponseWriter, r *http.Request) {
	product := chi.URLParam(r, "product")
	stem := assets.NormalizeName(product)
	productDir := filepath.Join(a.Cfg.OutputsDir, stem)

	entries, err := os.ReadDir(productDir)
	if err != nil {
		a.jsonError(w, http.StatusNotFound, "no artifacts for product")
		return
	}

	var creatives []zipkit.Creative
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(productDir, entry.Name()))
		if err != nil {
			continue
		}
		creatives = append(creatives, zipkit.Creative{Filename: entry.Name(), Data: data})
	}
	if len(creatives) == 0 {
		a.jsonError(w, http.StatusNotFound, "no artifacts for product")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", stem+".zip"))
	_, _ = w.Write(zipkit.Archive(creatives))
}
