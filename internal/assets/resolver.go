// Package assets locates and stores hero images and brand logos on the local
// filesystem. It performs pure directory probing: the absence of a match is
// not an error, it signals that the caller should generate.
package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/domain"
)

// heroExtensions is the fixed probe order for hero image files.
var heroExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// logoExtensions are the file types considered when searching for a logo.
var logoExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".webp": {},
}

// Resolver probes the assets layout for product imagery.
type Resolver struct {
	uploadsDir   string
	generatedDir string
	logosDir     string
	logger       zerolog.Logger
}

// NewResolver builds a resolver over the standard assets layout rooted at
// baseDir: uploads/, generated/, logos/.
func NewResolver(baseDir string, logger zerolog.Logger) *Resolver {
	return &Resolver{
		uploadsDir:   filepath.Join(baseDir, "uploads"),
		generatedDir: filepath.Join(baseDir, "generated"),
		logosDir:     filepath.Join(baseDir, "logos"),
		logger:       logger.With().Str("component", "assets").Logger(),
	}
}

// NormalizeName lowercases a name and folds spaces and dashes to underscores,
// producing the filename stem used across uploads, cache, and outputs.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}

// FindUploaded probes the uploads area for a user-supplied hero image,
// trying "{name}_hero.{ext}" then "{name}.{ext}" across the known extensions
// in fixed order.
func (r *Resolver) FindUploaded(productName string) (domain.Asset, bool) {
	stem := NormalizeName(productName)
	for _, ext := range heroExtensions {
		for _, candidate := range []string{stem + "_hero" + ext, stem + ext} {
			path := filepath.Join(r.uploadsDir, candidate)
			if fileExists(path) {
				r.logger.Debug().Str("product", productName).Str("path", path).Msg("found uploaded hero")
				return domain.Asset{Product: productName, Origin: domain.AssetUploaded, Path: path}, true
			}
		}
	}
	return domain.Asset{}, false
}

// FindAny probes uploads first, then the region-scoped generated cache.
// Uploaded assets always take precedence over cached generations.
func (r *Resolver) FindAny(productName, region string) (domain.Asset, bool) {
	if asset, ok := r.FindUploaded(productName); ok {
		return asset, true
	}
	path := r.generatedPath(productName, region)
	if fileExists(path) {
		r.logger.Debug().Str("product", productName).Str("path", path).Msg("found cached generated hero")
		return domain.Asset{Product: productName, Origin: domain.AssetGenerated, Region: region, Path: path}, true
	}
	return domain.Asset{}, false
}

// SaveGenerated writes a generated hero into the cache under its
// region-qualified filename. Overwrite semantics: the cache holds exactly one
// hero per (product, region) and versioning happens downstream.
func (r *Resolver) SaveGenerated(img image.Image, productName, region string) (domain.Asset, error) {
	if err := os.MkdirAll(r.generatedDir, 0o755); err != nil {
		return domain.Asset{}, fmt.Errorf("assets: ensure generated dir: %w", err)
	}
	path := r.generatedPath(productName, region)
	if err := imaging.Save(img, path); err != nil {
		return domain.Asset{}, fmt.Errorf("assets: save generated hero: %w", err)
	}
	r.logger.Info().Str("product", productName).Str("path", path).Msg("cached generated hero")
	return domain.Asset{Product: productName, Origin: domain.AssetGenerated, Region: region, Path: path}, nil
}

// FindLogo returns the most recently modified logo file, if any.
func (r *Resolver) FindLogo() (string, bool) {
	entries, err := os.ReadDir(r.logosDir)
	if err != nil {
		return "", false
	}
	var (
		newest     string
		newestTime int64
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := logoExtensions[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().UnixNano() > newestTime {
			newest = filepath.Join(r.logosDir, entry.Name())
			newestTime = info.ModTime().UnixNano()
		}
	}
	if newest == "" {
		return "", false
	}
	return newest, true
}

// LoadImage opens an asset file as an image.
func (r *Resolver) LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	return img, nil
}

func (r *Resolver) generatedPath(productName, region string) string {
	name := fmt.Sprintf("%s_%s_hero.png", NormalizeName(productName), NormalizeName(region))
	return filepath.Join(r.generatedDir, name)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
