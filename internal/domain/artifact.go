package domain

import "strings"

// AspectVariant is one of the fixed target frames a hero image is rendered
// into.
type AspectVariant struct {
	Name   string
	Width  int
	Height int
}

// FileTag returns the aspect name in the filename-safe form used for output
// artifacts ("9:16" -> "9x16").
func (v AspectVariant) FileTag() string {
	return strings.ReplaceAll(v.Name, ":", "x")
}

// Landscape reports whether the frame is wider than tall.
func (v AspectVariant) Landscape() bool {
	return v.Width > v.Height
}

// AspectCatalog returns the fixed set of aspect variants every product is
// rendered into. Callers receive a fresh slice and may not mutate shared
// state.
func AspectCatalog() []AspectVariant {
	return []AspectVariant{
		{Name: "1:1", Width: 1080, Height: 1080},
		{Name: "9:16", Width: 1080, Height: 1920},
		{Name: "16:9", Width: 1920, Height: 1080},
	}
}

// OutputArtifact is one persisted creative. Artifacts are created once and
// never mutated; higher versions supersede lower ones.
type OutputArtifact struct {
	Product    string `json:"product"`
	AspectName string `json:"aspect"`
	Version    int    `json:"version"`
	Path       string `json:"path"`
}
