package image

import (
	"context"
	"image"
)

// Size is the pixel-size hint passed to a generation engine. Engines may
// snap it to whatever their API supports.
type Size struct {
	Width  int
	Height int
}

// DefaultSize is used when the caller has no hint.
var DefaultSize = Size{Width: 1024, Height: 1024}

// Service is the contract implemented by all image-generation engines. An
// engine may fail; the gateway owns fallback.
type Service interface {
	// Name identifies the engine for logs and generation attempts.
	Name() string
	// Available reports whether the engine is configured (credentials etc.)
	// and worth calling.
	Available() bool
	// Generate produces a bitmap for the prompt.
	Generate(ctx context.Context, prompt string, size Size) (image.Image, error)
}
