// Package compose implements the creative composition algorithms: cover-crop
// resizing, script-aware text overlay, and brand logo placement.
package compose

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
)

const (
	textPadding = 50
	logoRatio   = 0.15
	logoPadding = 30
)

// Compositor renders campaign creatives. It is stateless apart from its
// defaults and safe for concurrent use.
type Compositor struct {
	logger      zerolog.Logger
	textColor   color.NRGBA
	shadowColor color.NRGBA
}

// New builds a compositor with the standard white-on-dark text treatment.
func New(logger zerolog.Logger) *Compositor {
	return &Compositor{
		logger:      logger.With().Str("component", "compose").Logger(),
		textColor:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		shadowColor: color.NRGBA{R: 0, G: 0, B: 0, A: 180},
	}
}

// ResizeToCover scales the source so it fully covers the target frame, then
// crops the exact window. Horizontal placement is centered; for landscape
// targets the crop anchors at the top of the frame so heads and faces near
// the top edge survive.
func (c *Compositor) ResizeToCover(src image.Image, targetW, targetH int) *image.NRGBA {
	srcW := src.Bounds().Dx()
	srcH := src.Bounds().Dy()

	scale := math.Max(float64(targetW)/float64(srcW), float64(targetH)/float64(srcH))
	newW := int(math.Ceil(float64(srcW) * scale))
	newH := int(math.Ceil(float64(srcH) * scale))
	if newW < targetW {
		newW = targetW
	}
	if newH < targetH {
		newH = targetH
	}

	resized := imaging.Resize(src, newW, newH, imaging.Lanczos)

	left := (newW - targetW) / 2
	top := 0
	if targetW <= targetH {
		top = (newH - targetH) / 2
	}

	cropped := imaging.Crop(resized, image.Rect(left, top, left+targetW, top+targetH))
	c.logger.Debug().
		Str("from", fmt.Sprintf("%dx%d", srcW, srcH)).
		Str("to", fmt.Sprintf("%dx%d", targetW, targetH)).
		Msg("cover-cropped image")
	return cropped
}

// ParseHexColor parses "#RRGGBB" (or "RRGGBB") into an opaque color. Invalid
// input yields opaque white so a bad brand color never breaks a render.
func ParseHexColor(s string) color.NRGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
