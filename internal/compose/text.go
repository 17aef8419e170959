package compose

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// OverlayText renders the localized message onto the creative. Lines are
// greedily word-wrapped to the padded width and horizontally centered; the
// block anchors to the requested vertical position. Each line is drawn twice:
// an 8-direction shadow halo, then the solid fill, composited through an
// alpha layer so the blend stays antialiased.
func (c *Compositor) OverlayText(img image.Image, text, position string, fill color.Color) *image.NRGBA {
	base := imaging.Clone(img)
	if strings.TrimSpace(text) == "" {
		return base
	}

	width := base.Bounds().Dx()
	height := base.Bounds().Dy()

	face := SelectFace(width, text)
	metrics := face.Metrics()
	lineHeight := (metrics.Ascent + metrics.Descent).Ceil() + 10

	lines := wrapText(text, face, width-2*textPadding)
	totalHeight := len(lines) * lineHeight

	var y int
	switch position {
	case "bottom":
		y = height - totalHeight - textPadding
	case "top":
		y = textPadding
	default:
		y = (height - totalHeight) / 2
	}

	overlay := image.NewNRGBA(base.Bounds())
	shadow := image.NewUniform(c.shadowColor)
	solid := image.NewUniform(fill)

	for _, line := range lines {
		lineWidth := font.MeasureString(face, line).Ceil()
		x := (width - lineWidth) / 2
		baseline := y + metrics.Ascent.Ceil()

		for _, dx := range []int{-2, 0, 2} {
			for _, dy := range []int{-2, 0, 2} {
				if dx == 0 && dy == 0 {
					continue
				}
				drawLine(overlay, shadow, face, x+dx, baseline+dy, line)
			}
		}
		drawLine(overlay, solid, face, x, baseline, line)

		y += lineHeight
	}

	draw.Draw(base, base.Bounds(), overlay, image.Point{}, draw.Over)
	c.logger.Debug().Int("lines", len(lines)).Str("position", position).Msg("added text overlay")
	return base
}

// TextColor returns the default fill used when the brief has no brand color.
func (c *Compositor) TextColor() color.NRGBA { return c.textColor }

func drawLine(dst draw.Image, src image.Image, face font.Face, x, baseline int, line string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(line)
}

// wrapText accumulates words into lines whose rendered width stays within
// maxWidth. A single word wider than the limit gets its own line rather than
// being split.
func wrapText(text string, face font.Face, maxWidth int) []string {
	words := strings.Fields(text)
	var lines []string
	var current []string

	for _, word := range words {
		candidate := strings.Join(append(current, word), " ")
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
		} else {
			lines = append(lines, word)
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}
