package compose

import (
	"image"

	"github.com/disintegration/imaging"
)

// matteThreshold marks the channel value above which a pixel counts as
// near-white background.
const matteThreshold = 240

// MatteWhite returns a copy of the logo with every near-white pixel forced to
// zero alpha, so light-background logos blend onto arbitrary creatives. A
// pixel is matted only when R, G, and B all exceed the threshold.
func MatteWhite(logo image.Image) *image.NRGBA {
	out := imaging.Clone(logo)
	px := out.Pix
	for i := 0; i < len(px); i += 4 {
		if px[i] > matteThreshold && px[i+1] > matteThreshold && px[i+2] > matteThreshold {
			px[i+3] = 0
		}
	}
	return out
}

// OverlayLogo composites the brand logo into one of the four corners. The
// logo is scaled to 15% of the image width preserving aspect ratio, matted,
// and pasted through its alpha channel. Unknown positions default to
// top-left.
func (c *Compositor) OverlayLogo(img image.Image, logo image.Image, position string) *image.NRGBA {
	base := imaging.Clone(img)
	imgW := base.Bounds().Dx()
	imgH := base.Bounds().Dy()

	logoW := int(float64(imgW) * logoRatio)
	resized := imaging.Resize(logo, logoW, 0, imaging.Lanczos)
	matted := MatteWhite(resized)
	logoH := matted.Bounds().Dy()

	var x, y int
	switch position {
	case "top-left":
		x, y = logoPadding, logoPadding
	case "top-right":
		x, y = imgW-logoW-logoPadding, logoPadding
	case "bottom-left":
		x, y = logoPadding, imgH-logoH-logoPadding
	case "bottom-right":
		x, y = imgW-logoW-logoPadding, imgH-logoH-logoPadding
	default:
		x, y = logoPadding, logoPadding
		c.logger.Warn().Str("position", position).Msg("unknown logo position, using top-left")
	}

	out := imaging.Overlay(base, matted, image.Pt(x, y), 1.0)
	c.logger.Debug().
		Str("position", position).
		Int("logo_w", logoW).Int("logo_h", logoH).
		Msg("added logo overlay")
	return out
}
