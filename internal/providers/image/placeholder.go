package image

import (
	"context"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// placeholderPalette mirrors the fixed set of fills so repeated prompts stay
// visually stable while distinct prompts usually differ.
var placeholderPalette = []color.NRGBA{
	{R: 255, G: 99, B: 71, A: 255},
	{R: 70, G: 130, B: 180, A: 255},
	{R: 144, G: 238, B: 144, A: 255},
	{R: 255, G: 215, B: 0, A: 255},
	{R: 218, G: 112, B: 214, A: 255},
}

const placeholderLabel = "PLACEHOLDER"

// Placeholder is the terminal engine of the fallback chain. It never fails
// and needs no credentials, which keeps the pipeline testable offline.
type Placeholder struct{}

// NewPlaceholder constructs the deterministic placeholder engine.
func NewPlaceholder() *Placeholder { return &Placeholder{} }

func (p *Placeholder) Name() string { return "placeholder" }

func (p *Placeholder) Available() bool { return true }

// Generate fills the frame with a prompt-derived color and stamps the
// PLACEHOLDER label in the center.
func (p *Placeholder) Generate(_ context.Context, prompt string, size Size) (image.Image, error) {
	w, h := size.Width, size.Height
	if w <= 0 || h <= 0 {
		w, h = DefaultSize.Width, DefaultSize.Height
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(PlaceholderColor(prompt)), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		Face: face,
	}
	width := d.MeasureString(placeholderLabel).Ceil()
	d.Dot = fixed.P((w-width)/2, h/2+face.Metrics().Ascent.Ceil()/2)
	d.DrawString(placeholderLabel)

	return img, nil
}

// PlaceholderColor derives the fill for a prompt. Exposed so tests can assert
// determinism without decoding pixels.
func PlaceholderColor(prompt string) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(prompt))
	return placeholderPalette[h.Sum32()%uint32(len(placeholderPalette))]
}

var _ Service = (*Placeholder)(nil)
