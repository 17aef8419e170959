package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
)

func testCompositor() *Compositor {
	return New(zerolog.Nop())
}

func TestResizeToCoverDimensions(t *testing.T) {
	c := testCompositor()
	cases := []struct {
		name             string
		srcW, srcH       int
		targetW, targetH int
	}{
		{"upscale square to story", 500, 500, 1080, 1920},
		{"downscale wide to square", 4000, 3000, 1080, 1080},
		{"portrait to landscape", 1080, 1920, 1920, 1080},
		{"exact fit", 1080, 1080, 1080, 1080},
	}
	for _, tc := range cases {
		src := imaging.New(tc.srcW, tc.srcH, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
		got := c.ResizeToCover(src, tc.targetW, tc.targetH)
		if got.Bounds().Dx() != tc.targetW || got.Bounds().Dy() != tc.targetH {
			t.Errorf("%s: got %dx%d, want %dx%d",
				tc.name, got.Bounds().Dx(), got.Bounds().Dy(), tc.targetW, tc.targetH)
		}
	}
}

func TestResizeToCoverLandscapeAnchorsTop(t *testing.T) {
	c := testCompositor()

	// Tall source: red band on top, blue below. A landscape crop must keep
	// the red band rather than cutting a centered window.
	src := image.NewNRGBA(image.Rect(0, 0, 100, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 100; x++ {
			if y < 40 {
				src.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				src.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}

	got := c.ResizeToCover(src, 100, 50)
	r, _, b, _ := got.At(50, 2).RGBA()
	if r <= b {
		t.Fatalf("top row lost after landscape crop: r=%d b=%d", r>>8, b>>8)
	}
}

func TestParseHexColor(t *testing.T) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	cases := map[string]color.NRGBA{
		"#FF8800":   {R: 255, G: 136, B: 0, A: 255},
		"ff8800":    {R: 255, G: 136, B: 0, A: 255},
		" #004080 ": {G: 64, B: 128, A: 255},
		"red":       white,
		"#fff":      white,
		"":          white,
	}
	for in, want := range cases {
		if got := ParseHexColor(in); got != want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", in, got, want)
		}
	}
}
