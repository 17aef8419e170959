package translate

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestLanguageForRegion(t *testing.T) {
	cases := []struct {
		region string
		want   string
	}{
		{"Japan", "ja"},
		{"Brazil", "pt"},
		{"Ethiopia", "am"},
		{" South Korea ", "ko"},
		{"Atlantis", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := LanguageForRegion(tc.region); got != tc.want {
			t.Errorf("LanguageForRegion(%q) = %q, want %q", tc.region, got, tc.want)
		}
	}
}

func TestStaticTranslate(t *testing.T) {
	s := NewStatic(zerolog.Nop())
	ctx := context.Background()

	if got := s.Translate(ctx, "Clothes that make the man", "Japan"); got != "服が人をつくる" {
		t.Fatalf("Translate = %q", got)
	}

	// Unknown message or region passes through unchanged.
	if got := s.Translate(ctx, "Unknown slogan", "Japan"); got != "Unknown slogan" {
		t.Fatalf("unknown message altered: %q", got)
	}
	if got := s.Translate(ctx, "Clothes that make the man", "Atlantis"); got != "Clothes that make the man" {
		t.Fatalf("unknown region altered: %q", got)
	}
}

func TestSupportedRegionsHaveBothMessages(t *testing.T) {
	regions := SupportedRegions()
	if len(regions) != 10 {
		t.Fatalf("got %d supported regions, want 10", len(regions))
	}
	s := NewStatic(zerolog.Nop())
	for _, region := range regions {
		for _, msg := range []string{
			"Clothes that make the man",
			"Experience the pure, natural glow. Your skin deserves it",
		} {
			if got := s.Translate(context.Background(), msg, region); got == msg {
				t.Errorf("%s: %q not translated", region, msg)
			}
		}
	}
}
