package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Product is a single item advertised by a campaign.
type Product struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Branding carries the optional brand treatment applied to every creative.
type Branding struct {
	LogoPosition string `json:"logo_position" yaml:"logo_position"`
	BrandColor   string `json:"brand_color" yaml:"brand_color"`
	LogoSelected bool   `json:"logo_selected" yaml:"logo_selected"`
}

// Brief is a validated campaign brief. Products keep their input order; the
// pipeline's result ordering is defined by it.
type Brief struct {
	Products          []Product         `json:"products" yaml:"products"`
	Region            string            `json:"region" yaml:"region"`
	Audience          string            `json:"audience" yaml:"audience"`
	Message           string            `json:"message" yaml:"message"`
	LocalizedMessages map[string]string `json:"localized_messages" yaml:"localized_messages"`
	Branding          Branding          `json:"branding" yaml:"branding"`
}

// Validate enforces the brief invariants. It runs once, before any pipeline
// task starts; a failure here is fatal to the whole run.
func (b *Brief) Validate() error {
	if len(b.Products) < 2 {
		return fmt.Errorf("%w: brief must include at least two products", ErrBriefInvalid)
	}
	for i, p := range b.Products {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: product %d has no name", ErrBriefInvalid, i+1)
		}
	}
	if strings.TrimSpace(b.Message) == "" {
		return fmt.Errorf("%w: brief must include a message", ErrBriefInvalid)
	}
	return nil
}

// MessageFor returns the localized message for the given language tag and
// whether one was found, falling back to the default campaign message. Keys
// in the brief are normalized through x/text so "ja-JP" and "ja" resolve to
// the same entry.
func (b *Brief) MessageFor(lang string) (string, bool) {
	if lang == "" || len(b.LocalizedMessages) == 0 {
		return b.Message, false
	}
	want, err := language.Parse(lang)
	if err != nil {
		return b.Message, false
	}
	wantBase, _ := want.Base()
	for key, msg := range b.LocalizedMessages {
		tag, err := language.Parse(key)
		if err != nil {
			continue
		}
		base, _ := tag.Base()
		if base == wantBase && msg != "" {
			return msg, true
		}
	}
	return b.Message, false
}

// RegionOrGlobal returns the brief region, defaulting to "Global".
func (b *Brief) RegionOrGlobal() string {
	if strings.TrimSpace(b.Region) == "" {
		return "Global"
	}
	return b.Region
}
