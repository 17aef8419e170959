// Package translate localizes campaign messages for a target region.
package translate

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// Service translates a campaign message for a region. Implementations are
// best-effort: on any failure the original text comes back unchanged.
type Service interface {
	Translate(ctx context.Context, text, region string) string
}

// regionLanguages maps campaign regions to the language of their localized
// messages.
var regionLanguages = map[string]language.Tag{
	"Japan":       language.Japanese,
	"France":      language.French,
	"Spain":       language.Spanish,
	"Germany":     language.German,
	"China":       language.Chinese,
	"South Korea": language.Korean,
	"Italy":       language.Italian,
	"Brazil":      language.BrazilianPortuguese,
	"Russia":      language.Russian,
	"Ethiopia":    language.Amharic,
}

// LanguageForRegion returns the base language code spoken in a campaign
// region ("Japan" -> "ja"), or "" when the region is unknown.
func LanguageForRegion(region string) string {
	tag, ok := regionLanguages[strings.TrimSpace(region)]
	if !ok {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}

// Static is a dictionary-backed translator covering the stock campaign
// messages per supported region. Anything outside the table passes through
// untranslated.
type Static struct {
	logger zerolog.Logger
}

// NewStatic builds the dictionary translator.
func NewStatic(logger zerolog.Logger) *Static {
	return &Static{logger: logger.With().Str("component", "translate").Logger()}
}

var translations = map[string]map[string]string{
	"Japan": {
		"Clothes that make the man": "服が人をつくる",
		"Experience the pure, natural glow. Your skin deserves it": "純粋で自然な輝きを体験してください。あなたの肌はそれに値します",
	},
	"France": {
		"Clothes that make the man": "L'habit fait le moine",
		"Experience the pure, natural glow. Your skin deserves it": "Découvrez l'éclat pur et naturel. Votre peau le mérite",
	},
	"Spain": {
		"Clothes that make the man": "El hábito hace al monje",
		"Experience the pure, natural glow. Your skin deserves it": "Experimenta el brillo puro y natural. Tu piel lo merece",
	},
	"Germany": {
		"Clothes that make the man": "Kleider machen Leute",
		"Experience the pure, natural glow. Your skin deserves it": "Erleben Sie den reinen, natürlichen Glanz. Ihre Haut verdient es",
	},
	"China": {
		"Clothes that make the man": "人靠衣装",
		"Experience the pure, natural glow. Your skin deserves it": "体验纯净自然的光泽。你的皮肤值得拥有",
	},
	"South Korea": {
		"Clothes that make the man": "옷이 날개다",
		"Experience the pure, natural glow. Your skin deserves it": "순수하고 자연스러운 빛을 경험하세요. 당신의 피부는 그럴 자격이 있습니다",
	},
	"Italy": {
		"Clothes that make the man": "L'abito fa il monaco",
		"Experience the pure, natural glow. Your skin deserves it": "Prova la luminosità pura e naturale. La tua pelle lo merita",
	},
	"Brazil": {
		"Clothes that make the man": "As roupas fazem o homem",
		"Experience the pure, natural glow. Your skin deserves it": "Experimente o brilho puro e natural. Sua pele merece",
	},
	"Russia": {
		"Clothes that make the man": "Встречают по одёжке",
		"Experience the pure, natural glow. Your skin deserves it": "Почувствуйте чистое, естественное сияние. Ваша кожа этого заслуживает",
	},
	"Ethiopia": {
		"Clothes that make the man": "ልብስ ሰውን ያደርጋል",
		"Experience the pure, natural glow. Your skin deserves it": "ንጹህ እና ተፈጥሯዊ ብሩህነትን ይለማመዱ። ቆዳዎ ይገባዋል",
	},
}

// Translate looks the message up in the regional dictionary.
func (s *Static) Translate(_ context.Context, text, region string) string {
	region = strings.TrimSpace(region)
	if byRegion, ok := translations[region]; ok {
		if translated, ok := byRegion[text]; ok {
			s.logger.Debug().Str("region", region).Msg("translated campaign message")
			return translated
		}
	}
	s.logger.Debug().Str("region", region).Msg("no translation available, using original message")
	return text
}

// SupportedRegions lists the regions the dictionary covers.
func SupportedRegions() []string {
	regions := make([]string, 0, len(translations))
	for region := range translations {
		regions = append(regions, region)
	}
	return regions
}

var _ Service = (*Static)(nil)
