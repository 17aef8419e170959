package compose

import (
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

type runeRange struct {
	lo, hi rune
}

// scriptEntry pairs a script detector with the font resources that can render
// it. Entries are evaluated in registry order: the first matching detector
// wins, and on a resource-load failure selection falls through to the next
// entry. The terminal entry has no ranges and always matches.
type scriptEntry struct {
	name   string
	ranges []runeRange
	paths  []string
}

// scriptRegistry is the fixed priority order. Scripts are mutually exclusive
// by code-point range, so order only determines fallback when a font fails to
// load, not disambiguation.
var scriptRegistry = []scriptEntry{
	{
		name:   "thai",
		ranges: []runeRange{{0x0E00, 0x0E7F}},
		paths: []string{
			"assets/fonts/NotoSansThai-Regular.ttf",
			"/usr/share/fonts/truetype/noto/NotoSansThai-Regular.ttf",
		},
	},
	{
		name:   "arabic",
		ranges: []runeRange{{0x0600, 0x06FF}, {0x0750, 0x077F}, {0x08A0, 0x08FF}, {0xFB50, 0xFDFF}},
		paths: []string{
			"assets/fonts/NotoSansArabic-Regular.ttf",
			"/usr/share/fonts/truetype/noto/NotoSansArabic-Regular.ttf",
		},
	},
	{
		name:   "hebrew",
		ranges: []runeRange{{0x0590, 0x05FF}},
		paths: []string{
			"assets/fonts/NotoSansHebrew-Regular.ttf",
			"/usr/share/fonts/truetype/noto/NotoSansHebrew-Regular.ttf",
		},
	},
	{
		name:   "bengali",
		ranges: []runeRange{{0x0980, 0x09FF}},
		paths: []string{
			"assets/fonts/NotoSansBengali-Regular.ttf",
			"/usr/share/fonts/truetype/noto/NotoSansBengali-Regular.ttf",
		},
	},
	{
		name:   "greek",
		ranges: []runeRange{{0x0370, 0x03FF}, {0x1F00, 0x1FFF}},
		paths: []string{
			"assets/fonts/NotoSans-Regular.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		},
	},
	{
		name:   "devanagari",
		ranges: []runeRange{{0x0900, 0x097F}},
		paths: []string{
			"assets/fonts/NotoSansDevanagari-Regular.ttf",
			"/usr/share/fonts/truetype/noto/NotoSansDevanagari-Regular.ttf",
		},
	},
	{
		name:   "ethiopic",
		ranges: []runeRange{{0x1200, 0x137F}},
		paths: []string{
			"assets/fonts/NotoSansEthiopic-Regular.ttf",
			"/usr/share/fonts/truetype/noto/NotoSansEthiopic-Regular.ttf",
		},
	},
	{
		name:   "hangul",
		ranges: []runeRange{{0xAC00, 0xD7AF}, {0x1100, 0x11FF}, {0x3130, 0x318F}},
		paths: []string{
			"assets/fonts/NotoSansKR-Regular.ttf",
			"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
		},
	},
	{
		name: "cjk",
		ranges: []runeRange{
			{0x4E00, 0x9FFF},   // unified ideographs
			{0x3400, 0x4DBF},   // extension A
			{0x20000, 0x2A6DF}, // extension B
			{0x2A700, 0x2B73F}, // extension C
			{0x2B740, 0x2B81F}, // extension D
			{0x2B820, 0x2CEAF}, // extension E
			{0x3040, 0x309F},   // hiragana
			{0x30A0, 0x30FF},   // katakana
			{0xFF65, 0xFF9F},   // halfwidth katakana
			{0x3000, 0x303F},   // cjk punctuation
		},
		paths: []string{
			"assets/fonts/NotoSansJP-Regular.ttf",
			"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
		},
	},
	{
		// Latin fallback: always matches.
		name: "latin",
		paths: []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
			"assets/fonts/NotoSans-Regular.ttf",
		},
	},
}

var fontCache = struct {
	sync.Mutex
	parsed map[string]*opentype.Font
	failed map[string]bool
}{
	parsed: make(map[string]*opentype.Font),
	failed: make(map[string]bool),
}

// ScriptFor returns the name of the first registry script whose code-point
// ranges match any character of the text, or "latin" when none do. Detection
// is deterministic and independent of font availability.
func ScriptFor(text string) string {
	return scriptRegistry[scriptIndex(text)].name
}

func scriptIndex(text string) int {
	for i, entry := range scriptRegistry {
		if len(entry.ranges) == 0 {
			return i
		}
		if containsScript(text, entry.ranges) {
			return i
		}
	}
	return len(scriptRegistry) - 1
}

func containsScript(text string, ranges []runeRange) bool {
	for _, r := range text {
		for _, rr := range ranges {
			if r >= rr.lo && r <= rr.hi {
				return true
			}
		}
	}
	return false
}

// SelectFace picks a font face for the text, sized at 5% of the image width
// with a 32px floor. Starting from the detected script's entry, every
// resource in priority order is tried; when all fail the platform default
// bitmap face is returned.
func SelectFace(imageWidth int, text string) font.Face {
	size := float64(imageWidth) * 0.05
	if size < 32 {
		size = 32
	}

	for i := scriptIndex(text); i < len(scriptRegistry); i++ {
		for _, path := range scriptRegistry[i].paths {
			if face := loadFace(path, size); face != nil {
				return face
			}
		}
	}
	return basicfont.Face7x13
}

func loadFace(path string, size float64) font.Face {
	fontCache.Lock()
	defer fontCache.Unlock()

	if fontCache.failed[path] {
		return nil
	}
	parsed, ok := fontCache.parsed[path]
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			fontCache.failed[path] = true
			return nil
		}
		parsed, err = opentype.Parse(data)
		if err != nil {
			fontCache.failed[path] = true
			return nil
		}
		fontCache.parsed[path] = parsed
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	return face
}
