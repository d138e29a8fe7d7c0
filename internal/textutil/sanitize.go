package textutil

import (
	"fmt"
	"strings"
	"unicode"
)

// Short names for the invisible format runes authors paste in most often.
// Other format runes are shown by code point.
var formatRuneNames = map[rune]string{
	0x00AD: "SHY",
	0x061C: "ALM",
	0x200B: "ZWSP",
	0x200C: "ZWNJ",
	0x200D: "ZWJ",
	0x200E: "LRM",
	0x200F: "RLM",
	0x202A: "LRE",
	0x202B: "RLE",
	0x202C: "PDF",
	0x202D: "LRO",
	0x202E: "RLO",
	0x2060: "WJ",
	0x2066: "LRI",
	0x2067: "RLI",
	0x2068: "FSI",
	0x2069: "PDI",
	0xFEFF: "BOM",
}

// SanitizeTerminalText makes quiz text safe to draw: line breaks become
// spaces, other C0 controls and DEL become '?', and invisible format runes
// (bidi overrides, zero-width joiners) are shown as ⟪NAME⟫ labels. Tabs
// are kept for ExpandTabs.
func SanitizeTerminalText(text string) string {
	if strings.IndexFunc(text, unsafeRune) < 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + 8)
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r < 0x20 && r != '\t', r == 0x7f:
			b.WriteByte('?')
		case isFormatRune(r):
			b.WriteString(formatLabel(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func unsafeRune(r rune) bool {
	if r == '\t' {
		return false
	}
	return r < 0x20 || r == 0x7f || isFormatRune(r)
}

func isFormatRune(r rune) bool {
	return r == 0x2028 || r == 0x2029 || unicode.Is(unicode.Cf, r)
}

func formatLabel(r rune) string {
	switch r {
	case 0x2028:
		return "⟪LSEP⟫"
	case 0x2029:
		return "⟪PSEP⟫"
	}
	if name, ok := formatRuneNames[r]; ok {
		return "⟪" + name + "⟫"
	}
	return fmt.Sprintf("⟪U+%04X⟫", r)
}
