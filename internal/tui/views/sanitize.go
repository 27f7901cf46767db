package views

import (
	"strings"
	"unicode/utf8"
)

// sanitizeForTerminal strips the emoji modifier codepoints listed in
// isProblematicRune, which tcell cannot lay out in one cell run. SMS and WhatsApp message bodies are free text typed on phones and often
// carry emoji sequences built from them; dropping the modifiers leaves the
// base emoji, which renders as a single 2-cell glyph and keeps table columns
// aligned.
func sanitizeForTerminal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isProblematicRune(r) {
			b.WriteRune(r)
		}
		i += size
	}
	return b.String()
}

func isProblematicRune(r rune) bool {
	switch {
	// Skin tone modifiers.
	case r >= 0x1F3FB && r <= 0x1F3FF:
		return true
	// Zero Width Joiner.
	case r == 0x200D:
		return true
	// Variation Selectors.
	case r >= 0xFE00 && r <= 0xFE0F:
		return true
	// Variation Selectors Supplement.
	case r >= 0xE0100 && r <= 0xE01EF:
		return true
	default:
		return false
	}
}
