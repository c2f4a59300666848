package riddle

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize canonicalizes a free-text answer: lowercase, turn every rune
// outside a–z into a space, collapse runs of spaces, trim. Letters that only
// lowercase to something non-ASCII (ß, ligatures, accents) are separators.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	// Casers carry state; one per call keeps Normalize safe for concurrent use.
	folded := cases.Lower(language.Und).String(s)

	var b strings.Builder
	b.Grow(len(folded))
	gap := false
	for _, r := range folded {
		if r < 'a' || r > 'z' {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteByte(' ')
		}
		gap = false
		b.WriteRune(r)
	}
	return b.String()
}
