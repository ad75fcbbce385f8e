package syllable

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes characters and strips combining marks,
// turning "café" into "cafe" and "naïve" into "naive".
// Built once; transform.Chain values are safe for concurrent use
// via transform.String which resets per call.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldASCII converts accented Latin characters to their ASCII base form and
// drops any remaining non-ASCII runes. Lyrics scraped from the web routinely
// carry curly quotes, accents, and stray Unicode; the vowel-group counter
// only understands ASCII letters.
func FoldASCII(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Transformation failures are limited to malformed UTF-8;
		// fall back to the raw input and let the ASCII filter below cope.
		folded = s
	}

	out := make([]rune, 0, len(folded))
	for _, r := range folded {
		switch {
		case r < 128:
			out = append(out, r)
		case r == '’' || r == '‘':
			// Curly apostrophes appear inside contractions ("don’t");
			// map them to ASCII so the word splitter keeps the word whole.
			out = append(out, '\'')
		}
	}
	return string(out)
}
