package syllable

import (
	"regexp"
	"strings"
)

// Derivation describes which rules produced a syllable count.
// Lower values indicate weaker evidence; callers take the minimum across
// a line or triplet to judge overall confidence.
type Derivation int

const (
	// DerivationFallback means no vowel run was found and the word was
	// floored to one syllable (consonant-only words, hummed filler, acronyms).
	DerivationFallback Derivation = iota

	// DerivationCorrected means the vowel-group count was adjusted by a
	// corrective rule (silent trailing "e", consonant+"le" ending).
	DerivationCorrected

	// DerivationCounted means the count is a plain vowel-group count with
	// no corrections applied.
	DerivationCounted

	// DerivationLexicon means the word was found in the exception lexicon
	// (or a user-supplied override) and the count is known-good.
	DerivationLexicon
)

// String returns a human-readable name for the derivation.
func (d Derivation) String() string {
	switch d {
	case DerivationFallback:
		return "fallback"
	case DerivationCorrected:
		return "corrected"
	case DerivationCounted:
		return "counted"
	case DerivationLexicon:
		return "lexicon"
	default:
		return "unknown"
	}
}

// lexicon contains words that commonly trip the vowel-group heuristic,
// mapped to their actual syllable counts. This is a starting approximation,
// not an exhaustive list; users can extend it via configuration overrides.
var lexicon = map[string]int{
	"queue": 1, "people": 2, "choir": 1, "hour": 1, "our": 1, "fire": 1,
	"one": 1, "two": 1, "once": 1, "blood": 1, "breathe": 1, "breathed": 1,
	"every": 2, "even": 2, "ever": 2, "business": 2, "family": 3,
	"poem": 2, "poet": 2, "quiet": 2, "quietly": 3, "science": 2, "giant": 2,
}

var (
	// nonLetter strips everything that is not an ASCII lowercase letter.
	nonLetter = regexp.MustCompile(`[^a-z]`)

	// vowelRun matches a maximal run of vowel characters ("y" counts).
	vowelRun = regexp.MustCompile(`[aeiouy]+`)

	// wordPattern extracts words from a line, keeping internal apostrophes
	// so contractions stay whole ("don't" is one word, one syllable).
	wordPattern = regexp.MustCompile(`[A-Za-z']+`)

	// annotation matches inline bracketed or parenthesised stage cues
	// such as "[Chorus]" or "(x2)" embedded in a lyric line.
	annotation = regexp.MustCompile(`[\[(][^\])]*[\])]`)
)

const vowels = "aeiouy"

// WordCount is the estimated syllable count for a single word.
type WordCount struct {
	// Count is the estimated number of syllables. Zero only for inputs
	// with no letters at all.
	Count int

	// Derivation records which rules produced the count.
	Derivation Derivation
}

// LineCount is the estimated syllable count for a full line of text.
type LineCount struct {
	// Count is the sum of the per-word estimates.
	Count int

	// Words is the number of words that contributed to the count.
	Words int

	// Derivation is the weakest per-word derivation in the line.
	// Lines with no words report DerivationCounted.
	Derivation Derivation
}

// Counter estimates syllable counts. The zero value is not usable;
// construct with NewCounter.
//
// Design decision: Counter is a struct rather than package functions because
// user-supplied lexicon overrides are per-scan configuration state, and the
// scanner needs a counter it can hand around without global mutation.
type Counter struct {
	// overrides maps lowercase words to syllable counts, consulted before
	// the built-in lexicon.
	overrides map[string]int
}

// Option configures a Counter.
type Option func(*Counter)

// WithOverrides adds user-supplied word→syllable-count overrides.
// Keys are matched case-insensitively after punctuation stripping.
func WithOverrides(overrides map[string]int) Option {
	return func(c *Counter) {
		for word, n := range overrides {
			key := nonLetter.ReplaceAllString(strings.ToLower(word), "")
			if key != "" && n > 0 {
				c.overrides[key] = n
			}
		}
	}
}

// NewCounter creates a Counter with the given options.
func NewCounter(opts ...Option) *Counter {
	c := &Counter{overrides: make(map[string]int)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Word estimates the syllable count of a single word.
//
// The algorithm, in order:
//  1. Lowercase and strip everything but letters.
//  2. Consult overrides, then the built-in lexicon.
//  3. Count maximal runs of vowels (aeiouy).
//  4. Subtract a trailing silent "e" (not "le"/"ye") when more than one run.
//  5. Add one for a "le" ending after a consonant ("table", "little").
//  6. Floor at one syllable for any word that still has letters.
func (c *Counter) Word(word string) WordCount {
	w := nonLetter.ReplaceAllString(strings.ToLower(word), "")
	if w == "" {
		return WordCount{Count: 0, Derivation: DerivationCounted}
	}

	if n, ok := c.overrides[w]; ok {
		return WordCount{Count: n, Derivation: DerivationLexicon}
	}
	if n, ok := lexicon[w]; ok {
		return WordCount{Count: n, Derivation: DerivationLexicon}
	}

	count := len(vowelRun.FindAllString(w, -1))
	if count == 0 {
		// Consonant-only words ("hmm", "pss") and stripped acronyms still
		// take a beat when sung; floor at one but flag the weak evidence.
		return WordCount{Count: 1, Derivation: DerivationFallback}
	}

	derivation := DerivationCounted

	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") &&
		!strings.HasSuffix(w, "ye") && count > 1 {
		count--
		derivation = DerivationCorrected
	}

	if strings.HasSuffix(w, "le") && len(w) > 2 &&
		!strings.ContainsRune(vowels, rune(w[len(w)-3])) {
		count++
		derivation = DerivationCorrected
	}

	if count < 1 {
		count = 1
	}
	return WordCount{Count: count, Derivation: derivation}
}

// Line estimates the syllable count of a line of text.
// Inline bracketed annotations are removed, the text is folded to ASCII,
// and the per-word estimates are summed.
func (c *Counter) Line(line string) LineCount {
	cleaned := annotation.ReplaceAllString(line, "")
	cleaned = FoldASCII(cleaned)

	result := LineCount{Derivation: DerivationLexicon}
	for _, word := range wordPattern.FindAllString(cleaned, -1) {
		wc := c.Word(word)
		if wc.Count == 0 {
			continue
		}
		result.Count += wc.Count
		result.Words++
		if wc.Derivation < result.Derivation {
			result.Derivation = wc.Derivation
		}
	}
	if result.Words == 0 {
		result.Derivation = DerivationCounted
	}
	return result
}
