package haiku

import (
	"regexp"
	"strings"

	"github.com/utano/haikufinder/internal/model"
	"github.com/utano/haikufinder/internal/syllable"
)

// The haiku pattern: syllable counts for the three lines.
const (
	firstLineSyllables  = 5
	secondLineSyllables = 7
	thirdLineSyllables  = 5
)

var (
	// structuralTag matches lines that are purely a bracketed or
	// parenthesised annotation, e.g. "[Chorus]" or "(Verse 2)".
	structuralTag = regexp.MustCompile(`^\s*[\[(][^\])]*[\])]\s*$`)

	// fillerLine matches non-lyrical filler repeated across a line,
	// e.g. "la la la", "ooh ooh", "yeah, yeah!".
	fillerLine = regexp.MustCompile(`^(?:la|na|o+h|yeah|ya|uh)(?:[ ,\-!?.]+(?:la|na|o+h|yeah|ya|uh))*[ ,\-!?.]*$`)

	// newlineNormalizer collapses CRLF and lone CR to LF.
	newlineNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// Scanner detects haiku candidates in lyric text.
// Construct with New; the zero value uses no counter and will panic.
//
// Scanner has no mutable state after construction and is safe for
// concurrent use by multiple goroutines.
type Scanner struct {
	// counter estimates per-line syllable counts.
	counter *syllable.Counter

	// stripAnnotations controls whether structural tag lines are discarded.
	// This is a fixed policy set at construction, not guessed per call.
	stripAnnotations bool

	// extraNoise holds additional caller-supplied noise patterns.
	// A line matching any of them is excluded from pattern matching.
	extraNoise []*regexp.Regexp
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithCounter sets the syllable counter used for line estimates.
// Use this to supply a counter with lexicon overrides.
func WithCounter(c *syllable.Counter) Option {
	return func(s *Scanner) {
		s.counter = c
	}
}

// WithAnnotationStripping controls whether whole-line bracketed tags
// ("[Chorus]", "(Bridge)") are excluded from matching. Default is true.
func WithAnnotationStripping(strip bool) Option {
	return func(s *Scanner) {
		s.stripAnnotations = strip
	}
}

// WithNoisePatterns adds caller-supplied noise patterns. Lines matching any
// pattern are discarded before matching. Patterns are matched against the
// trimmed, lowercased line.
func WithNoisePatterns(patterns []*regexp.Regexp) Option {
	return func(s *Scanner) {
		s.extraNoise = append(s.extraNoise, patterns...)
	}
}

// New creates a Scanner with the given options.
func New(opts ...Option) *Scanner {
	s := &Scanner{stripAnnotations: true}
	for _, opt := range opts {
		opt(s)
	}
	if s.counter == nil {
		s.counter = syllable.NewCounter()
	}
	return s
}

// Scan detects haiku candidates in the entry's lyrics.
// Empty or whitespace-only lyrics yield an empty result, never an error.
// The result is deterministic: identical input always produces identical
// candidates in the same order.
func (s *Scanner) Scan(entry model.LyricEntry) []model.Haiku {
	return s.ScanLines(entry.Title, entry.Artist, s.EligibleLines(entry.Lyrics))
}

// EligibleLines splits lyrics into the trimmed, non-noise lines that
// participate in pattern matching, preserving their original order.
func (s *Scanner) EligibleLines(lyrics string) []string {
	normalized := newlineNormalizer.Replace(lyrics)

	var lines []string
	for _, raw := range strings.Split(normalized, "\n") {
		line := strings.TrimSpace(raw)
		if s.isNoise(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// isNoise reports whether a trimmed line should be excluded from matching.
func (s *Scanner) isNoise(line string) bool {
	if line == "" {
		return true
	}
	if s.stripAnnotations && structuralTag.MatchString(line) {
		return true
	}
	lower := strings.ToLower(line)
	if fillerLine.MatchString(lower) {
		return true
	}
	for _, pattern := range s.extraNoise {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

// ScanLines runs the 5-7-5 window over pre-filtered lines.
// After a match at (i, i+1, i+2), scanning resumes at i+3 so overlapping
// windows cannot report near-duplicates of the same passage. A window that
// fails the pattern advances one line.
func (s *Scanner) ScanLines(title, artist string, lines []string) []model.Haiku {
	if len(lines) < 3 {
		return nil
	}

	// Each line is counted exactly once up front; the window below only
	// compares cached counts.
	counts := make([]syllable.LineCount, len(lines))
	for i, line := range lines {
		counts[i] = s.counter.Line(line)
	}

	var found []model.Haiku
	for i := 0; i+2 < len(lines); {
		if counts[i].Count == firstLineSyllables &&
			counts[i+1].Count == secondLineSyllables &&
			counts[i+2].Count == thirdLineSyllables {
			found = append(found, model.Haiku{
				Title:      title,
				Artist:     artist,
				Lines:      [3]string{lines[i], lines[i+1], lines[i+2]},
				Syllables:  [3]int{counts[i].Count, counts[i+1].Count, counts[i+2].Count},
				Confidence: tripletConfidence(counts[i], counts[i+1], counts[i+2]),
			})
			i += 3
			continue
		}
		i++
	}
	return found
}

// tripletConfidence maps the weakest syllable derivation in the triplet
// to a candidate confidence level.
func tripletConfidence(counts ...syllable.LineCount) model.Confidence {
	weakest := syllable.DerivationLexicon
	for _, lc := range counts {
		if lc.Derivation < weakest {
			weakest = lc.Derivation
		}
	}
	switch {
	case weakest <= syllable.DerivationFallback:
		return model.ConfidenceLow
	case weakest == syllable.DerivationCorrected:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceHigh
	}
}
