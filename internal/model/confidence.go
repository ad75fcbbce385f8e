package model

// Confidence represents how much the syllable estimator trusts a detected
// haiku. The vowel-group heuristic is approximate by design; this lets
// reports and selection policies prefer candidates the counter is sure about.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Confidence int

const (
	// ConfidenceLow indicates at least one line relied on a fallback rule,
	// such as a consonant-only word counted as one syllable. These counts
	// are the most likely to be wrong.
	ConfidenceLow Confidence = iota

	// ConfidenceMedium indicates the counter applied heuristic corrections
	// (silent trailing "e", consonant+"le" endings) somewhere in the triplet.
	// These rules are usually right but have known exceptions.
	ConfidenceMedium

	// ConfidenceHigh indicates every word was either a lexicon entry or a
	// plain vowel-group count with no corrections. False positives are rare.
	ConfidenceHigh
)

// String returns a human-readable representation of the confidence level.
func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "LOW"
	case ConfidenceMedium:
		return "MEDIUM"
	case ConfidenceHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler so confidence serializes
// as its name in JSON reports rather than a bare integer.
func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
