// Package syllable estimates English syllable counts from written text.
//
// The estimator is a heuristic, not a phonetic analysis: it counts maximal
// runs of vowel characters and applies a small set of corrective rules
// (silent trailing "e", consonant+"le" endings) plus a lexicon of words that
// commonly trip the heuristic. Natural-language syllabification has no simple
// closed-form solution, so counts are best-effort estimates with known false
// positives and negatives on irregular words ("colonel", "choir", loanwords).
//
// Every count carries a derivation marker describing which rules produced it,
// which callers use to rank results by confidence.
package syllable
