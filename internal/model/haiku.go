package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Haiku is a detected 5-7-5 candidate: three consecutive lyric lines whose
// estimated syllable counts match the haiku pattern.
//
// The counts are heuristic estimates, not phonetic ground truth. A candidate
// is only as good as the vowel-group counter that produced it; Confidence
// records how much of the triplet leaned on fallback rules.
type Haiku struct {
	// Title is the source song title.
	Title string `json:"title"`

	// Artist is the source artist.
	Artist string `json:"artist"`

	// Lines are the three lyric lines in original order.
	Lines [3]string `json:"lines"`

	// Syllables are the estimated per-line syllable counts.
	// For a valid candidate this is always (5, 7, 5).
	Syllables [3]int `json:"syllables"`

	// Confidence indicates how much the estimator trusts the counts.
	Confidence Confidence `json:"confidence"`
}

// DisplayName returns "Title by Artist" for logging and report output.
// Missing fields fall back to placeholders so output stays readable.
func (h Haiku) DisplayName() string {
	title := h.Title
	if title == "" {
		title = "Unknown Title"
	}
	artist := h.Artist
	if artist == "" {
		artist = "Unknown Artist"
	}
	return title + " by " + artist
}

// Text returns the haiku body: the three lines joined with newlines.
func (h Haiku) Text() string {
	return strings.Join(h.Lines[:], "\n")
}

// Signature returns a stable sha256 hex digest of the haiku identity
// (normalized title, artist, and body). Two scans of the same corpus
// produce identical signatures, which is what the cache database keys on
// to make repeated scans idempotent.
func (h Haiku) Signature() string {
	d := sha256.New()
	d.Write([]byte(strings.ToLower(strings.TrimSpace(h.Title))))
	d.Write([]byte{0})
	d.Write([]byte(strings.ToLower(strings.TrimSpace(h.Artist))))
	d.Write([]byte{0})
	d.Write([]byte(strings.ToLower(strings.TrimSpace(h.Text()))))
	return hex.EncodeToString(d.Sum(nil))
}
