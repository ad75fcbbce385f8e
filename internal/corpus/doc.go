// Package corpus loads lyric entries from CSV files.
//
// The expected format is a header row "title,artist,lyrics" followed by one
// row per song, with lyric text embedded in a quoted field (newlines
// included, per standard CSV escaping). Lyric fields scraped from the web
// sometimes contain HTML markup; the loader strips tags so the scanner only
// ever sees plain text.
package corpus
