package model

// LyricEntry is a single row of the lyric corpus: one song with its
// full lyric text. Entries are immutable once loaded from the CSV.
type LyricEntry struct {
	// Title is the song title.
	Title string `json:"title"`

	// Artist is the performing artist.
	Artist string `json:"artist"`

	// Lyrics is the full lyric text with embedded newlines.
	Lyrics string `json:"lyrics"`
}

// DisplayName returns "Title by Artist" for logging and report output.
// Missing fields fall back to placeholders so log lines stay readable.
func (e LyricEntry) DisplayName() string {
	title := e.Title
	if title == "" {
		title = "Unknown Title"
	}
	artist := e.Artist
	if artist == "" {
		artist = "Unknown Artist"
	}
	return title + " by " + artist
}
