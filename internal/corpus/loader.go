package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/utano/haikufinder/internal/model"
)

// Required CSV columns. Matching is case-insensitive and ignores
// surrounding whitespace in the header row.
const (
	columnTitle  = "title"
	columnArtist = "artist"
	columnLyrics = "lyrics"
)

// Parse errors for malformed corpus files.
// These are fatal: a corpus with the wrong shape is a user mistake that
// should stop the run with a clear message, not be papered over.
var (
	// ErrEmptyFile is returned when the CSV contains no rows at all,
	// not even a header.
	ErrEmptyFile = errors.New("corpus file is empty")

	// ErrMissingColumns is returned when the header row lacks one or more
	// of the required columns (title, artist, lyrics).
	ErrMissingColumns = errors.New("corpus header must contain title, artist, and lyrics columns")
)

// Load reads all lyric entries from the CSV file at path.
// The returned entries preserve file order. Rows with empty title or artist
// are kept with placeholder-friendly empty fields; only structural problems
// (missing file, malformed CSV, bad header) are errors.
func Load(path string) ([]model.LyricEntry, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided corpus path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	entries, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse corpus %s: %w", path, err)
	}
	return entries, nil
}

// Read parses lyric entries from CSV data.
//
// Design decision: We resolve columns by header name rather than position
// so corpora with extra columns (year, album, play counts) or reordered
// columns still load. Only the three required columns are consumed.
func Read(r io.Reader) ([]model.LyricEntry, error) {
	reader := csv.NewReader(r)
	// Lyric rows legitimately vary in field count only when malformed;
	// keep the strict default but allow leading/trailing spaces in fields.
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, err
	}

	titleIdx, artistIdx, lyricsIdx := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case columnTitle:
			titleIdx = i
		case columnArtist:
			artistIdx = i
		case columnLyrics:
			lyricsIdx = i
		}
	}
	if titleIdx < 0 || artistIdx < 0 || lyricsIdx < 0 {
		return nil, ErrMissingColumns
	}

	var entries []model.LyricEntry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		entries = append(entries, model.LyricEntry{
			Title:  strings.TrimSpace(record[titleIdx]),
			Artist: strings.TrimSpace(record[artistIdx]),
			Lyrics: StripMarkup(record[lyricsIdx]),
		})
	}
	return entries, nil
}
