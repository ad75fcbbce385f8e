package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/utano/haikufinder/internal/model"
)

// dbFileName is the SQLite database file name inside the data directory.
const dbFileName = "haikufinder.db"

// HaikuDB provides SQLite-based storage for detected haikus and their
// posting state. It manages connection pooling and provides methods for
// inserting, selecting, and marking candidates.
type HaikuDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HaikuDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HaikuDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is
// returned; the post command uses this to tell the user to scan first.
func Open(dbDir string, opts Options) (*HaikuDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("haiku cache not found at %s (run 'haikufinder scan' first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; multiple connections buy nothing here.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HaikuDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HaikuDB) Close() error {
	return hdb.db.Close()
}

// Path returns the path of the underlying database file.
func (hdb *HaikuDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HaikuDB) createTables() error {
	schema := `
	-- Detected haiku candidates, keyed by content signature.
	-- posted_at and post_id are NULL until the candidate is used.
	CREATE TABLE IF NOT EXISTS haikus (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		signature TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		line1 TEXT NOT NULL,
		line2 TEXT NOT NULL,
		line3 TEXT NOT NULL,
		syllables1 INTEGER NOT NULL,
		syllables2 INTEGER NOT NULL,
		syllables3 INTEGER NOT NULL,
		confidence INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		posted_at DATETIME,
		post_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_haikus_artist ON haikus(artist);
	CREATE INDEX IF NOT EXISTS idx_haikus_posted ON haikus(posted_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// Record is a stored haiku with its posting state.
type Record struct {
	ID        int64
	Haiku     model.Haiku
	CreatedAt time.Time
	PostedAt  *time.Time
	PostID    string
}

// Posted reports whether the haiku has been used by a post invocation
// (dry run included).
func (r Record) Posted() bool {
	return r.PostedAt != nil
}

// InsertHaiku stores a haiku unless one with the same signature already
// exists. Returns true if a new row was inserted, false for a duplicate.
// The insert is idempotent, which makes repeated scans of the same corpus
// safe.
func (hdb *HaikuDB) InsertHaiku(ctx context.Context, h model.Haiku) (bool, error) {
	query := `
	INSERT INTO haikus (signature, title, artist, line1, line2, line3, syllables1, syllables2, syllables3, confidence)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(signature) DO NOTHING
	`

	result, err := hdb.db.ExecContext(ctx, query,
		h.Signature(),
		h.Title,
		h.Artist,
		h.Lines[0],
		h.Lines[1],
		h.Lines[2],
		h.Syllables[0],
		h.Syllables[1],
		h.Syllables[2],
		int(h.Confidence),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert haiku: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check insert result: %w", err)
	}
	return rows > 0, nil
}

// recordColumns is the column list shared by the record queries.
const recordColumns = `id, signature, title, artist, line1, line2, line3,
	syllables1, syllables2, syllables3, confidence, created_at, posted_at, post_id`

// scanRecord reads one Record from a row scanner.
func scanRecord(scan func(dest ...any) error) (Record, error) {
	var rec Record
	var signature string
	var createdAt string
	var postedAt sql.NullString
	var postID sql.NullString

	err := scan(
		&rec.ID,
		&signature,
		&rec.Haiku.Title,
		&rec.Haiku.Artist,
		&rec.Haiku.Lines[0],
		&rec.Haiku.Lines[1],
		&rec.Haiku.Lines[2],
		&rec.Haiku.Syllables[0],
		&rec.Haiku.Syllables[1],
		&rec.Haiku.Syllables[2],
		&rec.Haiku.Confidence,
		&createdAt,
		&postedAt,
		&postID,
	)
	if err != nil {
		return Record{}, err
	}

	rec.CreatedAt = parseTimestamp(createdAt)
	if postedAt.Valid && postedAt.String != "" {
		t := parseTimestamp(postedAt.String)
		rec.PostedAt = &t
	}
	if postID.Valid {
		rec.PostID = postID.String
	}
	return rec, nil
}

// PickUnposted selects one random haiku that has not been posted yet.
// Returns nil if every cached haiku has been used.
//
// Design decision: Random selection rather than oldest-first keeps a daily
// cron posting varied even when the corpus rarely changes.
func (hdb *HaikuDB) PickUnposted(ctx context.Context) (*Record, error) {
	query := `
	SELECT ` + recordColumns + `
	FROM haikus
	WHERE posted_at IS NULL
	ORDER BY RANDOM()
	LIMIT 1
	`

	row := hdb.db.QueryRowContext(ctx, query)
	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick unposted haiku: %w", err)
	}
	return &rec, nil
}

// MarkPosted records that a haiku was used, together with the API-assigned
// post ID (empty for dry runs).
func (hdb *HaikuDB) MarkPosted(ctx context.Context, signature, postID string) error {
	query := `
	UPDATE haikus
	SET posted_at = ?, post_id = ?
	WHERE signature = ?
	`

	result, err := hdb.db.ExecContext(ctx, query,
		time.Now().UTC().Format("2006-01-02 15:04:05"),
		postID,
		signature,
	)
	if err != nil {
		return fmt.Errorf("failed to mark haiku posted: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("no cached haiku with signature %s", signature)
	}
	return nil
}

// ListFilter narrows List results.
type ListFilter struct {
	// Artist restricts results to one artist (exact match) when non-empty.
	Artist string

	// OnlyUnposted restricts results to haikus not yet posted.
	OnlyUnposted bool
}

// List returns cached haikus, newest first, matching the filter.
func (hdb *HaikuDB) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	query := `
	SELECT ` + recordColumns + `
	FROM haikus
	WHERE 1=1
	`
	args := make([]any, 0, 2)

	if filter.Artist != "" {
		query += " AND artist = ?"
		args = append(args, filter.Artist)
	}
	if filter.OnlyUnposted {
		query += " AND posted_at IS NULL"
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list haikus: %w", err)
	}
	defer rows.Close()

	var results []Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan haiku record: %w", err)
		}
		results = append(results, rec)
	}

	return results, rows.Err()
}

// Stats summarizes the cache contents.
type Stats struct {
	// Total is the number of cached haikus.
	Total int

	// Posted is the number already used by a post invocation.
	Posted int

	// Unposted is the number still available for posting.
	Unposted int

	// Artists is the number of distinct artists represented.
	Artists int
}

// Stats returns aggregate counts over the cache.
func (hdb *HaikuDB) Stats(ctx context.Context) (Stats, error) {
	query := `
	SELECT
		COUNT(*),
		COUNT(posted_at),
		COUNT(DISTINCT artist)
	FROM haikus
	`

	var s Stats
	if err := hdb.db.QueryRowContext(ctx, query).Scan(&s.Total, &s.Posted, &s.Artists); err != nil {
		return Stats{}, fmt.Errorf("failed to read cache stats: %w", err)
	}
	s.Unposted = s.Total - s.Posted
	return s, nil
}

// GetBySignature retrieves a single record by its content signature.
// Returns nil if no such haiku is cached.
func (hdb *HaikuDB) GetBySignature(ctx context.Context, signature string) (*Record, error) {
	query := `
	SELECT ` + recordColumns + `
	FROM haikus
	WHERE signature = ?
	`

	row := hdb.db.QueryRowContext(ctx, query, signature)
	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get haiku: %w", err)
	}
	return &rec, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
