package model

import "time"

// ScanReport is the outcome of scanning one lyric corpus file.
// It accumulates candidates and counters as the pipeline steps run and is
// consumed by the report writers afterwards.
//
// Design decision: We use a single struct mutated by pipeline steps rather
// than returning values between steps. This mirrors how the scan flows:
// load fills Entries, scan fills Candidates, cache fills NewlyCached.
type ScanReport struct {
	// Source is the path of the scanned CSV file.
	Source string `json:"source"`

	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// Entries are the lyric rows loaded from the source.
	// Excluded from JSON output due to size; counts are reported instead.
	Entries []LyricEntry `json:"-"`

	// EntriesScanned is the number of lyric rows examined.
	EntriesScanned int `json:"entries_scanned"`

	// LinesConsidered is the number of eligible (non-noise) lyric lines
	// that entered the pattern matcher.
	LinesConsidered int `json:"lines_considered"`

	// Candidates are the detected haikus, deduplicated by signature,
	// in corpus order.
	Candidates []Haiku `json:"candidates"`

	// NewlyCached is how many candidates were inserted into the cache
	// database by this scan. Zero when caching is disabled.
	NewlyCached int `json:"newly_cached"`

	// Duplicates is how many candidates were already present in the cache.
	Duplicates int `json:"duplicates"`

	// Error holds a failure that aborted the scan, if any.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error for serialization.
	ErrorMessage string `json:"error,omitempty"`

	// seen tracks candidate signatures for deduplication.
	seen map[string]struct{}
}

// NewScanReport creates an empty report for the given source path.
func NewScanReport(source string) *ScanReport {
	return &ScanReport{
		Source:      source,
		DateScanned: time.Now(),
		seen:        make(map[string]struct{}),
	}
}

// AddCandidate appends a haiku unless an identical one (same signature)
// was already recorded. Returns true if the candidate was added.
func (r *ScanReport) AddCandidate(h Haiku) bool {
	if r.seen == nil {
		r.seen = make(map[string]struct{})
	}
	sig := h.Signature()
	if _, ok := r.seen[sig]; ok {
		return false
	}
	r.seen[sig] = struct{}{}
	r.Candidates = append(r.Candidates, h)
	return true
}

// SetError records a scan failure on the report and keeps the string
// form in sync for serialization.
func (r *ScanReport) SetError(err error) {
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}

// Summary aggregates candidate counts by confidence level.
type Summary struct {
	// Total is the number of candidates found.
	Total int `json:"total"`

	// HighCount is the number of high-confidence candidates.
	HighCount int `json:"high"`

	// MediumCount is the number of medium-confidence candidates.
	MediumCount int `json:"medium"`

	// LowCount is the number of low-confidence candidates.
	LowCount int `json:"low"`
}

// Summarize computes the confidence summary for the report's candidates.
func (r *ScanReport) Summarize() Summary {
	s := Summary{Total: len(r.Candidates)}
	for _, h := range r.Candidates {
		switch h.Confidence {
		case ConfidenceHigh:
			s.HighCount++
		case ConfidenceMedium:
			s.MediumCount++
		case ConfidenceLow:
			s.LowCount++
		}
	}
	return s
}
