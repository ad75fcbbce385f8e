package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/utano/haikufinder/internal/config"
	"github.com/utano/haikufinder/internal/corpus"
	"github.com/utano/haikufinder/internal/database"
	"github.com/utano/haikufinder/internal/haiku"
	"github.com/utano/haikufinder/internal/model"
	"github.com/utano/haikufinder/internal/syllable"
)

// LoadStep reads the lyric corpus named by the report's Source field.
//
// Design decision: Loading is a separate step rather than a pipeline input
// because a structural corpus problem (missing file, bad header) should flow
// through the same error reporting as any other step failure.
type LoadStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// LoadStepOption configures a LoadStep.
type LoadStepOption func(*LoadStep)

// WithLoadLogger sets a custom logger for the load step.
func WithLoadLogger(logger *slog.Logger) LoadStepOption {
	return func(s *LoadStep) {
		s.logger = logger
	}
}

// NewLoadStep creates a corpus loading step.
func NewLoadStep(opts ...LoadStepOption) *LoadStep {
	s := &LoadStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do reads the corpus file into the report.
func (s *LoadStep) Do(_ context.Context, report *model.ScanReport) error {
	entries, err := corpus.Load(report.Source)
	if err != nil {
		return err
	}

	report.Entries = entries
	s.logger.Debug("corpus loaded",
		"source", report.Source,
		"entries", len(entries),
	)
	return nil
}

// ScanStep runs the 5-7-5 detector over every loaded lyric entry.
// Per-artist scan profiles from the configuration file tune annotation
// stripping, noise patterns, and syllable overrides.
type ScanStep struct {
	// profiles supplies per-artist scan tuning. May be nil.
	profiles *config.File

	// scanners caches one configured scanner per artist so a corpus with
	// many songs by the same artist compiles its patterns once.
	scanners map[string]*haiku.Scanner

	// logger for structured logging.
	logger *slog.Logger
}

// ScanStepOption configures a ScanStep.
type ScanStepOption func(*ScanStep)

// WithScanProfiles sets the per-artist scan profiles.
func WithScanProfiles(profiles *config.File) ScanStepOption {
	return func(s *ScanStep) {
		s.profiles = profiles
	}
}

// WithScanLogger sets a custom logger for the scan step.
func WithScanLogger(logger *slog.Logger) ScanStepOption {
	return func(s *ScanStep) {
		s.logger = logger
	}
}

// NewScanStep creates a haiku detection step.
func NewScanStep(opts ...ScanStepOption) *ScanStep {
	s := &ScanStep{
		scanners: make(map[string]*haiku.Scanner),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ScanStep) Name() string {
	return "scan"
}

// Do scans all loaded entries and records candidates on the report.
func (s *ScanStep) Do(ctx context.Context, report *model.ScanReport) error {
	for _, entry := range report.Entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		scanner, err := s.scannerFor(entry.Artist)
		if err != nil {
			return err
		}

		lines := scanner.EligibleLines(entry.Lyrics)
		report.EntriesScanned++
		report.LinesConsidered += len(lines)

		for _, h := range scanner.ScanLines(entry.Title, entry.Artist, lines) {
			if report.AddCandidate(h) {
				s.logger.Debug("haiku detected",
					"song", entry.DisplayName(),
					"confidence", h.Confidence,
				)
			}
		}
	}

	s.logger.Info("scan completed",
		"source", report.Source,
		"entries", report.EntriesScanned,
		"candidates", len(report.Candidates),
	)
	return nil
}

// scannerFor returns the configured scanner for an artist, building and
// caching it on first use.
func (s *ScanStep) scannerFor(artist string) (*haiku.Scanner, error) {
	if scanner, ok := s.scanners[artist]; ok {
		return scanner, nil
	}

	var profile config.ScanProfile
	if s.profiles != nil {
		profile = s.profiles.GetProfile(artist)
	}

	opts := []haiku.Option{
		haiku.WithCounter(syllable.NewCounter(syllable.WithOverrides(profile.SyllableOverrides))),
	}
	if profile.StripAnnotations != nil {
		opts = append(opts, haiku.WithAnnotationStripping(*profile.StripAnnotations))
	}

	if len(profile.NoisePatterns) > 0 {
		patterns := make([]*regexp.Regexp, 0, len(profile.NoisePatterns))
		for _, raw := range profile.NoisePatterns {
			pattern, err := regexp.Compile(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid noise pattern %q: %w", raw, err)
			}
			patterns = append(patterns, pattern)
		}
		opts = append(opts, haiku.WithNoisePatterns(patterns))
	}

	scanner := haiku.New(opts...)
	s.scanners[artist] = scanner
	return scanner, nil
}

// CacheStep persists detected candidates into the haiku database.
// Duplicate candidates (same signature, typically from a rescan of the same
// corpus) are counted but not re-inserted, keeping scans idempotent.
type CacheStep struct {
	// db is the haiku cache database.
	db *database.HaikuDB

	// logger for structured logging.
	logger *slog.Logger
}

// CacheStepOption configures a CacheStep.
type CacheStepOption func(*CacheStep)

// WithCacheLogger sets a custom logger for the cache step.
func WithCacheLogger(logger *slog.Logger) CacheStepOption {
	return func(s *CacheStep) {
		s.logger = logger
	}
}

// NewCacheStep creates a cache persistence step backed by the given database.
func NewCacheStep(db *database.HaikuDB, opts ...CacheStepOption) *CacheStep {
	s := &CacheStep{
		db:     db,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CacheStep) Name() string {
	return "cache"
}

// Do inserts the report's candidates into the database.
func (s *CacheStep) Do(ctx context.Context, report *model.ScanReport) error {
	for _, h := range report.Candidates {
		inserted, err := s.db.InsertHaiku(ctx, h)
		if err != nil {
			return fmt.Errorf("failed to cache haiku from %s: %w", h.DisplayName(), err)
		}
		if inserted {
			report.NewlyCached++
		} else {
			report.Duplicates++
		}
	}

	s.logger.Info("cache updated",
		"source", report.Source,
		"newly_cached", report.NewlyCached,
		"duplicates", report.Duplicates,
	)
	return nil
}

// DefaultPipeline creates a pipeline with the standard scan steps: load,
// scan, and (when db is non-nil) cache.
//
// Design decision: We provide a default pipeline because:
// 1. Most scans want the full load-scan-cache sequence
// 2. It reduces boilerplate in the CLI
// 3. It ensures consistent ordering
func DefaultPipeline(profiles *config.File, db *database.HaikuDB, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	pipelineOpts := append([]Option{WithLogger(logger)}, opts...)
	p := New(pipelineOpts...)

	p.AddSteps(
		NewLoadStep(WithLoadLogger(logger)),
		NewScanStep(
			WithScanProfiles(profiles),
			WithScanLogger(logger),
		),
	)
	if db != nil {
		p.AddStep(NewCacheStep(db, WithCacheLogger(logger)))
	}

	return p
}
