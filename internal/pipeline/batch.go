package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/utano/haikufinder/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor handles processing of multiple corpus files.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-corpus execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each corpus file.
	// We use a factory to ensure each scan gets a fresh pipeline instance;
	// the scan step caches compiled scanners that must not be shared
	// across goroutines.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of corpus files scanned at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed scan reports.
	// Access is synchronized via mutex.
	results []*model.ScanReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent scans.
// Default is 1, which preserves strictly sequential corpus processing.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each corpus file to create a
// fresh pipeline instance. This ensures that pipeline state doesn't leak
// between scans.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     1,
		results:         make([]*model.ScanReport, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch scans multiple corpus files, up to 'concurrency' at a time.
// It respects context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each corpus file gets its own goroutine, but only 'concurrency'
// goroutines run simultaneously.
//
// Returns all reports in input order, including reports for files that
// failed to scan; those carry the failure in their Error field. The error
// return indicates whether the batch itself was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, sources []string) ([]*model.ScanReport, error) {
	bp.logger.Info("starting batch scan",
		"total_files", len(sources),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order
	bp.results = make([]*model.ScanReport, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, source := range sources {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("scanning corpus",
				"source", source,
				"index", i+1,
				"total", len(sources),
			)

			report := model.NewScanReport(source)

			pipeline := bp.pipelineFactory()
			err := pipeline.Execute(ctx, report)

			// Store result regardless of error
			// The report contains error information if the scan failed
			bp.mu.Lock()
			bp.results[i] = report
			bp.mu.Unlock()

			if err != nil {
				bp.logger.Warn("corpus scan failed",
					"source", source,
					"error", err,
				)
				// Don't return error to errgroup - we want to continue
				// with the other files. The error is recorded in the report.
				return nil
			}

			bp.logger.Info("corpus scan completed",
				"source", source,
				"candidates", len(report.Candidates),
			)

			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch scan complete",
		"total_files", len(sources),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}

// ProcessBatchWithCallback scans multiple corpus files and calls a callback
// for each completed scan. This is useful for streaming results.
//
// The callback receives the report and the index of the source in the
// original slice. The callback is called from the goroutine that completed
// the scan, so it should be thread-safe if it accesses shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	sources []string,
	callback func(report *model.ScanReport, index int),
) error {
	bp.logger.Info("starting batch scan with callback",
		"total_files", len(sources),
		"concurrency", bp.concurrency,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, source := range sources {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report := model.NewScanReport(source)
			pipeline := bp.pipelineFactory()
			_ = pipeline.Execute(ctx, report) //nolint:errcheck // Error is stored in report

			callback(report, i)

			return nil
		})
	}

	return g.Wait()
}
