package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/utano/haikufinder/internal/config"
	"github.com/utano/haikufinder/internal/database"
	"github.com/utano/haikufinder/internal/log"
	"github.com/utano/haikufinder/internal/model"
	"github.com/utano/haikufinder/internal/pipeline"
	"github.com/utano/haikufinder/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <csv-file>...",
		Short: "Scan lyric corpus files for accidental haikus",
		Long: `Scan reads lyric corpus CSV files and detects accidental haikus: three
consecutive lines whose estimated syllable counts form the 5-7-5 pattern.

The CSV must have a header row with title, artist, and lyrics columns
(any order, extra columns are ignored). Structural tags like "[Chorus]"
and filler lines ("la la la") are excluded before matching.

Detected haikus are cached in a local SQLite database so the post command
can publish them later. Rescanning the same corpus is idempotent.

Examples:
  # Scan a single corpus and cache the results
  haikufinder scan lyrics.csv

  # The same, with the corpus given as a flag
  haikufinder scan --csv lyrics.csv

  # Scan several corpora, four at a time
  haikufinder scan --jobs 4 a.csv b.csv c.csv d.csv

  # Report only, without touching the cache
  haikufinder scan --no-cache lyrics.csv

  # Output a JSON report to a file
  haikufinder scan --json -o report.json lyrics.csv

Configuration file (.haikufinder) example:
  defaults:
    stripAnnotations: true
  artists:
    "The Example Band":
      syllableOverrides:
        gonna: 2`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Input flags
	cmd.Flags().StringSlice("csv", nil,
		"Corpus CSV file to scan (repeatable, combined with positional arguments)")

	// Scan behavior flags
	cmd.Flags().Int("jobs", config.DefaultJobs,
		"Number of corpus files scanned concurrently")
	cmd.Flags().Bool("no-cache", false,
		"Report candidates without writing them to the haiku cache")
	cmd.Flags().String("db-dir", "",
		"Directory for the haiku cache database (default: XDG data directory)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .haikufinder in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScanConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with credential redaction
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildScanConfig creates a Config from cobra command flags.
func buildScanConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Jobs, err = cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, err
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noCache

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load scan profiles from the config file.
	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently use an empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.ScanConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.ScanConfigs = &config.File{
			Artists: make(map[string]config.ScanProfile),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Corpus files come from the repeatable --csv flag and from positional
	// arguments; both forms can be mixed in one invocation.
	csvPaths, err := cmd.Flags().GetStringSlice("csv")
	if err != nil {
		return nil, err
	}
	cfg.CSVPaths = append(csvPaths, args...)

	return cfg, nil
}

// runScan executes the scan over all corpus files.
func runScan(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting scan",
		"files", cfg.CSVPaths,
		"jobs", cfg.Jobs,
		"saveToDB", cfg.SaveToDB,
	)

	// Open the haiku cache unless caching is disabled
	var db *database.HaikuDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open haiku cache: %w", err)
		}
		defer db.Close()
		logger.Info("haiku cache opened", "path", db.Path())
	}

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.DefaultPipeline(cfg.ScanConfigs, db, logger)
		},
		pipeline.WithConcurrency(cfg.Jobs),
		pipeline.WithBatchLogger(logger),
	)

	reports, err := bp.ProcessBatch(ctx, cfg.CSVPaths)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d corpus file(s) in %s\n",
		len(reports), time.Since(startTime).Round(time.Millisecond))

	// Reports are written in input order, after all scans complete, so a
	// single output file receives every report exactly once.
	if err := outputReports(cmd, cfg, reports); err != nil {
		return err
	}

	var failed int
	for _, scanReport := range reports {
		if scanReport.Error != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "Scan error for %s: %v\n",
				scanReport.Source, scanReport.Error)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d corpus file(s) failed to scan", failed, len(reports))
	}

	return nil
}

// outputReports writes all scan reports in the requested format.
func outputReports(cmd *cobra.Command, cfg *config.Config, reports []*model.ScanReport) error {
	output := cmd.OutOrStdout()

	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports may quote lyrics; keep the file owner-readable only.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	writer := newReportWriter(cfg, output)
	for _, scanReport := range reports {
		if _, err := writer.Write(scanReport); err != nil {
			return fmt.Errorf("failed to write report for %s: %w", scanReport.Source, err)
		}
	}
	return nil
}

// newReportWriter selects the report writer for the configured format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
