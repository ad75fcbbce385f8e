package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/utano/haikufinder/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no candidates are shown.
	showEmpty bool

	// verbose enables per-line syllable counts in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with syllable counts.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the scan report in human-readable format.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeCandidates(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        HAIKUFINDER REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Corpus:          %s\n", report.Source))
	sb.WriteString(fmt.Sprintf("Scan Date:       %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Entries Scanned: %d\n", report.EntriesScanned))
	sb.WriteString(fmt.Sprintf("Lines Considered: %d\n", report.LinesConsidered))

	if report.Error != nil {
		sb.WriteString(fmt.Sprintf("Status:          ERROR - %s\n", report.ErrorMessage))
	} else {
		sb.WriteString("Status:          Complete\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the confidence summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.ScanReport) {
	summary := report.Summarize()

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CONFIDENCE SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  HIGH:   %d\n", summary.HighCount))
	sb.WriteString(fmt.Sprintf("  MEDIUM: %d\n", summary.MediumCount))
	sb.WriteString(fmt.Sprintf("  LOW:    %d\n", summary.LowCount))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL:  %d candidates\n", summary.Total))

	if report.NewlyCached > 0 || report.Duplicates > 0 {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  Newly cached: %d\n", report.NewlyCached))
		sb.WriteString(fmt.Sprintf("  Duplicates:   %d\n", report.Duplicates))
	}
	sb.WriteString("\n")
}

// writeCandidates writes each detected haiku with its attribution.
func (w *SimpleWriter) writeCandidates(sb *strings.Builder, report *model.ScanReport) {
	if len(report.Candidates) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CANDIDATES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Candidates) == 0 {
		sb.WriteString("  No haikus detected\n\n")
		return
	}

	for i, h := range report.Candidates {
		sb.WriteString(fmt.Sprintf("[%d] %s (confidence: %s)\n", i+1, h.DisplayName(), h.Confidence))
		for j, line := range h.Lines {
			if w.verbose {
				sb.WriteString(fmt.Sprintf("    %s (%d)\n", line, h.Syllables[j]))
			} else {
				sb.WriteString(fmt.Sprintf("    %s\n", line))
			}
		}
		sb.WriteString("\n")
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by haikufinder\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
