package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/utano/haikufinder/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the scan report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeCandidates(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ScanReport) {
	md.H1("Haikufinder Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Corpus", "`" + report.Source + "`"},
			{"Scan Date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Entries Scanned", strconv.Itoa(report.EntriesScanned)},
			{"Lines Considered", strconv.Itoa(report.LinesConsidered)},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.ScanReport) string {
	if report.Error != nil {
		return "❌ Error - " + report.ErrorMessage
	}
	return "✅ Complete"
}

// writeSummary writes the confidence summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.ScanReport) {
	summary := report.Summarize()

	md.H2("Confidence Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Confidence", "Count"},
		Rows: [][]string{
			{"🟢 High", strconv.Itoa(summary.HighCount)},
			{"🟡 Medium", strconv.Itoa(summary.MediumCount)},
			{"🔴 Low", strconv.Itoa(summary.LowCount)},
			{"**Total**", "**" + strconv.Itoa(summary.Total) + "**"},
		},
	})
	md.PlainText("")

	if summary.Total > 0 {
		w.writePieChart(md, summary)
	}

	w.writeAlert(md, report, summary)
}

// writePieChart writes a mermaid pie chart for confidence distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Candidate Confidence Distribution"),
		piechart.WithShowData(true),
	)

	if summary.HighCount > 0 {
		chart.LabelAndIntValue("High", uint64(summary.HighCount))
	}
	if summary.MediumCount > 0 {
		chart.LabelAndIntValue("Medium", uint64(summary.MediumCount))
	}
	if summary.LowCount > 0 {
		chart.LabelAndIntValue("Low", uint64(summary.LowCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the scan outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.ScanReport, summary model.Summary) {
	switch {
	case report.Error != nil:
		md.Cautionf("The scan did not complete: %s", report.ErrorMessage)
	case summary.Total == 0:
		md.Note("No 5-7-5 candidates were found in this corpus.")
	case summary.HighCount > 0:
		md.Tip(fmt.Sprintf("%d high-confidence candidate(s) found and ready to post.", summary.HighCount))
	default:
		md.Importantf(
			"All %d candidate(s) relied on fallback syllable counts. Review before posting.",
			summary.Total,
		)
	}
	md.PlainText("")
}

// writeCandidates writes a table of detected haikus.
func (w *MarkdownWriter) writeCandidates(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Candidates")
	md.PlainText("")

	if len(report.Candidates) == 0 {
		md.PlainText("No haikus detected.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Candidates))
	for i, h := range report.Candidates {
		rows[i] = []string{
			truncateString(h.Title, 40),
			truncateString(h.Artist, 40),
			h.Lines[0] + " / " + h.Lines[1] + " / " + h.Lines[2],
			h.Confidence.String(),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Title", "Artist", "Haiku", "Confidence"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by haikufinder*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
