package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/utano/haikufinder/internal/model"
)

// createTestReport creates a report with sample candidates for testing.
func createTestReport() *model.ScanReport {
	report := model.NewScanReport("lyrics.csv")
	report.EntriesScanned = 12
	report.LinesConsidered = 340

	report.AddCandidate(model.Haiku{
		Title:      "Night Rain",
		Artist:     "Some Band",
		Lines:      [3]string{"rain taps the window", "the city hums underneath", "sleep will not find me"},
		Syllables:  [3]int{5, 7, 5},
		Confidence: model.ConfidenceHigh,
	})
	report.AddCandidate(model.Haiku{
		Title:      "Quiet Streets",
		Artist:     "Another Band",
		Lines:      [3]string{"streets empty at dawn", "a paper cup rolls along", "nobody saw it"},
		Syllables:  [3]int{5, 7, 5},
		Confidence: model.ConfidenceLow,
	})
	report.NewlyCached = 2

	return report
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "HAIKUFINDER REPORT") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "lyrics.csv") {
			t.Error("expected output to contain corpus path")
		}
	})

	t.Run("writes confidence summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "CONFIDENCE SUMMARY") {
			t.Error("expected output to contain confidence summary")
		}
		if !strings.Contains(output, "HIGH:   1") {
			t.Error("expected output to contain high confidence count")
		}
		if !strings.Contains(output, "TOTAL:  2") {
			t.Error("expected output to contain total count")
		}
	})

	t.Run("writes candidates with attribution", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Night Rain by Some Band") {
			t.Error("expected output to contain candidate attribution")
		}
		if !strings.Contains(output, "rain taps the window") {
			t.Error("expected output to contain haiku lines")
		}
	})

	t.Run("verbose includes syllable counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "rain taps the window (5)") {
			t.Error("expected verbose output to annotate syllable counts")
		}
	})

	t.Run("hides empty candidates section by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(model.NewScanReport("empty.csv")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "CANDIDATES") {
			t.Error("empty candidates section should be hidden")
		}
	})

	t.Run("shows empty sections when configured", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithShowEmpty(true))

		if _, err := w.Write(model.NewScanReport("empty.csv")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "No haikus detected") {
			t.Error("expected empty section placeholder")
		}
	})

	t.Run("reports scan errors in the header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		report := model.NewScanReport("broken.csv")
		report.SetError(errors.New("missing lyrics column"))

		if _, err := w.Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "ERROR - missing lyrics column") {
			t.Error("expected error status in header")
		}
	})
}

// TestJSONWriter tests the machine-readable report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON with summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded struct {
			Report  model.ScanReport `json:"report"`
			Summary model.Summary    `json:"summary"`
		}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}

		if decoded.Report.Source != "lyrics.csv" {
			t.Errorf("source = %q, want %q", decoded.Report.Source, "lyrics.csv")
		}
		if len(decoded.Report.Candidates) != 2 {
			t.Errorf("candidates = %d, want 2", len(decoded.Report.Candidates))
		}
		if decoded.Summary.Total != 2 || decoded.Summary.HighCount != 1 {
			t.Errorf("unexpected summary: %+v", decoded.Summary)
		}
	})

	t.Run("pretty print indents output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}
	})

	t.Run("full writer stamps the version", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewFullJSONWriter(&buf, "1.2.3")

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded JSONReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Version != "1.2.3" {
			t.Errorf("version = %q, want %q", decoded.Version, "1.2.3")
		}
	})
}

// TestMarkdownWriter tests the markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes headings and candidate table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Haikufinder Report") {
			t.Error("expected markdown H1 header")
		}
		if !strings.Contains(output, "## Candidates") {
			t.Error("expected candidates section")
		}
		if !strings.Contains(output, "Night Rain") {
			t.Error("expected candidate title in table")
		}
	})

	t.Run("includes mermaid chart when candidates exist", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "mermaid") {
			t.Error("expected mermaid code block")
		}
	})

	t.Run("empty report omits the chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(model.NewScanReport("empty.csv")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.Contains(output, "mermaid") {
			t.Error("empty report should not include a chart")
		}
		if !strings.Contains(output, "No haikus detected.") {
			t.Error("expected empty candidates placeholder")
		}
	})
}

// TestMultiWriter tests fan-out to multiple writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var text, jsonBuf bytes.Buffer
	mw := NewMultiWriter(
		NewSimpleWriter(&text),
		NewJSONWriter(&jsonBuf),
	)

	n, err := mw.Write(createTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != text.Len()+jsonBuf.Len() {
		t.Errorf("total bytes = %d, want %d", n, text.Len()+jsonBuf.Len())
	}
	if text.Len() == 0 || jsonBuf.Len() == 0 {
		t.Error("both writers should have received output")
	}
}
