package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func createTestReport() *Report {
	return &Report{
		Summary: Summary{
			PNRs:          2,
			ExpectedRuns:  3,
			HammerEntries: 2,
			Metrics:       1,
			Unrecognized:  3,
		},
		Metadata: Metadata{
			Mode:        "pricing",
			Sources:     []string{"pnrs.txt", "metrics.log", "hammer.out"},
			Outputs:     []string{"performance.csv"},
			GeneratedAt: time.Date(2005, 1, 1, 10, 0, 0, 0, time.UTC),
			Duration:    1500 * time.Millisecond,
		},
	}
}

func TestNewTextFormatter(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewTextFormatter() returned nil")
	}
	if f.Name() != "text" {
		t.Errorf("Name() = %q, want %q", f.Name(), "text")
	}
}

func TestTextFormatter_Format(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "\n" +
		"********************\n" +
		"Data Statistics\n" +
		"********************\n" +
		"Num PNRs: 2\n" +
		"Num expected runs: 3\n" +
		"Num hammer entries: 2\n" +
		"Num metrics: 1\n" +
		"Num unrecognized metrics: 3\n"
	if got := buf.String(); got != want {
		t.Errorf("Format() =\n%q\nwant\n%q", got, want)
	}
}

func TestTextFormatter_Format_Mismatched(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := createTestReport()
	report.Metadata.Mismatched = []string{"ABCDEF", "GHIJKL"}

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.Contains(buf.String(), "Mismatched PNRs: ABCDEF, GHIJKL") {
		t.Errorf("Output missing mismatched PNRs:\n%s", buf.String())
	}
}

func TestTextFormatter_Format_Verbose(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Verbose: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"Mode: pricing",
		"Sources: pnrs.txt, metrics.log, hammer.out",
		"Outputs: performance.csv",
		"Duration: 1.5s",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q", want)
		}
	}
}

func TestTextFormatter_Format_Quiet(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "perfsum pricing: 2 PNRs, 2 hammer entries, 1 metrics, 3 unrecognized\n"
	if got := buf.String(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantErr  bool
	}{
		{"", "text", false},
		{"text", "text", false},
		{"json", "json", false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFormatter(tt.name, FormatOptions{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFormatter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && f.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", f.Name(), tt.wantName)
			}
		})
	}
}
