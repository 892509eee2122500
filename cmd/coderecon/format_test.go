package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"coderecon/internal/diff"
	reconerrors "coderecon/internal/errors"
	"coderecon/internal/model"
	"coderecon/internal/slice"
)

func init() {
	colorEnabled = false
}

func TestFormatResponse_JSON(t *testing.T) {
	resp := map[string]interface{}{
		"key": "value",
		"num": 42,
	}

	result, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result, `"key": "value"`) {
		t.Error("JSON output missing expected key")
	}
	if !strings.Contains(result, `"num": 42`) {
		t.Error("JSON output missing expected number")
	}
}

func TestFormatResponse_YAML(t *testing.T) {
	result, err := FormatResponse(&AnalyzeResponseCLI{ScanID: "abc", Files: 3}, FormatYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result, "scan_id: abc") {
		t.Errorf("YAML output missing scan_id: %s", result)
	}
	if !strings.Contains(result, "files: 3") {
		t.Errorf("YAML output missing files: %s", result)
	}
}

func TestFormatResponse_UnsupportedFormat(t *testing.T) {
	_, err := FormatResponse(map[string]string{"key": "value"}, "xml")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("error should mention unsupported format, got: %v", err)
	}
}

func TestFormatDiffHuman(t *testing.T) {
	out := formatDiffHuman(&diff.Result{Status: diff.StatusNoBaseline, Policy: diff.PolicyV1})
	if !strings.Contains(out, "No previous snapshot") {
		t.Errorf("no-baseline output = %q", out)
	}

	r := &diff.Result{
		Status:       diff.StatusCompared,
		Policy:       diff.PolicyV1,
		Added:        []diff.Fingerprint{{Path: "a.py", Type: "untested_function", Function: "f"}},
		Removed:      []diff.Fingerprint{},
		AddedCount:   1,
		RemovedCount: 0,
	}
	out = formatDiffHuman(r)
	for _, want := range []string{"Added: 1  Removed: 0", "a.py", "untested_function"} {
		if !strings.Contains(out, want) {
			t.Errorf("diff output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSliceHuman(t *testing.T) {
	s := &slice.Slice{
		Target:      "/r/app",
		Kind:        slice.KindDirectory,
		FileCount:   1,
		SignalCount: 1,
		Signals: []model.AggregatedSignal{
			{Type: "potential_edge_case", Path: "/r/app/a.py", Function: "f", Case: "loop", Lines: []int{3, 9}, Severity: model.SeverityMedium},
		},
	}
	out := formatSliceHuman(s)
	for _, want := range []string{"Directory: /r/app", "Signals: 1", "3,9", "medium"} {
		if !strings.Contains(out, want) {
			t.Errorf("slice output missing %q:\n%s", want, out)
		}
	}
}

func TestSeverityLabel_NoColor(t *testing.T) {
	if got := severityLabel("High"); got != "High" {
		t.Errorf("severityLabel without a terminal = %q", got)
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, reconerrors.New(reconerrors.SnapshotMissing, "no snapshot", nil))
	out := buf.String()
	if !strings.Contains(out, "SNAPSHOT_MISSING") || !strings.Contains(out, "$ coderecon analyze <path>") {
		t.Errorf("printError output = %q", out)
	}

	buf.Reset()
	printError(&buf, errors.New("plain"))
	if buf.String() != "Error: plain\n" {
		t.Errorf("plain error output = %q", buf.String())
	}
}
