package diag

import (
	"testing"

	"trueup/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	file := fs.Add("/workspace/src/sample.ts", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     FmtReplaceSpan,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
		},
		{
			Severity: SevWarning,
			Code:     FmtIncompleteParse,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
	}

	expected := "error FMT1001 src/sample.ts:1:0 first line second\n" +
		"warning FMT1002 src/sample.ts:2:0 another"

	if got := FormatShortDiagnostics(diags, fs); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortDiagnosticsEmpty(t *testing.T) {
	fs := source.NewFileSet()
	if got := FormatShortDiagnostics(nil, fs); got != "" {
		t.Fatalf("expected empty string for no diagnostics, got %q", got)
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{FmtReplaceSpan, "FMT1001"},
		{FmtIncompleteParse, "FMT1002"},
		{RptUnsorted, "RPT2001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("Code(%d).ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
