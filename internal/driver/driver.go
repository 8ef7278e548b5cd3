package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"fortio.org/safecast"

	"trueup/internal/diag"
	"trueup/internal/observ"
	"trueup/internal/replacexml"
	"trueup/internal/source"
)

// DefaultMaxDiagnostics bounds the merged diagnostic bag when the caller
// does not set a cap.
const DefaultMaxDiagnostics = 100

// Formatter is the external-tool boundary. A single Check or Fix call
// covers the whole batch.
type Formatter interface {
	// Check asks for a replacement report without touching the files.
	Check(ctx context.Context, files []string) ([]byte, error)
	// Fix rewrites the files in place.
	Fix(ctx context.Context, files []string) error
}

// Options configures a verification run.
type Options struct {
	// MaxDiagnostics caps the merged bag (<=0 means DefaultMaxDiagnostics).
	MaxDiagnostics int
	// BaseDir anchors relative path display in rendered findings.
	BaseDir string
	// Timer, если задан, получает фазы format/decode/resolve/fix.
	Timer *observ.Timer
	// Observer получает события границ фаз для прогресс-UI.
	Observer PhaseObserver
}

// FileStatus is the per-file outcome, in submission order.
type FileStatus struct {
	Path       string
	Spans      int
	Reordered  bool
	Incomplete bool
}

// Clean reports whether the file needs no replacements.
func (s FileStatus) Clean() bool { return s.Spans == 0 }

// CheckResult aggregates a check run over a batch of files.
type CheckResult struct {
	// Conforming is true iff no file produced a replacement span.
	Conforming        bool
	FilesChecked      int
	FilesWithFindings int
	SpanCount         int
	PerFile           []FileStatus
	Bag               *diag.Bag
	Files             *source.FileSet
}

// FixResult captures an in-place formatting run.
type FixResult struct {
	FilesProcessed int
	FilesChanged   int
}

// RunCheck invokes the formatter once over files, decodes the replacement
// report, and resolves every replacement into a diagnostic anchored to the
// raw on-disk bytes. Reports map to files positionally. Any failure aborts
// the whole batch: no partial results.
func RunCheck(ctx context.Context, formatter Formatter, files []string, opts Options) (*CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if formatter == nil {
		return nil, errors.New("check: no formatter configured")
	}
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = DefaultMaxDiagnostics
	}

	result := &CheckResult{
		FilesChecked: len(files),
		PerFile:      make([]FileStatus, 0, len(files)),
		Bag:          diag.NewBag(maxDiag),
		Files:        source.NewFileSetWithBase(opts.BaseDir),
	}
	if len(files) == 0 {
		result.Conforming = true
		return result, nil
	}

	done := beginPhase(&opts, "format")
	blob, err := formatter.Check(ctx, files)
	if err != nil {
		done("failed")
		return nil, err
	}
	done(fmt.Sprintf("%d files", len(files)))

	done = beginPhase(&opts, "decode")
	reports, err := replacexml.DecodeBatch(blob, files)
	if err != nil {
		done("failed")
		return nil, err
	}
	done(fmt.Sprintf("%d reports", len(reports)))

	done = beginPhase(&opts, "resolve")
	for i := range reports {
		if err := ctx.Err(); err != nil {
			done("cancelled")
			return nil, err
		}
		status, err := resolveReport(result, files[i], &reports[i], maxDiag)
		if err != nil {
			done("failed")
			return nil, err
		}
		result.PerFile = append(result.PerFile, status)
		if status.Spans > 0 {
			result.FilesWithFindings++
			result.SpanCount += status.Spans
		}
	}
	result.Bag.Sort()
	result.Bag.Dedup()
	result.Conforming = result.SpanCount == 0
	done(fmt.Sprintf("%d findings", result.SpanCount))

	return result, nil
}

// resolveReport turns one file's replacement report into diagnostics.
// Конформные файлы не перечитываются с диска вовсе.
func resolveReport(result *CheckResult, path string, rep *replacexml.FileReport, maxDiag int) (FileStatus, error) {
	status := FileStatus{
		Path:       path,
		Spans:      len(rep.Replacements),
		Reordered:  rep.Reordered,
		Incomplete: rep.IncompleteFormat,
	}
	if rep.Conforming() && !rep.Reordered && !rep.IncompleteFormat {
		return status, nil
	}

	// Оффсеты отчёта индексируют сырые байты файла, поэтому читаем его
	// с диска заново, без нормализации.
	id, err := result.Files.Load(path)
	if err != nil {
		return status, fmt.Errorf("failed to read source %q: %w", path, err)
	}

	remaining := maxDiag - result.Bag.Len()
	if remaining < 0 {
		remaining = 0
	}
	fileBag := diag.NewBag(remaining)
	if rep.Reordered {
		fileBag.Add(diag.NewWarning(diag.RptUnsorted, source.Span{File: id},
			"replacement entries out of order; sorted by offset"))
	}
	if rep.IncompleteFormat {
		fileBag.Add(diag.NewWarning(diag.FmtIncompleteParse, source.Span{File: id},
			"formatter could not fully parse this file; findings may be incomplete"))
	}
	for _, r := range rep.Replacements {
		span, err := replacementSpan(id, r)
		if err != nil {
			return status, err
		}
		fileBag.Add(diag.NewError(diag.FmtReplaceSpan, span, findingMessage(r)))
	}
	result.Bag.Merge(fileBag)
	return status, nil
}

// RunFix invokes the formatter in place over files. Changed files are
// detected by content digests taken before and after the run.
func RunFix(ctx context.Context, formatter Formatter, files []string, opts Options) (*FixResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if formatter == nil {
		return nil, errors.New("fix: no formatter configured")
	}
	result := &FixResult{FilesProcessed: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	before, err := snapshotDigests(files)
	if err != nil {
		return nil, err
	}

	done := beginPhase(&opts, "fix")
	if err := formatter.Fix(ctx, files); err != nil {
		done("failed")
		return nil, err
	}

	after, err := snapshotDigests(files)
	if err != nil {
		done("failed")
		return nil, err
	}
	for i := range files {
		if before[i] != after[i] {
			result.FilesChanged++
		}
	}
	done(fmt.Sprintf("%d files rewritten", result.FilesChanged))

	return result, nil
}

func snapshotDigests(files []string) ([]source.Digest, error) {
	out := make([]source.Digest, len(files))
	for i, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read source %q: %w", path, err)
		}
		out[i] = source.ContentDigest(data)
	}
	return out, nil
}

func replacementSpan(file source.FileID, r replacexml.Replacement) (source.Span, error) {
	start, err := safecast.Conv[uint32](r.Offset)
	if err != nil {
		return source.Span{}, fmt.Errorf("replacement offset %d out of range: %w", r.Offset, err)
	}
	end, err := safecast.Conv[uint32](r.Offset + r.Length)
	if err != nil {
		return source.Span{}, fmt.Errorf("replacement end %d out of range: %w", r.Offset+r.Length, err)
	}
	return source.Span{File: file, Start: start, End: end}, nil
}

func findingMessage(r replacexml.Replacement) string {
	switch {
	case r.Length == 0:
		return fmt.Sprintf("formatting: insert %q", previewText(r.Text))
	case r.Text == "":
		return fmt.Sprintf("formatting: delete %d byte(s)", r.Length)
	default:
		return fmt.Sprintf("formatting: replace %d byte(s) with %q", r.Length, previewText(r.Text))
	}
}

// previewText обрезает длинный replacement-текст до короткого превью,
// не разрывая UTF-8 последовательности.
func previewText(text string) string {
	const limit = 32
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
