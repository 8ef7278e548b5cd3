package clangformat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Tool is one configured clang-format invocation target.
type Tool struct {
	Binary    string // executable name or path; empty → DefaultBinary
	Style     Style
	StyleMode StyleMode
	Root      string // project root: base for the local-config probe
}

// Check runs the formatter in reporting mode over files and returns the raw
// combined replacement report. Both output pipes are drained to EOF before
// the exit status is inspected: the report is complete when the stream ends,
// and an undrained stderr can deadlock the child on a full pipe.
func (t *Tool) Check(ctx context.Context, files []string) ([]byte, error) {
	args := append(t.styleArgs(), "-output-replacements-xml")
	args = append(args, files...)
	return t.run(ctx, args)
}

// Fix runs the formatter in in-place mode over files. No report is produced;
// the formatter rewrites the files itself.
func (t *Tool) Fix(ctx context.Context, files []string) error {
	args := append(t.styleArgs(), "-i")
	args = append(args, files...)
	_, err := t.run(ctx, args)
	return err
}

func (t *Tool) styleArgs() []string {
	return StyleArgs(t.Root, t.StyleMode, t.Style)
}

func (t *Tool) binary() string {
	if t.Binary == "" {
		return DefaultBinary
	}
	return t.Binary
}

func (t *Tool) run(ctx context.Context, args []string) ([]byte, error) {
	bin, err := exec.LookPath(t.binary())
	if err != nil {
		return nil, fmt.Errorf("formatter %q not found: %w", t.binary(), err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%s: stdout pipe: %w", t.binary(), err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%s: stderr pipe: %w", t.binary(), err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", t.binary(), err)
	}

	var outBuf, errBuf bytes.Buffer
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := io.Copy(&outBuf, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&errBuf, stderr)
		return err
	})

	drainErr := g.Wait()
	waitErr := cmd.Wait()

	if drainErr != nil {
		return nil, fmt.Errorf("%s: reading output: %w", t.binary(), drainErr)
	}
	if waitErr != nil {
		if tail := stderrTail(errBuf.Bytes()); tail != "" {
			return nil, fmt.Errorf("%s failed: %w: %s", t.binary(), waitErr, tail)
		}
		return nil, fmt.Errorf("%s failed: %w", t.binary(), waitErr)
	}
	return outBuf.Bytes(), nil
}

// stderrTail возвращает последние строки stderr для сообщения об ошибке.
func stderrTail(b []byte) string {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	const keep = 4
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	return strings.Join(lines, "; ")
}
