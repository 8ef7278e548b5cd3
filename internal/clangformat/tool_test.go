package clangformat

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeStubFormatter кладёт шелл-скрипт во временную директорию и возвращает
// путь к нему. Скрипты играют роль clang-format в тестах инвокера.
func writeStubFormatter(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub formatter scripts require sh")
	}

	path := filepath.Join(t.TempDir(), "fake-clang-format")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("failed to write stub formatter: %v", err)
	}
	return path
}

func TestCheckArgumentOrder(t *testing.T) {
	// Стаб печатает свои аргументы по одному на строку — порядок виден
	// прямо в возвращённом блобе.
	bin := writeStubFormatter(t, `printf '%s\n' "$@"`)

	tool := &Tool{Binary: bin, Style: DefaultStyle(), StyleMode: StyleInline, Root: t.TempDir()}
	blob, err := tool.Check(context.Background(), []string{"x.ts", "y.ts"})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(blob), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 args, got %d: %v", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "-style=") {
		t.Errorf("arg 0 must be the style arg, got %q", lines[0])
	}
	if lines[1] != "-output-replacements-xml" {
		t.Errorf("arg 1 must be the report flag, got %q", lines[1])
	}
	if lines[2] != "x.ts" || lines[3] != "y.ts" {
		t.Errorf("files must come last in caller order, got %v", lines[2:])
	}
}

func TestCheckReturnsFullStdout(t *testing.T) {
	report := `<?xml version='1.0'?>
<replacements xml:space='preserve' incomplete_format='false'>
<replacement offset='5' length='3'> </replacement>
</replacements>`
	bin := writeStubFormatter(t, "cat <<'EOF'\n"+report+"\nEOF")

	tool := &Tool{Binary: bin, StyleMode: StyleInline, Style: DefaultStyle()}
	blob, err := tool.Check(context.Background(), []string{"a.ts"})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if strings.TrimSpace(string(blob)) != report {
		t.Errorf("blob mismatch:\nwant:\n%s\ngot:\n%s", report, string(blob))
	}
}

func TestCheckDrainsLargeStderr(t *testing.T) {
	// Больше 64KiB в stderr: без параллельного дренажа пайп переполняется
	// и ребёнок виснет.
	script := `i=0
while [ $i -lt 5000 ]; do
  echo "warning: noise line $i" 1>&2
  i=$((i+1))
done
echo "<?xml version='1.0'?>"
echo "<replacements></replacements>"`
	bin := writeStubFormatter(t, script)

	tool := &Tool{Binary: bin, StyleMode: StyleInline, Style: DefaultStyle()}
	blob, err := tool.Check(context.Background(), []string{"a.ts"})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !strings.Contains(string(blob), "<?xml") {
		t.Errorf("stdout lost while draining stderr: %q", string(blob))
	}
}

func TestCheckFailureCarriesStderr(t *testing.T) {
	bin := writeStubFormatter(t, `echo "error: unknown argument '-bogus'" 1>&2
exit 3`)

	tool := &Tool{Binary: bin, StyleMode: StyleInline, Style: DefaultStyle()}
	_, err := tool.Check(context.Background(), []string{"a.ts"})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "failed") {
		t.Errorf("error should mention failure: %v", err)
	}
	if !strings.Contains(err.Error(), "unknown argument") {
		t.Errorf("error should carry stderr tail: %v", err)
	}
}

func TestMissingBinary(t *testing.T) {
	tool := &Tool{Binary: "definitely-not-a-formatter-xyz", StyleMode: StyleInline, Style: DefaultStyle()}
	_, err := tool.Check(context.Background(), []string{"a.ts"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFixArgumentOrder(t *testing.T) {
	out := filepath.Join(t.TempDir(), "args.txt")
	t.Setenv("TRUEUP_TEST_ARGS_OUT", out)
	bin := writeStubFormatter(t, `echo "$@" > "$TRUEUP_TEST_ARGS_OUT"`)

	tool := &Tool{Binary: bin, StyleMode: StyleInline, Style: DefaultStyle()}
	if err := tool.Fix(context.Background(), []string{"m.ts", "n.ts"}); err != nil {
		t.Fatalf("Fix returned error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("stub did not record args: %v", err)
	}
	got := strings.TrimSpace(string(data))

	if !strings.Contains(got, "-i m.ts n.ts") {
		t.Errorf("expected '-i <files>' tail, got %q", got)
	}
	if !strings.HasPrefix(got, "-style=") {
		t.Errorf("style arg must come first, got %q", got)
	}
	if strings.Contains(got, "-output-replacements-xml") {
		t.Errorf("fix mode must not request a report, got %q", got)
	}
}
