package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	manifest := filepath.Join(root, ManifestName)
	if err := os.WriteFile(manifest, []byte("[style]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	nested := filepath.Join(root, "src", "pkg", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	// Поиск стартует из вложенной директории и должен подняться до корня.
	got, ok, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if !ok {
		t.Fatalf("FindManifest: манифест не найден")
	}
	wantAbs, err := filepath.Abs(manifest)
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	if got != wantAbs {
		t.Errorf("FindManifest = %q, want %q", got, wantAbs)
	}
}

func TestFindManifestMissing(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := FindManifest(dir)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if ok {
		t.Errorf("FindManifest: нашёл манифест в пустой директории")
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte(""), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	nested := filepath.Join(root, "lib")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	got, ok, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	if !ok {
		t.Fatalf("FindProjectRoot: корень не найден")
	}
	wantAbs, err := filepath.Abs(root)
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	if got != wantAbs {
		t.Errorf("FindProjectRoot = %q, want %q", got, wantAbs)
	}
}
