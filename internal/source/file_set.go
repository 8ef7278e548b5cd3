package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and provides byte offset resolution.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> последний ID
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase создаёт FileSet с заданной базовой директорией
// для относительных путей.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		files:   make([]File, 0),
		index:   make(map[string]FileID),
		baseDir: baseDir,
	}
}

// SetBaseDir устанавливает базовую директорию для относительных путей.
func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir возвращает базовую директорию. Если она не задана,
// используется текущая рабочая.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fs.baseDir
}

// Add stores a file, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	nextID, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(nextID)
	normalizedPath := normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    ContentDigest(content),
		Flags:   flags,
	})
	// Индекс всегда указывает на последнюю версию файла.
	fs.index[normalizedPath] = id
	return id
}

// Load reads a file from disk and calls Add. The bytes are stored exactly as
// read: replacement offsets reported by the formatter index the raw file, so
// BOM stripping or CRLF rewriting here would shift every span.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fs.Add(path, content, 0), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// LineStart returns the byte offset at which the given 1-based line begins.
func (f *File) LineStart(lineNum uint32) uint32 {
	return lineStartOffset(f.LineIdx, lineNum)
}

// GetLine возвращает строку с заданным номером (1-based) из файла.
// Если строка не существует, возвращает пустую строку.
// Содержимое хранится сырым, поэтому хвостовой '\r' (CRLF-файлы)
// отрезается только здесь, при показе.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || len(f.Content) == 0 {
		return ""
	}
	lineCount, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	// Контент после последнего '\n' — строка lineCount+1.
	if lineNum > lineCount+1 {
		return ""
	}
	start := lineStartOffset(f.LineIdx, lineNum)
	if start >= size {
		return ""
	}
	end := size
	if lineNum-1 < lineCount {
		end = f.LineIdx[lineNum-1]
	}

	line := f.Content[start:end]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return string(line)
}

// FormatPath форматирует путь к файлу в зависимости от режима
// (absolute, relative, basename, auto). baseDir используется только
// режимом relative.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path

	case "basename":
		return BaseName(f.Path)

	case "auto":
		// Короткие и относительные пути показываем как есть.
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return BaseName(f.Path)

	default:
		return f.Path
	}
}
