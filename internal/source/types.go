package source

// FileID uniquely identifies a source file within a FileSet.
type FileID uint32

// FileFlags encodes metadata about a source file.
type FileFlags uint8

const (
	// FileVirtual помечает файл, добавленный из памяти (тест, stdin),
	// а не прочитанный с диска.
	FileVirtual FileFlags = 1 << iota
)

// File captures metadata and content for a single source file.
// Content holds the raw on-disk bytes: replacement offsets coming from the
// formatter are byte offsets into exactly these bytes, so nothing is
// normalized away on load.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    Digest
	Flags   FileFlags
}

// LineCol represents a resolved position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 0-based byte column within the line
}
