package source

import (
	"os"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	// Добавляем файл первый раз
	id1 := fs.Add("test.ts", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	// Проверяем, что GetLatest возвращает правильный ID
	latestID, exists := fs.GetLatest("test.ts")
	if !exists {
		t.Error("Expected file to exist after Add")
	}
	if latestID != id1 {
		t.Errorf("Expected latest ID to be %d, got %d", id1, latestID)
	}

	// Добавляем тот же файл с новым содержимым
	id2 := fs.Add("test.ts", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	// Проверяем, что GetLatest теперь возвращает новый ID
	latestID, exists = fs.GetLatest("test.ts")
	if !exists {
		t.Error("Expected file to exist after second Add")
	}
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}

	// Проверяем, что старый файл все еще доступен
	file1 := fs.Get(id1)
	if string(file1.Content) != "hello world" {
		t.Errorf("Expected first file content to be 'hello world', got '%s'", string(file1.Content))
	}

	file2 := fs.Get(id2)
	if string(file2.Content) != "hello universe" {
		t.Errorf("Expected second file content to be 'hello universe', got '%s'", string(file2.Content))
	}

	if file1.Path != "test.ts" || file2.Path != "test.ts" {
		t.Error("Expected both files to have the same path")
	}
}

// TestAddVirtualLineIdx проверяет правильность построения LineIdx для AddVirtual
func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	// Добавляем файл "a\nb\n" - должно быть LineIdx = [1,3]
	id := fs.AddVirtual("a.ts", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3} // позиции символов \n
	if len(file.LineIdx) != len(expected) {
		t.Errorf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}

	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}

	// Проверяем флаг FileVirtual
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

// TestResolve проверяет разрешение оффсетов: строка 1-based, колонка 0-based.
func TestResolve(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.ts", []byte("const x=1;\nlet y = 2;\n"))

	// Оффсет 8 внутри первой строки
	span := Span{File: id, Start: 8, End: 9}
	start, end := fs.Resolve(span)

	if (start != LineCol{Line: 1, Col: 8}) {
		t.Errorf("Expected start {1,8}, got %+v", start)
	}
	if (end != LineCol{Line: 1, Col: 9}) {
		t.Errorf("Expected end {1,9}, got %+v", end)
	}

	// Оффсет 11 = первый байт второй строки
	span = Span{File: id, Start: 11, End: 14}
	start, _ = fs.Resolve(span)
	if (start != LineCol{Line: 2, Col: 0}) {
		t.Errorf("Expected start {2,0}, got %+v", start)
	}
}

// TestResolveNewlineBoundary: оффсет, указывающий на сам '\n',
// относится к следующей строке.
func TestResolveNewlineBoundary(t *testing.T) {
	fs := NewFileSet()

	// "ab\ncd\n": '\n' на позициях 2 и 5
	id := fs.AddVirtual("b.ts", []byte("ab\ncd\n"))

	start, _ := fs.Resolve(Span{File: id, Start: 2, End: 3})
	if start.Line != 2 {
		t.Errorf("Offset at newline should resolve to next line, got line %d", start.Line)
	}
	if start.Col != 0 {
		t.Errorf("Offset at newline should resolve to column 0, got %d", start.Col)
	}

	// Оффсет за последним '\n' — третья (пустая) строка
	start, _ = fs.Resolve(Span{File: id, Start: 6, End: 6})
	if start.Line != 3 || start.Col != 0 {
		t.Errorf("Expected {3,0} past final newline, got %+v", start)
	}
}

// TestResolveRoundTrip: LineStart(line) + col == off для любого оффсета,
// не попадающего на '\n'.
func TestResolveRoundTrip(t *testing.T) {
	fs := NewFileSet()

	content := []byte("first line\nsecond\n\nfourth line here\n")
	id := fs.AddVirtual("c.ts", content)
	file := fs.Get(id)

	for off := uint32(0); off < uint32(len(content)); off++ {
		if content[off] == '\n' {
			continue
		}
		pos, _ := fs.Resolve(Span{File: id, Start: off, End: off})
		if got := file.LineStart(pos.Line) + pos.Col; got != off {
			t.Errorf("Round trip failed for offset %d: line %d col %d -> %d",
				off, pos.Line, pos.Col, got)
		}
	}
}

// TestResolveUTF8 проверяет разрешение позиций в UTF-8 тексте:
// колонки байтовые, α занимает 2 байта.
func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()

	content := []byte("α\n") // α = 2 байта, \n = 1 байт
	id := fs.AddVirtual("test.ts", content)

	span := Span{File: id, Start: 0, End: 1}
	start, end := fs.Resolve(span)

	expectedStart := LineCol{Line: 1, Col: 0}
	expectedEnd := LineCol{Line: 1, Col: 1}

	if start != expectedStart {
		t.Errorf("Expected start %+v, got %+v", expectedStart, start)
	}

	if end != expectedEnd {
		t.Errorf("Expected end %+v, got %+v", expectedEnd, end)
	}
}

// TestGetLine проверяет выдачу строк по номеру.
func TestGetLine(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("d.ts", []byte("one\ntwo\nthree"))
	file := fs.Get(id)

	if got := file.GetLine(1); got != "one" {
		t.Errorf("GetLine(1) = %q, want %q", got, "one")
	}
	if got := file.GetLine(2); got != "two" {
		t.Errorf("GetLine(2) = %q, want %q", got, "two")
	}
	if got := file.GetLine(3); got != "three" {
		t.Errorf("GetLine(3) = %q, want %q", got, "three")
	}
	if got := file.GetLine(4); got != "" {
		t.Errorf("GetLine(4) = %q, want empty", got)
	}
	if got := file.GetLine(0); got != "" {
		t.Errorf("GetLine(0) = %q, want empty", got)
	}
}

// TestGetLineTrimsCR: CRLF-файл хранится сырым, но '\r' не показываем.
func TestGetLineTrimsCR(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("e.ts", []byte("ab\r\ncd\r\n"))
	file := fs.Get(id)

	if got := file.GetLine(1); got != "ab" {
		t.Errorf("GetLine(1) = %q, want %q", got, "ab")
	}
	if got := file.GetLine(2); got != "cd" {
		t.Errorf("GetLine(2) = %q, want %q", got, "cd")
	}

	// Сами байты при этом не тронуты: '\r' остаётся в Content
	if string(file.Content) != "ab\r\ncd\r\n" {
		t.Errorf("Content was modified: %q", string(file.Content))
	}
}

// TestEdgeCases проверяет граничные случаи
func TestEdgeCases(t *testing.T) {
	fs := NewFileSet()

	// Пустой файл
	id1 := fs.AddVirtual("empty.ts", []byte{})
	file1 := fs.Get(id1)
	if len(file1.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx for empty file, got length %d", len(file1.LineIdx))
	}

	// Файл без переводов строк
	id2 := fs.AddVirtual("no_newlines.ts", []byte("hello"))
	file2 := fs.Get(id2)
	if len(file2.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx for file without newlines, got length %d", len(file2.LineIdx))
	}

	// Файл только с переводом строки
	id3 := fs.AddVirtual("only_newline.ts", []byte("\n"))
	file3 := fs.Get(id3)
	expected := []uint32{0}
	if len(file3.LineIdx) != 1 || file3.LineIdx[0] != expected[0] {
		t.Errorf("Expected LineIdx [0] for file with only newline, got %v", file3.LineIdx)
	}
}

func TestLoad(t *testing.T) {
	fs := NewFileSet()
	// создадим временный файл
	tempFile, err := os.CreateTemp("", "testdata")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	// запишем в него "a\nb\n"
	_, err = tempFile.WriteString("a\nb\n")
	if err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	err = tempFile.Close()
	if err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	fs.Load(tempFile.Name())
	file := fs.Get(0)
	if string(file.Content) != "a\nb\n" {
		t.Errorf("Expected file content 'a\nb\n', got %q", string(file.Content))
	}
	if file.LineIdx[0] != 1 {
		t.Errorf("Expected LineIdx[0] to be 1, got %d", file.LineIdx[0])
	}
	if file.LineIdx[1] != 3 {
		t.Errorf("Expected LineIdx[1] to be 3, got %d", file.LineIdx[1])
	}
}

// TestLoadKeepsRawBytes: никакой нормализации при загрузке — оффсеты
// форматтера считаются от сырых байтов файла.
func TestLoadKeepsRawBytes(t *testing.T) {
	fs := NewFileSet()
	tempFile, err := os.CreateTemp("", "testdata")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	// BOM + CRLF — всё должно остаться как есть
	_, err = tempFile.WriteString("\xEF\xBB\xBFa\r\nb\r\n")
	if err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	if err := tempFile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	fs.Load(tempFile.Name())
	file := fs.Get(0)
	if string(file.Content) != "\xEF\xBB\xBFa\r\nb\r\n" {
		t.Errorf("Load must keep raw bytes, got %q", string(file.Content))
	}

	// LineIdx строится по сырым байтам: '\n' на позициях 5 и 8
	expected := []uint32{5, 8}
	if len(file.LineIdx) != 2 || file.LineIdx[0] != expected[0] || file.LineIdx[1] != expected[1] {
		t.Errorf("Expected LineIdx %v, got %v", expected, file.LineIdx)
	}
}
