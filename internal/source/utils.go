package source

import (
	"path/filepath"
)

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol переводит байтовый оффсет в позицию строка/колонка.
// Оффсет, указывающий на сам '\n', относится к СЛЕДУЮЩЕЙ строке (колонка 0).
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: считаем количество lineIdx[i] <= off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] <= off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := uint32(lo) // 0-based номер строки

	// Начало строки: байт после предыдущего '\n' (или 0 для первой строки).
	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}

	// off == позиция '\n' даёт startOff = off+1; такая позиция схлопывается
	// в начало следующей строки.
	col := uint32(0)
	if off >= startOff {
		col = off - startOff
	}
	return LineCol{Line: line + 1, Col: col}
}

// lineStartOffset возвращает байтовый оффсет начала строки (1-based).
func lineStartOffset(lineIdx []uint32, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	return lineIdx[line-2] + 1
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
