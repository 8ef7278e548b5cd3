package source

import (
	"path/filepath"
	"strings"
)

// AbsolutePath возвращает абсолютный нормализованный путь.
func AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath возвращает путь относительно baseDir. Если target лежит вне
// baseDir, откатываемся на абсолютный путь вместо "../../..".
func RelativePath(target, baseDir string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || strings.HasPrefix(rel, "..") {
		return normalizePath(absTarget), nil
	}
	return normalizePath(rel), nil
}

// BaseName возвращает имя файла без директорий.
func BaseName(path string) string {
	return filepath.Base(path)
}
