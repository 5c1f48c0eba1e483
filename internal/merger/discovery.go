package merger

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
)

// Discover возвращает первый существующий кандидат. Кандидат-папка
// заменяется самым большим .xlsx файлом в ней; папка без таких файлов
// пропускается.
func Discover(candidates []string) (string, error) {
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			return c, nil
		}
		path, err := largestWorkbook(c)
		if err != nil {
			return "", err
		}
		if path != "" {
			return path, nil
		}
	}
	return "", errors.Wrapf(ErrInputNotFound, "кандидаты %q", candidates)
}

// largestWorkbook обходит папку и возвращает самый большой .xlsx файл.
// При равных размерах побеждает первый в порядке обхода.
func largestWorkbook(dir string) (string, error) {
	var (
		found   string
		maxSize int64 = -1
	)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !isWorkbook(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > maxSize {
			maxSize = info.Size()
			found = path
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrapf(err, "обход папки %s", dir)
	}
	return found, nil
}

func isWorkbook(path string) bool {
	name := filepath.Base(path)
	// ~$ временные файлы блокировки Excel.
	return strings.EqualFold(filepath.Ext(name), ".xlsx") && !strings.HasPrefix(name, "~$")
}
