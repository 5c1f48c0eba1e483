// Package merger связывает чтение, соединение и запись файлов в один запуск.
package merger

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/ryabkov82/xlsx-join/internal/config"
	"github.com/ryabkov82/xlsx-join/internal/join"
	"github.com/ryabkov82/xlsx-join/internal/joinkey"
	"github.com/ryabkov82/xlsx-join/internal/table"
)

var (
	// ErrInputNotFound ни один из кандидатов входного файла не найден.
	ErrInputNotFound = errors.New("входной файл не найден")
	// ErrEmptyTable одна из таблиц не содержит строк.
	ErrEmptyTable = join.ErrEmptyTable
	// ErrNoJoinKey не удалось подобрать ключ соединения.
	ErrNoJoinKey = joinkey.ErrNotFound
	// ErrNoMatches ни одна строка не совпала, результат не записан.
	ErrNoMatches = errors.New("нет совпадающих строк")
	// ErrVerification записанный файл не совпадает с результатом.
	ErrVerification = errors.New("проверка результата не пройдена")
)

// FileJoiner выполняет полный запуск по конфигурации.
type FileJoiner interface {
	JoinFiles(ctx context.Context, cfg *config.Config) (*Run, error)
}

// GridReader читает первый лист файла.
type GridReader interface {
	ReadGrid(path string) (table.Grid, error)
}

// TableWriter записывает строки и возвращает список созданных файлов.
type TableWriter interface {
	Write(path string, columns []string, rows []*table.Row) ([]string, error)
}

// Run итог запуска. Заполняется по мере выполнения, поэтому
// при ошибке содержит то, что успели сделать.
type Run struct {
	MainFile    string
	VendorFile  string
	Result      *join.Result
	OutputFiles []string
}
