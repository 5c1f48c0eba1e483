package merger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/ryabkov82/xlsx-join/internal/config"
	"github.com/ryabkov82/xlsx-join/internal/join"
	"github.com/ryabkov82/xlsx-join/internal/joinkey"
	"github.com/ryabkov82/xlsx-join/internal/report"
	"github.com/ryabkov82/xlsx-join/internal/schema"
	"github.com/ryabkov82/xlsx-join/internal/table"
	"github.com/ryabkov82/xlsx-join/internal/xlsx"
)

const timestampLayout = "20060102_150405"

// Joiner соединяет основной файл с файлом поставщика.
type Joiner struct {
	Reader GridReader
	// Writer по умолчанию xlsx.Writer с параметрами из конфигурации.
	Writer TableWriter
	Now    func() time.Time
	Lg     *zap.Logger
}

var _ FileJoiner = (*Joiner)(nil)

// NewJoiner возвращает Joiner, работающий с XLSX файлами.
func NewJoiner(lg *zap.Logger) *Joiner {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Joiner{
		Reader: xlsx.Reader{},
		Now:    time.Now,
		Lg:     lg,
	}
}

// JoinFiles находит входные файлы, соединяет их и записывает результат.
func (j *Joiner) JoinFiles(ctx context.Context, cfg *config.Config) (*Run, error) {
	run := &Run{}

	var err error
	if run.MainFile, err = Discover(cfg.Main); err != nil {
		return run, errors.Wrap(err, "основной файл")
	}
	if run.VendorFile, err = Discover(cfg.Vendor); err != nil {
		return run, errors.Wrap(err, "файл поставщика")
	}
	j.Lg.Info("Входные файлы",
		zap.String("main", run.MainFile),
		zap.String("vendor", run.VendorFile),
	)

	detector := schema.Detector{ScanRows: cfg.HeaderScanRows}
	mainTbl, err := j.readTable(detector, "main", run.MainFile)
	if err != nil {
		return run, err
	}
	if err := ctx.Err(); err != nil {
		return run, err
	}
	vendorTbl, err := j.readTable(detector, "vendor", run.VendorFile)
	if err != nil {
		return run, err
	}
	if err := ctx.Err(); err != nil {
		return run, err
	}

	engine := join.New(j.Lg)
	if len(cfg.JoinKeys) > 0 {
		engine.Resolver = joinkey.NewResolver(cfg.JoinKeys)
	}
	res, err := engine.Join(mainTbl, vendorTbl)
	run.Result = res
	if err != nil {
		return run, errors.Wrap(err, "соединение")
	}
	if res.Empty() {
		if !cfg.AllowEmpty {
			return run, errors.Wrapf(ErrNoMatches, "строк в основной таблице %d, у поставщика %d",
				res.Stats.MainRows, res.Stats.VendorRows)
		}
		j.Lg.Warn("Совпадений не найдено, записывается пустой результат")
	}
	if err := ctx.Err(); err != nil {
		return run, err
	}

	if run.OutputFiles, err = j.write(cfg, res); err != nil {
		return run, err
	}
	if cfg.Verify {
		if err := j.verify(detector, run.OutputFiles, res); err != nil {
			return run, err
		}
	}
	return run, nil
}

func (j *Joiner) readTable(detector schema.Detector, side, path string) (*table.Table, error) {
	grid, err := j.Reader.ReadGrid(path)
	if err != nil {
		return nil, errors.Wrapf(err, "чтение %s", side)
	}
	h, ok := detector.Detect(grid)
	if !ok {
		j.Lg.Warn("Лист пуст", zap.String("table", side), zap.String("source", path))
		return &table.Table{Source: path, HeaderRow: -1}, nil
	}
	if h.Fallback {
		j.Lg.Warn("Строка заголовка не найдена, используется запасной вариант",
			zap.String("table", side),
			zap.Bool("generated", h.Generated()),
			zap.Strings("columns", h.Columns),
		)
	}
	t := schema.Normalize(path, grid, h)
	report.Describe(t).Log(j.Lg, side)
	return t, nil
}

func (j *Joiner) write(cfg *config.Config, res *join.Result) ([]string, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "создание папки результата")
	}
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	path := filepath.Join(cfg.OutputDir,
		fmt.Sprintf("%s_%s.xlsx", cfg.OutputPrefix, now().Format(timestampLayout)))
	if err := removeExistingFiles(path); err != nil {
		return nil, err
	}

	w := j.Writer
	if w == nil {
		w = &xlsx.Writer{Sheet: cfg.Sheet, MaxRowPerFile: cfg.MaxRowPerFile}
	}
	files, err := w.Write(path, res.Columns, res.Rows)
	if err != nil {
		return files, errors.Wrap(err, "запись результата")
	}
	j.Lg.Info("Результат записан",
		zap.Strings("files", files),
		zap.Int("rows", len(res.Rows)),
	)
	return files, nil
}

// verify перечитывает первый файл результата и сверяет колонки.
func (j *Joiner) verify(detector schema.Detector, files []string, res *join.Result) error {
	if len(files) == 0 {
		return errors.Wrap(ErrVerification, "нет файлов результата")
	}
	grid, err := j.Reader.ReadGrid(files[0])
	if err != nil {
		return errors.Wrap(err, "проверка результата")
	}
	h, ok := detector.Detect(grid)
	if !ok {
		return errors.Wrapf(ErrVerification, "%s: лист пуст", files[0])
	}
	t := schema.Normalize(files[0], grid, h)
	if !slices.Equal(t.ColumnOrder(), res.Columns) {
		return errors.Wrapf(ErrVerification, "%s: колонки %q, ожидались %q", files[0], t.ColumnOrder(), res.Columns)
	}
	if len(files) == 1 && t.Len() != len(res.Rows) {
		return errors.Wrapf(ErrVerification, "%s: строк %d, ожидалось %d", files[0], t.Len(), len(res.Rows))
	}
	j.Lg.Info("Проверка результата пройдена",
		zap.String("file", files[0]),
		zap.Int("records", t.Len()),
		zap.Strings("columns", t.ColumnOrder()),
	)
	return nil
}

// removeExistingFiles удаляет результат предыдущего запуска с тем же именем
// и его части.
func removeExistingFiles(path string) error {
	pattern := fmt.Sprintf("%s_part*.xlsx", strings.TrimSuffix(path, ".xlsx"))
	files, err := filepath.Glob(pattern)
	if err != nil {
		return errors.Wrap(err, "поиск файлов по шаблону")
	}
	files = append(files, path)
	for _, file := range files {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "удаление файла %s", file)
		}
	}
	return nil
}
