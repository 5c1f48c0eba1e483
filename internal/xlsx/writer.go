package xlsx

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"

	"github.com/ryabkov82/xlsx-join/internal/cell"
	"github.com/ryabkov82/xlsx-join/internal/table"
)

// MaxDataRows максимальное количество строк данных на листе (без заголовка).
const MaxDataRows = excelize.TotalRows - 1

const (
	DefaultSheet = "Inner Join Result"

	minColWidth = 8
	maxColWidth = 60
	dateFormat  = "yyyy-mm-dd"
	timeFormat  = "yyyy-mm-dd hh:mm:ss"
)

// Writer записывает строки в новую книгу через StreamWriter.
type Writer struct {
	// Sheet имя листа результата, по умолчанию DefaultSheet.
	Sheet string
	// MaxRowPerFile максимальное количество строк данных в одном файле,
	// 0 означает MaxDataRows. При превышении результат делится на части.
	MaxRowPerFile int
}

// Write записывает строки и возвращает список созданных файлов.
// Если строки помещаются в один файл, он сохраняется под именем path,
// иначе части получают суффикс _partN.
func (w *Writer) Write(path string, columns []string, rows []*table.Row) ([]string, error) {
	limit := w.MaxRowPerFile
	if limit <= 0 || limit > MaxDataRows {
		limit = MaxDataRows
	}
	parts := max(1, (len(rows)+limit-1)/limit)

	var files []string
	for part := 0; part < parts; part++ {
		chunk := rows[part*limit : min((part+1)*limit, len(rows))]
		name := path
		if parts > 1 {
			name = fmt.Sprintf("%s_part%d.xlsx", strings.TrimSuffix(path, ".xlsx"), part+1)
		}
		if err := w.writeFile(name, columns, chunk); err != nil {
			return files, errors.Wrapf(err, "ошибка записи файла %s", name)
		}
		files = append(files, name)
	}
	return files, nil
}

func (w *Writer) sheet() string {
	if w.Sheet != "" {
		return w.Sheet
	}
	return DefaultSheet
}

func (w *Writer) writeFile(path string, columns []string, rows []*table.Row) (rerr error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			multierr.AppendInto(&rerr, errors.Wrap(err, "ошибка закрытия файла"))
		}
	}()

	sheet := w.sheet()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return errors.Wrap(err, "ошибка переименования листа")
	}
	st, err := newStyles(f)
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return errors.Wrap(err, "ошибка создания StreamWriter")
	}
	// Ширину колонок нужно задать до первой строки.
	for i, width := range columnWidths(columns, rows) {
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return errors.Wrap(err, "ошибка установки ширины колонки")
		}
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = excelize.Cell{Value: c, StyleID: st.header}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return errors.Wrap(err, "ошибка записи заголовков")
	}

	for i, r := range rows {
		values := r.Values(columns)
		rowData := make([]interface{}, len(values))
		for j, v := range values {
			rowData[j] = st.cell(v)
		}
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "ошибка имени ячейки")
		}
		if err := sw.SetRow(ref, rowData); err != nil {
			return errors.Wrapf(err, "ошибка записи строки %d", i+2)
		}
	}

	if err := sw.Flush(); err != nil {
		return errors.Wrap(err, "ошибка финального flush")
	}
	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, "ошибка сохранения файла")
	}
	return nil
}

type styles struct {
	header int
	date   int
	time   int
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		st  styles
		err error
	)
	if st.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, errors.Wrap(err, "ошибка стиля заголовка")
	}
	dateFmt, timeFmt := dateFormat, timeFormat
	if st.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt}); err != nil {
		return st, errors.Wrap(err, "ошибка стиля даты")
	}
	if st.time, err = f.NewStyle(&excelize.Style{CustomNumFmt: &timeFmt}); err != nil {
		return st, errors.Wrap(err, "ошибка стиля времени")
	}
	return st, nil
}

// cell значение для StreamWriter. Отсутствующее значение пропускается.
func (st styles) cell(v cell.Value) interface{} {
	switch v.Kind() {
	case cell.KindString:
		s, _ := v.Text()
		return s
	case cell.KindNumber:
		n, _ := v.Num()
		return n
	case cell.KindBool:
		b, _ := v.Flag()
		return b
	case cell.KindDate:
		t, _ := v.Time()
		style := st.time
		if cell.WholeDay(t) {
			style = st.date
		}
		return excelize.Cell{Value: t, StyleID: style}
	default:
		return nil
	}
}

// columnWidths ширина колонок по самому длинному значению.
func columnWidths(columns []string, rows []*table.Row) []float64 {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = utf8.RuneCountInString(c)
	}
	for _, r := range rows {
		for i, v := range r.Values(columns) {
			widths[i] = max(widths[i], utf8.RuneCountInString(v.String()))
		}
	}
	out := make([]float64, len(widths))
	for i, w := range widths {
		out[i] = float64(min(max(w+2, minColWidth), maxColWidth))
	}
	return out
}
