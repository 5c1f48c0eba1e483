// Package xlsx читает и записывает листы XLSX с помощью excelize.
package xlsx

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"

	"github.com/ryabkov82/xlsx-join/internal/cell"
	"github.com/ryabkov82/xlsx-join/internal/table"
)

// Reader читает первый лист книги в сетку типизированных ячеек.
type Reader struct{}

// ReadGrid открывает книгу и возвращает сетку первого листа.
// Книга без листов дает пустую сетку.
func (Reader) ReadGrid(path string) (_ table.Grid, rerr error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка открытия файла %s", path)
	}
	defer func() {
		if err := f.Close(); err != nil {
			multierr.AppendInto(&rerr, errors.Wrapf(err, "ошибка закрытия файла %s", path))
		}
	}()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, nil
	}
	sr := &sheetReader{
		f:          f,
		sheet:      sheetList[0],
		dateStyles: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		sr.date1904 = *props.Date1904
	}
	grid, err := sr.read()
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка чтения файла %s", path)
	}
	return grid, nil
}

type sheetReader struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	// dateStyles кеш: styleID -> является ли формат датой.
	dateStyles map[int]bool
}

func (sr *sheetReader) read() (_ table.Grid, rerr error) {
	rows, err := sr.f.Rows(sr.sheet)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения строк")
	}
	defer func() {
		multierr.AppendInto(&rerr, rows.Close())
	}()

	var grid table.Grid
	rowNum := 0
	for rows.Next() {
		rowNum++
		raw, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, errors.Wrapf(err, "ошибка чтения строки %d", rowNum)
		}
		cells := make([]cell.Value, len(raw))
		for i, s := range raw {
			ref, err := excelize.CoordinatesToCellName(i+1, rowNum)
			if err != nil {
				return nil, errors.Wrap(err, "ошибка имени ячейки")
			}
			cells[i] = sr.value(ref, s)
		}
		grid = append(grid, cells)
	}
	if err := rows.Error(); err != nil {
		return nil, errors.Wrap(err, "ошибка обхода строк")
	}
	return grid, nil
}

// value восстанавливает тип значения по типу ячейки и формату стиля.
func (sr *sheetReader) value(ref, raw string) cell.Value {
	if raw == "" {
		return cell.Absent()
	}
	t, err := sr.f.GetCellType(sr.sheet, ref)
	if err != nil {
		return cell.String(raw)
	}
	switch t {
	case excelize.CellTypeBool:
		return cell.Bool(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeDate:
		if ts, ok := parseISODate(raw); ok {
			return cell.Date(ts)
		}
		return cell.String(raw)
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cell.String(raw)
		}
		if sr.isDate(ref) {
			if ts, err := excelize.ExcelDateToTime(n, sr.date1904); err == nil {
				return cell.Date(ts)
			}
		}
		return cell.Number(n)
	default:
		return cell.String(raw)
	}
}

func (sr *sheetReader) isDate(ref string) bool {
	styleID, err := sr.f.GetCellStyle(sr.sheet, ref)
	if err != nil || styleID == 0 {
		return false
	}
	if v, ok := sr.dateStyles[styleID]; ok {
		return v
	}
	isDate := false
	if style, err := sr.f.GetStyle(styleID); err == nil && style != nil {
		isDate = isDateFormat(style.NumFmt)
		if style.CustomNumFmt != nil {
			isDate = isDateCustomFormat(*style.CustomNumFmt)
		}
	}
	sr.dateStyles[styleID] = isDate
	return isDate
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

func parseISODate(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
