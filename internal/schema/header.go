// Package schema определяет строку заголовка листа и превращает
// сырую сетку ячеек в таблицу именованных строк.
package schema

import (
	"strconv"
	"strings"

	"github.com/ryabkov82/xlsx-join/internal/cell"
	"github.com/ryabkov82/xlsx-join/internal/table"
)

// DefaultScanRows количество строк с начала листа, среди которых ищется заголовок.
const DefaultScanRows = 11

// Header результат поиска заголовка.
type Header struct {
	// Columns имена колонок в исходном порядке, повторы сохраняются.
	Columns []string
	// Row индекс строки заголовка, -1 если имена сгенерированы
	// и данные начинаются с первой строки.
	Row int
	// Fallback заголовок найден не основным правилом.
	Fallback bool
}

// FirstDataRow индекс первой строки данных.
func (h Header) FirstDataRow() int { return h.Row + 1 }

// Generated сообщает, что имена колонок сгенерированы (Column_N).
func (h Header) Generated() bool { return h.Row < 0 }

// Detector ищет строку заголовка.
type Detector struct {
	// ScanRows сколько первых строк просматривать, по умолчанию DefaultScanRows.
	ScanRows int
}

// Detect возвращает заголовок сетки. ok == false для пустой сетки.
//
// Заголовком считается первая строка окна, в которой не меньше двух непустых
// ячеек и хотя бы одна из них не является числом. Если такой нет, первая строка
// берется заголовком только когда все ее ячейки непустые и нечисловые, иначе
// имена генерируются по ее ширине.
func (d Detector) Detect(g table.Grid) (_ Header, ok bool) {
	if len(g) == 0 {
		return Header{Row: -1}, false
	}
	scan := d.ScanRows
	if scan <= 0 {
		scan = DefaultScanRows
	}
	for i := 0; i < min(scan, len(g)); i++ {
		names := stringify(g[i])
		nonEmpty, textual := 0, false
		for _, name := range names {
			if strings.TrimSpace(name) == "" {
				continue
			}
			nonEmpty++
			if !cell.IsDecimal(name) {
				textual = true
			}
		}
		if textual && nonEmpty >= 2 {
			return Header{Columns: names, Row: i}, true
		}
	}

	// Запасной вариант: смотрим только первую строку.
	names := stringify(g[0])
	simple := len(names) > 0
	for _, name := range names {
		if strings.TrimSpace(name) == "" || cell.IsDecimal(name) {
			simple = false
			break
		}
	}
	if simple {
		return Header{Columns: names, Row: 0, Fallback: true}, true
	}

	generic := make([]string, len(g[0]))
	for i := range generic {
		generic[i] = "Column_" + strconv.Itoa(i+1)
	}
	return Header{Columns: generic, Row: -1, Fallback: true}, true
}

// Detect ищет заголовок в окне DefaultScanRows.
func Detect(g table.Grid) (Header, bool) {
	return Detector{}.Detect(g)
}

func stringify(row []cell.Value) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = v.String()
	}
	return out
}
