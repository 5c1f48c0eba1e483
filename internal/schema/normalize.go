package schema

import (
	"github.com/ryabkov82/xlsx-join/internal/table"
)

// Normalize собирает строки таблицы из сетки начиная с первой строки данных.
//
// Ячейки сопоставляются с именами колонок по позиции до меньшей из длин;
// лишние ячейки отбрасываются. Строка, все значения которой пусты, пропускается.
// При повторяющихся именах колонок побеждает последнее значение.
func Normalize(source string, g table.Grid, h Header) *table.Table {
	t := &table.Table{
		Source:    source,
		Header:    h.Columns,
		HeaderRow: h.Row,
	}
	for i := max(h.FirstDataRow(), 0); i < len(g); i++ {
		cells := g[i]
		n := min(len(h.Columns), len(cells))
		row := table.NewRow()
		hasData := false
		for j := 0; j < n; j++ {
			row.Set(h.Columns[j], cells[j])
			if !cells[j].IsBlank() {
				hasData = true
			}
		}
		if hasData {
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

// Parse определяет заголовок и собирает таблицу. Для пустой сетки
// возвращается пустая таблица и ok == false.
func (d Detector) Parse(source string, g table.Grid) (_ *table.Table, ok bool) {
	h, ok := d.Detect(g)
	if !ok {
		return &table.Table{Source: source, HeaderRow: -1}, false
	}
	return Normalize(source, g, h), true
}
