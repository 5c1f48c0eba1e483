// Package table содержит модель данных: сетку ячеек листа,
// упорядоченные строки, таблицы и схемы.
package table

import (
	"slices"
	"strings"

	"github.com/ryabkov82/xlsx-join/internal/cell"
)

// Grid сырая сетка ячеек листа. Строки могут иметь разную длину.
type Grid [][]cell.Value

// Table набор строк, прочитанный из одного источника.
type Table struct {
	// Source идентификатор источника (путь к файлу).
	Source string
	// Header имена колонок в том виде, в каком их выдал детектор заголовка.
	Header []string
	// HeaderRow индекс строки заголовка или -1, если имена сгенерированы.
	HeaderRow int
	Rows      []*Row
}

func (t *Table) Len() int    { return len(t.Rows) }
func (t *Table) Empty() bool { return len(t.Rows) == 0 }

// Schema имена колонок первой строки таблицы.
func (t *Table) Schema() Schema {
	if len(t.Rows) == 0 {
		return nil
	}
	return Schema(t.Rows[0].Keys())
}

// ColumnOrder исходный порядок колонок: непустые имена заголовка,
// повторы отбрасываются.
func (t *Table) ColumnOrder() []string {
	out := make([]string, 0, len(t.Header))
	seen := make(map[string]struct{}, len(t.Header))
	for _, h := range t.Header {
		if strings.TrimSpace(h) == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}

// Inconsistent возвращает индексы строк, набор колонок которых
// отличается от первой строки.
func (t *Table) Inconsistent() []int {
	if len(t.Rows) == 0 {
		return nil
	}
	first := t.Rows[0]
	var out []int
	for i, r := range t.Rows[1:] {
		if !r.SameColumns(first) {
			out = append(out, i+1)
		}
	}
	return out
}

// Schema упорядоченный набор имен колонок.
type Schema []string

func (s Schema) Contains(name string) bool {
	return slices.Contains(s, name)
}

// Minus колонки s, отсутствующие в o, в порядке s.
func (s Schema) Minus(o Schema) Schema {
	var out Schema
	for _, c := range s {
		if !o.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// Intersect колонки s, присутствующие в o, в порядке s.
func (s Schema) Intersect(o Schema) Schema {
	var out Schema
	for _, c := range s {
		if o.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}
