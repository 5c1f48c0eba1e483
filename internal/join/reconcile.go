package join

import (
	"github.com/ryabkov82/xlsx-join/internal/table"
)

// Reconcile собирает строку результата: сначала все колонки основной таблицы
// в исходном порядке, затем колонки, которые есть только у поставщика.
//
// Значения основной таблицы никогда не перезаписываются значениями поставщика.
func Reconcile(mainRow, vendorRow *table.Row, mainOrder []string, vendorOnly table.Schema) *table.Row {
	out := table.NewRow()
	for _, c := range mainOrder {
		out.Set(c, mainRow.Get(c))
	}
	for _, c := range vendorOnly {
		if out.Has(c) {
			continue
		}
		out.Set(c, vendorRow.Get(c))
	}
	return out
}

// outputColumns порядок колонок результата.
func outputColumns(mainOrder []string, vendorOnly table.Schema) []string {
	out := make([]string, 0, len(mainOrder)+len(vendorOnly))
	seen := make(map[string]struct{}, cap(out))
	for _, c := range mainOrder {
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, c := range vendorOnly {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
