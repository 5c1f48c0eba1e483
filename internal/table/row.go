package table

import (
	"iter"

	"github.com/ryabkov82/xlsx-join/internal/cell"
)

// Field пара "колонка - значение".
type Field struct {
	Name  string
	Value cell.Value
}

// F сокращение для Field.
func F(name string, v cell.Value) Field { return Field{Name: name, Value: v} }

// Row строка таблицы: отображение имени колонки в значение
// с сохранением порядка вставки.
type Row struct {
	keys []string
	vals map[string]cell.Value
}

// NewRow создает строку из полей в заданном порядке.
func NewRow(fields ...Field) *Row {
	r := &Row{
		keys: make([]string, 0, len(fields)),
		vals: make(map[string]cell.Value, len(fields)),
	}
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Set записывает значение. Повторная запись в существующую колонку
// заменяет значение, но не меняет позицию колонки.
func (r *Row) Set(name string, v cell.Value) {
	if r.vals == nil {
		r.vals = make(map[string]cell.Value)
	}
	if _, ok := r.vals[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.vals[name] = v
}

// Lookup возвращает значение колонки и признак ее наличия.
func (r *Row) Lookup(name string) (cell.Value, bool) {
	v, ok := r.vals[name]
	return v, ok
}

// Get возвращает значение колонки или Absent.
func (r *Row) Get(name string) cell.Value {
	return r.vals[name]
}

func (r *Row) Has(name string) bool {
	_, ok := r.vals[name]
	return ok
}

func (r *Row) Len() int { return len(r.keys) }

// Keys возвращает имена колонок в порядке вставки.
func (r *Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// All перебирает колонки в порядке вставки.
func (r *Row) All() iter.Seq2[string, cell.Value] {
	return func(yield func(string, cell.Value) bool) {
		for _, k := range r.keys {
			if !yield(k, r.vals[k]) {
				return
			}
		}
	}
}

// SameColumns сообщает, что набор колонок совпадает (без учета порядка).
func (r *Row) SameColumns(o *Row) bool {
	if len(r.keys) != len(o.keys) {
		return false
	}
	for _, k := range r.keys {
		if _, ok := o.vals[k]; !ok {
			return false
		}
	}
	return true
}

// Values возвращает значения колонок в заданном порядке.
func (r *Row) Values(columns []string) []cell.Value {
	out := make([]cell.Value, len(columns))
	for i, c := range columns {
		out[i] = r.vals[c]
	}
	return out
}
