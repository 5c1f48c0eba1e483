// Package cell описывает типизированное значение ячейки листа.
package cell

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind тип значения ячейки.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value значение ячейки: отсутствует, строка, число, логическое или дата.
//
// Нулевое значение Value соответствует отсутствующей ячейке.
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
	t    time.Time
}

// Absent возвращает пустое (отсутствующее) значение.
func Absent() Value { return Value{} }

// String возвращает строковое значение.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number возвращает числовое значение.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Bool возвращает логическое значение.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Date возвращает значение-дату.
func Date(t time.Time) Value { return Value{kind: KindDate, t: t} }

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Text возвращает строку, если значение строковое.
func (v Value) Text() (string, bool) { return v.s, v.kind == KindString }

// Num возвращает число, если значение числовое.
func (v Value) Num() (float64, bool) { return v.n, v.kind == KindNumber }

// Flag возвращает логическое значение.
func (v Value) Flag() (bool, bool) { return v.b, v.kind == KindBool }

// Time возвращает дату.
func (v Value) Time() (time.Time, bool) { return v.t, v.kind == KindDate }

// String возвращает строковое представление значения.
// Отсутствующее значение представляется пустой строкой.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		if WholeDay(v.t) {
			return v.t.Format(time.DateOnly)
		}
		return v.t.Format(time.DateTime)
	default:
		return ""
	}
}

// WholeDay сообщает, что у момента нет времени суток.
func WholeDay(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

// IsBlank сообщает, что значение отсутствует или пусто после обрезки пробелов.
func (v Value) IsBlank() bool {
	return v.kind == KindAbsent || strings.TrimSpace(v.String()) == ""
}

// Equal структурное равенство: совпадают тип и значение.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindNumber:
		return v.n == o.n
	case KindBool:
		return v.b == o.b
	case KindDate:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// decimalRegex простое десятичное число, допускается экспонента.
var decimalRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParseDecimal разбирает строку как десятичное число, пробелы по краям игнорируются.
// NaN, Inf и шестнадцатеричная запись числами не считаются.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalRegex.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsDecimal сообщает, что строка является десятичным числом.
func IsDecimal(s string) bool {
	_, ok := ParseDecimal(s)
	return ok
}
