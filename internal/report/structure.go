package report

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ryabkov82/xlsx-join/internal/table"
)

// SampleWidth максимальная длина значения в примере записи.
const SampleWidth = 30

// Structure краткое описание таблицы.
type Structure struct {
	Source    string
	Records   int
	HeaderRow int
	Columns   []string
	// Sample значения первой записи в порядке колонок, обрезанные до SampleWidth.
	Sample []table.Field
}

// Describe описывает структуру таблицы.
func Describe(t *table.Table) Structure {
	s := Structure{
		Source:    t.Source,
		Records:   t.Len(),
		HeaderRow: t.HeaderRow,
		Columns:   t.Schema(),
	}
	if t.Empty() {
		return s
	}
	for name, v := range t.Rows[0].All() {
		s.Sample = append(s.Sample, table.F(name, v))
	}
	return s
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s Structure) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("source", s.Source)
	enc.AddInt("records", s.Records)
	if s.HeaderRow >= 0 {
		enc.AddInt("header_row", s.HeaderRow+1)
	}
	if err := enc.AddArray("columns", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
		for _, c := range s.Columns {
			ae.AppendString(c)
		}
		return nil
	})); err != nil {
		return err
	}
	return enc.AddObject("sample", zapcore.ObjectMarshalerFunc(func(oe zapcore.ObjectEncoder) error {
		for _, f := range s.Sample {
			oe.AddString(f.Name, Truncate(f.Value.String(), SampleWidth))
		}
		return nil
	}))
}

// Log пишет описание таблицы в лог.
func (s Structure) Log(lg *zap.Logger, name string) {
	if s.Records == 0 {
		lg.Warn("Таблица не содержит записей", zap.String("table", name), zap.String("source", s.Source))
		return
	}
	lg.Info("Структура таблицы", zap.String("table", name), zap.Object("structure", s))
}

// Truncate обрезает строку до n символов, добавляя многоточие.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
