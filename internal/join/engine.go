// Package join выполняет внутреннее соединение основной таблицы
// с таблицей поставщика по подобранному ключу.
package join

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/ryabkov82/xlsx-join/internal/cell"
	"github.com/ryabkov82/xlsx-join/internal/joinkey"
	"github.com/ryabkov82/xlsx-join/internal/match"
	"github.com/ryabkov82/xlsx-join/internal/table"
)

// ErrEmptyTable одна из таблиц не содержит строк.
var ErrEmptyTable = errors.New("таблица не содержит строк")

// Stats счетчики соединения, только для отчета.
type Stats struct {
	MainRows   int `json:"main_rows"`
	VendorRows int `json:"vendor_rows"`
	Matched    int `json:"matched"`
	NullKey    int `json:"null_key"`
}

// Unmatched строки основной таблицы с ключом, но без пары.
func (s Stats) Unmatched() int { return s.MainRows - s.Matched - s.NullKey }

// MatchRate доля совпавших строк основной таблицы в процентах.
func (s Stats) MatchRate() float64 {
	if s.MainRows == 0 {
		return 0
	}
	return float64(s.Matched) / float64(s.MainRows) * 100
}

// Result результат соединения.
type Result struct {
	Key joinkey.Pair
	// Columns порядок колонок результата.
	Columns []string
	// MainColumns исходный порядок колонок основной таблицы.
	MainColumns []string
	Common      table.Schema
	VendorOnly  table.Schema
	Rows        []*table.Row
	Stats       Stats
}

// Empty сообщает, что ни одна строка не совпала.
func (r *Result) Empty() bool { return len(r.Rows) == 0 }

// Engine выполняет соединение.
type Engine struct {
	Resolver *joinkey.Resolver
	// Match сравнение значений ключа, по умолчанию match.Values.
	Match func(a, b cell.Value) bool
	Lg    *zap.Logger
}

// New возвращает Engine со стандартными правилами подбора ключа.
func New(lg *zap.Logger) *Engine {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Engine{
		Resolver: joinkey.NewResolver(nil),
		Match:    match.Values,
		Lg:       lg,
	}
}

// Join соединяет таблицы.
//
// Каждой строке основной таблицы ставится в пару первая подходящая строка
// поставщика, остальные не рассматриваются. Строки без пары и строки с пустым
// ключом в результат не попадают.
func (e *Engine) Join(mainTbl, vendorTbl *table.Table) (*Result, error) {
	if mainTbl.Empty() {
		return nil, errors.Wrapf(ErrEmptyTable, "основная таблица %q", mainTbl.Source)
	}
	if vendorTbl.Empty() {
		return nil, errors.Wrapf(ErrEmptyTable, "таблица поставщика %q", vendorTbl.Source)
	}
	e.checkIntegrity("main", mainTbl)
	e.checkIntegrity("vendor", vendorTbl)

	mainSchema := mainTbl.Schema()
	vendorSchema := vendorTbl.Schema()

	mainOrder := mainTbl.ColumnOrder()
	if len(mainOrder) == 0 {
		e.Lg.Warn("Не удалось определить исходный порядок колонок, используется порядок первой строки")
		mainOrder = mainSchema
	}

	res := &Result{
		MainColumns: mainOrder,
		Common:      named(mainSchema.Intersect(vendorSchema)),
		VendorOnly:  named(vendorSchema.Minus(mainSchema)),
		Stats: Stats{
			MainRows:   mainTbl.Len(),
			VendorRows: vendorTbl.Len(),
		},
	}

	key, err := e.Resolver.Resolve(mainSchema, vendorSchema)
	if err != nil {
		res.Columns = outputColumns(mainOrder, res.VendorOnly)
		return res, errors.Wrapf(err, "колонки основной таблицы %q, колонки поставщика %q", mainSchema, vendorSchema)
	}
	res.Key = key
	// Ключ поставщика дублирует ключ основной таблицы.
	res.VendorOnly = res.VendorOnly.Minus(table.Schema{key.Vendor})
	res.Columns = outputColumns(mainOrder, res.VendorOnly)
	e.Lg.Info("Ключ соединения",
		zap.String("main", key.Main),
		zap.String("vendor", key.Vendor),
		zap.Stringer("tier", key.Tier),
	)

	eq := e.Match
	if eq == nil {
		eq = match.Values
	}
	for _, mainRow := range mainTbl.Rows {
		value := mainRow.Get(key.Main)
		if value.IsBlank() {
			res.Stats.NullKey++
			continue
		}
		for _, vendorRow := range vendorTbl.Rows {
			if !eq(value, vendorRow.Get(key.Vendor)) {
				continue
			}
			res.Rows = append(res.Rows, Reconcile(mainRow, vendorRow, mainOrder, res.VendorOnly))
			res.Stats.Matched++
			break
		}
	}

	e.Lg.Info("Статистика соединения",
		zap.Int("matched", res.Stats.Matched),
		zap.Int("main_rows", res.Stats.MainRows),
		zap.Int("null_key", res.Stats.NullKey),
		zap.String("match_rate", fmt.Sprintf("%.1f%%", res.Stats.MatchRate())),
	)
	return res, nil
}

// named отбрасывает колонки с пустыми именами.
func named(s table.Schema) table.Schema {
	var out table.Schema
	for _, name := range s {
		if strings.TrimSpace(name) != "" {
			out = append(out, name)
		}
	}
	return out
}

// checkIntegrity предупреждает о строках с набором колонок,
// отличным от первой строки. Не является ошибкой.
func (e *Engine) checkIntegrity(side string, t *table.Table) {
	bad := t.Inconsistent()
	if len(bad) == 0 {
		return
	}
	e.Lg.Warn("Несогласованная структура колонок",
		zap.String("table", side),
		zap.String("source", t.Source),
		zap.Int("rows", len(bad)),
		zap.Int("first_record", bad[0]+1),
	)
}
