// Package joinkey подбирает пару колонок для соединения двух таблиц
// с независимо названными схемами.
package joinkey

import (
	"strings"

	"github.com/go-faster/errors"

	"github.com/ryabkov82/xlsx-join/internal/table"
)

// ErrNotFound ни одно правило не нашло пару колонок.
var ErrNotFound = errors.New("ключ соединения не найден")

// Preferred приоритетный список написаний ключа.
var Preferred = []string{"id", "ID", "Id", "customer_id", "customerid", "CustomerId"}

// Pair выбранные колонки основной таблицы и таблицы поставщика.
type Pair struct {
	Main   string
	Vendor string
	// Tier правило, по которому найдена пара.
	Tier Tier
}

// Tier правило подбора ключа, в порядке убывания уверенности.
type Tier int

const (
	TierExact Tier = iota + 1
	TierCaseInsensitive
	TierContainsID
	TierContainsName
	TierCommon
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierCaseInsensitive:
		return "case-insensitive"
	case TierContainsID:
		return "contains-id"
	case TierContainsName:
		return "contains-name"
	case TierCommon:
		return "common-column"
	default:
		return "unknown"
	}
}

// Strategy одно правило подбора. ok == false, если правило не дало пары.
type Strategy func(main, vendor table.Schema) (p Pair, ok bool)

// Resolver применяет правила по порядку, первое сработавшее побеждает.
type Resolver struct {
	Strategies []Strategy
}

// NewResolver возвращает Resolver со стандартной цепочкой правил.
// Пустой preferred заменяется списком Preferred.
func NewResolver(preferred []string) *Resolver {
	if len(preferred) == 0 {
		preferred = Preferred
	}
	return &Resolver{Strategies: []Strategy{
		Exact(preferred),
		CaseInsensitive(preferred),
		Contains("id", TierContainsID),
		Contains("name", TierContainsName),
		Common,
	}}
}

// Resolve возвращает пару колонок или ErrNotFound.
//
// Порядок перебора колонок задается порядком схем, поэтому результат
// детерминирован для одинаковых входных данных.
func (r *Resolver) Resolve(main, vendor table.Schema) (Pair, error) {
	for _, s := range r.Strategies {
		if p, ok := s(main, vendor); ok {
			return p, nil
		}
	}
	return Pair{}, ErrNotFound
}

// Resolve подбирает ключ стандартной цепочкой правил.
func Resolve(main, vendor table.Schema) (Pair, error) {
	return NewResolver(nil).Resolve(main, vendor)
}

// Exact первое приоритетное написание, присутствующее в обеих схемах как есть.
func Exact(preferred []string) Strategy {
	return func(main, vendor table.Schema) (Pair, bool) {
		for _, name := range preferred {
			if blank(name) {
				continue
			}
			if main.Contains(name) && vendor.Contains(name) {
				return Pair{Main: name, Vendor: name, Tier: TierExact}, true
			}
		}
		return Pair{}, false
	}
}

// CaseInsensitive для каждого приоритетного написания ищет колонку
// без учета регистра независимо в каждой схеме.
func CaseInsensitive(preferred []string) Strategy {
	return func(main, vendor table.Schema) (Pair, bool) {
		for _, name := range preferred {
			if blank(name) {
				continue
			}
			m, okMain := findFold(main, name)
			v, okVendor := findFold(vendor, name)
			if okMain && okVendor {
				return Pair{Main: m, Vendor: v, Tier: TierCaseInsensitive}, true
			}
		}
		return Pair{}, false
	}
}

// Contains первая пара колонок, имена которых содержат подстроку без учета регистра.
func Contains(substr string, tier Tier) Strategy {
	substr = strings.ToLower(substr)
	return func(main, vendor table.Schema) (Pair, bool) {
		for _, m := range main {
			if blank(m) || !strings.Contains(strings.ToLower(m), substr) {
				continue
			}
			for _, v := range vendor {
				if !blank(v) && strings.Contains(strings.ToLower(v), substr) {
					return Pair{Main: m, Vendor: v, Tier: tier}, true
				}
			}
		}
		return Pair{}, false
	}
}

// Common первая общая именованная колонка в порядке основной схемы.
func Common(main, vendor table.Schema) (Pair, bool) {
	for _, name := range main.Intersect(vendor) {
		if !blank(name) {
			return Pair{Main: name, Vendor: name, Tier: TierCommon}, true
		}
	}
	return Pair{}, false
}

func findFold(s table.Schema, name string) (string, bool) {
	for _, c := range s {
		if !blank(c) && strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

// blank колонки с пустым заголовком не могут быть ключом.
func blank(name string) bool { return strings.TrimSpace(name) == "" }
