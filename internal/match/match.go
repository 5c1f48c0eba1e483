// Package match реализует нечеткое сравнение значений ключа соединения.
package match

import (
	"math"
	"strings"

	"github.com/ryabkov82/xlsx-join/internal/cell"
)

// Epsilon допуск численного сравнения, покрывает только шум представления float.
const Epsilon = 0.0001

// Values сообщает, что значения ключа совпадают.
//
// Отсутствующие значения не совпадают никогда. Далее по порядку:
// структурное равенство, равенство строк без учета регистра и пробелов
// по краям, равенство чисел с точностью Epsilon.
func Values(a, b cell.Value) bool {
	if a.IsAbsent() || b.IsAbsent() {
		return false
	}
	if a.Equal(b) {
		return true
	}
	sa := strings.TrimSpace(a.String())
	sb := strings.TrimSpace(b.String())
	if strings.EqualFold(sa, sb) {
		return true
	}
	na, okA := cell.ParseDecimal(sa)
	nb, okB := cell.ParseDecimal(sb)
	if okA && okB {
		return math.Abs(na-nb) < Epsilon
	}
	return false
}
