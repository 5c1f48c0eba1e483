package xlsx

import "strings"

// isDateFormat встроенные форматы дат и времени.
func isDateFormat(fmtID int) bool {
	switch fmtID {
	case 14, 15, 16, 17, 18, 19, 20, 21, 22, 27, 30, 36, 45, 46, 47, 50, 57:
		return true
	}
	return false
}

// isDateCustomFormat пользовательский формат похож на дату или время:
// содержит токены y/d/h/m/s и не содержит числовых заполнителей.
func isDateCustomFormat(format string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range format {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	s := strings.ToLower(b.String())
	if strings.ContainsAny(s, "0#?@") {
		return false
	}
	return strings.ContainsAny(s, "ydhms")
}
