// Package currency parses heterogeneous currency text into amounts.
//
// Extraction output stores money inconsistently: "$1,234.56", "1.234,56"
// (European grouping), "(123.45)" for credits, bare numbers, or nothing at
// all. Parse accepts all of it and never fails: an unparseable value becomes
// 0.0 so that accounting math keeps running and the discrepancy surfaces as a
// validation issue instead of a crash.
package currency

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const symbols = "$€£¥"

// Parse converts a raw extraction value (string, number, or nil) to a float
// amount. Unparseable input returns 0.0; flagging the field as missing is the
// normalizer's job.
func Parse(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseString(v)
	default:
		return 0
	}
}

// ParseDecimal is Parse with exact decimal output, for callers doing
// cent-tolerance arithmetic.
func ParseDecimal(value any) decimal.Decimal {
	return decimal.NewFromFloat(Parse(value))
}

func parseString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// Accounting convention: parenthesized amounts are negative.
	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if negative {
		s = strings.Trim(s, "()")
	}

	s = stripSymbols(s)
	s = normalizeSeparators(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	if negative {
		d = d.Neg()
	}
	f, _ := d.Float64()
	return f
}

func stripSymbols(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == ' ' || r == '\t' || strings.ContainsRune(symbols, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// normalizeSeparators rewrites grouping/decimal separators to a plain
// dot-decimal number. Both "1,234.56" and "1.234,56" come through OCR.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// European: 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// US: 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// Ambiguous: "1,234" is US thousands, "1,23" is a European decimal.
		// A comma exactly three digits from the end reads as thousands.
		if digitsAfter(s, lastComma) == 3 && strings.Count(s, ",") >= 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	}
	return s
}

func digitsAfter(s string, idx int) int {
	n := 0
	for _, r := range s[idx+1:] {
		if r < '0' || r > '9' {
			return -1
		}
		n++
	}
	return n
}

// IsNumeric reports whether a raw value is already a number or a string that
// parses as one without the fail-to-zero fallback kicking in.
func IsNumeric(value any) bool {
	switch v := value.(type) {
	case float64, float32, int, int64:
		return true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return false
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return true
		}
		cleaned := normalizeSeparators(stripSymbols(strings.Trim(s, "()")))
		_, err := decimal.NewFromString(cleaned)
		return err == nil
	default:
		return false
	}
}
