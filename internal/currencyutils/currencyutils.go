// Package currencyutils turns the loosely formatted numeric text found in
// vendor exports into decimal values.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonNumeric = regexp.MustCompile(`[^0-9,.]`)

// StandardizeAmount reduces a Brazilian-locale amount such as "R$ 1.234,56"
// to a string decimal.NewFromString accepts ("1234.56"). Everything that is
// not a digit, comma or period is dropped, including signs and currency
// symbols.
//
// With a comma present the comma is the decimal separator and periods are
// thousands separators. Without one, a single period is the decimal point and
// several periods are thousands separators ("1.234.567").
func StandardizeAmount(amountStr string) string {
	s := nonNumeric.ReplaceAllString(amountStr, "")
	if s == "" {
		return ""
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		// Keep only the last comma as decimal separator.
		if last := strings.LastIndex(s, ","); last >= 0 {
			s = strings.ReplaceAll(s[:last], ",", "") + "." + s[last+1:]
		}
	} else if strings.Count(s, ".") > 1 {
		s = strings.ReplaceAll(s, ".", "")
	}

	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	return strings.TrimSuffix(s, ".")
}

// ParseAmount is the total numeric coercion used by the importer: any input
// that does not reduce to a number yields zero, never an error.
func ParseAmount(amountStr string) decimal.Decimal {
	s := StandardizeAmount(amountStr)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseFloat is ParseAmount for measures (quantities, dimensions) that are
// kept as float64.
func ParseFloat(s string) float64 {
	return ParseAmount(s).InexactFloat64()
}

// Sum adds up amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// FormatBRL renders an amount as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return sign + "R$ " + b.String() + "," + frac
}
