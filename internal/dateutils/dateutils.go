// Package dateutils holds the date conversions used by the importer.
package dateutils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayoutISO is the layout of every date the importer emits.
const DateLayoutISO = "2006-01-02"

// Clock returns the current time. Tests replace it to pin "today".
type Clock func() time.Time

// ToISODate formats t as yyyy-mm-dd.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// ParseBRDate converts the date part of "dd/mm/yyyy hh:mm:ss" (the time part
// is optional and ignored) to yyyy-mm-dd with zero-padded day and month.
func ParseBRDate(value string) (string, error) {
	datePart, _, _ := strings.Cut(strings.TrimSpace(value), " ")
	parts := strings.Split(datePart, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("unable to parse date %q: expected dd/mm/yyyy", value)
	}

	day, errDay := strconv.Atoi(parts[0])
	month, errMonth := strconv.Atoi(parts[1])
	year, errYear := strconv.Atoi(parts[2])
	if errDay != nil || errMonth != nil || errYear != nil {
		return "", fmt.Errorf("unable to parse date %q: non-numeric component", value)
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1 || len(parts[2]) != 4 {
		return "", fmt.Errorf("unable to parse date %q: component out of range", value)
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// BRDateOrToday is ParseBRDate that never fails: unparseable input yields
// today's date according to now.
func BRDateOrToday(value string, now Clock) string {
	if iso, err := ParseBRDate(value); err == nil {
		return iso
	}
	if now == nil {
		now = time.Now
	}
	return ToISODate(now())
}
