// Package extract recognizes financial line items in spreadsheet rows and
// report text lines, producing a normalized dataset per reporting period.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// blankTokens are cell contents that count as "present but not a value".
// The right-to-left scan continues past them instead of stopping.
var blankTokens = map[string]struct{}{
	"":    {},
	"-":   {},
	"nil": {},
	"n/a": {},
	"nan": {},
}

var cellCleaner = strings.NewReplacer(",", "", "$", "", "(", "-", ")", "")

// ParseAmount parses a raw cell fragment into a signed amount.
// Handles:
//
//	"(1,234)" → -1234 (parentheses = negative)
//	"$1,234.56" → 1234.56
//	"-", "nil", "n/a", "" → absent
//	"1,234" → 1234
//
// The second return is false when the fragment holds no numeric value.
func ParseAmount(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(cellCleaner.Replace(raw))
	if _, blank := blankTokens[strings.ToLower(cleaned)]; blank {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// RowAmount returns the single most relevant amount in a spreadsheet row.
// Cells are scanned right to left, skipping the label cell, because source
// workbooks place the current reporting period in the rightmost column.
// Returns false when no cell in the row parses as a number; callers must not
// treat that as zero.
func RowAmount(r Row) (float64, bool) {
	for i := len(r.Cells) - 1; i >= 1; i-- {
		if v, ok := ParseAmount(r.Cells[i]); ok {
			return v, true
		}
	}
	return 0, false
}

// currencyToken matches amounts as printed in report text:
// $123,456 or (123,456) or -123,456, with optional decimals.
var currencyToken = regexp.MustCompile(`(-?)(\()?\$?\s?(\d[\d,]*(?:\.\d+)?)(\))?`)

// LineAmount extracts the last currency-shaped token from a text line,
// which in two-column report layouts is the current year value. A
// parenthesized or minus-prefixed token is negated. Returns false when the
// line carries no amount.
func LineAmount(line string) (float64, bool) {
	matches := currencyToken.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return 0, false
	}
	m := matches[len(matches)-1]
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[3], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if m[1] == "-" || (m[2] == "(" && m[4] == ")") {
		v = -v
	}
	return v, true
}
