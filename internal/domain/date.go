package domain

import (
	"strconv"
	"strings"
)

// gedcomMonths are the three-letter month abbreviations defined by the
// GEDCOM 5.5.1 standard
var gedcomMonths = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// Date is a structured view of a GEDCOM date. Day and Month may be zero
// for partial dates (month-year or year-only). Raw always holds the text
// exactly as written, which is what gets stored and re-exported.
type Date struct {
	Day   int
	Month int
	Year  int
	Raw   string
}

// ParseDate parses the GEDCOM date forms "D MON YYYY", "MON YYYY" and
// "YYYY". The second return value reports whether the text matched one of
// the structured forms; on failure the Date still carries the raw text so
// callers can retain it verbatim.
func ParseDate(s string) (Date, bool) {
	d := Date{Raw: s}
	fields := strings.Fields(s)

	switch len(fields) {
	case 1:
		year, err := strconv.Atoi(fields[0])
		if err != nil || year <= 0 {
			return d, false
		}
		d.Year = year
		return d, true

	case 2:
		month, ok := gedcomMonths[strings.ToUpper(fields[0])]
		if !ok {
			return d, false
		}
		year, err := strconv.Atoi(fields[1])
		if err != nil || year <= 0 {
			return d, false
		}
		d.Month = month
		d.Year = year
		return d, true

	case 3:
		day, err := strconv.Atoi(fields[0])
		if err != nil || day < 1 || day > 31 {
			return d, false
		}
		month, ok := gedcomMonths[strings.ToUpper(fields[1])]
		if !ok {
			return d, false
		}
		year, err := strconv.Atoi(fields[2])
		if err != nil || year <= 0 {
			return d, false
		}
		d.Day = day
		d.Month = month
		d.Year = year
		return d, true

	default:
		return d, false
	}
}

// Partial reports whether the date is missing a day or month component
func (d Date) Partial() bool {
	return d.Day == 0 || d.Month == 0
}
