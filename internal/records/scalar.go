// Package records turns raw sheet tables into typed, canonically named
// records. Each dataset has one normalizer: rename the raw column labels,
// fail fast when an expected column is gone, filter invalid rows and derive
// the dataset's tags. Downstream aggregation never sees raw labels.
package records

import (
	"strconv"
	"strings"
	"time"
)

// Number is a numeric cell that may be missing. Aggregations skip invalid
// values in sums; whether a missing value also leaves the count is decided
// per aggregate.
type Number struct {
	Float64 float64
	Valid   bool
}

// Num builds a valid Number. Test and literal convenience.
func Num(v float64) Number { return Number{Float64: v, Valid: true} }

// Or returns the value, or def when missing.
func (n Number) Or(def float64) float64 {
	if !n.Valid {
		return def
	}
	return n.Float64
}

// Positive reports whether the value is present and strictly positive.
func (n Number) Positive() bool { return n.Valid && n.Float64 > 0 }

// Date is a date cell that may be missing or unparseable. Unparseable dates
// are never an error; they simply fail every range filter.
type Date struct {
	Time  time.Time
	Valid bool
}

// Day returns the date truncated to midnight UTC.
func (d Date) Day() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseNumber parses a numeric cell. Empty cells, dashes and non-numeric
// markers yield an invalid Number. Thousands separators and a leading
// currency sign are tolerated.
func ParseNumber(cell string) Number {
	s := strings.TrimSpace(cell)
	if s == "" || s == "-" {
		return Number{}
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}
	}
	return Number{Float64: v, Valid: true}
}

// dateLayouts covers the renderings excelize produces for date cells plus
// the ISO form used in query parameters.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1-2-06",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"01/02/06",
	"02/01/2006 15:04",
	"1/2/06 15:04",
	"2-Jan-06",
	"02-Jan-06",
	time.RFC3339,
}

// excelEpoch is day zero of the 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate parses a date cell, accepting the known textual layouts and raw
// Excel serial numbers.
func ParseDate(cell string) Date {
	s := strings.TrimSpace(cell)
	if s == "" {
		return Date{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t.UTC(), Valid: true}
		}
	}

	// Serial date: days (possibly fractional) since the Excel epoch.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial < 200000 {
		days := int(serial)
		frac := serial - float64(days)
		t := excelEpoch.AddDate(0, 0, days).Add(time.Duration(frac * 24 * float64(time.Hour)))
		return Date{Time: t, Valid: true}
	}

	return Date{}
}
