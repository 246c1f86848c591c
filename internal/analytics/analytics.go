// Package analytics computes the dashboard's aggregates as pure functions
// over normalized records. Every function is total: empty input yields
// zero-valued results, undefined divisions normalize to 0, and unparseable
// dates act as filtering exclusions, never as errors.
package analytics

import (
	"time"

	"github.com/conectamos-mx/dashboard-ova/internal/records"
)

// DateRange is an optional inclusive [Start, End] day filter. A nil bound is
// open; comparisons are by calendar day.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Empty reports whether no bound is set.
func (r DateRange) Empty() bool { return r.Start == nil && r.End == nil }

// Contains reports whether d falls inside the range. Invalid dates never
// match.
func (r DateRange) Contains(d records.Date) bool {
	if !d.Valid {
		return false
	}
	day := d.Day()
	if r.Start != nil && day.Before(dayOf(*r.Start)) {
		return false
	}
	if r.End != nil && day.After(dayOf(*r.End)) {
		return false
	}
	return true
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FilterSales retains sales within the range. With no bounds set the input
// passes through untouched, so records with unparseable dates still count in
// unfiltered totals; with any bound set, unparseable dates are excluded.
func FilterSales(sales []records.Sale, r DateRange) []records.Sale {
	if r.Empty() {
		return sales
	}
	out := make([]records.Sale, 0, len(sales))
	for _, s := range sales {
		if r.Contains(s.Fecha) {
			out = append(out, s)
		}
	}
	return out
}

// FilterPurchases retains purchases within the range.
func FilterPurchases(purchases []records.Purchase, r DateRange) []records.Purchase {
	if r.Empty() {
		return purchases
	}
	out := make([]records.Purchase, 0, len(purchases))
	for _, p := range purchases {
		if r.Contains(p.Fecha) {
			out = append(out, p)
		}
	}
	return out
}

// FilterExpenses retains expenses within the range.
func FilterExpenses(expenses []records.Expense, r DateRange) []records.Expense {
	if r.Empty() {
		return expenses
	}
	out := make([]records.Expense, 0, len(expenses))
	for _, e := range expenses {
		if r.Contains(e.Fecha) {
			out = append(out, e)
		}
	}
	return out
}

// group accumulates per-key sums in first-seen order. Rows with an empty key
// are skipped, mirroring how the source data treats blank categoricals.
type group struct {
	key   string
	total float64
	kg    float64
	cajas float64
	count int
}

type grouper struct {
	order []*group
	byKey map[string]*group
}

func newGrouper() *grouper {
	return &grouper{byKey: make(map[string]*group)}
}

func (g *grouper) add(key string, total, kg, cajas records.Number) {
	if key == "" {
		return
	}
	entry, ok := g.byKey[key]
	if !ok {
		entry = &group{key: key}
		g.byKey[key] = entry
		g.order = append(g.order, entry)
	}
	if total.Valid {
		entry.total += total.Float64
	}
	if kg.Valid {
		entry.kg += kg.Float64
	}
	if cajas.Valid {
		entry.cajas += cajas.Float64
	}
	entry.count++
}

// sumSales totals the primary amount over a slice, skipping missing values.
func sumSales(sales []records.Sale) float64 {
	var total float64
	for _, s := range sales {
		total += s.Total.Or(0)
	}
	return total
}
