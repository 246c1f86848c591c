package analytics

import (
	"sort"

	"github.com/conectamos-mx/dashboard-ova/internal/records"
)

// ExpenseType is one expense-type bucket of the expenses breakdown.
type ExpenseType struct {
	Tipo  string  `json:"tipo"`
	Total float64 `json:"total"`
}

// ExpensesBreakdown sums expenses overall and per expense type, descending
// by amount.
func ExpensesBreakdown(expenses []records.Expense) (total float64, byType []ExpenseType) {
	g := newGrouper()
	for _, e := range expenses {
		g.add(e.TipoEgreso, e.Importe, records.Number{}, records.Number{})
		total += e.Importe.Or(0)
	}
	sort.SliceStable(g.order, func(i, j int) bool {
		return g.order[i].total > g.order[j].total
	})
	byType = make([]ExpenseType, 0, len(g.order))
	for _, e := range g.order {
		byType = append(byType, ExpenseType{Tipo: e.key, Total: e.total})
	}
	return total, byType
}
