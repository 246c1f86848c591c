package analytics

import (
	"github.com/conectamos-mx/dashboard-ova/internal/records"
)

// ProductPurchases is one product bucket of the purchases breakdown.
type ProductPurchases struct {
	Producto string  `json:"producto"`
	Total    float64 `json:"total"`
	KgNetos  float64 `json:"kg_netos"`
	Cantidad int     `json:"cantidad"`
}

// PurchasesBreakdown groups purchases by product in first-seen order and
// reports the overall total alongside.
func PurchasesBreakdown(purchases []records.Purchase) ([]ProductPurchases, float64) {
	g := newGrouper()
	var total float64
	for _, p := range purchases {
		g.add(p.Producto, p.Total, p.KgNetos, records.Number{})
		total += p.Total.Or(0)
	}
	out := make([]ProductPurchases, 0, len(g.order))
	for _, e := range g.order {
		out = append(out, ProductPurchases{
			Producto: e.key, Total: e.total, KgNetos: e.kg, Cantidad: e.count,
		})
	}
	return out, total
}
