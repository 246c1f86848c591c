package analytics

import (
	"sort"
	"strings"

	"github.com/conectamos-mx/dashboard-ova/internal/records"
)

// TypeBreakdown is one payment-type bucket of the by-type split.
type TypeBreakdown struct {
	Tipo     string  `json:"tipo"`
	Total    float64 `json:"total"`
	Cantidad int     `json:"cantidad"`
}

// SalesByType splits sales by payment type (CONTADO/CREDITO), in first-seen
// order.
func SalesByType(sales []records.Sale) []TypeBreakdown {
	g := newGrouper()
	for _, s := range sales {
		g.add(s.Tipo, s.Total, records.Number{}, records.Number{})
	}
	out := make([]TypeBreakdown, 0, len(g.order))
	for _, e := range g.order {
		out = append(out, TypeBreakdown{Tipo: e.key, Total: e.total, Cantidad: e.count})
	}
	return out
}

// SegmentBreakdown is one business-segment bucket of the by-product split.
type SegmentBreakdown struct {
	Producto string  `json:"producto"`
	Total    float64 `json:"total"`
	KgNetos  float64 `json:"kg_netos"`
	Cantidad int     `json:"cantidad"`
}

// SalesBySegment groups sales by business segment, descending by total.
func SalesBySegment(sales []records.Sale) []SegmentBreakdown {
	g := newGrouper()
	for _, s := range sales {
		g.add(s.Segmento, s.Total, s.KgNetos, records.Number{})
	}
	sort.SliceStable(g.order, func(i, j int) bool {
		return g.order[i].total > g.order[j].total
	})
	out := make([]SegmentBreakdown, 0, len(g.order))
	for _, e := range g.order {
		out = append(out, SegmentBreakdown{
			Producto: e.key, Total: e.total, KgNetos: e.kg, Cantidad: e.count,
		})
	}
	return out
}

// TopProduct is one row of the top-products ranking.
type TopProduct struct {
	Producto       string  `json:"producto"`
	Total          float64 `json:"total"`
	KgNetos        float64 `json:"kg_netos"`
	Cajas          float64 `json:"cajas"`
	CantidadVentas int     `json:"cantidad_ventas"`
}

// umbrellaExclusion drops the house umbrella category from product rankings.
const umbrellaExclusion = "COVA"

// productDisplayName builds the ranking label from segment and product,
// cleaning the HUEVO_CENTRAL alias and avoiding "HUEVO (HUEVO)" repeats.
func productDisplayName(s records.Sale) string {
	seg := strings.ToUpper(strings.TrimSpace(s.Segmento))
	prod := strings.ToUpper(strings.TrimSpace(s.Producto))

	seg = strings.ReplaceAll(seg, "HUEVO_CENTRAL", "HUEVO")

	switch {
	case seg != "" && prod != "":
		if seg == prod {
			return seg
		}
		return seg + " (" + prod + ")"
	case seg != "":
		return seg
	case prod != "":
		return prod
	}
	return "SIN NOMBRE"
}

// TopProducts ranks products by total sales, descending, truncated to limit.
// Ties keep first-seen order; limit <= 0 yields an empty ranking; a limit
// beyond the number of distinct products returns them all.
func TopProducts(sales []records.Sale, limit int) []TopProduct {
	g := newGrouper()
	for _, s := range sales {
		if strings.Contains(strings.ToUpper(s.Producto), umbrellaExclusion) {
			continue
		}
		g.add(productDisplayName(s), s.Total, s.KgNetos, s.Cajas)
	}
	sort.SliceStable(g.order, func(i, j int) bool {
		return g.order[i].total > g.order[j].total
	})

	if limit < 0 {
		limit = 0
	}
	if limit > len(g.order) {
		limit = len(g.order)
	}
	out := make([]TopProduct, 0, limit)
	for _, e := range g.order[:limit] {
		out = append(out, TopProduct{
			Producto: e.key, Total: e.total, KgNetos: e.kg,
			Cajas: e.cajas, CantidadVentas: e.count,
		})
	}
	return out
}

// TicketBucket is one fixed range of the ticket-size distribution.
type TicketBucket struct {
	Rango    string  `json:"rango"`
	Total    float64 `json:"total"`
	Cantidad int     `json:"cantidad"`
}

// ticketRanges are the four half-open amount ranges, [low, high).
var ticketRanges = []struct {
	label string
	low   float64
	high  float64
}{
	{"Micro ($0-500)", 0, 500},
	{"Pequeño ($501-2k)", 500, 2000},
	{"Mediano ($2k-5k)", 2000, 5000},
	{"Grande (>$5k)", 5000, 0},
}

// TicketDistribution histograms sales by ticket amount. All four labels are
// always emitted, empty buckets included; sales with a missing amount fall
// in no bucket.
func TicketDistribution(sales []records.Sale) []TicketBucket {
	out := make([]TicketBucket, len(ticketRanges))
	for i, r := range ticketRanges {
		out[i] = TicketBucket{Rango: r.label}
	}
	for _, s := range sales {
		if !s.Total.Valid {
			continue
		}
		v := s.Total.Float64
		for i, r := range ticketRanges {
			if v < r.low {
				continue
			}
			if r.high != 0 && v >= r.high {
				continue
			}
			out[i].Total += v
			out[i].Cantidad++
			break
		}
	}
	return out
}

// Series is a label-aligned value/count triple for chart endpoints.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Counts []int     `json:"counts"`
}

// DailyTrend groups sales by calendar day, ascending. Sales with an
// unparseable date are dropped.
func DailyTrend(sales []records.Sale) Series {
	g := newGrouper()
	for _, s := range sales {
		if !s.Fecha.Valid {
			continue
		}
		g.add(s.Fecha.Day().Format("2006-01-02"), s.Total, records.Number{}, records.Number{})
	}
	sort.SliceStable(g.order, func(i, j int) bool {
		return g.order[i].key < g.order[j].key
	})
	return seriesFromGroups(g.order)
}

// weekdayNames indexes localized labels by Monday-first weekday number.
var weekdayNames = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

// mondayIndex maps time.Weekday to Monday=0 … Sunday=6.
func mondayIndex(d records.Date) int {
	return (int(d.Time.Weekday()) + 6) % 7
}

// WeekdayBreakdown groups sales by day of week, Monday first. Only weekdays
// with at least one sale appear.
func WeekdayBreakdown(sales []records.Sale) Series {
	type wg struct {
		total float64
		count int
		seen  bool
	}
	var days [7]wg
	for _, s := range sales {
		if !s.Fecha.Valid {
			continue
		}
		i := mondayIndex(s.Fecha)
		days[i].total += s.Total.Or(0)
		days[i].count++
		days[i].seen = true
	}

	series := Series{Labels: []string{}, Values: []float64{}, Counts: []int{}}
	for i, d := range days {
		if !d.seen {
			continue
		}
		series.Labels = append(series.Labels, weekdayNames[i])
		series.Values = append(series.Values, d.total)
		series.Counts = append(series.Counts, d.count)
	}
	return series
}

// ClientRank is one row of the top-clients ranking.
type ClientRank struct {
	Cliente string  `json:"cliente"`
	Total   float64 `json:"total"`
	Compras int     `json:"compras"`
}

// TopClients ranks clients by purchase volume, descending, truncated to
// limit.
func TopClients(sales []records.Sale, limit int) []ClientRank {
	g := newGrouper()
	for _, s := range sales {
		g.add(s.Cliente, s.Total, records.Number{}, records.Number{})
	}
	sort.SliceStable(g.order, func(i, j int) bool {
		return g.order[i].total > g.order[j].total
	})
	if limit < 0 {
		limit = 0
	}
	if limit > len(g.order) {
		limit = len(g.order)
	}
	out := make([]ClientRank, 0, limit)
	for _, e := range g.order[:limit] {
		out = append(out, ClientRank{Cliente: e.key, Total: e.total, Compras: e.count})
	}
	return out
}

// OperatorRank is one row of the by-operator split.
type OperatorRank struct {
	Operador string  `json:"operador"`
	Total    float64 `json:"total"`
	Cantidad int     `json:"cantidad"`
}

// SalesByOperator groups sales by operator, descending by total. Sales with
// no operator land in a "Sin asignar" bucket.
func SalesByOperator(sales []records.Sale) []OperatorRank {
	g := newGrouper()
	for _, s := range sales {
		op := s.Operador
		if op == "" {
			op = "Sin asignar"
		}
		g.add(op, s.Total, records.Number{}, records.Number{})
	}
	sort.SliceStable(g.order, func(i, j int) bool {
		return g.order[i].total > g.order[j].total
	})
	out := make([]OperatorRank, 0, len(g.order))
	for _, e := range g.order {
		out = append(out, OperatorRank{Operador: e.key, Total: e.total, Cantidad: e.count})
	}
	return out
}

func seriesFromGroups(groups []*group) Series {
	series := Series{Labels: []string{}, Values: []float64{}, Counts: []int{}}
	for _, e := range groups {
		series.Labels = append(series.Labels, e.key)
		series.Values = append(series.Values, e.total)
		series.Counts = append(series.Counts, e.count)
	}
	return series
}
