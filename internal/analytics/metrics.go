package analytics

import (
	"time"

	"github.com/conectamos-mx/dashboard-ova/internal/records"
)

// Summary is the headline KPI block.
type Summary struct {
	VentasTotal      float64 `json:"ventas_total"`
	VentasContado    float64 `json:"ventas_contado"`
	VentasCredito    float64 `json:"ventas_credito"`
	ComprasTotal     float64 `json:"compras_total"`
	GastosTotal      float64 `json:"gastos_total"`
	NumVentas        int     `json:"num_ventas"`
	NumCompras       int     `json:"num_compras"`
	NumGastos        int     `json:"num_gastos"`
	UtilidadEstimada float64 `json:"utilidad_estimada"`
}

// BuildSummary totals the three ledgers. The profit estimate is sales minus
// purchases minus expenses.
func BuildSummary(sales []records.Sale, purchases []records.Purchase, expenses []records.Expense) Summary {
	var s Summary
	for _, sale := range sales {
		v := sale.Total.Or(0)
		s.VentasTotal += v
		if sale.Tipo == records.TipoContado {
			s.VentasContado += v
		} else if sale.Tipo == records.TipoCredito {
			s.VentasCredito += v
		}
	}
	for _, p := range purchases {
		s.ComprasTotal += p.Total.Or(0)
	}
	for _, e := range expenses {
		s.GastosTotal += e.Importe.Or(0)
	}
	s.NumVentas = len(sales)
	s.NumCompras = len(purchases)
	s.NumGastos = len(expenses)
	s.UtilidadEstimada = s.VentasTotal - s.ComprasTotal - s.GastosTotal
	return s
}

// AverageTicketResult reports mean ticket sizes overall and per payment
// type. Every mean is 0 when its denominator is 0.
type AverageTicketResult struct {
	TicketPromedio   float64 `json:"ticket_promedio"`
	Contado          float64 `json:"contado"`
	Credito          float64 `json:"credito"`
	NumTransacciones int     `json:"num_transacciones"`
}

// AverageTicket computes mean ticket sizes.
func AverageTicket(sales []records.Sale) AverageTicketResult {
	var total, totalContado, totalCredito float64
	var nContado, nCredito int
	for _, s := range sales {
		v := s.Total.Or(0)
		total += v
		switch s.Tipo {
		case records.TipoContado:
			totalContado += v
			nContado++
		case records.TipoCredito:
			totalCredito += v
			nCredito++
		}
	}

	result := AverageTicketResult{NumTransacciones: len(sales)}
	if len(sales) > 0 {
		result.TicketPromedio = total / float64(len(sales))
	}
	if nContado > 0 {
		result.Contado = totalContado / float64(nContado)
	}
	if nCredito > 0 {
		result.Credito = totalCredito / float64(nCredito)
	}
	return result
}

// CollectionRateResult reports how much of the credit book has been
// collected.
type CollectionRateResult struct {
	Tasa          float64 `json:"tasa"`
	Cobrado       float64 `json:"cobrado"`
	Pendiente     float64 `json:"pendiente"`
	TotalCreditos float64 `json:"total_creditos"`
}

// CollectionRate computes the collected percentage of credit sales; 0 when
// there are no credit sales.
func CollectionRate(credito []records.Sale) CollectionRateResult {
	var result CollectionRateResult
	for _, s := range credito {
		result.TotalCreditos += s.Total.Or(0)
		if s.Saldo.Positive() {
			result.Pendiente += s.Saldo.Float64
		}
	}
	result.Cobrado = result.TotalCreditos - result.Pendiente
	if result.TotalCreditos > 0 {
		result.Tasa = result.Cobrado / result.TotalCreditos * 100
	}
	return result
}

// ReceivableDetail is one outstanding credit account.
type ReceivableDetail struct {
	Cliente      string  `json:"cliente"`
	Saldo        float64 `json:"saldo"`
	Fecha        string  `json:"fecha"`
	DiasVencidos int     `json:"dias_vencidos"`
}

// ReceivablesResult is the outstanding-accounts listing.
type ReceivablesResult struct {
	TotalPendiente float64            `json:"total_pendiente"`
	NumCuentas     int                `json:"num_cuentas"`
	Detalle        []ReceivableDetail `json:"detalle"`
}

// receivableThreshold filters out rounding residue left after a credit is
// effectively settled.
const receivableThreshold = 100

// maxReceivableDetails caps the detail listing.
const maxReceivableDetails = 30

// Receivables lists credit sales with a meaningful outstanding balance. The
// detail list keeps natural row order and is capped; the totals cover every
// qualifying account.
func Receivables(credito []records.Sale, today time.Time) ReceivablesResult {
	result := ReceivablesResult{Detalle: []ReceivableDetail{}}
	day := dayOf(today)
	for _, s := range credito {
		if !s.Saldo.Valid || s.Saldo.Float64 <= receivableThreshold {
			continue
		}
		result.TotalPendiente += s.Saldo.Float64
		result.NumCuentas++

		if len(result.Detalle) >= maxReceivableDetails {
			continue
		}
		detail := ReceivableDetail{
			Cliente: s.Cliente,
			Saldo:   s.Saldo.Float64,
		}
		if detail.Cliente == "" {
			detail.Cliente = "Sin nombre"
		}
		if s.Fecha.Valid {
			detail.Fecha = s.Fecha.Day().Format("2006-01-02")
			detail.DiasVencidos = int(day.Sub(s.Fecha.Day()).Hours() / 24)
		}
		result.Detalle = append(result.Detalle, detail)
	}
	return result
}

// MonthTotals is one side of the month-over-month comparison.
type MonthTotals struct {
	Total         float64 `json:"total"`
	Transacciones int     `json:"transacciones"`
}

// MonthlyComparisonResult compares current month-to-date sales with the
// previous month.
type MonthlyComparisonResult struct {
	MesActual             MonthTotals `json:"mes_actual"`
	MesAnterior           MonthTotals `json:"mes_anterior"`
	CrecimientoPorcentaje float64     `json:"crecimiento_porcentaje"`
}

// MonthlyComparison sums sales from the first of the current month onward
// against the whole previous month. Growth is 100 when the previous month
// was zero and the current one is positive, else 0 in that degenerate case.
func MonthlyComparison(sales []records.Sale, now time.Time) MonthlyComparisonResult {
	firstCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	firstPrev := firstCurrent.AddDate(0, -1, 0)

	var result MonthlyComparisonResult
	for _, s := range sales {
		if !s.Fecha.Valid {
			continue
		}
		day := s.Fecha.Day()
		switch {
		case !day.Before(firstCurrent):
			result.MesActual.Total += s.Total.Or(0)
			result.MesActual.Transacciones++
		case !day.Before(firstPrev):
			result.MesAnterior.Total += s.Total.Or(0)
			result.MesAnterior.Transacciones++
		}
	}

	switch {
	case result.MesAnterior.Total > 0:
		result.CrecimientoPorcentaje = (result.MesActual.Total - result.MesAnterior.Total) /
			result.MesAnterior.Total * 100
	case result.MesActual.Total > 0:
		result.CrecimientoPorcentaje = 100
	}
	return result
}
