package records

import (
	"github.com/conectamos-mx/dashboard-ova/internal/tablesource"
)

// CashHandlers are the named register operators whose balances the CAJAS
// sheet tracks, one column each, in sheet order.
var CashHandlers = []string{"EMILIO", "RICHARD", "BODEGA 55", "DIEGO"}

// Session concepts: the rows that carry end-of-day / opening balances.
const (
	ConceptoFinDia       = "FIN DEL DÍA"
	ConceptoSaldoInicial = "SALDO INICIAL"
)

// Movement concepts summed for the day's totals.
var CashMovementConcepts = []string{
	"COBRANZA VENTAS AL CONTADO",
	"COBRANZA VENTAS A CRÉDITO",
	"GASTOS EFECTUADOS",
	"MOVIMIENTO ENTRE CAJAS",
}

// CashRow is one row of the register log: a concept, a date, one amount per
// handler and the overall cash balance. Non-numeric cells parse as invalid
// and are summed as zero.
type CashRow struct {
	Fecha      Date
	Concepto   string
	Saldos     map[string]Number
	SaldoFinal Number
}

// NormalizeCajas normalizes the register log. No row filtering happens here;
// the session snapshot picks the rows it needs.
func NormalizeCajas(t *tablesource.Table) ([]CashRow, error) {
	ix := newIndexer("cajas", t.Index)
	ix.require("fecha", "FECHA")
	ix.require("concepto", "CONCEPTO")
	for _, handler := range CashHandlers {
		ix.require("saldo:"+handler, handler)
	}
	ix.require("saldo_final", "SALDO FINAL DE EFECTIVO")
	if ix.err != nil {
		return nil, ix.err
	}

	rows := make([]CashRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		saldos := make(map[string]Number, len(CashHandlers))
		for _, handler := range CashHandlers {
			saldos[handler] = ParseNumber(tablesource.Cell(row, ix.pos("saldo:"+handler)))
		}
		rows = append(rows, CashRow{
			Fecha:      ParseDate(tablesource.Cell(row, ix.pos("fecha"))),
			Concepto:   tablesource.Cell(row, ix.pos("concepto")),
			Saldos:     saldos,
			SaldoFinal: ParseNumber(tablesource.Cell(row, ix.pos("saldo_final"))),
		})
	}
	return rows, nil
}
