package records

import (
	"github.com/conectamos-mx/dashboard-ova/internal/tablesource"
)

// Expense is a normalized operating-expense record. Identifiers may be
// legitimately blank; a positive amount is what makes a row real.
type Expense struct {
	ID            string
	Fecha         Date
	TipoEgreso    string
	CentroCostos  string
	Concepto      string
	Importe       Number
	Operador      string
	Clasificacion string
}

// NormalizeEgresos normalizes the cash-expenses sheet, keeping rows with a
// present, positive amount.
func NormalizeEgresos(t *tablesource.Table) ([]Expense, error) {
	ix := newIndexer("egresos", t.Index)
	ix.optional("id", "ID")
	ix.require("fecha", "FECHA")
	ix.require("tipo_egreso", "TIPO DE EGRESO")
	ix.require("importe", "IMPORTE")
	ix.optional("centro_costos", "CENTRO DE COSTOS")
	ix.optional("concepto", "CONCEPTO")
	ix.optional("operador", "OPERADOR")
	ix.optional("clasificacion", "CLASIFICACIÓN COSTO/GASTO")
	if ix.err != nil {
		return nil, ix.err
	}

	var expenses []Expense
	for _, row := range t.Rows {
		importe := ParseNumber(tablesource.Cell(row, ix.pos("importe")))
		if !importe.Positive() {
			continue
		}
		expenses = append(expenses, Expense{
			ID:            tablesource.Cell(row, ix.pos("id")),
			Fecha:         ParseDate(tablesource.Cell(row, ix.pos("fecha"))),
			TipoEgreso:    tablesource.Cell(row, ix.pos("tipo_egreso")),
			CentroCostos:  tablesource.Cell(row, ix.pos("centro_costos")),
			Concepto:      tablesource.Cell(row, ix.pos("concepto")),
			Importe:       importe,
			Operador:      tablesource.Cell(row, ix.pos("operador")),
			Clasificacion: tablesource.Cell(row, ix.pos("clasificacion")),
		})
	}
	return expenses, nil
}
