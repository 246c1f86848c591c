package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conectamos-mx/dashboard-ova/internal/tablesource"
)

func cajasTable(rows ...[]string) *tablesource.Table {
	return &tablesource.Table{
		Columns: []string{
			"FECHA", "CONCEPTO", "EMILIO", "RICHARD", "BODEGA 55", "DIEGO",
			"SALDO FINAL DE EFECTIVO",
		},
		Rows: rows,
	}
}

func TestNormalizeCajas(t *testing.T) {
	table := cajasTable(
		[]string{"2026-03-01", "SALDO INICIAL", "1000", "500", "2000", "0", "3500"},
		[]string{"2026-03-01", "COBRANZA VENTAS AL CONTADO", "250", "", "100", "x", "350"},
	)

	rows, err := NormalizeCajas(table)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, ConceptoSaldoInicial, rows[0].Concepto)
	assert.Equal(t, 1000.0, rows[0].Saldos["EMILIO"].Or(0))
	assert.Equal(t, 3500.0, rows[0].SaldoFinal.Or(0))

	// Blank and non-numeric handler cells read as missing.
	assert.False(t, rows[1].Saldos["RICHARD"].Valid)
	assert.False(t, rows[1].Saldos["DIEGO"].Valid)
	assert.Equal(t, 250.0, rows[1].Saldos["EMILIO"].Or(0))
}

func TestNormalizeCajasMissingHandlerColumn(t *testing.T) {
	table := &tablesource.Table{
		Columns: []string{"FECHA", "CONCEPTO", "EMILIO", "RICHARD", "DIEGO", "SALDO FINAL DE EFECTIVO"},
	}

	_, err := NormalizeCajas(table)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "BODEGA 55", schemaErr.Column)
}
