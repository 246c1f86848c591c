package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conectamos-mx/dashboard-ova/internal/tablesource"
)

func TestNormalizeEgresos(t *testing.T) {
	table := &tablesource.Table{
		Columns: []string{
			"ID", "FECHA", "TIPO DE EGRESO", "CENTRO DE COSTOS", "CONCEPTO",
			"IMPORTE", "OPERADOR", "CLASIFICACIÓN COSTO/GASTO",
		},
		Rows: [][]string{
			{"EG-001", "2026-03-01", "FLETES", "LOGISTICA", "flete bodega", "800", "EMILIO", "COSTO"},
			{"", "2026-03-02", "NOMINA", "ADMON", "semana 9", "4500", "RICHARD", "GASTO"},
			{"EG-003", "2026-03-03", "OTROS", "", "", "", "", ""},
			{"EG-004", "2026-03-03", "OTROS", "", "ajuste", "-100", "", ""},
		},
	}

	expenses, err := NormalizeEgresos(table)
	require.NoError(t, err)
	require.Len(t, expenses, 2)

	assert.Equal(t, "FLETES", expenses[0].TipoEgreso)
	assert.Equal(t, 800.0, expenses[0].Importe.Or(0))
	// Blank identifier is fine as long as the amount is positive.
	assert.Equal(t, "", expenses[1].ID)
	assert.Equal(t, "NOMINA", expenses[1].TipoEgreso)
}

func TestNormalizeEgresosMissingAmountColumn(t *testing.T) {
	table := &tablesource.Table{
		Columns: []string{"ID", "FECHA", "TIPO DE EGRESO"},
	}

	_, err := NormalizeEgresos(table)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "IMPORTE", schemaErr.Column)
}
