package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conectamos-mx/dashboard-ova/internal/tablesource"
)

func contadoTable(rows ...[]string) *tablesource.Table {
	return &tablesource.Table{
		Columns: []string{
			"ID", "FECHA", "SEGMENTO DE NEGOCIO", "TIPO DE VENTA", "TIPO/PRODUCTO",
			"CLIENTE ADMON", "KG NETOS", "CAJAS/BULTOS", "PRECIO", "TOTAL VENTA",
			"FORMA DE PAGO", "OPERADOR", "NOTA",
		},
		Rows: rows,
	}
}

func creditoTable(rows ...[]string) *tablesource.Table {
	return &tablesource.Table{
		Columns: []string{
			"ID", "FECHA", "SEGMENTO DE NEGOCIO", "TIPO DE VENTA", "TIPO/PRODUCTO",
			"CLIENTE ADMON", "KG NETOS", "CAJAS O BULTOS", "PRECIO UNITARIO",
			"TOTAL VENTA", "OPERADOR", "SALDO", "NOTA (SI APLICA)",
		},
		Rows: rows,
	}
}

func TestNormalizeVentasContado(t *testing.T) {
	table := contadoTable(
		[]string{"VC-001", "2026-03-01", "CEBOLLA", "MAYOREO", "CEBOLLA", "JUAN", "100", "10", "15", "1500", "EFECTIVO", "EMILIO", ""},
		[]string{"", "2026-03-01", "", "", "", "", "", "", "", "", "", "", ""},
		[]string{"VC-002", "2026-03-02", "HUEVO", "MENUDEO", "HUEVO", "ANA", "20", "2", "50", "1000", "EFECTIVO", "RICHARD", "venta Anulado"},
		[]string{"TOTAL", "", "", "", "", "", "", "", "", "99999", "", "", ""},
	)

	sales, err := NormalizeVentasContado(table)
	require.NoError(t, err)
	require.Len(t, sales, 1)

	got := sales[0]
	assert.Equal(t, "VC-001", got.ID)
	assert.Equal(t, TipoContado, got.Tipo)
	assert.Equal(t, "EFECTIVO", got.FormaPago)
	assert.Equal(t, "EMILIO", got.Operador)
	assert.Equal(t, 1500.0, got.Total.Or(0))
	assert.Equal(t, "2026-03-01", got.Fecha.Day().Format("2006-01-02"))
}

func TestNormalizeVentasContadoMissingColumn(t *testing.T) {
	table := &tablesource.Table{
		Columns: []string{"ID", "FECHA"},
	}

	_, err := NormalizeVentasContado(table)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "ventas-contado", schemaErr.Dataset)
}

func TestNormalizeVentasCredito(t *testing.T) {
	table := creditoTable(
		[]string{"VCR-001", "2026-03-01", "HUEVO", "MAYOREO", "HUEVO", "PEDRO", "0", "30", "900", "27000", "DIEGO", "12000", ""},
		[]string{"VC-010", "2026-03-01", "CEBOLLA", "MAYOREO", "CEBOLLA", "LUIS", "50", "5", "20", "1000", "EMILIO", "", ""},
		[]string{"VCR-002", "2026-03-02", "HUEVO", "MAYOREO", "HUEVO", "SARA", "0", "10", "900", "9000", "DIEGO", "0", "ANULADO por error"},
	)

	sales, err := NormalizeVentasCredito(table)
	require.NoError(t, err)
	require.Len(t, sales, 1)

	got := sales[0]
	assert.Equal(t, "VCR-001", got.ID)
	assert.Equal(t, TipoCredito, got.Tipo)
	assert.Equal(t, TipoCredito, got.FormaPago)
	assert.Equal(t, 12000.0, got.Saldo.Or(0))
}

func TestNormalizeVentasCreditoOptionalColumnsAbsent(t *testing.T) {
	table := &tablesource.Table{
		Columns: []string{
			"ID", "FECHA", "SEGMENTO DE NEGOCIO", "TIPO DE VENTA", "TIPO/PRODUCTO",
			"CLIENTE ADMON", "KG NETOS", "CAJAS O BULTOS", "PRECIO UNITARIO",
			"TOTAL VENTA", "OPERADOR",
		},
		Rows: [][]string{
			{"VCR-001", "2026-03-01", "HUEVO", "MAYOREO", "HUEVO", "PEDRO", "0", "30", "900", "27000", "DIEGO"},
		},
	}

	sales, err := NormalizeVentasCredito(table)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.False(t, sales[0].Saldo.Valid)
}

func TestAllSalesKeepsOrderAndDuplicates(t *testing.T) {
	contado := []Sale{{ID: "VC-001"}, {ID: "VC-002"}}
	credito := []Sale{{ID: "VCR-001"}, {ID: "VC-001"}}

	all := AllSales(contado, credito)
	require.Len(t, all, 4)
	assert.Equal(t, "VC-001", all[0].ID)
	assert.Equal(t, "VCR-001", all[2].ID)
	assert.Equal(t, "VC-001", all[3].ID)
}

func TestIsVoidedCaseInsensitive(t *testing.T) {
	assert.True(t, isVoided("ANULADO"))
	assert.True(t, isVoided("venta anulado cliente"))
	assert.True(t, isVoided("Anulado"))
	assert.False(t, isVoided("pendiente"))
	assert.False(t, isVoided(""))
}
