package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conectamos-mx/dashboard-ova/internal/tablesource"
)

func TestNormalizeComprasCebolla(t *testing.T) {
	table := &tablesource.Table{
		Columns: []string{
			"ID", "FECHA", "PROVEEDOR DE CEBOLLA", "COSTALES", "KG NETOS",
			"PRECIO X KG", "TOTAL", "ESTATUS",
		},
		Rows: [][]string{
			{"CC-001", "2026-03-01", "PROVEEDOR A", "40", "1000", "12", "12000", "PAGADO"},
			{"", "2026-03-02", "PROVEEDOR B", "10", "250", "12", "3000", ""},
			{"", "", "", "", "", "", "", ""},
			{"", "", "", "", "", "", "0", ""},
		},
	}

	purchases, err := NormalizeComprasCebolla(table)
	require.NoError(t, err)
	require.Len(t, purchases, 2)

	assert.Equal(t, "CC-001", purchases[0].ID)
	assert.Equal(t, ProductoCebolla, purchases[0].Producto)
	assert.Equal(t, "PROVEEDOR A", purchases[0].Proveedor)
	assert.Equal(t, 12000.0, purchases[0].Total.Or(0))

	// ID-less row survives on its positive total.
	assert.Equal(t, 3000.0, purchases[1].Total.Or(0))
}

func TestNormalizeComprasHuevo(t *testing.T) {
	table := &tablesource.Table{
		Columns: []string{
			"FECHA", "PROVEEDOR DE HUEVO", "CAJAS", "KG NETOS",
			"PRECIO x KG", "TOTAL", "MARCA DE HUEVO",
		},
		Rows: [][]string{
			{"2026-03-01", "GRANJA X", "100", "2000", "45", "90000", "SAN JUAN"},
			{"2026-03-02", "GRANJA Y", "", "", "", "", ""},
		},
	}

	purchases, err := NormalizeComprasHuevo(table)
	require.NoError(t, err)
	require.Len(t, purchases, 1)

	assert.Equal(t, ProductoHuevo, purchases[0].Producto)
	assert.Equal(t, "GRANJA X", purchases[0].Proveedor)
	assert.Equal(t, "SAN JUAN", purchases[0].Marca)
	assert.Equal(t, 100.0, purchases[0].Cantidad.Or(0))
}

func TestNormalizeComprasCebollaMissingColumn(t *testing.T) {
	table := &tablesource.Table{
		Columns: []string{"ID", "FECHA", "COSTALES", "KG NETOS", "PRECIO X KG", "TOTAL"},
	}

	_, err := NormalizeComprasCebolla(table)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "PROVEEDOR DE CEBOLLA", schemaErr.Column)
}

func TestAllPurchases(t *testing.T) {
	cebolla := []Purchase{{ID: "CC-001", Producto: ProductoCebolla}}
	huevo := []Purchase{{ID: "CH-001", Producto: ProductoHuevo}}

	all := AllPurchases(cebolla, huevo)
	require.Len(t, all, 2)
	assert.Equal(t, ProductoCebolla, all[0].Producto)
	assert.Equal(t, ProductoHuevo, all[1].Producto)
}
