package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conectamos-mx/dashboard-ova/internal/records"
)

func TestPurchasesBreakdown(t *testing.T) {
	purchases := []records.Purchase{
		{Producto: records.ProductoCebolla, Total: records.Num(1000), KgNetos: records.Num(100)},
		{Producto: records.ProductoHuevo, Total: records.Num(3000), KgNetos: records.Num(200)},
		{Producto: records.ProductoCebolla, Total: records.Num(500), KgNetos: records.Number{}},
	}

	byProduct, total := PurchasesBreakdown(purchases)
	assert.Equal(t, 4500.0, total)
	require.Len(t, byProduct, 2)

	// First-seen order, not sorted.
	assert.Equal(t, records.ProductoCebolla, byProduct[0].Producto)
	assert.Equal(t, 1500.0, byProduct[0].Total)
	assert.Equal(t, 100.0, byProduct[0].KgNetos)
	assert.Equal(t, 2, byProduct[0].Cantidad)
}

func TestExpensesBreakdownDescending(t *testing.T) {
	expenses := []records.Expense{
		{TipoEgreso: "FLETES", Importe: records.Num(800)},
		{TipoEgreso: "NOMINA", Importe: records.Num(4500)},
		{TipoEgreso: "FLETES", Importe: records.Num(200)},
	}

	total, byType := ExpensesBreakdown(expenses)
	assert.Equal(t, 5500.0, total)
	require.Len(t, byType, 2)
	assert.Equal(t, "NOMINA", byType[0].Tipo)
	assert.Equal(t, 1000.0, byType[1].Total)
}
