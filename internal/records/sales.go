package records

import (
	"strings"

	"github.com/conectamos-mx/dashboard-ova/internal/tablesource"
)

// Payment/sale type tags.
const (
	TipoContado = "CONTADO"
	TipoCredito = "CREDITO"
)

// voidMarker flags cancelled rows in the nota column; matched
// case-insensitively anywhere in the text.
const voidMarker = "ANULADO"

// Identifier prefixes of valid sale rows per sheet.
const (
	prefixContado = "VC"
	prefixCredito = "VCR"
)

// Sale is a normalized sales record from either sheet. Saldo is only
// populated for credit sales.
type Sale struct {
	ID        string
	Fecha     Date
	Segmento  string
	TipoVenta string
	Producto  string
	Cliente   string
	KgNetos   Number
	Cajas     Number
	Precio    Number
	Total     Number
	FormaPago string
	Operador  string
	Tipo      string
	Saldo     Number
	Nota      string
}

// SaleColumns is the canonical column set shared by both sales sheets, in
// the order the combined view exposes them.
var SaleColumns = []string{
	"ID", "fecha", "segmento", "tipo_venta", "producto", "cliente",
	"kg_netos", "cajas", "precio", "total_venta", "operador", "tipo", "forma_pago",
}

// isVoided reports whether a nota cell carries the cancellation marker.
func isVoided(nota string) bool {
	return strings.Contains(strings.ToUpper(nota), voidMarker)
}

// hasSalePrefix reports whether the identifier starts with the sheet's
// prefix.
func hasSalePrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix)
}

// NormalizeVentasContado normalizes the cash-sales sheet: rows must carry a
// VC identifier and must not be voided. Every retained row is tagged
// CONTADO.
func NormalizeVentasContado(t *tablesource.Table) ([]Sale, error) {
	ix := newIndexer("ventas-contado", t.Index)
	ix.require("id", "ID")
	ix.require("segmento", "SEGMENTO DE NEGOCIO")
	ix.require("tipo_venta", "TIPO DE VENTA")
	ix.require("producto", "TIPO/PRODUCTO")
	ix.require("cliente", "CLIENTE ADMON")
	ix.require("kg_netos", "KG NETOS")
	ix.require("cajas", "CAJAS/BULTOS")
	ix.require("precio", "PRECIO")
	ix.require("total", "TOTAL VENTA")
	ix.require("forma_pago", "FORMA DE PAGO")
	ix.require("operador", "OPERADOR")
	ix.require("fecha", "FECHA")
	ix.optional("nota", "NOTA")
	if ix.err != nil {
		return nil, ix.err
	}

	var sales []Sale
	for _, row := range t.Rows {
		id := tablesource.Cell(row, ix.pos("id"))
		if !hasSalePrefix(id, prefixContado) {
			continue
		}
		nota := tablesource.Cell(row, ix.pos("nota"))
		if isVoided(nota) {
			continue
		}
		sales = append(sales, Sale{
			ID:        id,
			Fecha:     ParseDate(tablesource.Cell(row, ix.pos("fecha"))),
			Segmento:  tablesource.Cell(row, ix.pos("segmento")),
			TipoVenta: tablesource.Cell(row, ix.pos("tipo_venta")),
			Producto:  tablesource.Cell(row, ix.pos("producto")),
			Cliente:   tablesource.Cell(row, ix.pos("cliente")),
			KgNetos:   ParseNumber(tablesource.Cell(row, ix.pos("kg_netos"))),
			Cajas:     ParseNumber(tablesource.Cell(row, ix.pos("cajas"))),
			Precio:    ParseNumber(tablesource.Cell(row, ix.pos("precio"))),
			Total:     ParseNumber(tablesource.Cell(row, ix.pos("total"))),
			FormaPago: tablesource.Cell(row, ix.pos("forma_pago")),
			Operador:  tablesource.Cell(row, ix.pos("operador")),
			Tipo:      TipoContado,
			Nota:      nota,
		})
	}
	return sales, nil
}

// NormalizeVentasCredito normalizes the credit-sales sheet: rows must carry
// a VCR identifier and must not be voided. Every retained row is tagged
// CREDITO and its payment form is forced to CREDITO regardless of the cell.
func NormalizeVentasCredito(t *tablesource.Table) ([]Sale, error) {
	ix := newIndexer("ventas-credito", t.Index)
	ix.require("id", "ID")
	ix.require("segmento", "SEGMENTO DE NEGOCIO")
	ix.require("tipo_venta", "TIPO DE VENTA")
	ix.require("producto", "TIPO/PRODUCTO")
	ix.require("cliente", "CLIENTE ADMON")
	ix.require("kg_netos", "KG NETOS")
	ix.require("cajas", "CAJAS O BULTOS")
	ix.require("precio", "PRECIO UNITARIO")
	ix.require("total", "TOTAL VENTA")
	ix.require("operador", "OPERADOR")
	ix.require("fecha", "FECHA")
	ix.optional("saldo", "SALDO")
	ix.optional("nota", "NOTA (SI APLICA)")
	if ix.err != nil {
		return nil, ix.err
	}

	var sales []Sale
	for _, row := range t.Rows {
		id := tablesource.Cell(row, ix.pos("id"))
		if !hasSalePrefix(id, prefixCredito) {
			continue
		}
		nota := tablesource.Cell(row, ix.pos("nota"))
		if isVoided(nota) {
			continue
		}
		sales = append(sales, Sale{
			ID:        id,
			Fecha:     ParseDate(tablesource.Cell(row, ix.pos("fecha"))),
			Segmento:  tablesource.Cell(row, ix.pos("segmento")),
			TipoVenta: tablesource.Cell(row, ix.pos("tipo_venta")),
			Producto:  tablesource.Cell(row, ix.pos("producto")),
			Cliente:   tablesource.Cell(row, ix.pos("cliente")),
			KgNetos:   ParseNumber(tablesource.Cell(row, ix.pos("kg_netos"))),
			Cajas:     ParseNumber(tablesource.Cell(row, ix.pos("cajas"))),
			Precio:    ParseNumber(tablesource.Cell(row, ix.pos("precio"))),
			Total:     ParseNumber(tablesource.Cell(row, ix.pos("total"))),
			FormaPago: TipoCredito,
			Operador:  tablesource.Cell(row, ix.pos("operador")),
			Tipo:      TipoCredito,
			Saldo:     ParseNumber(tablesource.Cell(row, ix.pos("saldo"))),
			Nota:      nota,
		})
	}
	return sales, nil
}

// AllSales combines cash and credit sales onto the shared canonical column
// subset. Cash records come first; order is preserved and nothing is
// deduplicated.
func AllSales(contado, credito []Sale) []Sale {
	out := make([]Sale, 0, len(contado)+len(credito))
	out = append(out, contado...)
	out = append(out, credito...)
	return out
}
