package records

import (
	"github.com/conectamos-mx/dashboard-ova/internal/tablesource"
)

// Product labels for the purchase sheets.
const (
	ProductoCebolla = "CEBOLLA"
	ProductoHuevo   = "HUEVO"
)

// Purchase is a normalized purchase record from either sheet.
type Purchase struct {
	ID        string
	Fecha     Date
	Proveedor string
	Cantidad  Number
	KgNetos   Number
	Precio    Number
	Total     Number
	Estatus   string
	Marca     string
	Producto  string
}

// NormalizeComprasCebolla normalizes the onion-purchases sheet. Rows are
// kept when they carry an identifier or a positive total; identifiers on
// this sheet are mostly populated but totals cover the stragglers.
func NormalizeComprasCebolla(t *tablesource.Table) ([]Purchase, error) {
	ix := newIndexer("compras-cebolla", t.Index)
	ix.require("id", "ID")
	ix.require("fecha", "FECHA")
	ix.require("proveedor", "PROVEEDOR DE CEBOLLA")
	ix.require("cantidad", "COSTALES")
	ix.require("kg_netos", "KG NETOS")
	ix.require("precio", "PRECIO X KG")
	ix.require("total", "TOTAL")
	ix.optional("estatus", "ESTATUS")
	if ix.err != nil {
		return nil, ix.err
	}

	var purchases []Purchase
	for _, row := range t.Rows {
		id := tablesource.Cell(row, ix.pos("id"))
		total := ParseNumber(tablesource.Cell(row, ix.pos("total")))
		if id == "" && !total.Positive() {
			continue
		}
		purchases = append(purchases, Purchase{
			ID:        id,
			Fecha:     ParseDate(tablesource.Cell(row, ix.pos("fecha"))),
			Proveedor: tablesource.Cell(row, ix.pos("proveedor")),
			Cantidad:  ParseNumber(tablesource.Cell(row, ix.pos("cantidad"))),
			KgNetos:   ParseNumber(tablesource.Cell(row, ix.pos("kg_netos"))),
			Precio:    ParseNumber(tablesource.Cell(row, ix.pos("precio"))),
			Total:     total,
			Estatus:   tablesource.Cell(row, ix.pos("estatus")),
			Producto:  ProductoCebolla,
		})
	}
	return purchases, nil
}

// NormalizeComprasHuevo normalizes the egg-purchases sheet. Identifiers are
// unreliable here, so only a positive total keeps a row.
func NormalizeComprasHuevo(t *tablesource.Table) ([]Purchase, error) {
	ix := newIndexer("compras-huevo", t.Index)
	ix.optional("id", "ID")
	ix.require("fecha", "FECHA")
	ix.require("proveedor", "PROVEEDOR DE HUEVO")
	ix.require("cantidad", "CAJAS")
	ix.require("kg_netos", "KG NETOS")
	ix.require("precio", "PRECIO x KG")
	ix.require("total", "TOTAL")
	ix.optional("estatus", "ESTATUS")
	ix.optional("marca", "MARCA DE HUEVO")
	if ix.err != nil {
		return nil, ix.err
	}

	var purchases []Purchase
	for _, row := range t.Rows {
		total := ParseNumber(tablesource.Cell(row, ix.pos("total")))
		if !total.Positive() {
			continue
		}
		purchases = append(purchases, Purchase{
			ID:        tablesource.Cell(row, ix.pos("id")),
			Fecha:     ParseDate(tablesource.Cell(row, ix.pos("fecha"))),
			Proveedor: tablesource.Cell(row, ix.pos("proveedor")),
			Cantidad:  ParseNumber(tablesource.Cell(row, ix.pos("cantidad"))),
			KgNetos:   ParseNumber(tablesource.Cell(row, ix.pos("kg_netos"))),
			Precio:    ParseNumber(tablesource.Cell(row, ix.pos("precio"))),
			Total:     total,
			Estatus:   tablesource.Cell(row, ix.pos("estatus")),
			Marca:     tablesource.Cell(row, ix.pos("marca")),
			Producto:  ProductoHuevo,
		})
	}
	return purchases, nil
}

// AllPurchases combines onion and egg purchases; onion records first, order
// preserved.
func AllPurchases(cebolla, huevo []Purchase) []Purchase {
	out := make([]Purchase, 0, len(cebolla)+len(huevo))
	out = append(out, cebolla...)
	out = append(out, huevo...)
	return out
}
