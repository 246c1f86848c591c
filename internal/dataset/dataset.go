// Package dataset enumerates the logical tables served by the dashboard and
// maps each one to its workbook, sheet name and header-row offset. The
// mapping is a static literal: when a sheet is renamed or restructured the
// load fails fast instead of silently reading the wrong columns.
package dataset

import "fmt"

// Workbook identifies one of the two tracked Excel documents.
type Workbook string

const (
	WorkbookVentas  Workbook = "ventas"
	WorkbookAlmacen Workbook = "almacen"
)

// ID identifies a logical dataset.
type ID string

const (
	VentasContado  ID = "ventas-contado"
	VentasCredito  ID = "ventas-credito"
	ComprasCebolla ID = "compras-cebolla"
	ComprasHuevo   ID = "compras-huevo"
	Egresos        ID = "egresos"
	StockCebolla   ID = "stock-cebolla"
	StockHuevo     ID = "stock-huevo"
	Cajas          ID = "cajas"
)

// Info describes where a dataset lives inside its workbook. HeaderRow is the
// zero-based index of the row holding the column labels; data starts on the
// next row.
type Info struct {
	ID        ID
	Workbook  Workbook
	Sheet     string
	HeaderRow int
}

var registry = map[ID]Info{
	VentasContado:  {ID: VentasContado, Workbook: WorkbookVentas, Sheet: "VENTAS AL CONTADO", HeaderRow: 7},
	VentasCredito:  {ID: VentasCredito, Workbook: WorkbookVentas, Sheet: "VENTAS A CRÉDITO", HeaderRow: 7},
	ComprasCebolla: {ID: ComprasCebolla, Workbook: WorkbookAlmacen, Sheet: "COMPRAS (C)", HeaderRow: 9},
	ComprasHuevo:   {ID: ComprasHuevo, Workbook: WorkbookAlmacen, Sheet: "COMPRAS (H)", HeaderRow: 9},
	Egresos:        {ID: Egresos, Workbook: WorkbookVentas, Sheet: "EGRESOS EN EFECTIVO", HeaderRow: 8},
	StockCebolla:   {ID: StockCebolla, Workbook: WorkbookAlmacen, Sheet: "CONTROL DE ALMACÉN (C)", HeaderRow: 9},
	StockHuevo:     {ID: StockHuevo, Workbook: WorkbookAlmacen, Sheet: "CONTROL DE ALMACÉN (H)", HeaderRow: 9},
	Cajas:          {ID: Cajas, Workbook: WorkbookVentas, Sheet: "CAJAS", HeaderRow: 4},
}

// Lookup returns the registry entry for id.
func Lookup(id ID) (Info, bool) {
	info, ok := registry[id]
	return info, ok
}

// MustLookup is Lookup for IDs that are compile-time constants.
func MustLookup(id ID) Info {
	info, ok := registry[id]
	if !ok {
		panic(fmt.Sprintf("dataset: unknown id %q", id))
	}
	return info
}

// All returns every registered dataset.
func All() []Info {
	out := make([]Info, 0, len(registry))
	for _, id := range []ID{
		VentasContado, VentasCredito, ComprasCebolla, ComprasHuevo,
		Egresos, StockCebolla, StockHuevo, Cajas,
	} {
		out = append(out, registry[id])
	}
	return out
}
