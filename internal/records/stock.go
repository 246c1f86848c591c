package records

import (
	"github.com/conectamos-mx/dashboard-ova/internal/tablesource"
)

// existenciaLabel is the running-balance column family on the warehouse
// sheets. The egg sheet carries several EXISTENCIA columns (one per unit);
// the first one, by column order, is the tracked unit.
const existenciaLabel = "EXISTENCIA"

// NormalizeStock is a pass-through: it extracts the first running-balance
// column as a sequence of readings, in row order, with no filtering. The
// snapshot logic in analytics consumes it directly.
func NormalizeStock(t *tablesource.Table) ([]Number, error) {
	col := t.IndexContaining(existenciaLabel)
	if col < 0 {
		return nil, &SchemaError{Dataset: "stock", Column: existenciaLabel}
	}

	readings := make([]Number, 0, len(t.Rows))
	for _, row := range t.Rows {
		readings = append(readings, ParseNumber(tablesource.Cell(row, col)))
	}
	return readings, nil
}
