package analytics

import (
	"github.com/conectamos-mx/dashboard-ova/internal/records"
)

// LastReading returns the most recent valid value of a running-balance
// column: the last non-missing reading in row order, 0 when none exists.
func LastReading(readings []records.Number) float64 {
	for i := len(readings) - 1; i >= 0; i-- {
		if readings[i].Valid {
			return readings[i].Float64
		}
	}
	return 0
}
