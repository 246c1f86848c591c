package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conectamos-mx/dashboard-ova/internal/records"
)

func TestLastReading(t *testing.T) {
	readings := []records.Number{
		records.Num(120),
		records.Num(95),
		{},
		records.Num(80),
	}
	assert.Equal(t, 80.0, LastReading(readings))
}

func TestLastReadingSkipsTrailingBlanks(t *testing.T) {
	readings := []records.Number{
		records.Num(120),
		records.Num(95),
		{},
		{},
	}
	assert.Equal(t, 95.0, LastReading(readings))
}

func TestLastReadingEmpty(t *testing.T) {
	assert.Zero(t, LastReading(nil))
	assert.Zero(t, LastReading([]records.Number{{}, {}}))
}
