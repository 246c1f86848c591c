package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		valid bool
	}{
		{"plain integer", "42", 42, true},
		{"decimal", "350.50", 350.50, true},
		{"currency symbol", "$1,234.56", 1234.56, true},
		{"thousands separators", "12,000", 12000, true},
		{"internal spaces", " 1 500 ", 1500, true},
		{"negative", "-20.5", -20.5, true},
		{"empty", "", 0, false},
		{"dash placeholder", "-", 0, false},
		{"text", "PENDIENTE", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNumber(tt.input)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.InDelta(t, tt.want, got.Float64, 0.001)
			}
		})
	}
}

func TestNumberHelpers(t *testing.T) {
	assert.Equal(t, 5.0, Number{Float64: 5, Valid: true}.Or(9))
	assert.Equal(t, 9.0, Number{}.Or(9))
	assert.True(t, Number{Float64: 0.5, Valid: true}.Positive())
	assert.False(t, Number{Float64: -1, Valid: true}.Positive())
	assert.False(t, Number{Float64: 10}.Positive())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		valid bool
	}{
		{"iso", "2026-03-15", "2026-03-15", true},
		{"slash mdy", "03/15/2026", "2026-03-15", true},
		{"excel serial", "46096", "2026-03-15", true},
		{"rfc3339", "2026-03-15T00:00:00Z", "2026-03-15", true},
		{"empty", "", "", false},
		{"garbage", "mañana", "", false},
		{"serial out of range", "900000", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.input)
			require.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, got.Day().Format("2006-01-02"))
			}
		})
	}
}

func TestDateDayNormalizesToMidnightUTC(t *testing.T) {
	d := Date{Time: time.Date(2026, 3, 15, 18, 45, 12, 0, time.UTC), Valid: true}
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), d.Day())
}
