package analytics

import (
	"sort"
	"time"

	"github.com/conectamos-mx/dashboard-ova/internal/records"
)

// OperatorBalance is one handler's balance in the session snapshot.
type OperatorBalance struct {
	Nombre string  `json:"nombre"`
	Saldo  float64 `json:"saldo"`
}

// CashSessionResult is the register-session snapshot: the latest balances
// per handler plus that day's movement totals per concept. Fecha is nil when
// the log has no session rows at all.
type CashSessionResult struct {
	Operadores     []OperatorBalance  `json:"operadores"`
	MovimientosDia map[string]float64 `json:"movimientos_dia"`
	SaldoTotal     float64            `json:"saldo_total"`
	Fecha          *string            `json:"fecha"`
	Error          string             `json:"error,omitempty"`
}

// EmptyCashSession is the zero-valued session shape, also used as the
// degraded response when the register dataset fails to load.
func EmptyCashSession() CashSessionResult {
	return CashSessionResult{
		Operadores:     []OperatorBalance{},
		MovimientosDia: map[string]float64{},
	}
}

// CashSession finds the most recent end-of-day or opening-balance row (at or
// before `until` when set) and reads one balance per handler from it, then
// sums the same day's rows per movement concept. Missing cells read as 0.
func CashSession(rows []records.CashRow, until *time.Time) CashSessionResult {
	if until != nil {
		limit := dayOf(*until)
		filtered := make([]records.CashRow, 0, len(rows))
		for _, r := range rows {
			if r.Fecha.Valid && !r.Fecha.Day().After(limit) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	var sessions []records.CashRow
	for _, r := range rows {
		if !r.Fecha.Valid {
			continue
		}
		if r.Concepto == records.ConceptoFinDia || r.Concepto == records.ConceptoSaldoInicial {
			sessions = append(sessions, r)
		}
	}
	if len(sessions) == 0 {
		return EmptyCashSession()
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Fecha.Time.After(sessions[j].Fecha.Time)
	})
	latest := sessions[0]

	result := EmptyCashSession()
	for _, handler := range records.CashHandlers {
		result.Operadores = append(result.Operadores, OperatorBalance{
			Nombre: handler,
			Saldo:  latest.Saldos[handler].Or(0),
		})
	}
	result.SaldoTotal = latest.SaldoFinal.Or(0)

	day := latest.Fecha.Day()
	fecha := day.Format("2006-01-02")
	result.Fecha = &fecha

	for _, concepto := range records.CashMovementConcepts {
		result.MovimientosDia[concepto] = 0
		for _, r := range rows {
			if !r.Fecha.Valid || !r.Fecha.Day().Equal(day) || r.Concepto != concepto {
				continue
			}
			var total float64
			for _, handler := range records.CashHandlers {
				total += r.Saldos[handler].Or(0)
			}
			result.MovimientosDia[concepto] = total
			break
		}
	}
	return result
}
