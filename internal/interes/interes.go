// Package interes computes the interest owed on an outstanding pawn.
//
// Interest is never stored: every read recomputes it from the principal, the
// rate per period and the pawn date, relative to a cut-off date supplied by
// the caller. A period is a fixed block of DiasPorPeriodo calendar days and at
// least one period is charged as soon as a pawn exists.
package interes

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiasPorPeriodo is the length of one interest period. 32 days gives the
// client a small grace margin over a calendar month.
const DiasPorPeriodo = 32

var cien = decimal.NewFromInt(100)

// Resultado is the accrual state of a pawn at a given cut-off date.
type Resultado struct {
	Periodos         int
	InteresAcumulado decimal.Decimal
	ValorActual      decimal.Decimal
}

// Calcular returns the accrued interest and payoff value of a pawn.
//
// A zero principal, a zero rate or a zero inicio mean "no pawn data": no
// periods are counted and the payoff is the principal itself.
func Calcular(principal, tasaPct decimal.Decimal, inicio, corte time.Time) Resultado {
	if principal.IsZero() || tasaPct.IsZero() || inicio.IsZero() {
		return Resultado{
			InteresAcumulado: decimal.Zero,
			ValorActual:      principal.Round(2),
		}
	}

	periodos := DiasTranscurridos(inicio, corte) / DiasPorPeriodo
	if periodos < 1 {
		periodos = 1
	}

	interes := principal.Mul(tasaPct).Div(cien).Mul(decimal.NewFromInt(int64(periodos)))
	return Resultado{
		Periodos:         periodos,
		InteresAcumulado: interes.Round(2),
		ValorActual:      principal.Add(interes).Round(2),
	}
}

// DiasTranscurridos counts whole calendar days from inicio to corte, ignoring
// the time of day. Negative spans count as zero.
func DiasTranscurridos(inicio, corte time.Time) int {
	a := Fecha(inicio)
	b := Fecha(corte)
	if !b.After(a) {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}

// Fecha truncates t to its calendar date, keeping the date t shows in its own
// location.
func Fecha(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
