package service

import (
	"strings"
	"time"
)

// Late-fee policy for monthly payments: a flat surcharge applies to school
// months February through October once the grace day of the target month has
// passed. January and the year-end months never accrue it.
const (
	moraAmount     = 30.0
	moraGraceDay   = 5
	moraFirstMonth = 2
	moraLastMonth  = 10
)

// spanishMonths maps lowercase Spanish month names to calendar numbers.
var spanishMonths = map[string]int{
	"enero":      1,
	"febrero":    2,
	"marzo":      3,
	"abril":      4,
	"mayo":       5,
	"junio":      6,
	"julio":      7,
	"agosto":     8,
	"septiembre": 9,
	"octubre":    10,
	"noviembre":  11,
	"diciembre":  12,
}

// MonthNumber resolves a Spanish month name to its calendar number, or 0 when
// the name is unknown.
func MonthNumber(name string) int {
	return spanishMonths[strings.ToLower(strings.TrimSpace(name))]
}

// LateFee returns the surcharge owed for paying the given calendar month at
// the given moment. Months outside the fee window, unknown months included,
// owe nothing.
func LateFee(month int, now time.Time) float64 {
	if month < moraFirstMonth || month > moraLastMonth {
		return 0
	}
	cutoff := time.Date(now.Year(), time.Month(month), moraGraceDay, 23, 59, 59, 0, now.Location())
	if now.After(cutoff) {
		return moraAmount
	}
	return 0
}
