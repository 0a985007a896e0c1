// Package inflation measures how inflation erodes the purchasing power of
// money over whole years.
package inflation

import (
	"fmt"
	"math"

	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/mathutil"
)

// MaxYears bounds the projection table.
const MaxYears = 100

// Year is one row of the projection.
type Year struct {
	Year             int     `json:"year"`
	EquivalentAmount float64 `json:"equivalentAmount"` // nominal amount needed to match today's amount
	RealValue        float64 `json:"realValue"`        // today's amount in today's money after the years
	LossPercent      float64 `json:"lossPercent"`
}

// Result is the purchasing power of an amount after a number of years.
type Result struct {
	Amount           float64 `json:"amount"`
	InflationRate    float64 `json:"inflationRate"`
	Years            int     `json:"years"`
	EquivalentAmount float64 `json:"equivalentAmount"`
	RealValue        float64 `json:"realValue"`
	LossPercent      float64 `json:"lossPercent"`
	Table            []Year  `json:"table"`
}

// PurchasingPower projects amount through years of constant annual
// inflation. Negative inputs are treated as zero and years is capped at
// MaxYears.
func PurchasingPower(amount, annualInflation float64, years int) Result {
	amount = mathutil.NonNegative(amount)
	annualInflation = mathutil.Clamp(mathutil.Finite(annualInflation), 0, 1000)
	if years < 0 {
		years = 0
	}
	if years > MaxYears {
		years = MaxYears
	}

	result := Result{
		Amount:           amount,
		InflationRate:    annualInflation,
		Years:            years,
		EquivalentAmount: amount,
		RealValue:        amount,
		Table:            make([]Year, 0, years),
	}

	growth := 1 + annualInflation/constants.PercentageMultiplier
	for y := 1; y <= years; y++ {
		factor := math.Pow(growth, float64(y))
		row := Year{
			Year:             y,
			EquivalentAmount: amount * factor,
			RealValue:        amount / factor,
			LossPercent:      (1 - 1/factor) * constants.PercentageMultiplier,
		}
		result.Table = append(result.Table, row)
		result.EquivalentAmount = row.EquivalentAmount
		result.RealValue = row.RealValue
		result.LossPercent = row.LossPercent
	}
	return result
}

// Summary is a short human-readable description of a projection.
func Summary(r Result) string {
	return fmt.Sprintf("%.0f today is worth %.0f after %d years at %.1f%% inflation (%.1f%% lost)",
		r.Amount, r.RealValue, r.Years, r.InflationRate, r.LossPercent)
}
