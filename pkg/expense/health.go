package expense

import (
	"math"
	"sort"

	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/mathutil"
)

// Health levels.
const (
	LevelExcellent = "excellent"
	LevelGood      = "good"
	LevelFair      = "fair"
	LevelPoor      = "poor"
)

// Health factor keys.
const (
	FactorSavingsRate = "savings_rate"
	FactorDebtRatio   = "debt_ratio"
	FactorFragility   = "fixed_cost_fragility"
	FactorMargin      = "margin"
	FactorBaseline    = "baseline"
	FactorNoIncome    = "no_income"
)

// Factor is one weighted component of the health score. Value is the
// measured percentage and Score its tier score.
type Factor struct {
	Key    string  `json:"key"`
	Value  float64 `json:"value"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// Health is the overall 0-100 budget score.
type Health struct {
	Score   int      `json:"score"`
	Level   string   `json:"level"`
	Factors []Factor `json:"factors"`
}

// HealthScore blends five tier scores: savings rate 30%, debt ratio 25%,
// fixed-cost fragility 20%, disposable margin 15% and a constant filler 10%.
// Without income the score is 0 with a single no_income factor.
func HealthScore(totals Totals, income float64) Health {
	if income <= 0 {
		return Health{
			Score:   0,
			Level:   LevelPoor,
			Factors: []Factor{{Key: FactorNoIncome}},
		}
	}

	savingsRate := totals.Percent(CategorySaving, income)
	debtRatio := totals.Percent(CategoryFinance, income)
	fragility := fixedCostPercent(totals, income)
	margin := (income - totals.Expenses() - totals[CategorySaving]) / income * constants.PercentageMultiplier

	factors := []Factor{
		{Key: FactorSavingsRate, Value: savingsRate, Score: savingsRateScore(savingsRate), Weight: 0.30},
		{Key: FactorDebtRatio, Value: debtRatio, Score: debtRatioScore(debtRatio), Weight: 0.25},
		{Key: FactorFragility, Value: fragility, Score: fragilityScore(fragility), Weight: 0.20},
		{Key: FactorMargin, Value: margin, Score: marginScore(margin), Weight: 0.15},
		{Key: FactorBaseline, Score: constants.HealthFillerScore, Weight: 0.10},
	}

	total := 0.0
	for _, f := range factors {
		total += f.Score * f.Weight
	}
	score := int(math.Round(math.Max(0, math.Min(100, total))))
	return Health{Score: score, Level: healthLevel(score), Factors: factors}
}

func savingsRateScore(rate float64) float64 {
	switch {
	case rate >= 20:
		return 100
	case rate >= 10:
		return 80
	case rate >= 5:
		return 55
	default:
		return 20
	}
}

func debtRatioScore(ratio float64) float64 {
	switch {
	case ratio <= 0:
		return 100
	case ratio < 15:
		return 80
	case ratio <= 25:
		return 55
	case ratio <= 36:
		return 30
	default:
		return 10
	}
}

func fragilityScore(ratio float64) float64 {
	switch {
	case ratio < 30:
		return 100
	case ratio < 40:
		return 80
	case ratio < 50:
		return 60
	case ratio < 65:
		return 35
	case ratio < 80:
		return 15
	default:
		return 5
	}
}

func marginScore(margin float64) float64 {
	switch {
	case margin >= 10:
		return 100
	case margin >= 5:
		return 70
	case margin > 0:
		return 40
	default:
		return 10
	}
}

func healthLevel(score int) string {
	switch {
	case score >= 80:
		return LevelExcellent
	case score >= 60:
		return LevelGood
	case score >= 40:
		return LevelFair
	default:
		return LevelPoor
	}
}

// ClassifyCategory compares a category's share of income against its ideal
// band. Saving is too_low below its ideal minimum; every other category
// steps from ok through slightly_high and high to very_high as it passes
// the ideal maximum, the warning ceiling and the same distance again.
func ClassifyCategory(c Category, amount, income float64) Status {
	if income <= 0 {
		if amount > 0 {
			return StatusInformational
		}
		return StatusNotSet
	}

	b := idealBands[c]
	pct := amount / income * constants.PercentageMultiplier
	if c == CategorySaving {
		if pct < b.IdealMin {
			return StatusTooLow
		}
		return StatusOK
	}

	if amount <= 0 {
		return StatusNotSet
	}
	switch {
	case pct <= b.IdealMax:
		return StatusOK
	case pct <= b.WarnMax:
		return StatusSlightlyHigh
	case pct <= b.WarnMax+(b.WarnMax-b.IdealMax):
		return StatusHigh
	default:
		return StatusVeryHigh
	}
}

// Leak severities.
const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Leak is a category spending above its ideal band.
type Leak struct {
	Category Category `json:"category"`
	Percent  float64  `json:"percent"`
	IdealMax float64  `json:"idealMax"`
	Excess   float64  `json:"excess"` // percentage points over IdealMax
	Amount   float64  `json:"amount"` // monthly amount over IdealMax
	Severity string   `json:"severity"`
}

// DetectLeaks returns the categories, saving excluded, whose share of income
// exceeds their ideal maximum, largest excess first, at most two.
func DetectLeaks(totals Totals, income float64) []Leak {
	leaks := []Leak{}
	if income <= 0 {
		return leaks
	}

	for _, c := range Categories {
		if c == CategorySaving {
			continue
		}
		b := idealBands[c]
		pct := totals.Percent(c, income)
		if pct <= b.IdealMax {
			continue
		}
		excess := pct - b.IdealMax
		leaks = append(leaks, Leak{
			Category: c,
			Percent:  pct,
			IdealMax: b.IdealMax,
			Excess:   excess,
			Amount:   mathutil.ApplyPercentage(income, excess),
			Severity: leakSeverity(excess),
		})
	}

	sort.SliceStable(leaks, func(i, j int) bool {
		return leaks[i].Excess > leaks[j].Excess
	})
	if len(leaks) > constants.MaxLeaks {
		leaks = leaks[:constants.MaxLeaks]
	}
	return leaks
}

func leakSeverity(excess float64) string {
	switch {
	case excess < 5:
		return SeverityMild
	case excess < 15:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}

func fixedCostPercent(totals Totals, income float64) float64 {
	if income <= 0 {
		return 0
	}
	fixed := totals[CategoryHousing] + totals[CategoryBills] + totals[CategoryFinance]
	return fixed / income * constants.PercentageMultiplier
}
