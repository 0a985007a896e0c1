package gold

import (
	"fmt"
	"math"

	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/optimization"
	"go.uber.org/zap"
)

// RequiredSaving is the monthly grams needed to reach the goal within a
// target number of months.
type RequiredSaving struct {
	TargetMonths       int     `json:"targetMonths"`
	MonthlySavingGrams float64 `json:"monthlySavingGrams"`
	MonthlyCost        float64 `json:"monthlyCost"` // at today's price
	Months             int     `json:"months"`
	Iterations         int     `json:"iterations"`
	Converged          bool    `json:"converged"`
	AlreadyReached     bool    `json:"alreadyReached"`
}

// RequiredMonthlySaving searches for the smallest monthly saving in grams that
// reaches the goal within targetMonths under the deterministic base case.
// Converged is false when even the search's upper bound cannot make it.
func (s *Simulator) RequiredMonthlySaving(params Parameters, targetMonths int) RequiredSaving {
	params = params.Sanitize()
	if targetMonths < 1 {
		targetMonths = 1
	}
	if targetMonths > s.maxMonths {
		targetMonths = s.maxMonths
	}

	result := RequiredSaving{TargetMonths: targetMonths}

	reaches := func(grams float64) bool {
		p := params
		p.MonthlySavingGrams = grams
		r := s.Simulate(p, false)
		return !r.IsUnrealistic && r.Months <= targetMonths
	}

	if reaches(0) {
		result.AlreadyReached = true
		result.Converged = true
		return result
	}

	upper := searchUpperBound(params, targetMonths)
	if upper <= 0 {
		s.logger.Debug("no saving can reach the goal",
			zap.String("op", "gold.RequiredMonthlySaving"),
			zap.Float64("price", params.GoldPrice),
			zap.Float64("achievementRate", params.AchievementRate),
		)
		return result
	}
	// Falling prices can leave the first guess short of the goal.
	for i := 0; !reaches(upper); i++ {
		if i == constants.SolverMaxDoublings {
			s.logger.Debug("no saving within the search cap reaches the goal",
				zap.String("op", "gold.RequiredMonthlySaving"),
				zap.Int("targetMonths", targetMonths),
				zap.Float64("upper", upper),
			)
			return result
		}
		upper *= 2
	}

	summary := optimization.Bisect(0, upper, constants.SolverTolerance, constants.SolverMaxIterations, reaches)
	result.MonthlySavingGrams = summary.Value
	result.MonthlyCost = summary.Value * params.GoldPrice
	result.Iterations = summary.Iterations
	result.Converged = summary.Converged

	p := params
	p.MonthlySavingGrams = summary.Value
	result.Months = s.Simulate(p, false).Months

	s.logger.Debug("required saving solved",
		zap.String("op", "gold.RequiredMonthlySaving"),
		zap.Int("targetMonths", targetMonths),
		zap.Float64("grams", result.MonthlySavingGrams),
		zap.Int("iterations", result.Iterations),
		zap.Bool("converged", result.Converged),
	)
	return result
}

// SavingSummary is a short human-readable description of a solved saving.
func SavingSummary(r RequiredSaving) string {
	switch {
	case r.AlreadyReached:
		return "current holdings already reach the goal"
	case !r.Converged:
		return fmt.Sprintf("no monthly saving reaches the goal within %d months", r.TargetMonths)
	}
	return fmt.Sprintf("%.3f g per month (%.0f at today's price) reaches the goal in %d months",
		r.MonthlySavingGrams, r.MonthlyCost, r.Months)
}

// searchUpperBound sizes a bracket that covers the goal with a wide margin:
// the grams still missing at today's price, spread over the horizon, grossed
// up for costs, shortfall and the target's inflation, then doubled. Price
// growth is ignored, so callers widen it further when it falls short.
func searchUpperBound(params Parameters, targetMonths int) float64 {
	sellFactor := 1 - params.SellFee/constants.PercentageMultiplier
	if params.GoldPrice <= 0 || params.AchievementRate <= 0 || sellFactor <= 0 {
		return 0
	}

	target := params.TargetAmount
	if params.AdjustTargetForInflation {
		target *= math.Pow(1+params.InflationRate/constants.PercentageMultiplier, float64(targetMonths)/constants.MonthsPerYear)
	}
	missing := math.Max(target/(params.GoldPrice*sellFactor)-params.CurrentGoldGrams, 1)

	perMonth := missing / float64(targetMonths)
	perMonth *= 1 + (params.BuyFee+params.BuyTax)/constants.PercentageMultiplier
	perMonth *= constants.PercentageMultiplier / params.AchievementRate
	return 2 * perMonth
}
