package gold

import (
	"fmt"
	"math"

	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/format"
	"github.com/takhmino/takhmino/pkg/mathutil"
	"go.uber.org/zap"
)

// Scenario names.
const (
	ScenarioOptimistic  = "optimistic"
	ScenarioBase        = "base"
	ScenarioPessimistic = "pessimistic"
)

// Scenario is a named simulation under perturbed growth and inflation.
type Scenario struct {
	Name       string     `json:"name"`
	Parameters Parameters `json:"parameters"`
	Result     Result     `json:"result"`
}

// Range is the spread of months-to-reach across randomized runs. Best is the
// 15th percentile and Worst the 85th.
type Range struct {
	Best  int `json:"best"`
	Worst int `json:"worst"`
	Runs  int `json:"runs"`
}

// CombinedResult bundles everything a gold projection reports.
type CombinedResult struct {
	Base      Result     `json:"base"`
	Range     *Range     `json:"range,omitempty"`
	Bank      BankResult `json:"bank"`
	Scenarios []Scenario `json:"scenarios"`
}

// Scenario returns the named scenario, if present.
func (c CombinedResult) Scenario(name string) (Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// Optimistic raises the gold growth rate by the scenario delta and lowers
// inflation by it, floored at zero. The USD rate is raised only when it is
// non-zero. A zero USD rate means gold alone drives the price, and shifting
// it would switch on the 70/30 gold/USD blend for this scenario only.
func Optimistic(params Parameters) Parameters {
	params.GoldGrowthRate += constants.ScenarioDelta
	if params.USDGrowthRate != 0 {
		params.USDGrowthRate += constants.ScenarioDelta
	}
	params.InflationRate = math.Max(0, params.InflationRate-constants.ScenarioDelta)
	return params
}

// Pessimistic lowers the gold growth rate by the scenario delta, floored at
// -50, and raises inflation by it. Like Optimistic, it leaves a zero USD
// rate untouched so the scenario keeps the base plan's price model.
func Pessimistic(params Parameters) Parameters {
	params.GoldGrowthRate = math.Max(constants.PessimisticGrowthFloor, params.GoldGrowthRate-constants.ScenarioDelta)
	if params.USDGrowthRate != 0 {
		params.USDGrowthRate = math.Max(constants.PessimisticGrowthFloor, params.USDGrowthRate-constants.ScenarioDelta)
	}
	params.InflationRate += constants.ScenarioDelta
	return params
}

// Scenarios runs the optimistic, base and pessimistic projections
// deterministically, in that order.
func (s *Simulator) Scenarios(params Parameters) []Scenario {
	params = params.Sanitize()
	named := []struct {
		name   string
		params Parameters
	}{
		{ScenarioOptimistic, Optimistic(params)},
		{ScenarioBase, params},
		{ScenarioPessimistic, Pessimistic(params)},
	}

	scenarios := make([]Scenario, 0, len(named))
	for _, n := range named {
		scenarios = append(scenarios, Scenario{
			Name:       n.name,
			Parameters: n.params,
			Result:     s.Simulate(n.params, false),
		})
	}
	return scenarios
}

// EstimateRange runs the randomized simulation repeatedly and reduces the
// months-to-reach to a best/worst percentile pair.
func (s *Simulator) EstimateRange(params Parameters) Range {
	months := make([]float64, 0, s.runs)
	for i := 0; i < s.runs; i++ {
		months = append(months, float64(s.Simulate(params, true).Months))
	}

	r := Range{
		Best:  int(math.Round(mathutil.Percentile(months, constants.RangeBestPercentile))),
		Worst: int(math.Round(mathutil.Percentile(months, constants.RangeWorstPercentile))),
		Runs:  s.runs,
	}
	s.logger.Debug("randomized range estimated",
		zap.String("op", "gold.EstimateRange"),
		zap.Int("runs", r.Runs),
		zap.Int("best", r.Best),
		zap.Int("worst", r.Worst),
	)
	return r
}

// Run produces the full projection: the deterministic base case, the bank
// comparison, the three scenarios and, when requested, the randomized range.
func (s *Simulator) Run(params Parameters) CombinedResult {
	params = params.Sanitize()

	result := CombinedResult{
		Base:      s.Simulate(params, false),
		Bank:      s.SimulateBankDeposit(params),
		Scenarios: s.Scenarios(params),
	}
	if params.EstimateRange {
		r := s.EstimateRange(params)
		result.Range = &r
	}

	s.logger.Debug("gold projection complete",
		zap.String("op", "gold.Run"),
		zap.Int("months", result.Base.Months),
		zap.Bool("unrealistic", result.Base.IsUnrealistic),
		zap.Int("bankMonths", result.Bank.Months),
	)
	return result
}

// Summary is a short human-readable description of a projection.
func Summary(c CombinedResult) string {
	if c.Base.IsUnrealistic {
		return fmt.Sprintf("goal not reachable within %s", format.FormatMonthsResult(c.Base.Months))
	}
	summary := fmt.Sprintf("goal reached in %s, bank deposit %s",
		format.FormatMonthsResult(c.Base.Months), bankSummary(c.Bank))
	if c.Range != nil {
		summary += fmt.Sprintf(", range %d-%d months", c.Range.Best, c.Range.Worst)
	}
	return summary
}

func bankSummary(b BankResult) string {
	if b.IsUnrealistic {
		return "not reachable"
	}
	return format.FormatMonthsResult(b.Months)
}
