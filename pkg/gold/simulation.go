// Package gold projects how long it takes to reach a savings goal by buying
// gold every month, compared with keeping the same budget in a bank deposit.
//
// The projection is a month-by-month loop bounded by
// constants.MaxSimulationMonths. Unreachable goals are reported through
// IsUnrealistic rather than an error.
package gold

import (
	"math"
	"math/rand"

	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/mathutil"
	"go.uber.org/zap"
)

// Parameters describe a gold savings plan. Rates and costs are annual
// percentages unless noted otherwise.
type Parameters struct {
	TargetAmount       float64 `json:"targetAmount" yaml:"targetAmount"`
	CurrentGoldGrams   float64 `json:"currentGoldGrams" yaml:"currentGoldGrams"`
	MonthlySavingGrams float64 `json:"monthlySavingGrams" yaml:"monthlySavingGrams"`
	GoldPrice          float64 `json:"goldPrice" yaml:"goldPrice"` // per gram

	GoldGrowthRate float64 `json:"goldGrowthRate" yaml:"goldGrowthRate"`
	USDGrowthRate  float64 `json:"usdGrowthRate" yaml:"usdGrowthRate"`
	InflationRate  float64 `json:"inflationRate" yaml:"inflationRate"`
	BankRate       float64 `json:"bankRate" yaml:"bankRate"`

	BuyFee     float64 `json:"buyFee" yaml:"buyFee"`         // percent of each purchase
	BuyTax     float64 `json:"buyTax" yaml:"buyTax"`         // percent of each purchase
	SellFee    float64 `json:"sellFee" yaml:"sellFee"`       // percent of liquidation value
	StorageFee float64 `json:"storageFee" yaml:"storageFee"` // annual percent

	Volatility      float64 `json:"volatility" yaml:"volatility"`
	AnnualShock     float64 `json:"annualShock" yaml:"annualShock"`
	AchievementRate float64 `json:"achievementRate" yaml:"achievementRate"` // 0-100

	AdjustTargetForInflation bool `json:"adjustTargetForInflation" yaml:"adjustTargetForInflation"`
	EstimateRange            bool `json:"estimateRange" yaml:"estimateRange"`
}

// Result is the outcome of one simulation run.
type Result struct {
	Months          int     `json:"months"`
	IsUnrealistic   bool    `json:"isUnrealistic"`
	CurrentValue    float64 `json:"currentValue"`
	GapToday        float64 `json:"gapToday"`
	TargetAtReach   float64 `json:"targetAtReach"`
	FinalGrams      float64 `json:"finalGrams"`
	LiquidAtReach   float64 `json:"liquidAtReach"`
	MonthlyGrams    float64 `json:"monthlyGrams"`
	EffectiveGrowth float64 `json:"effectiveMonthlyGrowth"`
}

// BankResult is the outcome of the bank-deposit comparison.
type BankResult struct {
	Months        int     `json:"months"`
	IsUnrealistic bool    `json:"isUnrealistic"`
	FinalBalance  float64 `json:"finalBalance"`
}

// Sanitize returns a copy with non-finite values zeroed and every field
// bounded to its documented range.
func (p Parameters) Sanitize() Parameters {
	p.TargetAmount = mathutil.NonNegative(p.TargetAmount)
	p.CurrentGoldGrams = mathutil.NonNegative(p.CurrentGoldGrams)
	p.MonthlySavingGrams = mathutil.NonNegative(p.MonthlySavingGrams)
	p.GoldPrice = mathutil.NonNegative(p.GoldPrice)

	p.GoldGrowthRate = mathutil.Clamp(mathutil.Finite(p.GoldGrowthRate), -99, 1000)
	p.USDGrowthRate = mathutil.Clamp(mathutil.Finite(p.USDGrowthRate), -99, 1000)
	p.InflationRate = mathutil.Clamp(mathutil.Finite(p.InflationRate), 0, 1000)
	p.BankRate = mathutil.Clamp(mathutil.Finite(p.BankRate), 0, 1000)

	p.BuyFee = mathutil.ClampPercent(p.BuyFee)
	p.BuyTax = mathutil.ClampPercent(p.BuyTax)
	p.SellFee = mathutil.ClampPercent(p.SellFee)
	p.StorageFee = mathutil.ClampPercent(p.StorageFee)
	p.Volatility = mathutil.Clamp(mathutil.Finite(p.Volatility), 0, 200)
	p.AnnualShock = mathutil.ClampPercent(p.AnnualShock)
	p.AchievementRate = mathutil.ClampPercent(p.AchievementRate)
	return p
}

// MonthlyGrams is the number of grams actually added each month: the
// achievement rate is applied to the planned grams first, then the buy fee
// and tax reduce what the money buys.
func (p Parameters) MonthlyGrams() float64 {
	saved := p.MonthlySavingGrams * p.AchievementRate / constants.PercentageMultiplier
	return saved / (1 + (p.BuyFee+p.BuyTax)/constants.PercentageMultiplier)
}

// EffectiveMonthlyGrowth is the monthly price growth. When a USD growth rate
// is supplied the USD and gold monthly rates are blended 70/30.
func (p Parameters) EffectiveMonthlyGrowth() float64 {
	goldMonthly := mathutil.MonthlyRate(p.GoldGrowthRate)
	if p.USDGrowthRate == 0 {
		return goldMonthly
	}
	usdMonthly := mathutil.MonthlyRate(p.USDGrowthRate)
	return constants.USDBlendWeight*usdMonthly + constants.GoldBlendWeight*goldMonthly
}

func (p Parameters) liquidValue(grams, price float64) float64 {
	return grams * price * (1 - p.SellFee/constants.PercentageMultiplier)
}

// Simulator runs gold projections. Randomized runs draw from the simulator's
// own source, so a Simulator is not safe for concurrent use.
type Simulator struct {
	logger    *zap.Logger
	rng       *rand.Rand
	maxMonths int
	runs      int
}

// Option customizes a Simulator.
type Option func(*Simulator)

// WithMaxMonths overrides the horizon cap.
func WithMaxMonths(months int) Option {
	return func(s *Simulator) {
		if months > 0 {
			s.maxMonths = months
		}
	}
}

// WithRandomRuns overrides the number of randomized runs behind the range.
func WithRandomRuns(runs int) Option {
	return func(s *Simulator) {
		if runs > 0 {
			s.runs = runs
		}
	}
}

// NewSimulator creates a simulator whose randomized runs are seeded by seed.
func NewSimulator(logger *zap.Logger, seed int64, opts ...Option) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Simulator{
		logger:    logger,
		rng:       rand.New(rand.NewSource(seed)),
		maxMonths: constants.MaxSimulationMonths,
		runs:      constants.DefaultRandomRuns,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxMonths is the horizon cap used by the simulator.
func (s *Simulator) MaxMonths() int {
	return s.maxMonths
}

// Simulate runs one month-by-month projection. With randomize set, every
// month's growth carries Gaussian noise scaled by the annual volatility.
func (s *Simulator) Simulate(params Parameters, randomize bool) Result {
	params = params.Sanitize()

	grams := params.CurrentGoldGrams
	price := params.GoldPrice
	target := params.TargetAmount
	growth := params.EffectiveMonthlyGrowth()
	monthlyInflation := mathutil.MonthlyRate(params.InflationRate)
	monthlyStorage := params.StorageFee / constants.PercentageMultiplier / constants.MonthsPerYear
	monthlyNoise := params.Volatility / constants.PercentageMultiplier / math.Sqrt(constants.MonthsPerYear)
	monthlyGrams := params.MonthlyGrams()

	liquidNow := params.liquidValue(grams, price)
	result := Result{
		CurrentValue:    grams * price,
		GapToday:        math.Max(0, target-liquidNow),
		MonthlyGrams:    monthlyGrams,
		EffectiveGrowth: growth,
	}

	if !params.AdjustTargetForInflation && liquidNow >= target {
		s.logger.Debug("current holdings already cover the target",
			zap.String("op", "gold.Simulate"),
			zap.Float64("liquid", liquidNow),
			zap.Float64("target", target),
		)
		result.TargetAtReach = target
		result.FinalGrams = grams
		result.LiquidAtReach = liquidNow
		return result
	}

	if monthlyGrams <= 0 {
		s.logger.Debug("no monthly progress, goal is unreachable",
			zap.String("op", "gold.Simulate"),
		)
		result.Months = s.maxMonths
		result.IsUnrealistic = true
		result.TargetAtReach = target
		result.FinalGrams = grams
		result.LiquidAtReach = liquidNow
		return result
	}

	liquid := liquidNow
	for month := 1; month <= s.maxMonths; month++ {
		if params.AdjustTargetForInflation {
			target *= 1 + monthlyInflation
		}
		if params.AnnualShock > 0 && month%constants.MonthsPerYear == 0 {
			price *= 1 - params.AnnualShock/constants.PercentageMultiplier
		}

		rate := growth
		if randomize {
			rate += s.gaussian() * monthlyNoise
		}
		price *= 1 + rate
		grams += monthlyGrams
		price *= 1 - monthlyStorage
		if price < 0 {
			price = 0
		}

		liquid = params.liquidValue(grams, price)
		if liquid >= target {
			result.Months = month
			result.TargetAtReach = target
			result.FinalGrams = grams
			result.LiquidAtReach = liquid
			return result
		}
	}

	s.logger.Debug("horizon reached before the target",
		zap.String("op", "gold.Simulate"),
		zap.Int("maxMonths", s.maxMonths),
		zap.Float64("liquid", liquid),
		zap.Float64("target", target),
	)
	result.Months = s.maxMonths
	result.IsUnrealistic = true
	result.TargetAtReach = target
	result.FinalGrams = grams
	result.LiquidAtReach = liquid
	return result
}

// SimulateBankDeposit projects the same budget kept as cash in a bank
// deposit. The starting balance is today's holdings sold after the sell fee,
// and each month adds the planned grams' cash value scaled by the
// achievement rate.
func (s *Simulator) SimulateBankDeposit(params Parameters) BankResult {
	params = params.Sanitize()

	balance := params.liquidValue(params.CurrentGoldGrams, params.GoldPrice)
	target := params.TargetAmount
	contribution := params.MonthlySavingGrams * params.GoldPrice * params.AchievementRate / constants.PercentageMultiplier
	monthlyBank := mathutil.MonthlyRate(params.BankRate)
	monthlyInflation := mathutil.MonthlyRate(params.InflationRate)

	if !params.AdjustTargetForInflation && balance >= target {
		return BankResult{FinalBalance: balance}
	}
	if contribution <= 0 && (balance <= 0 || monthlyBank <= 0) {
		return BankResult{Months: s.maxMonths, IsUnrealistic: true, FinalBalance: balance}
	}

	for month := 1; month <= s.maxMonths; month++ {
		if params.AdjustTargetForInflation {
			target *= 1 + monthlyInflation
		}
		balance = balance*(1+monthlyBank) + contribution
		if balance >= target {
			return BankResult{Months: month, FinalBalance: balance}
		}
	}
	return BankResult{Months: s.maxMonths, IsUnrealistic: true, FinalBalance: balance}
}

// gaussian draws a standard normal value with the Box-Muller transform.
func (s *Simulator) gaussian() float64 {
	u1 := s.rng.Float64()
	for u1 == 0 {
		u1 = s.rng.Float64()
	}
	u2 := s.rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
