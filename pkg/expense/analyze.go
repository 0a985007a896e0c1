// Package expense scores a household budget: it merges quick and itemized
// spending into category totals, then derives a health score, category
// statuses, spending leaks, peer benchmarks, the 50/30/20 split, fixed-cost
// fragility and excess flexible spending.
package expense

import (
	"fmt"

	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/mathutil"
	"go.uber.org/zap"
)

// Mode selects which spending inputs feed the category totals.
type Mode string

const (
	ModeQuick    Mode = "quick"
	ModeDetailed Mode = "detailed"
	ModeMixed    Mode = "mixed"
)

// AnnualItem is a once-a-year expense falling in a calendar month (1-12).
type AnnualItem struct {
	Name     string   `json:"name" yaml:"name"`
	Amount   float64  `json:"amount" yaml:"amount"`
	Month    int      `json:"month" yaml:"month"`
	Category Category `json:"category,omitempty" yaml:"category,omitempty"`
}

// CustomItem is an ad-hoc monthly expense.
type CustomItem struct {
	Name     string   `json:"name" yaml:"name"`
	Amount   float64  `json:"amount" yaml:"amount"`
	Category Category `json:"category,omitempty" yaml:"category,omitempty"`
}

// Input is a monthly budget to analyze.
type Input struct {
	MonthlyIncome float64 `json:"monthlyIncome" yaml:"monthlyIncome"`
	MonthlySaving float64 `json:"monthlySaving" yaml:"monthlySaving"`
	EmergencyFund float64 `json:"emergencyFund" yaml:"emergencyFund"`
	InflationRate float64 `json:"inflationRate" yaml:"inflationRate"`
	Mode          Mode    `json:"mode" yaml:"mode"`

	// Quick holds one total per category. Saving is ignored here; it comes
	// from MonthlySaving.
	Quick map[Category]float64 `json:"quick,omitempty" yaml:"quick,omitempty"`
	// Detailed holds itemized fields, see FieldCategory.
	Detailed map[string]float64 `json:"detailed,omitempty" yaml:"detailed,omitempty"`

	AnnualItems []AnnualItem `json:"annualItems,omitempty" yaml:"annualItems,omitempty"`
	CustomItems []CustomItem `json:"customItems,omitempty" yaml:"customItems,omitempty"`
	Profile     Profile      `json:"profile" yaml:"profile"`
}

// Status classifies a category's share of income.
type Status string

const (
	StatusNotSet        Status = "not_set"
	StatusOK            Status = "ok"
	StatusSlightlyHigh  Status = "slightly_high"
	StatusHigh          Status = "high"
	StatusVeryHigh      Status = "very_high"
	StatusTooLow        Status = "too_low"
	StatusInformational Status = "informational"
)

// CategoryResult is one category's monthly total and classification.
type CategoryResult struct {
	Category Category `json:"category"`
	Amount   float64  `json:"amount"`
	Percent  float64  `json:"percent"`
	Status   Status   `json:"status"`
	IdealMin float64  `json:"idealMin"`
	IdealMax float64  `json:"idealMax"`
}

// Output is the full analysis of a budget.
type Output struct {
	Income        float64          `json:"income"`
	TotalExpenses float64          `json:"totalExpenses"`
	Saving        float64          `json:"saving"`
	Remainder     float64          `json:"remainder"`
	Categories    []CategoryResult `json:"categories"`
	Health        Health           `json:"health"`
	Leaks         []Leak           `json:"leaks"`
	Peers         []PeerComparison `json:"peers"`
	Rule          Rule503020       `json:"rule503020"`
	Fragility     Fragility        `json:"fragility"`
	DarkMoney     DarkMoney        `json:"darkMoney"`
	EmergencyFund EmergencyFund    `json:"emergencyFund"`
	Projection    Projection       `json:"projection"`
	Calendar      AnnualCalendar   `json:"annualCalendar"`
}

// Category returns the result for c.
func (o Output) Category(c Category) CategoryResult {
	for _, r := range o.Categories {
		if r.Category == c {
			return r
		}
	}
	return CategoryResult{Category: c, Status: StatusNotSet}
}

// Totals is the monthly amount per category.
type Totals map[Category]float64

// Expenses is the sum of every category except saving.
func (t Totals) Expenses() float64 {
	total := 0.0
	for _, c := range Categories {
		if c != CategorySaving {
			total += t[c]
		}
	}
	return total
}

// Percent is a category's share of income, zero without income.
func (t Totals) Percent(c Category, income float64) float64 {
	if income <= 0 {
		return 0
	}
	return mathutil.CalculatePercentage(t[c], income)
}

// Sanitize returns a copy with non-finite and negative amounts zeroed, the
// inflation rate bounded and annual item months clamped to 1-12.
func (in Input) Sanitize() Input {
	in.MonthlyIncome = mathutil.NonNegative(in.MonthlyIncome)
	in.MonthlySaving = mathutil.NonNegative(in.MonthlySaving)
	in.EmergencyFund = mathutil.NonNegative(in.EmergencyFund)
	in.InflationRate = mathutil.Clamp(mathutil.Finite(in.InflationRate), 0, 1000)
	switch in.Mode {
	case ModeQuick, ModeDetailed, ModeMixed:
	default:
		in.Mode = ModeQuick
	}

	quick := make(map[Category]float64, len(in.Quick))
	for c, amount := range in.Quick {
		quick[c] = mathutil.NonNegative(amount)
	}
	in.Quick = quick

	detailed := make(map[string]float64, len(in.Detailed))
	for field, amount := range in.Detailed {
		detailed[field] = mathutil.NonNegative(amount)
	}
	in.Detailed = detailed

	annual := make([]AnnualItem, len(in.AnnualItems))
	for i, item := range in.AnnualItems {
		item.Amount = mathutil.NonNegative(item.Amount)
		if item.Month < 1 {
			item.Month = 1
		}
		if item.Month > constants.MonthsPerYear {
			item.Month = constants.MonthsPerYear
		}
		if !item.Category.Valid() || item.Category == CategorySaving {
			item.Category = CategoryLifestyle
		}
		annual[i] = item
	}
	in.AnnualItems = annual

	custom := make([]CustomItem, len(in.CustomItems))
	for i, item := range in.CustomItems {
		item.Amount = mathutil.NonNegative(item.Amount)
		if !item.Category.Valid() || item.Category == CategorySaving {
			item.Category = CategoryLifestyle
		}
		custom[i] = item
	}
	in.CustomItems = custom

	in.Profile = in.Profile.Sanitize()
	return in
}

// CategoryTotals merges the spending inputs into one monthly total per
// category. In mixed mode a category uses its itemized fields when any of
// them is non-zero and its quick total otherwise. Annual items contribute a
// twelfth of their amount; custom items are added as is.
func CategoryTotals(in Input) Totals {
	in = in.Sanitize()

	itemized := make(Totals)
	hasItemized := make(map[Category]bool)
	for field, amount := range in.Detailed {
		c, _ := FieldCategory(field)
		itemized[c] += amount
		if amount != 0 {
			hasItemized[c] = true
		}
	}

	totals := make(Totals, len(Categories))
	for _, c := range Categories {
		if c == CategorySaving {
			continue
		}
		switch in.Mode {
		case ModeQuick:
			totals[c] = in.Quick[c]
		case ModeDetailed:
			totals[c] = itemized[c]
		case ModeMixed:
			if hasItemized[c] {
				totals[c] = itemized[c]
			} else {
				totals[c] = in.Quick[c]
			}
		}
	}

	for _, item := range in.AnnualItems {
		totals[item.Category] += item.Amount / constants.MonthsPerYear
	}
	for _, item := range in.CustomItems {
		totals[item.Category] += item.Amount
	}
	totals[CategorySaving] = in.MonthlySaving
	return totals
}

// Analyzer runs the budget analysis.
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates a new analyzer instance
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger}
}

// Analyze analyzes a budget without logging.
func Analyze(in Input) Output {
	return NewAnalyzer(nil).Analyze(in)
}

// Analyze runs every stage over the merged category totals. It never fails:
// missing or invalid amounts count as zero.
func (a *Analyzer) Analyze(in Input) Output {
	in = in.Sanitize()
	totals := CategoryTotals(in)
	income := in.MonthlyIncome

	out := Output{
		Income:        income,
		TotalExpenses: totals.Expenses(),
		Saving:        totals[CategorySaving],
	}
	out.Remainder = income - out.TotalExpenses - out.Saving

	for _, c := range Categories {
		b := idealBands[c]
		out.Categories = append(out.Categories, CategoryResult{
			Category: c,
			Amount:   totals[c],
			Percent:  totals.Percent(c, income),
			Status:   ClassifyCategory(c, totals[c], income),
			IdealMin: b.IdealMin,
			IdealMax: b.IdealMax,
		})
	}

	out.Health = HealthScore(totals, income)
	out.Leaks = DetectLeaks(totals, income)
	out.Peers = ComparePeers(totals, income, in.Profile)
	out.Rule = ApplyRule503020(totals, income)
	out.Fragility = AssessFragility(totals, income)
	out.DarkMoney = EstimateDarkMoney(totals, income)
	out.EmergencyFund = AssessEmergencyFund(in.EmergencyFund, out.TotalExpenses)
	out.Projection = ProjectExpenses(out.TotalExpenses, in.InflationRate)
	out.Calendar = BuildAnnualCalendar(in.AnnualItems)

	if income <= 0 {
		a.logger.Debug("no income, scoring skipped",
			zap.String("op", "expense.Analyze"),
			zap.Float64("expenses", out.TotalExpenses),
		)
	}
	a.logger.Debug("budget analyzed",
		zap.String("op", "expense.Analyze"),
		zap.String("mode", string(in.Mode)),
		zap.Int("score", out.Health.Score),
		zap.Int("leaks", len(out.Leaks)),
		zap.Bool("darkMoney", out.DarkMoney.Reported),
	)
	return out
}

// Summary is a short human-readable description of an analysis.
func Summary(o Output) string {
	summary := fmt.Sprintf("health %d/100 (%s), expenses %.0f of income %.0f",
		o.Health.Score, o.Health.Level, o.TotalExpenses, o.Income)
	if len(o.Leaks) > 0 {
		summary += fmt.Sprintf(", top leak %s (+%.1f%%)", o.Leaks[0].Category, o.Leaks[0].Excess)
	}
	if o.DarkMoney.Reported {
		summary += fmt.Sprintf(", dark money %.0f", o.DarkMoney.Amount)
	}
	return summary
}
