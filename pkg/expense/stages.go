package expense

import (
	"math"

	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/mathutil"
)

// Bucket is one part of the 50/30/20 split.
type Bucket struct {
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
	Target  float64 `json:"target"`
}

// Rule503020 compares spending with the needs/wants/savings guideline.
type Rule503020 struct {
	Needs    Bucket `json:"needs"`
	Wants    Bucket `json:"wants"`
	Savings  Bucket `json:"savings"`
	Balanced bool   `json:"balanced"`
}

// ApplyRule503020 splits spending into needs (housing, food, transport,
// health and bills), wants (lifestyle) and savings.
func ApplyRule503020(totals Totals, income float64) Rule503020 {
	needs := totals[CategoryHousing] + totals[CategoryFood] + totals[CategoryTransport] +
		totals[CategoryHealth] + totals[CategoryBills]
	wants := totals[CategoryLifestyle]
	savings := totals[CategorySaving]

	rule := Rule503020{
		Needs:   Bucket{Amount: needs, Target: 50},
		Wants:   Bucket{Amount: wants, Target: 30},
		Savings: Bucket{Amount: savings, Target: 20},
	}
	if income <= 0 {
		return rule
	}
	rule.Needs.Percent = needs / income * constants.PercentageMultiplier
	rule.Wants.Percent = wants / income * constants.PercentageMultiplier
	rule.Savings.Percent = savings / income * constants.PercentageMultiplier
	rule.Balanced = rule.Needs.Percent <= rule.Needs.Target &&
		rule.Wants.Percent <= rule.Wants.Target &&
		rule.Savings.Percent >= rule.Savings.Target
	return rule
}

// Fragility levels.
const (
	FragilityStable   = "stable"
	FragilityModerate = "moderate"
	FragilityFragile  = "fragile"
	FragilityCritical = "critical"
	FragilityUnknown  = "unknown"
)

// Fragility is the share of income locked into fixed costs (housing, bills
// and debt service).
type Fragility struct {
	FixedCosts float64 `json:"fixedCosts"`
	Ratio      float64 `json:"ratio"`
	Level      string  `json:"level"`
}

// AssessFragility rates the fixed-cost ratio.
func AssessFragility(totals Totals, income float64) Fragility {
	f := Fragility{
		FixedCosts: totals[CategoryHousing] + totals[CategoryBills] + totals[CategoryFinance],
		Level:      FragilityUnknown,
	}
	if income <= 0 {
		return f
	}

	f.Ratio = fixedCostPercent(totals, income)
	switch {
	case f.Ratio < 30:
		f.Level = FragilityStable
	case f.Ratio < 50:
		f.Level = FragilityModerate
	case f.Ratio < 65:
		f.Level = FragilityFragile
	default:
		f.Level = FragilityCritical
	}
	return f
}

// DarkMoney is flexible spending beyond a 15% allowance of income.
type DarkMoney struct {
	Flexible  float64 `json:"flexible"`
	Allowance float64 `json:"allowance"`
	Amount    float64 `json:"amount"`
	Annual    float64 `json:"annual"`
	Percent   float64 `json:"percent"`
	Reported  bool    `json:"reported"`
}

// EstimateDarkMoney measures lifestyle spending over the allowance. The
// excess is only reported once it reaches 3% of income.
func EstimateDarkMoney(totals Totals, income float64) DarkMoney {
	d := DarkMoney{Flexible: totals[CategoryLifestyle]}
	if income <= 0 {
		return d
	}

	d.Allowance = mathutil.ApplyPercentage(income, constants.DarkMoneyAllowancePercent)
	d.Amount = math.Max(0, d.Flexible-d.Allowance)
	d.Annual = d.Amount * constants.MonthsPerYear
	d.Percent = d.Amount / income * constants.PercentageMultiplier
	d.Reported = d.Amount > 0 && d.Percent >= constants.DarkMoneyReportPercent
	return d
}

// Emergency fund coverage statuses.
const (
	CoverageNone     = "none"
	CoverageWeak     = "weak"
	CoverageAdequate = "adequate"
	CoverageStrong   = "strong"
)

// EmergencyFund is how many months of expenses the fund covers.
type EmergencyFund struct {
	Balance float64 `json:"balance"`
	Months  float64 `json:"months"`
	Status  string  `json:"status"`
}

// AssessEmergencyFund rates coverage at under 1, 3 and 6 months. With no
// expenses any positive balance counts as strong.
func AssessEmergencyFund(balance, monthlyExpenses float64) EmergencyFund {
	e := EmergencyFund{Balance: balance, Status: CoverageNone}
	if monthlyExpenses <= 0 {
		if balance > 0 {
			e.Status = CoverageStrong
		}
		return e
	}

	e.Months = balance / monthlyExpenses
	switch {
	case e.Months < 1:
		e.Status = CoverageNone
	case e.Months < 3:
		e.Status = CoverageWeak
	case e.Months < 6:
		e.Status = CoverageAdequate
	default:
		e.Status = CoverageStrong
	}
	return e
}

// Projection is next year's monthly expenses at the given inflation.
type Projection struct {
	InflationRate   float64 `json:"inflationRate"`
	CurrentMonthly  float64 `json:"currentMonthly"`
	NextYearMonthly float64 `json:"nextYearMonthly"`
	MonthlyIncrease float64 `json:"monthlyIncrease"`
}

// ProjectExpenses inflates monthly expenses by one year.
func ProjectExpenses(monthlyExpenses, inflationRate float64) Projection {
	next := monthlyExpenses * (1 + inflationRate/constants.PercentageMultiplier)
	return Projection{
		InflationRate:   inflationRate,
		CurrentMonthly:  monthlyExpenses,
		NextYearMonthly: next,
		MonthlyIncrease: next - monthlyExpenses,
	}
}

// AnnualCalendar spreads annual items over the months they fall in.
type AnnualCalendar struct {
	Months    [constants.MonthsPerYear]float64 `json:"months"`
	Total     float64                          `json:"total"`
	PeakMonth int                              `json:"peakMonth"` // 1-12, 0 without items
	PeakTotal float64                          `json:"peakTotal"`
}

// BuildAnnualCalendar totals annual items per calendar month and finds the
// heaviest month; ties go to the earlier month.
func BuildAnnualCalendar(items []AnnualItem) AnnualCalendar {
	var cal AnnualCalendar
	for _, item := range items {
		month := item.Month
		if month < 1 || month > constants.MonthsPerYear {
			continue
		}
		cal.Months[month-1] += item.Amount
		cal.Total += item.Amount
	}

	for i, amount := range cal.Months {
		if amount > cal.PeakTotal {
			cal.PeakTotal = amount
			cal.PeakMonth = i + 1
		}
	}
	return cal
}
