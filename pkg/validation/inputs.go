package validation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/takhmino/takhmino/pkg/expense"
	"github.com/takhmino/takhmino/pkg/gold"
	"github.com/takhmino/takhmino/pkg/loans"
)

var (
	// ErrInvalidLoan is returned for loan parameters the schedule engine
	// should not be called with.
	ErrInvalidLoan = errors.New("invalid loan parameters")
	// ErrInvalidRun is returned for run-log records that cannot be stored.
	ErrInvalidRun = errors.New("invalid run record")
)

// Bounds applied to caller input.
const (
	MaxPrincipal      = 1e15
	MaxRatePercent    = 1000.0
	MaxTermMonths     = 1200
	MaxToolNameLength = 100
	MaxSummaryLength  = 500
)

// ValidateNumber checks that value is finite and within [min, max].
func ValidateNumber(name string, value, min, max float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s: value is not a finite number", name)
	}
	if value < min {
		return fmt.Errorf("%s: value must be >= %g, got %g", name, min, value)
	}
	if value > max {
		return fmt.Errorf("%s: value must be <= %g, got %g", name, max, value)
	}
	return nil
}

// ValidateLoanParameters rejects a non-positive principal, a term below one
// month, a negative rate and unknown loan kinds or fee methods.
func ValidateLoanParameters(p loans.Parameters) error {
	var problems []string
	if err := ValidateNumber("principal", p.Principal, 0, MaxPrincipal); err != nil {
		problems = append(problems, err.Error())
	} else if p.Principal <= 0 {
		problems = append(problems, "principal: value must be positive")
	}
	if err := ValidateNumber("annualRatePercent", p.AnnualRatePercent, 0, MaxRatePercent); err != nil {
		problems = append(problems, err.Error())
	}
	if p.TermMonths < 1 || p.TermMonths > MaxTermMonths {
		problems = append(problems, fmt.Sprintf("termMonths: value must be in [1; %d], got %d", MaxTermMonths, p.TermMonths))
	}
	switch p.Kind {
	case loans.KindStandard, loans.KindBenevolent, "":
	default:
		problems = append(problems, fmt.Sprintf("kind: unknown loan kind %q", p.Kind))
	}
	switch p.FeeMethod {
	case loans.FeeAnnualFirst, loans.FeeMonthly, "":
	default:
		problems = append(problems, fmt.Sprintf("feeMethod: unknown fee method %q", p.FeeMethod))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidLoan, strings.Join(problems, "; "))
	}
	return nil
}

// GoldWarnings returns advisory messages for a gold plan. The engine accepts
// any input, so nothing here is an error.
func GoldWarnings(p gold.Parameters) []string {
	var warnings []string
	if p.GoldPrice <= 0 {
		warnings = append(warnings, "gold price is not set, holdings are worth nothing")
	}
	if p.TargetAmount <= 0 {
		warnings = append(warnings, "target amount is not set")
	}
	if p.MonthlySavingGrams <= 0 && p.CurrentGoldGrams <= 0 {
		warnings = append(warnings, "no holdings and no monthly saving, the goal cannot be reached")
	}
	if p.AchievementRate <= 0 && p.MonthlySavingGrams > 0 {
		warnings = append(warnings, "achievement rate is 0%, no monthly saving will be made")
	}
	if p.AchievementRate > 100 || p.BuyFee > 100 || p.BuyTax > 100 || p.SellFee > 100 || p.StorageFee > 100 {
		warnings = append(warnings, "percentages above 100 are clamped to 100")
	}
	return warnings
}

// ExpenseWarnings returns advisory messages for a budget.
func ExpenseWarnings(in expense.Input) []string {
	var warnings []string
	if in.MonthlyIncome <= 0 {
		warnings = append(warnings, "monthly income is not set, scores are not computed")
	}
	fields := make([]string, 0, len(in.Detailed))
	for field := range in.Detailed {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if _, ok := expense.FieldCategory(field); !ok {
			warnings = append(warnings, fmt.Sprintf("unknown field %q counted as lifestyle", field))
		}
	}
	for _, item := range in.AnnualItems {
		if item.Month < 1 || item.Month > 12 {
			warnings = append(warnings, fmt.Sprintf("annual item %q has month %d, clamped to 1-12", item.Name, item.Month))
		}
	}
	return warnings
}

// ValidateRun checks a run-log record before it is stored.
func ValidateRun(toolSlug, toolName, summary string) error {
	if err := ValidateTool(toolSlug); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRun, err)
	}
	if strings.TrimSpace(toolName) == "" || len(toolName) > MaxToolNameLength {
		return fmt.Errorf("%w: tool name must be 1-%d characters", ErrInvalidRun, MaxToolNameLength)
	}
	if len(summary) > MaxSummaryLength {
		return fmt.Errorf("%w: summary exceeds %d characters", ErrInvalidRun, MaxSummaryLength)
	}
	return nil
}
