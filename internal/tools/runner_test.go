package tools

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/takhmino/takhmino/internal/config"
	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/expense"
	"github.com/takhmino/takhmino/pkg/gold"
	"github.com/takhmino/takhmino/pkg/inflation"
	"github.com/takhmino/takhmino/pkg/loans"
	"github.com/takhmino/takhmino/pkg/validation"
)

func newTestRunner() *Runner {
	return NewRunner(nil, config.GoldConfig{Seed: 3, RandomRuns: 30, MaxMonths: constants.MaxSimulationMonths})
}

func TestRunYAMLLoan(t *testing.T) {
	input := `
principal: "۱٬۲۰۰٬۰۰۰"
annualRatePercent: 4
termMonths: 24
kind: benevolent
feeMethod: annual-first
`
	outcome, err := newTestRunner().RunYAML(constants.ToolLoan, strings.NewReader(input))
	if err != nil {
		t.Fatalf("RunYAML() error = %v", err)
	}

	schedule, ok := outcome.Result.(loans.Schedule)
	if !ok {
		t.Fatalf("RunYAML() result is %T, expected loans.Schedule", outcome.Result)
	}
	if len(schedule.Rows) != 24 || schedule.FeeOnlyMonths != 2 {
		t.Errorf("RunYAML() = %d rows, %d fee months, expected 24 and 2", len(schedule.Rows), schedule.FeeOnlyMonths)
	}
	if schedule.Rows[0].StartBalance != 1_200_000 {
		t.Errorf("principal = %v, expected 1200000 parsed from Persian digits", schedule.Rows[0].StartBalance)
	}
	if outcome.Tool != constants.ToolLoan || outcome.Summary == "" {
		t.Errorf("RunYAML() outcome = %+v", outcome)
	}
}

func TestRunYAMLGold(t *testing.T) {
	input := `
targetAmount: 10000
monthlySavingGrams: 1
goldPrice: 1000
estimateRange: true
`
	outcome, err := newTestRunner().RunYAML(constants.ToolGold, strings.NewReader(input))
	if err != nil {
		t.Fatalf("RunYAML() error = %v", err)
	}

	result := outcome.Result.(gold.CombinedResult)
	if result.Base.Months != 10 || result.Base.IsUnrealistic {
		t.Errorf("base = %+v, expected 10 months", result.Base)
	}
	if result.Range == nil || result.Range.Runs != 30 {
		t.Errorf("range = %+v, expected 30 runs", result.Range)
	}
	if len(outcome.Warnings) != 0 {
		t.Errorf("warnings = %v, expected none", outcome.Warnings)
	}
}

func TestRunYAMLRequiredSaving(t *testing.T) {
	input := `
targetAmount: 12000
goldPrice: 1000
targetMonths: 6
`
	outcome, err := newTestRunner().RunYAML(RequiredSaving, strings.NewReader(input))
	if err != nil {
		t.Fatalf("RunYAML() error = %v", err)
	}

	result := outcome.Result.(gold.RequiredSaving)
	if !result.Converged || math.Abs(result.MonthlySavingGrams-2) > 0.002 {
		t.Errorf("RunYAML() = %+v, expected about 2 g per month", result)
	}
	if outcome.Tool != constants.ToolGold {
		t.Errorf("tool = %s, expected runs logged as %s", outcome.Tool, constants.ToolGold)
	}
}

func TestRunYAMLExpense(t *testing.T) {
	input := `
monthlyIncome: 100
monthlySaving: 21
mode: quick
quick:
  housing: 28
  food: "۱۲"
  transport: 8
  health: 5
  bills: 5
  lifestyle: 10
profile:
  tenure: rent
  cityTier: mid
annualItems:
  - name: insurance
    amount: 60
    month: 4
`
	outcome, err := newTestRunner().RunYAML(constants.ToolExpense, strings.NewReader(input))
	if err != nil {
		t.Fatalf("RunYAML() error = %v", err)
	}

	out := outcome.Result.(expense.Output)
	if out.Category(expense.CategoryFood).Amount != 12 {
		t.Errorf("food = %v, expected 12", out.Category(expense.CategoryFood).Amount)
	}
	if out.Calendar.PeakMonth != 4 {
		t.Errorf("calendar peak = %d, expected 4", out.Calendar.PeakMonth)
	}
	if !strings.Contains(outcome.Summary, "health") {
		t.Errorf("summary = %q", outcome.Summary)
	}
}

func TestRunYAMLPurchasingPower(t *testing.T) {
	outcome, err := newTestRunner().RunYAML(constants.ToolPurchasingPower,
		strings.NewReader("amount: 1000\ninflationRate: 100\nyears: 2\n"))
	if err != nil {
		t.Fatalf("RunYAML() error = %v", err)
	}

	result := outcome.Result.(inflation.Result)
	if math.Abs(result.RealValue-250) > 1e-9 {
		t.Errorf("real value = %v, expected 250", result.RealValue)
	}
}

func TestRunYAMLErrors(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		input    string
		expected error
	}{
		{"Unknown tool", "mortgage", "", ErrInvalidInput},
		{"Unknown field", constants.ToolGold, "goldPrise: 1000\n", ErrInvalidInput},
		{"Malformed YAML", constants.ToolGold, "goldPrice: [1000\n", ErrInvalidInput},
		{"Empty purchasing power", constants.ToolPurchasingPower, "", ErrInvalidInput},
		{"Years over the cap", constants.ToolPurchasingPower, "amount: 1\nyears: 101\n", ErrInvalidInput},
		{"Missing horizon", RequiredSaving, "targetAmount: 1000\n", ErrInvalidInput},
		{"Invalid loan", constants.ToolLoan, "principal: 0\ntermMonths: 12\n", validation.ErrInvalidLoan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestRunner().RunYAML(tt.tool, strings.NewReader(tt.input))
			if !errors.Is(err, tt.expected) {
				t.Errorf("RunYAML() error = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 5 || names[len(names)-1] != RequiredSaving {
		t.Errorf("Names() = %v", names)
	}
	if Name(constants.ToolExpense) == "" {
		t.Errorf("Name(%s) is empty", constants.ToolExpense)
	}
}
