// Package tools runs the calculators from request documents. The HTTP API
// feeds it JSON bodies and the CLI feeds it YAML files.
package tools

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/takhmino/takhmino/internal/config"
	"github.com/takhmino/takhmino/internal/metrics"
	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/expense"
	"github.com/takhmino/takhmino/pkg/gold"
	"github.com/takhmino/takhmino/pkg/inflation"
	"github.com/takhmino/takhmino/pkg/loans"
	"github.com/takhmino/takhmino/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// RequiredSaving selects the gold required-saving solver in RunYAML. Its runs
// are logged under constants.ToolGold.
const RequiredSaving = "gold-required-saving"

// ErrInvalidInput is returned for requests the calculators cannot run.
var ErrInvalidInput = errors.New("invalid input")

var names = map[string]string{
	constants.ToolLoan:            "Loan calculator",
	constants.ToolGold:            "Gold savings goal",
	constants.ToolExpense:         "Expense leak finder",
	constants.ToolPurchasingPower: "Purchasing power",
}

// Name returns the display name of a tool.
func Name(tool string) string {
	return names[tool]
}

// Names lists the tools RunYAML accepts.
func Names() []string {
	return append(validation.Tools(), RequiredSaving)
}

// Outcome is the result of one calculator run.
type Outcome struct {
	Tool     string   `json:"-"`
	Result   any      `json:"result"`
	Summary  string   `json:"summary"`
	Warnings []string `json:"warnings,omitempty"`
}

// Runner runs the calculators.
type Runner struct {
	logger *zap.Logger
	gold   config.GoldConfig
}

// NewRunner creates a runner. A zero seed in goldConf seeds each gold
// simulation from the clock.
func NewRunner(logger *zap.Logger, goldConf config.GoldConfig) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, gold: goldConf}
}

// simulator returns a fresh simulator; simulators are not safe for
// concurrent use.
func (r *Runner) simulator() *gold.Simulator {
	seed := r.gold.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return gold.NewSimulator(r.logger, seed,
		gold.WithMaxMonths(r.gold.MaxMonths),
		gold.WithRandomRuns(r.gold.RandomRuns),
	)
}

func (r *Runner) observe(tool string, start time.Time) {
	metrics.ToolDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}

// Loan computes a repayment schedule.
func (r *Runner) Loan(req LoanRequest) (Outcome, error) {
	params := req.Parameters()
	if err := validation.ValidateLoanParameters(params); err != nil {
		return Outcome{}, err
	}

	defer r.observe(constants.ToolLoan, time.Now())
	schedule := loans.NewAmortizationScheduleGenerator(r.logger).GenerateSchedule(params)
	return Outcome{
		Tool:    constants.ToolLoan,
		Result:  schedule,
		Summary: loans.Summary(schedule),
	}, nil
}

// Gold projects a gold savings plan.
func (r *Runner) Gold(req GoldRequest) Outcome {
	params := req.Parameters()

	defer r.observe(constants.ToolGold, time.Now())
	result := r.simulator().Run(params)
	if result.Base.IsUnrealistic {
		metrics.UnreachableGoals.Inc()
	}
	return Outcome{
		Tool:     constants.ToolGold,
		Result:   result,
		Summary:  gold.Summary(result),
		Warnings: validation.GoldWarnings(params),
	}
}

// RequiredSaving solves the monthly grams needed within req.TargetMonths.
func (r *Runner) RequiredSaving(req RequiredSavingRequest) (Outcome, error) {
	targetMonths := int(req.TargetMonths.Float64())
	if targetMonths < 1 {
		return Outcome{}, fmt.Errorf("%w: targetMonths must be at least 1", ErrInvalidInput)
	}
	params := req.Parameters()

	defer r.observe(constants.ToolGold, time.Now())
	result := r.simulator().RequiredMonthlySaving(params, targetMonths)
	return Outcome{
		Tool:     constants.ToolGold,
		Result:   result,
		Summary:  gold.SavingSummary(result),
		Warnings: validation.GoldWarnings(params),
	}, nil
}

// Expense analyzes a budget.
func (r *Runner) Expense(req ExpenseRequest) Outcome {
	in := req.Input()

	defer r.observe(constants.ToolExpense, time.Now())
	out := expense.NewAnalyzer(r.logger).Analyze(in)
	return Outcome{
		Tool:     constants.ToolExpense,
		Result:   out,
		Summary:  expense.Summary(out),
		Warnings: validation.ExpenseWarnings(in),
	}
}

// PurchasingPower projects an amount through years of inflation.
func (r *Runner) PurchasingPower(req PurchasingPowerRequest) (Outcome, error) {
	years := int(req.Years.Float64())
	if years < 1 || years > inflation.MaxYears {
		return Outcome{}, fmt.Errorf("%w: years must be in [1; %d]", ErrInvalidInput, inflation.MaxYears)
	}

	defer r.observe(constants.ToolPurchasingPower, time.Now())
	result := inflation.PurchasingPower(req.Amount.Float64(), req.InflationRate.Float64(), years)
	return Outcome{
		Tool:    constants.ToolPurchasingPower,
		Result:  result,
		Summary: inflation.Summary(result),
	}, nil
}

// RunYAML decodes a YAML request document for tool and runs it.
func (r *Runner) RunYAML(tool string, in io.Reader) (Outcome, error) {
	if !slices.Contains(Names(), tool) {
		return Outcome{}, fmt.Errorf("%w: unknown tool %q, expected one of %v", ErrInvalidInput, tool, Names())
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read input: %w", err)
	}

	switch tool {
	case constants.ToolLoan:
		var req LoanRequest
		if err := decodeYAML(data, &req); err != nil {
			return Outcome{}, err
		}
		return r.Loan(req)
	case constants.ToolGold:
		var req GoldRequest
		if err := decodeYAML(data, &req); err != nil {
			return Outcome{}, err
		}
		return r.Gold(req), nil
	case RequiredSaving:
		var req RequiredSavingRequest
		if err := decodeYAML(data, &req); err != nil {
			return Outcome{}, err
		}
		return r.RequiredSaving(req)
	case constants.ToolExpense:
		var req ExpenseRequest
		if err := decodeYAML(data, &req); err != nil {
			return Outcome{}, err
		}
		return r.Expense(req), nil
	case constants.ToolPurchasingPower:
		var req PurchasingPowerRequest
		if err := decodeYAML(data, &req); err != nil {
			return Outcome{}, err
		}
		return r.PurchasingPower(req)
	}
	return Outcome{}, fmt.Errorf("%w: no runner for tool %q", ErrInvalidInput, tool)
}

// decodeYAML rejects unknown keys so typos in input files surface.
func decodeYAML(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: failed to parse input: %v", ErrInvalidInput, err)
	}
	return nil
}
