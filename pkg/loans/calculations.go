// Package loans computes monthly repayment schedules for standard
// compound-interest loans and for benevolent (gharz-al-hasaneh) loans that
// charge a fee on the outstanding balance instead of compounding interest.
package loans

import (
	"fmt"
	"math"

	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/mathutil"
	"go.uber.org/zap"
)

// Kind selects the repayment model.
type Kind string

const (
	// KindStandard is a level-payment annuity loan.
	KindStandard Kind = "standard"
	// KindBenevolent is a gharz-al-hasaneh loan charging a fee on the outstanding balance.
	KindBenevolent Kind = "benevolent"
)

// FeeMethod selects how a benevolent loan's fee is charged.
type FeeMethod string

const (
	// FeeAnnualFirst charges the full annual fee on months 1, 13, 25, ... and
	// repays no principal in those months.
	FeeAnnualFirst FeeMethod = "annual-first"
	// FeeMonthly charges a monthly fee on the declining balance.
	FeeMonthly FeeMethod = "monthly"
)

// Parameters describe a loan.
type Parameters struct {
	Principal         float64   `json:"principal" yaml:"principal"`
	AnnualRatePercent float64   `json:"annualRatePercent" yaml:"annualRatePercent"`
	TermMonths        int       `json:"termMonths" yaml:"termMonths"`
	Kind              Kind      `json:"kind" yaml:"kind"`
	FeeMethod         FeeMethod `json:"feeMethod,omitempty" yaml:"feeMethod,omitempty"`
}

// Row holds the values for a given month of the schedule.
type Row struct {
	Month        int     `json:"month"`
	StartBalance float64 `json:"startBalance"`
	Interest     float64 `json:"interest"`
	Principal    float64 `json:"principal"`
	Payment      float64 `json:"payment"`
	EndBalance   float64 `json:"endBalance"`
	FeeOnly      bool    `json:"feeOnly,omitempty"`
}

// Schedule is the result of an amortization run.
//
// EffectiveRatePercent is the realized cost ratio totalInterest/principal*100.
// It is a rough total-cost signal, not an annualized rate or an IRR.
type Schedule struct {
	Rows                 []Row     `json:"schedule"`
	TotalInterest        float64   `json:"totalInterest"`
	TotalPayment         float64   `json:"totalPayment"`
	MonthlyAverage       float64   `json:"monthlyAverage"`
	EffectiveRatePercent float64   `json:"effectiveRatePercent"`
	MonthlyPayment       float64   `json:"monthlyPayment"`
	Kind                 Kind      `json:"kind"`
	FeeMethod            FeeMethod `json:"feeMethod,omitempty"`
	FeeOnlyMonths        int       `json:"feeOnlyMonths,omitempty"`
}

// Sanitize returns a copy with non-finite values zeroed, a negative rate
// clamped to zero and unknown enum values replaced by their defaults.
func (p Parameters) Sanitize() Parameters {
	p.Principal = mathutil.NonNegative(p.Principal)
	p.AnnualRatePercent = mathutil.NonNegative(p.AnnualRatePercent)
	if p.Kind != KindBenevolent {
		p.Kind = KindStandard
	}
	if p.Kind == KindBenevolent && p.FeeMethod != FeeMonthly {
		p.FeeMethod = FeeAnnualFirst
	}
	if p.Kind == KindStandard {
		p.FeeMethod = ""
	}
	return p
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if termMonths < 1 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := MonthlyRate(annualInterestRate)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	return principal * periodicInterestRate * power / (power - 1.00)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * MonthlyRate(annualInterestRate)
}

// MonthlyRate is the nominal monthly rate for an annual percentage.
func MonthlyRate(annualInterestRate float64) float64 {
	return annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// IsFeeMonth reports whether month (1-based) carries the annual fee under the
// annual-first method.
func IsFeeMonth(month int) bool {
	return month >= 1 && (month-1)%constants.MonthsPerYear == 0
}

// FeeMonthCount is the number of annual-first fee months in a term.
func FeeMonthCount(termMonths int) int {
	if termMonths < 1 {
		return 0
	}
	return (termMonths + constants.MonthsPerYear - 1) / constants.MonthsPerYear
}

// AmortizationScheduleGenerator produces repayment schedules.
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// ComputeSchedule computes a schedule without logging.
func ComputeSchedule(params Parameters) Schedule {
	return NewAmortizationScheduleGenerator(nil).GenerateSchedule(params)
}

// GenerateSchedule creates a complete schedule for a loan. The schedule
// always has exactly TermMonths rows; a term below one month yields an empty
// schedule.
func (g *AmortizationScheduleGenerator) GenerateSchedule(params Parameters) Schedule {
	params = params.Sanitize()

	result := Schedule{Kind: params.Kind, FeeMethod: params.FeeMethod}
	if params.TermMonths < 1 {
		g.logger.Debug("empty schedule for non-positive term",
			zap.String("op", "loans.GenerateSchedule"),
			zap.Int("termMonths", params.TermMonths),
		)
		return result
	}

	switch {
	case params.Kind == KindStandard:
		result.Rows, result.MonthlyPayment = g.standardRows(params)
	case params.FeeMethod == FeeAnnualFirst && params.TermMonths-FeeMonthCount(params.TermMonths) > 0:
		result.Rows, result.MonthlyPayment = g.annualFirstRows(params)
		result.FeeOnlyMonths = FeeMonthCount(params.TermMonths)
	default:
		if params.FeeMethod == FeeAnnualFirst {
			g.logger.Debug(fmt.Sprintf("term of %d months leaves no installment months, falling back to monthly fees",
				params.TermMonths),
				zap.String("op", "loans.GenerateSchedule"),
			)
		}
		result.FeeMethod = FeeMonthly
		result.Rows, result.MonthlyPayment = g.monthlyFeeRows(params)
	}

	repaid := 0.0
	for _, row := range result.Rows {
		result.TotalInterest += row.Interest
		result.TotalPayment += row.Payment
		repaid += row.Principal
	}
	if !mathutil.WithinTolerance(repaid, params.Principal, constants.CurrencyTolerance) {
		g.logger.Warn("schedule does not retire the principal",
			zap.String("op", "loans.GenerateSchedule"),
			zap.Float64("principal", params.Principal),
			zap.Float64("repaid", repaid),
		)
	}
	result.TotalInterest = mathutil.Round(result.TotalInterest)
	result.TotalPayment = mathutil.Round(result.TotalPayment)
	result.MonthlyAverage = result.TotalPayment / float64(params.TermMonths)
	if params.Principal > 0 {
		result.EffectiveRatePercent = result.TotalInterest / params.Principal * constants.PercentageMultiplier
	}

	g.logger.Debug("schedule generated",
		zap.String("op", "loans.GenerateSchedule"),
		zap.String("kind", string(result.Kind)),
		zap.String("feeMethod", string(result.FeeMethod)),
		zap.Int("rows", len(result.Rows)),
		zap.Float64("totalInterest", result.TotalInterest),
	)
	return result
}

func (g *AmortizationScheduleGenerator) standardRows(params Parameters) ([]Row, float64) {
	monthlyPayment := CalculateMonthlyPayment(params.Principal, params.AnnualRatePercent, params.TermMonths)
	rows := make([]Row, 0, params.TermMonths)
	balance := params.Principal

	for month := 1; month <= params.TermMonths; month++ {
		row := Row{Month: month, StartBalance: balance}
		row.Interest = CalculateInterestPayment(balance, params.AnnualRatePercent)
		row.Principal = monthlyPayment - row.Interest
		if month == params.TermMonths || row.Principal > balance {
			// We will get machine error otherwise so the last row retires the balance.
			row.Principal = balance
		}
		row.Payment = row.Principal + row.Interest
		row.EndBalance = clampBalance(balance - row.Principal)
		rows = append(rows, row)
		balance = row.EndBalance
	}
	return rows, monthlyPayment
}

func (g *AmortizationScheduleGenerator) annualFirstRows(params Parameters) ([]Row, float64) {
	installments := params.TermMonths - FeeMonthCount(params.TermMonths)
	installment := params.Principal / float64(installments)
	rows := make([]Row, 0, params.TermMonths)
	balance := params.Principal
	paid := 0

	for month := 1; month <= params.TermMonths; month++ {
		row := Row{Month: month, StartBalance: balance}
		if IsFeeMonth(month) {
			row.FeeOnly = true
			row.Interest = mathutil.ApplyPercentage(balance, params.AnnualRatePercent)
		} else {
			paid++
			row.Principal = installment
			if paid == installments || row.Principal > balance {
				row.Principal = balance
			}
		}
		row.Payment = row.Principal + row.Interest
		row.EndBalance = clampBalance(balance - row.Principal)
		rows = append(rows, row)
		balance = row.EndBalance
	}
	return rows, installment
}

func (g *AmortizationScheduleGenerator) monthlyFeeRows(params Parameters) ([]Row, float64) {
	installment := params.Principal / float64(params.TermMonths)
	rows := make([]Row, 0, params.TermMonths)
	balance := params.Principal

	for month := 1; month <= params.TermMonths; month++ {
		row := Row{Month: month, StartBalance: balance}
		row.Interest = CalculateInterestPayment(balance, params.AnnualRatePercent)
		row.Principal = installment
		if month == params.TermMonths || row.Principal > balance {
			row.Principal = balance
		}
		row.Payment = row.Principal + row.Interest
		row.EndBalance = clampBalance(balance - row.Principal)
		rows = append(rows, row)
		balance = row.EndBalance
	}
	return rows, installment + CalculateInterestPayment(params.Principal, params.AnnualRatePercent)
}

// clampBalance drops negative and sub-cent balances to zero.
func clampBalance(balance float64) float64 {
	if balance < 0 || mathutil.IsZero(balance) {
		return 0
	}
	return balance
}

// Summary is a short human-readable description of a schedule.
func Summary(s Schedule) string {
	return fmt.Sprintf("%s loan, %d months, average payment %.0f, total interest %.0f (%.1f%%)",
		s.Kind, len(s.Rows), s.MonthlyAverage, s.TotalInterest, s.EffectiveRatePercent)
}
