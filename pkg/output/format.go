// Package output provides utilities for formatting and displaying calculator results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/expense"
	"github.com/takhmino/takhmino/pkg/format"
	"github.com/takhmino/takhmino/pkg/gold"
	"github.com/takhmino/takhmino/pkg/inflation"
	"github.com/takhmino/takhmino/pkg/loans"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Writer renders calculator results in one output format.
type Writer struct {
	w      io.Writer
	format string
	script format.Script
	p      *message.Printer
}

// NewWriter creates a writer for an output format and display locale.
// Latin-script locales use the locale's own grouping; Persian and Arabic
// locales get native digits.
func NewWriter(w io.Writer, outputFormat, locale string) *Writer {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.English
	}
	return &Writer{
		w:      w,
		format: outputFormat,
		script: format.ScriptFor(tag),
		p:      message.NewPrinter(tag),
	}
}

// Render writes any supported result value.
func (o *Writer) Render(result any) error {
	if o.format == constants.OutputFormatJSON {
		return JSONFormat(o.w, result)
	}

	switch r := result.(type) {
	case loans.Schedule:
		if o.format == constants.OutputFormatCSV {
			return LoanCsv(o.w, r)
		}
		o.LoanPretty(r)
	case gold.CombinedResult:
		if o.format == constants.OutputFormatCSV {
			return GoldCsv(o.w, r)
		}
		o.GoldPretty(r)
	case gold.RequiredSaving:
		if o.format == constants.OutputFormatCSV {
			return RequiredSavingCsv(o.w, r)
		}
		o.RequiredSavingPretty(r)
	case expense.Output:
		if o.format == constants.OutputFormatCSV {
			return ExpenseCsv(o.w, r)
		}
		o.ExpensePretty(r)
	case inflation.Result:
		if o.format == constants.OutputFormatCSV {
			return PurchasingPowerCsv(o.w, r)
		}
		o.PurchasingPowerPretty(r)
	default:
		return fmt.Errorf("unsupported result type %T", result)
	}
	return nil
}

// amount renders a money value without fraction digits.
func (o *Writer) amount(v float64) string {
	if o.script == format.ScriptLatin {
		return o.p.Sprintf("%.0f", v)
	}
	return format.FormatGroupedNumberIn(v, 0, o.script)
}

// months renders a months-to-reach value.
func (o *Writer) months(m int) string {
	if o.script == format.ScriptPersian {
		return format.FormatMonthsResultFa(m)
	}
	return format.FormatMonthsResult(m)
}

// LoanPretty outputs a human-readable repayment table.
func (o *Writer) LoanPretty(s loans.Schedule) {
	fmt.Fprintf(o.w, "--- %s loan", s.Kind)
	if s.FeeMethod != "" {
		fmt.Fprintf(o.w, " (%s fees)", s.FeeMethod)
	}
	fmt.Fprintf(o.w, " ---\n")
	fmt.Fprintf(o.w, "Month | Start balance | Interest | Principal | Payment | End balance\n")
	fmt.Fprintf(o.w, "_____ | _____________ | ________ | _________ | _______ | ___________\n")
	for _, row := range s.Rows {
		note := ""
		if row.FeeOnly {
			note = " (fee only)"
		}
		fmt.Fprintf(o.w, "%d | %s | %s | %s | %s | %s%s\n", row.Month,
			o.amount(row.StartBalance), o.amount(row.Interest), o.amount(row.Principal),
			o.amount(row.Payment), o.amount(row.EndBalance), note)
	}
	fmt.Fprintf(o.w, "Total interest: %s\n", o.amount(s.TotalInterest))
	fmt.Fprintf(o.w, "Total payment: %s\n", o.amount(s.TotalPayment))
	fmt.Fprintf(o.w, "Monthly average: %s\n", o.amount(s.MonthlyAverage))
	fmt.Fprintf(o.w, "Total cost ratio: %.2f%%\n", s.EffectiveRatePercent)
}

// GoldPretty outputs a human-readable gold projection.
func (o *Writer) GoldPretty(c gold.CombinedResult) {
	fmt.Fprintf(o.w, "--- Gold savings goal ---\n")
	fmt.Fprintf(o.w, "Current value: %s\n", o.amount(c.Base.CurrentValue))
	fmt.Fprintf(o.w, "Gap today: %s\n", o.amount(c.Base.GapToday))
	if c.Base.IsUnrealistic {
		fmt.Fprintf(o.w, "Time to goal: not reachable within %s\n", o.months(c.Base.Months))
	} else {
		fmt.Fprintf(o.w, "Time to goal: %s\n", o.months(c.Base.Months))
		fmt.Fprintf(o.w, "Target at reach: %s\n", o.amount(c.Base.TargetAtReach))
		fmt.Fprintf(o.w, "Grams held: %.2f\n", c.Base.FinalGrams)
	}
	if c.Range != nil {
		fmt.Fprintf(o.w, "Likely range: %s to %s (%d runs)\n", o.months(c.Range.Best), o.months(c.Range.Worst), c.Range.Runs)
	}
	if c.Bank.IsUnrealistic {
		fmt.Fprintf(o.w, "Bank deposit: not reachable\n")
	} else {
		fmt.Fprintf(o.w, "Bank deposit: %s\n", o.months(c.Bank.Months))
	}
	fmt.Fprintf(o.w, "Scenario    | Months | Reached\n")
	fmt.Fprintf(o.w, "________    | ______ | _______\n")
	for _, s := range c.Scenarios {
		fmt.Fprintf(o.w, "%s | %d | %t\n", s.Name, s.Result.Months, !s.Result.IsUnrealistic)
	}
}

// RequiredSavingPretty outputs the solved monthly saving.
func (o *Writer) RequiredSavingPretty(r gold.RequiredSaving) {
	fmt.Fprintf(o.w, "--- Required monthly saving for %s ---\n", o.months(r.TargetMonths))
	switch {
	case r.AlreadyReached:
		fmt.Fprintf(o.w, "Current holdings already reach the goal\n")
	case !r.Converged:
		fmt.Fprintf(o.w, "No monthly saving within the search range reaches the goal\n")
	default:
		fmt.Fprintf(o.w, "Grams per month: %.3f\n", r.MonthlySavingGrams)
		fmt.Fprintf(o.w, "Cost per month at today's price: %s\n", o.amount(r.MonthlyCost))
	}
}

// ExpensePretty outputs a human-readable budget analysis.
func (o *Writer) ExpensePretty(out expense.Output) {
	fmt.Fprintf(o.w, "--- Budget health: %d/100 (%s) ---\n", out.Health.Score, out.Health.Level)
	fmt.Fprintf(o.w, "Category  | Amount | Share | Status\n")
	fmt.Fprintf(o.w, "________  | ______ | _____ | ______\n")
	for _, c := range out.Categories {
		fmt.Fprintf(o.w, "%s | %s | %.1f%% | %s\n", c.Category, o.amount(c.Amount), c.Percent, c.Status)
	}
	if len(out.Leaks) > 0 {
		fmt.Fprintf(o.w, "Leaks:\n")
		for _, l := range out.Leaks {
			fmt.Fprintf(o.w, "  - %s: %.1f%% over ideal (%s), %s per month\n", l.Category, l.Excess, l.Severity, o.amount(l.Amount))
		}
	}
	fmt.Fprintf(o.w, "50/30/20: needs %.1f%%, wants %.1f%%, savings %.1f%%\n",
		out.Rule.Needs.Percent, out.Rule.Wants.Percent, out.Rule.Savings.Percent)
	fmt.Fprintf(o.w, "Fixed costs: %.1f%% of income (%s)\n", out.Fragility.Ratio, out.Fragility.Level)
	if out.DarkMoney.Reported {
		fmt.Fprintf(o.w, "Dark money: %s per month, %s per year\n", o.amount(out.DarkMoney.Amount), o.amount(out.DarkMoney.Annual))
	}
	fmt.Fprintf(o.w, "Emergency fund: %.1f months (%s)\n", out.EmergencyFund.Months, out.EmergencyFund.Status)
	if out.Calendar.PeakMonth > 0 {
		fmt.Fprintf(o.w, "Heaviest annual month: %d (%s)\n", out.Calendar.PeakMonth, o.amount(out.Calendar.PeakTotal))
	}
}

// PurchasingPowerPretty outputs a human-readable inflation table.
func (o *Writer) PurchasingPowerPretty(r inflation.Result) {
	fmt.Fprintf(o.w, "--- Purchasing power of %s at %.1f%% inflation ---\n", o.amount(r.Amount), r.InflationRate)
	fmt.Fprintf(o.w, "Year | Equivalent | Real value | Lost\n")
	fmt.Fprintf(o.w, "____ | __________ | __________ | ____\n")
	for _, y := range r.Table {
		fmt.Fprintf(o.w, "%d | %s | %s | %.1f%%\n", y.Year, o.amount(y.EquivalentAmount), o.amount(y.RealValue), y.LossPercent)
	}
}

// JSONFormat outputs a result as indented JSON.
func JSONFormat(w io.Writer, result any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeCsv(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// LoanCsv outputs a repayment schedule in comma-separated value format.
func LoanCsv(w io.Writer, s loans.Schedule) error {
	rows := make([][]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		rows = append(rows, []string{
			strconv.Itoa(row.Month), money(row.StartBalance), money(row.Interest),
			money(row.Principal), money(row.Payment), money(row.EndBalance), strconv.FormatBool(row.FeeOnly),
		})
	}
	return writeCsv(w, []string{"month", "start balance", "interest", "principal", "payment", "end balance", "fee only"}, rows)
}

// GoldCsv outputs the scenario table in comma-separated value format.
func GoldCsv(w io.Writer, c gold.CombinedResult) error {
	rows := make([][]string, 0, len(c.Scenarios)+1)
	for _, s := range c.Scenarios {
		rows = append(rows, []string{
			s.Name, strconv.Itoa(s.Result.Months), strconv.FormatBool(s.Result.IsUnrealistic),
			money(s.Result.TargetAtReach), money(s.Result.LiquidAtReach),
		})
	}
	rows = append(rows, []string{"bank", strconv.Itoa(c.Bank.Months), strconv.FormatBool(c.Bank.IsUnrealistic), "", money(c.Bank.FinalBalance)})
	return writeCsv(w, []string{"scenario", "months", "unrealistic", "target at reach", "liquid at reach"}, rows)
}

// RequiredSavingCsv outputs the solved saving as a single record.
func RequiredSavingCsv(w io.Writer, r gold.RequiredSaving) error {
	row := []string{
		strconv.Itoa(r.TargetMonths), strconv.FormatFloat(r.MonthlySavingGrams, 'f', 3, 64), money(r.MonthlyCost),
		strconv.Itoa(r.Months), strconv.FormatBool(r.Converged), strconv.FormatBool(r.AlreadyReached),
	}
	return writeCsv(w, []string{"target months", "monthly saving grams", "monthly cost", "months", "converged", "already reached"}, [][]string{row})
}

// ExpenseCsv outputs the category table in comma-separated value format.
func ExpenseCsv(w io.Writer, out expense.Output) error {
	rows := make([][]string, 0, len(out.Categories))
	for _, c := range out.Categories {
		rows = append(rows, []string{
			string(c.Category), money(c.Amount), strconv.FormatFloat(c.Percent, 'f', 1, 64), string(c.Status),
		})
	}
	return writeCsv(w, []string{"category", "amount", "percent", "status"}, rows)
}

// PurchasingPowerCsv outputs the yearly table in comma-separated value format.
func PurchasingPowerCsv(w io.Writer, r inflation.Result) error {
	rows := make([][]string, 0, len(r.Table))
	for _, y := range r.Table {
		rows = append(rows, []string{
			strconv.Itoa(y.Year), money(y.EquivalentAmount), money(y.RealValue), strconv.FormatFloat(y.LossPercent, 'f', 2, 64),
		})
	}
	return writeCsv(w, []string{"year", "equivalent amount", "real value", "loss percent"}, rows)
}
