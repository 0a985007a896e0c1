package tools

import (
	"github.com/takhmino/takhmino/pkg/expense"
	"github.com/takhmino/takhmino/pkg/format"
	"github.com/takhmino/takhmino/pkg/gold"
	"github.com/takhmino/takhmino/pkg/loans"
)

// Request documents accept plain numbers or localized numeric strings for
// every numeric field, in JSON and in YAML.

// LoanRequest describes a loan to schedule.
type LoanRequest struct {
	Principal         format.Number `json:"principal" yaml:"principal"`
	AnnualRatePercent format.Number `json:"annualRatePercent" yaml:"annualRatePercent"`
	TermMonths        format.Number `json:"termMonths" yaml:"termMonths"`
	Kind              string        `json:"kind" yaml:"kind"`
	FeeMethod         string        `json:"feeMethod" yaml:"feeMethod"`
	Save              bool          `json:"save" yaml:"save"`
}

// Parameters converts the request for the schedule engine.
func (r LoanRequest) Parameters() loans.Parameters {
	return loans.Parameters{
		Principal:         r.Principal.Float64(),
		AnnualRatePercent: r.AnnualRatePercent.Float64(),
		TermMonths:        int(r.TermMonths.Float64()),
		Kind:              loans.Kind(r.Kind),
		FeeMethod:         loans.FeeMethod(r.FeeMethod),
	}
}

// GoldRequest describes a gold savings plan.
type GoldRequest struct {
	TargetAmount             format.Number  `json:"targetAmount" yaml:"targetAmount"`
	CurrentGoldGrams         format.Number  `json:"currentGoldGrams" yaml:"currentGoldGrams"`
	MonthlySavingGrams       format.Number  `json:"monthlySavingGrams" yaml:"monthlySavingGrams"`
	GoldPrice                format.Number  `json:"goldPrice" yaml:"goldPrice"`
	GoldGrowthRate           format.Number  `json:"goldGrowthRate" yaml:"goldGrowthRate"`
	USDGrowthRate            format.Number  `json:"usdGrowthRate" yaml:"usdGrowthRate"`
	InflationRate            format.Number  `json:"inflationRate" yaml:"inflationRate"`
	BankRate                 format.Number  `json:"bankRate" yaml:"bankRate"`
	BuyFee                   format.Number  `json:"buyFee" yaml:"buyFee"`
	BuyTax                   format.Number  `json:"buyTax" yaml:"buyTax"`
	SellFee                  format.Number  `json:"sellFee" yaml:"sellFee"`
	StorageFee               format.Number  `json:"storageFee" yaml:"storageFee"`
	Volatility               format.Number  `json:"volatility" yaml:"volatility"`
	AnnualShock              format.Number  `json:"annualShock" yaml:"annualShock"`
	AchievementRate          *format.Number `json:"achievementRate" yaml:"achievementRate"`
	AdjustTargetForInflation bool           `json:"adjustTargetForInflation" yaml:"adjustTargetForInflation"`
	EstimateRange            bool           `json:"estimateRange" yaml:"estimateRange"`
	Save                     bool           `json:"save" yaml:"save"`
}

// Parameters converts the request. A missing achievement rate means every
// planned purchase is made.
func (r GoldRequest) Parameters() gold.Parameters {
	achievement := 100.0
	if r.AchievementRate != nil {
		achievement = r.AchievementRate.Float64()
	}
	return gold.Parameters{
		TargetAmount:             r.TargetAmount.Float64(),
		CurrentGoldGrams:         r.CurrentGoldGrams.Float64(),
		MonthlySavingGrams:       r.MonthlySavingGrams.Float64(),
		GoldPrice:                r.GoldPrice.Float64(),
		GoldGrowthRate:           r.GoldGrowthRate.Float64(),
		USDGrowthRate:            r.USDGrowthRate.Float64(),
		InflationRate:            r.InflationRate.Float64(),
		BankRate:                 r.BankRate.Float64(),
		BuyFee:                   r.BuyFee.Float64(),
		BuyTax:                   r.BuyTax.Float64(),
		SellFee:                  r.SellFee.Float64(),
		StorageFee:               r.StorageFee.Float64(),
		Volatility:               r.Volatility.Float64(),
		AnnualShock:              r.AnnualShock.Float64(),
		AchievementRate:          achievement,
		AdjustTargetForInflation: r.AdjustTargetForInflation,
		EstimateRange:            r.EstimateRange,
	}
}

// RequiredSavingRequest is a gold plan plus the horizon to solve for.
type RequiredSavingRequest struct {
	GoldRequest  `yaml:",inline"`
	TargetMonths format.Number `json:"targetMonths" yaml:"targetMonths"`
}

// AnnualItemRequest is a yearly expense paid in a single month.
type AnnualItemRequest struct {
	Name     string        `json:"name" yaml:"name"`
	Amount   format.Number `json:"amount" yaml:"amount"`
	Month    format.Number `json:"month" yaml:"month"`
	Category string        `json:"category" yaml:"category"`
}

// CustomItemRequest is a user-named monthly expense.
type CustomItemRequest struct {
	Name     string        `json:"name" yaml:"name"`
	Amount   format.Number `json:"amount" yaml:"amount"`
	Category string        `json:"category" yaml:"category"`
}

// ExpenseRequest is a monthly budget to analyze.
type ExpenseRequest struct {
	MonthlyIncome format.Number            `json:"monthlyIncome" yaml:"monthlyIncome"`
	MonthlySaving format.Number            `json:"monthlySaving" yaml:"monthlySaving"`
	EmergencyFund format.Number            `json:"emergencyFund" yaml:"emergencyFund"`
	InflationRate format.Number            `json:"inflationRate" yaml:"inflationRate"`
	Mode          string                   `json:"mode" yaml:"mode"`
	Quick         map[string]format.Number `json:"quick" yaml:"quick"`
	Detailed      map[string]format.Number `json:"detailed" yaml:"detailed"`
	AnnualItems   []AnnualItemRequest      `json:"annualItems" yaml:"annualItems"`
	CustomItems   []CustomItemRequest      `json:"customItems" yaml:"customItems"`
	Profile       expense.Profile          `json:"profile" yaml:"profile"`
	Save          bool                     `json:"save" yaml:"save"`
}

// Input converts the request for the expense analyzer.
func (r ExpenseRequest) Input() expense.Input {
	in := expense.Input{
		MonthlyIncome: r.MonthlyIncome.Float64(),
		MonthlySaving: r.MonthlySaving.Float64(),
		EmergencyFund: r.EmergencyFund.Float64(),
		InflationRate: r.InflationRate.Float64(),
		Mode:          expense.Mode(r.Mode),
		Profile:       r.Profile,
	}
	if len(r.Quick) > 0 {
		in.Quick = make(map[expense.Category]float64, len(r.Quick))
		for c, v := range r.Quick {
			in.Quick[expense.Category(c)] = v.Float64()
		}
	}
	if len(r.Detailed) > 0 {
		in.Detailed = make(map[string]float64, len(r.Detailed))
		for field, v := range r.Detailed {
			in.Detailed[field] = v.Float64()
		}
	}
	for _, item := range r.AnnualItems {
		in.AnnualItems = append(in.AnnualItems, expense.AnnualItem{
			Name:     item.Name,
			Amount:   item.Amount.Float64(),
			Month:    int(item.Month.Float64()),
			Category: expense.Category(item.Category),
		})
	}
	for _, item := range r.CustomItems {
		in.CustomItems = append(in.CustomItems, expense.CustomItem{
			Name:     item.Name,
			Amount:   item.Amount.Float64(),
			Category: expense.Category(item.Category),
		})
	}
	return in
}

// PurchasingPowerRequest is an amount projected through years of inflation.
type PurchasingPowerRequest struct {
	Amount        format.Number `json:"amount" yaml:"amount"`
	InflationRate format.Number `json:"inflationRate" yaml:"inflationRate"`
	Years         format.Number `json:"years" yaml:"years"`
	Save          bool          `json:"save" yaml:"save"`
}
