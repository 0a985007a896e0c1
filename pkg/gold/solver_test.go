package gold

import (
	"math"
	"strings"
	"testing"
)

func TestRequiredMonthlySaving(t *testing.T) {
	tests := []struct {
		name         string
		modify       func(p *Parameters)
		targetMonths int
		expected     float64
	}{
		{"One gram per month over a year", func(p *Parameters) {}, 12, 1},
		{"Half the time needs twice the grams", func(p *Parameters) {}, 6, 2},
		{"Shortfall is grossed up", func(p *Parameters) { p.AchievementRate = 50 }, 12, 2},
		{"Holdings reduce the need", func(p *Parameters) { p.CurrentGoldGrams = 6 }, 6, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := flatPlan()
			params.TargetAmount = 12000
			tt.modify(&params)

			result := NewSimulator(nil, 1).RequiredMonthlySaving(params, tt.targetMonths)
			if !result.Converged {
				t.Fatalf("RequiredMonthlySaving() did not converge: %+v", result)
			}
			if math.Abs(result.MonthlySavingGrams-tt.expected) > 0.002 {
				t.Errorf("RequiredMonthlySaving() = %v g, expected %v g", result.MonthlySavingGrams, tt.expected)
			}
			if result.Months > tt.targetMonths {
				t.Errorf("RequiredMonthlySaving() solution takes %d months, expected at most %d", result.Months, tt.targetMonths)
			}
			if math.Abs(result.MonthlyCost-result.MonthlySavingGrams*params.GoldPrice) > 1e-6 {
				t.Errorf("RequiredMonthlySaving() cost %v does not match grams at today's price", result.MonthlyCost)
			}
		})
	}
}

func TestRequiredMonthlySavingEdgeCases(t *testing.T) {
	params := flatPlan()
	params.CurrentGoldGrams = 50

	result := NewSimulator(nil, 1).RequiredMonthlySaving(params, 12)
	if !result.AlreadyReached || result.MonthlySavingGrams != 0 {
		t.Errorf("RequiredMonthlySaving() = %+v, expected the goal to be already reached", result)
	}

	params = flatPlan()
	params.AchievementRate = 0
	result = NewSimulator(nil, 1).RequiredMonthlySaving(params, 12)
	if result.Converged {
		t.Errorf("RequiredMonthlySaving() converged with zero achievement rate")
	}

	params = flatPlan()
	params.TargetAmount = 1e9
	params.StorageFee = 100
	result = NewSimulator(nil, 1, WithMaxMonths(36)).RequiredMonthlySaving(params, 500)
	if result.TargetMonths != 36 {
		t.Errorf("RequiredMonthlySaving() target months = %d, expected the 36 month cap", result.TargetMonths)
	}
}

func TestRequiredMonthlySavingFallingPrices(t *testing.T) {
	tests := []struct {
		name   string
		params Parameters
	}{
		{"Halving price", Parameters{TargetAmount: 1000, GoldPrice: 1, GoldGrowthRate: -50, AchievementRate: 100}},
		{"Halving price with shock and storage", Parameters{TargetAmount: 1000, GoldPrice: 1, GoldGrowthRate: -50, AnnualShock: 30, StorageFee: 5, AchievementRate: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := NewSimulator(nil, 1)
			result := sim.RequiredMonthlySaving(tt.params, 120)
			if !result.Converged {
				t.Fatalf("RequiredMonthlySaving() = %+v, expected a solution", result)
			}
			if result.Months > 120 {
				t.Errorf("RequiredMonthlySaving() solution takes %d months, expected at most 120", result.Months)
			}
			if strings.Contains(SavingSummary(result), "no monthly saving") {
				t.Errorf("SavingSummary() = %q, expected a solved saving", SavingSummary(result))
			}

			p := tt.params
			p.MonthlySavingGrams = result.MonthlySavingGrams
			if r := sim.Simulate(p, false); r.IsUnrealistic || r.Months > 120 {
				t.Errorf("Simulate() with the solved saving = %d months, expected at most 120", r.Months)
			}
		})
	}
}

func TestSavingSummary(t *testing.T) {
	tests := []struct {
		name     string
		result   RequiredSaving
		expected string
	}{
		{"Already reached", RequiredSaving{AlreadyReached: true, Converged: true}, "already reach the goal"},
		{"Not converged", RequiredSaving{TargetMonths: 12}, "within 12 months"},
		{"Solved", RequiredSaving{MonthlySavingGrams: 2, MonthlyCost: 2000, Months: 10, Converged: true}, "2.000 g per month (2000 at today's price) reaches the goal in 10 months"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := SavingSummary(tt.result); !strings.Contains(result, tt.expected) {
				t.Errorf("SavingSummary() = %q, expected to contain %q", result, tt.expected)
			}
		})
	}
}
