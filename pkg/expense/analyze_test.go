package expense

import (
	"math"
	"math/rand"
	"strings"
	"testing"
)

// healthyBudget and stretchedBudget use an income of 100 so amounts read as
// percentages.
func healthyBudget() Input {
	return Input{
		MonthlyIncome: 100,
		MonthlySaving: 21,
		Mode:          ModeQuick,
		Quick: map[Category]float64{
			CategoryHousing:   28,
			CategoryFood:      12,
			CategoryTransport: 8,
			CategoryHealth:    5,
			CategoryBills:     5,
			CategoryLifestyle: 10,
		},
	}
}

func stretchedBudget() Input {
	return Input{
		MonthlyIncome: 100,
		Mode:          ModeQuick,
		Quick: map[Category]float64{
			CategoryHousing:   48,
			CategoryFood:      18,
			CategoryTransport: 10,
			CategoryHealth:    5,
			CategoryBills:     8,
			CategoryLifestyle: 22,
			CategoryFinance:   20,
		},
	}
}

func TestCategoryTotals(t *testing.T) {
	base := Input{
		MonthlyIncome: 1000,
		MonthlySaving: 90,
		Quick: map[Category]float64{
			CategoryHousing: 300,
			CategoryFood:    150,
			CategorySaving:  999,
		},
		Detailed: map[string]float64{
			"groceries": 120,
			"diningOut": 60,
			"pets":      20,
		},
	}

	tests := []struct {
		name     string
		mode     Mode
		expected map[Category]float64
	}{
		{"Quick totals only", ModeQuick, map[Category]float64{
			CategoryHousing: 300, CategoryFood: 150, CategoryLifestyle: 0, CategorySaving: 90,
		}},
		{"Itemized fields only", ModeDetailed, map[Category]float64{
			CategoryHousing: 0, CategoryFood: 180, CategoryLifestyle: 20, CategorySaving: 90,
		}},
		{"Mixed prefers itemized per category", ModeMixed, map[Category]float64{
			CategoryHousing: 300, CategoryFood: 180, CategoryLifestyle: 20, CategorySaving: 90,
		}},
		{"Unknown mode falls back to quick", Mode("weekly"), map[Category]float64{
			CategoryHousing: 300, CategoryFood: 150, CategorySaving: 90,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.Mode = tt.mode
			totals := CategoryTotals(in)
			for c, expected := range tt.expected {
				if math.Abs(totals[c]-expected) > 1e-9 {
					t.Errorf("CategoryTotals()[%s] = %v, expected %v", c, totals[c], expected)
				}
			}
		})
	}
}

func TestCategoryTotalsItems(t *testing.T) {
	in := Input{
		Mode: ModeQuick,
		Quick: map[Category]float64{
			CategoryTransport: -50,
			CategoryBills:     math.NaN(),
		},
		AnnualItems: []AnnualItem{
			{Name: "car insurance", Amount: 1200, Month: 3, Category: CategoryTransport},
			{Name: "school fees", Amount: 2400, Month: 14},
		},
		CustomItems: []CustomItem{
			{Name: "pet food", Amount: 40},
			{Name: "gym", Amount: 30, Category: CategoryHealth},
			{Name: "moved to saving", Amount: 10, Category: CategorySaving},
		},
	}

	totals := CategoryTotals(in)
	expected := map[Category]float64{
		CategoryTransport: 100,
		CategoryBills:     0,
		CategoryLifestyle: 200 + 40 + 10,
		CategoryHealth:    30,
		CategorySaving:    0,
	}
	for c, want := range expected {
		if math.Abs(totals[c]-want) > 1e-9 {
			t.Errorf("CategoryTotals()[%s] = %v, expected %v", c, totals[c], want)
		}
	}

	sanitized := in.Sanitize()
	if sanitized.AnnualItems[1].Month != 12 {
		t.Errorf("Sanitize() month = %d, expected 12", sanitized.AnnualItems[1].Month)
	}
}

func TestFieldCategory(t *testing.T) {
	if c, ok := FieldCategory("rent"); !ok || c != CategoryHousing {
		t.Errorf("FieldCategory(rent) = %s, %v", c, ok)
	}
	if c, ok := FieldCategory("unknown"); ok || c != CategoryLifestyle {
		t.Errorf("FieldCategory(unknown) = %s, %v, expected lifestyle fallback", c, ok)
	}
	fields := Fields(CategoryBills)
	if len(fields) != 5 || fields[0] != "electricity" {
		t.Errorf("Fields(bills) = %v", fields)
	}
}

func TestAnalyze(t *testing.T) {
	out := Analyze(healthyBudget())

	if out.TotalExpenses != 68 || out.Saving != 21 || out.Remainder != 11 {
		t.Errorf("Analyze() expenses %v, saving %v, remainder %v", out.TotalExpenses, out.Saving, out.Remainder)
	}
	if len(out.Categories) != len(Categories) {
		t.Fatalf("Analyze() returned %d categories, expected %d", len(out.Categories), len(Categories))
	}
	if out.Category(CategoryFinance).Status != StatusNotSet {
		t.Errorf("finance status = %s, expected not_set", out.Category(CategoryFinance).Status)
	}
	if out.Category(CategorySaving).Status != StatusOK {
		t.Errorf("saving status = %s, expected ok", out.Category(CategorySaving).Status)
	}
	if out.Health.Score != 92 || out.Health.Level != LevelExcellent {
		t.Errorf("health = %d (%s), expected 92 (excellent)", out.Health.Score, out.Health.Level)
	}
	if len(out.Leaks) != 0 {
		t.Errorf("Analyze() leaks = %+v, expected none", out.Leaks)
	}
	if len(out.Peers) != len(Categories) {
		t.Errorf("Analyze() returned %d peer cards", len(out.Peers))
	}
	if out.Fragility.Level != FragilityModerate {
		t.Errorf("fragility = %s, expected moderate", out.Fragility.Level)
	}
	if out.DarkMoney.Reported {
		t.Errorf("Analyze() reported dark money for a modest lifestyle budget")
	}

	summary := Summary(out)
	if !strings.Contains(summary, "health 92/100") {
		t.Errorf("Summary() = %q", summary)
	}

	summary = Summary(Analyze(stretchedBudget()))
	if !strings.Contains(summary, "top leak housing") || !strings.Contains(summary, "dark money") {
		t.Errorf("Summary() = %q", summary)
	}
}

func TestAnalyzeNoIncome(t *testing.T) {
	in := healthyBudget()
	in.MonthlyIncome = 0

	out := Analyze(in)
	if out.Health.Score != 0 {
		t.Errorf("health score = %d, expected 0", out.Health.Score)
	}
	if len(out.Health.Factors) != 1 || out.Health.Factors[0].Key != FactorNoIncome {
		t.Errorf("health factors = %+v, expected a single no_income factor", out.Health.Factors)
	}
	if out.Category(CategoryHousing).Status != StatusInformational {
		t.Errorf("housing status = %s, expected informational", out.Category(CategoryHousing).Status)
	}
	if out.Category(CategoryFinance).Status != StatusNotSet {
		t.Errorf("finance status = %s, expected not_set", out.Category(CategoryFinance).Status)
	}
	if len(out.Leaks) != 0 || len(out.Peers) != 0 || out.DarkMoney.Reported {
		t.Errorf("Analyze() produced income-relative results without income")
	}
	if out.Fragility.Level != FragilityUnknown {
		t.Errorf("fragility = %s, expected unknown", out.Fragility.Level)
	}
}

func TestHealthScoreBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		totals := Totals{}
		for _, c := range Categories {
			totals[c] = rng.Float64() * 5000
		}
		income := 1 + rng.Float64()*10000

		h := HealthScore(totals, income)
		if h.Score < 0 || h.Score > 100 {
			t.Fatalf("HealthScore() = %d for totals %v income %v", h.Score, totals, income)
		}
	}
}
