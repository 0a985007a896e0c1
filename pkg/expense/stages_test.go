package expense

import (
	"math"
	"testing"
)

func TestApplyRule503020(t *testing.T) {
	rule := ApplyRule503020(CategoryTotals(healthyBudget()), 100)
	if rule.Needs.Amount != 58 || rule.Wants.Amount != 10 || rule.Savings.Amount != 21 {
		t.Errorf("ApplyRule503020() = %+v", rule)
	}
	if rule.Balanced {
		t.Errorf("ApplyRule503020() balanced with needs at %v%%", rule.Needs.Percent)
	}

	balanced := ApplyRule503020(Totals{CategoryHousing: 30, CategoryFood: 15, CategoryLifestyle: 25, CategorySaving: 30}, 100)
	if !balanced.Balanced {
		t.Errorf("ApplyRule503020() = %+v, expected balanced", balanced)
	}
	if balanced.Needs.Target != 50 || balanced.Wants.Target != 30 || balanced.Savings.Target != 20 {
		t.Errorf("ApplyRule503020() targets = %v/%v/%v", balanced.Needs.Target, balanced.Wants.Target, balanced.Savings.Target)
	}
}

func TestAssessFragility(t *testing.T) {
	tests := []struct {
		name     string
		fixed    float64
		income   float64
		expected string
	}{
		{"Light fixed costs", 20, 100, FragilityStable},
		{"Moderate fixed costs", 45, 100, FragilityModerate},
		{"Heavy fixed costs", 60, 100, FragilityFragile},
		{"Crushing fixed costs", 90, 100, FragilityCritical},
		{"No income", 90, 0, FragilityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := AssessFragility(Totals{CategoryHousing: tt.fixed}, tt.income)
			if f.Level != tt.expected {
				t.Errorf("AssessFragility(%v) = %s, expected %s", tt.fixed, f.Level, tt.expected)
			}
		})
	}
}

func TestEstimateDarkMoney(t *testing.T) {
	tests := []struct {
		name      string
		lifestyle float64
		income    float64
		amount    float64
		reported  bool
	}{
		{"Within allowance", 10, 100, 0, false},
		{"Below reporting threshold", 17, 100, 2, false},
		{"Reported excess", 22, 100, 7, true},
		{"No income", 22, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := EstimateDarkMoney(Totals{CategoryLifestyle: tt.lifestyle}, tt.income)
			if math.Abs(d.Amount-tt.amount) > 1e-9 || d.Reported != tt.reported {
				t.Errorf("EstimateDarkMoney() = %+v, expected amount %v reported %v", d, tt.amount, tt.reported)
			}
			if math.Abs(d.Annual-12*d.Amount) > 1e-9 {
				t.Errorf("EstimateDarkMoney() annual = %v, expected 12x monthly", d.Annual)
			}
		})
	}
}

func TestAssessEmergencyFund(t *testing.T) {
	tests := []struct {
		name     string
		balance  float64
		expenses float64
		expected string
	}{
		{"Empty fund", 0, 100, CoverageNone},
		{"Half a month", 50, 100, CoverageNone},
		{"Two months", 200, 100, CoverageWeak},
		{"Three months", 300, 100, CoverageAdequate},
		{"Six months", 600, 100, CoverageStrong},
		{"No expenses with savings", 10, 0, CoverageStrong},
		{"No expenses and no savings", 0, 0, CoverageNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := AssessEmergencyFund(tt.balance, tt.expenses)
			if e.Status != tt.expected {
				t.Errorf("AssessEmergencyFund(%v, %v) = %s, expected %s", tt.balance, tt.expenses, e.Status, tt.expected)
			}
		})
	}
}

func TestProjectExpenses(t *testing.T) {
	p := ProjectExpenses(1000, 40)
	if math.Abs(p.NextYearMonthly-1400) > 1e-9 || math.Abs(p.MonthlyIncrease-400) > 1e-9 {
		t.Errorf("ProjectExpenses() = %+v", p)
	}
}

func TestBuildAnnualCalendar(t *testing.T) {
	cal := BuildAnnualCalendar([]AnnualItem{
		{Name: "insurance", Amount: 100, Month: 3},
		{Name: "tax", Amount: 50, Month: 3},
		{Name: "school", Amount: 120, Month: 7},
		{Name: "invalid", Amount: 999, Month: 0},
	})

	if cal.PeakMonth != 3 || cal.PeakTotal != 150 {
		t.Errorf("BuildAnnualCalendar() peak = month %d (%v), expected month 3 (150)", cal.PeakMonth, cal.PeakTotal)
	}
	if cal.Total != 270 || cal.Months[6] != 120 {
		t.Errorf("BuildAnnualCalendar() = %+v", cal)
	}

	if empty := BuildAnnualCalendar(nil); empty.PeakMonth != 0 || empty.Total != 0 {
		t.Errorf("BuildAnnualCalendar(nil) = %+v", empty)
	}
}

func TestPeerRange(t *testing.T) {
	income := 30_000_000.0

	tests := []struct {
		name     string
		category Category
		profile  Profile
		min      float64
		max      float64
	}{
		{"Metro renter", CategoryHousing, Profile{Tenure: TenureRent, CityTier: CityMetro}, 30, 42},
		{"Owner outright", CategoryHousing, Profile{Tenure: TenureOwned, CityTier: CitySmall}, 3, 9},
		{"Metro mortgage", CategoryHousing, Profile{Tenure: TenureMortgage, CityTier: CityMetro}, 21, 29.4},
		{"Small city renter", CategoryHousing, Profile{Tenure: TenureRent, CityTier: CitySmall}, 16.25, 22.75},
		{"Large family food", CategoryFood, Profile{FamilySize: FamilyLarge}, 20.25, 29.7},
		{"Transport is unadjusted", CategoryTransport, Profile{FamilySize: FamilyLarge, CityTier: CitySmall}, 8, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := PeerRange(tt.category, income, tt.profile)
			if math.Abs(lo-tt.min) > 1e-9 || math.Abs(hi-tt.max) > 1e-9 {
				t.Errorf("PeerRange() = %v-%v, expected %v-%v", lo, hi, tt.min, tt.max)
			}
		})
	}
}

func TestIncomeTier(t *testing.T) {
	tests := []struct {
		income   float64
		expected string
	}{
		{19_999_999, IncomeTierLow},
		{20_000_000, IncomeTierMid},
		{40_000_000, IncomeTierMid},
		{40_000_001, IncomeTierHigh},
	}

	for _, tt := range tests {
		if result := IncomeTier(tt.income); result != tt.expected {
			t.Errorf("IncomeTier(%v) = %s, expected %s", tt.income, result, tt.expected)
		}
	}
}

func TestComparePeers(t *testing.T) {
	income := 30_000_000.0
	totals := Totals{
		CategoryHousing:   0.70 * income,
		CategoryFood:      0.18 * income,
		CategoryTransport: 0.13 * income,
		CategoryLifestyle: 0.05 * income,
		CategorySaving:    0.02 * income,
	}

	cards := ComparePeers(totals, income, Profile{})
	status := make(map[Category]string)
	for _, card := range cards {
		status[card.Category] = card.Status
	}

	expected := map[Category]string{
		CategoryHousing:   PeerMuchHigher,
		CategoryFood:      PeerSimilar,
		CategoryTransport: PeerHigher,
		CategoryLifestyle: PeerLower,
		CategorySaving:    PeerMuchLower,
	}
	for c, want := range expected {
		if status[c] != want {
			t.Errorf("ComparePeers()[%s] = %s, expected %s", c, status[c], want)
		}
	}
}
