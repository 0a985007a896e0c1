package inflation

import (
	"math"
	"strings"
	"testing"
)

func TestPurchasingPower(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		inflation  float64
		years      int
		equivalent float64
		real       float64
		loss       float64
	}{
		{"No inflation", 1000, 0, 5, 1000, 1000, 0},
		{"Doubling prices", 1000, 100, 1, 2000, 500, 50},
		{"Two years at 25%", 1600, 25, 2, 2500, 1024, 36},
		{"Zero years", 1000, 40, 0, 1000, 1000, 0},
		{"Negative amount", -500, 30, 3, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PurchasingPower(tt.amount, tt.inflation, tt.years)
			if math.Abs(result.EquivalentAmount-tt.equivalent) > 1e-6 {
				t.Errorf("PurchasingPower() equivalent = %v, expected %v", result.EquivalentAmount, tt.equivalent)
			}
			if math.Abs(result.RealValue-tt.real) > 1e-6 {
				t.Errorf("PurchasingPower() real value = %v, expected %v", result.RealValue, tt.real)
			}
			if tt.amount > 0 && math.Abs(result.LossPercent-tt.loss) > 1e-6 {
				t.Errorf("PurchasingPower() loss = %v, expected %v", result.LossPercent, tt.loss)
			}
			if len(result.Table) != tt.years {
				t.Errorf("PurchasingPower() table has %d rows, expected %d", len(result.Table), tt.years)
			}
		})
	}
}

func TestPurchasingPowerTable(t *testing.T) {
	result := PurchasingPower(100, 10, 250)
	if result.Years != MaxYears || len(result.Table) != MaxYears {
		t.Fatalf("PurchasingPower() years = %d, expected cap %d", result.Years, MaxYears)
	}
	for i := 1; i < len(result.Table); i++ {
		if result.Table[i].RealValue >= result.Table[i-1].RealValue {
			t.Fatalf("real value did not decline in year %d", result.Table[i].Year)
		}
	}
	if !strings.Contains(Summary(PurchasingPower(1000, 100, 1)), "worth 500") {
		t.Errorf("Summary() = %q", Summary(PurchasingPower(1000, 100, 1)))
	}
}
