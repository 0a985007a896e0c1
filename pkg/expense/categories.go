package expense

import "sort"

// Category is a budget category.
type Category string

const (
	CategoryHousing   Category = "housing"
	CategoryFood      Category = "food"
	CategoryTransport Category = "transport"
	CategoryHealth    Category = "health"
	CategoryBills     Category = "bills"
	CategoryLifestyle Category = "lifestyle"
	CategoryFinance   Category = "finance"
	CategorySaving    Category = "saving"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryHousing,
	CategoryFood,
	CategoryTransport,
	CategoryHealth,
	CategoryBills,
	CategoryLifestyle,
	CategoryFinance,
	CategorySaving,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// band is an ideal share of income with a wider warning ceiling, in percent.
type band struct {
	IdealMin float64
	IdealMax float64
	WarnMax  float64
}

// idealBands are the calibrated ideal shares of income. Saving is judged
// against IdealMin only.
var idealBands = map[Category]band{
	CategoryHousing:   {IdealMin: 20, IdealMax: 30, WarnMax: 40},
	CategoryFood:      {IdealMin: 10, IdealMax: 15, WarnMax: 20},
	CategoryTransport: {IdealMin: 5, IdealMax: 10, WarnMax: 15},
	CategoryHealth:    {IdealMin: 3, IdealMax: 7, WarnMax: 10},
	CategoryBills:     {IdealMin: 3, IdealMax: 7, WarnMax: 10},
	CategoryLifestyle: {IdealMin: 5, IdealMax: 15, WarnMax: 25},
	CategoryFinance:   {IdealMin: 0, IdealMax: 15, WarnMax: 25},
	CategorySaving:    {IdealMin: 10, IdealMax: 100, WarnMax: 100},
}

// fieldCategories maps itemized (detailed mode) fields to their category.
var fieldCategories = map[string]Category{
	"rent":             CategoryHousing,
	"mortgage":         CategoryHousing,
	"buildingCharge":   CategoryHousing,
	"homeMaintenance":  CategoryHousing,
	"groceries":        CategoryFood,
	"diningOut":        CategoryFood,
	"snacks":           CategoryFood,
	"fuel":             CategoryTransport,
	"publicTransport":  CategoryTransport,
	"taxi":             CategoryTransport,
	"carMaintenance":   CategoryTransport,
	"carInsurance":     CategoryTransport,
	"doctor":           CategoryHealth,
	"medicine":         CategoryHealth,
	"healthInsurance":  CategoryHealth,
	"dental":           CategoryHealth,
	"electricity":      CategoryBills,
	"water":            CategoryBills,
	"gas":              CategoryBills,
	"internet":         CategoryBills,
	"mobile":           CategoryBills,
	"clothing":         CategoryLifestyle,
	"entertainment":    CategoryLifestyle,
	"subscriptions":    CategoryLifestyle,
	"gifts":            CategoryLifestyle,
	"travel":           CategoryLifestyle,
	"personalCare":     CategoryLifestyle,
	"loanInstallments": CategoryFinance,
	"creditCard":       CategoryFinance,
	"lifeInsurance":    CategoryFinance,
	"familySupport":    CategoryFinance,
}

// FieldCategory returns the category an itemized field belongs to.
// Unknown fields are counted as lifestyle spending.
func FieldCategory(field string) (Category, bool) {
	c, ok := fieldCategories[field]
	if !ok {
		return CategoryLifestyle, false
	}
	return c, true
}

// Fields returns the itemized fields of a category in sorted order.
func Fields(c Category) []string {
	var fields []string
	for field, category := range fieldCategories {
		if category == c {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	return fields
}
