package expense

import "github.com/takhmino/takhmino/pkg/constants"

// Tenure is how the household holds its home.
type Tenure string

const (
	TenureRent     Tenure = "rent"
	TenureOwned    Tenure = "owned"
	TenureMortgage Tenure = "mortgage"
)

// CityTier is the size class of the household's city.
type CityTier string

const (
	CityMetro CityTier = "metro"
	CityMid   CityTier = "mid"
	CitySmall CityTier = "small"
)

// FamilySize is the household size bracket.
type FamilySize string

const (
	FamilySingle FamilySize = "single"
	FamilyCouple FamilySize = "couple"
	FamilySmall  FamilySize = "small"
	FamilyLarge  FamilySize = "large"
)

// Profile describes the household for peer benchmarking only.
type Profile struct {
	Tenure     Tenure     `json:"tenure" yaml:"tenure"`
	FamilySize FamilySize `json:"familySize" yaml:"familySize"`
	CityTier   CityTier   `json:"cityTier" yaml:"cityTier"`
}

// Sanitize replaces unknown values with rent, single and metro.
func (p Profile) Sanitize() Profile {
	switch p.Tenure {
	case TenureRent, TenureOwned, TenureMortgage:
	default:
		p.Tenure = TenureRent
	}
	switch p.FamilySize {
	case FamilySingle, FamilyCouple, FamilySmall, FamilyLarge:
	default:
		p.FamilySize = FamilySingle
	}
	switch p.CityTier {
	case CityMetro, CityMid, CitySmall:
	default:
		p.CityTier = CityMetro
	}
	return p
}

// Income tiers for peer benchmarks.
const (
	IncomeTierLow  = "low"
	IncomeTierMid  = "mid"
	IncomeTierHigh = "high"
)

// IncomeTier buckets a monthly income.
func IncomeTier(income float64) string {
	switch {
	case income < constants.IncomeTierLow:
		return IncomeTierLow
	case income <= constants.IncomeTierHigh:
		return IncomeTierMid
	default:
		return IncomeTierHigh
	}
}

type peerRange struct {
	Min float64
	Max float64
}

// peerRanges are typical shares of income for renting households by income
// tier, before the city and family adjustments.
var peerRanges = map[string]map[Category]peerRange{
	IncomeTierLow: {
		CategoryHousing:   {30, 45},
		CategoryFood:      {20, 30},
		CategoryTransport: {8, 12},
		CategoryHealth:    {3, 6},
		CategoryBills:     {5, 8},
		CategoryLifestyle: {3, 8},
		CategoryFinance:   {0, 10},
		CategorySaving:    {0, 5},
	},
	IncomeTierMid: {
		CategoryHousing:   {25, 35},
		CategoryFood:      {15, 22},
		CategoryTransport: {8, 12},
		CategoryHealth:    {4, 7},
		CategoryBills:     {4, 7},
		CategoryLifestyle: {6, 12},
		CategoryFinance:   {0, 12},
		CategorySaving:    {5, 12},
	},
	IncomeTierHigh: {
		CategoryHousing:   {20, 30},
		CategoryFood:      {10, 16},
		CategoryTransport: {6, 10},
		CategoryHealth:    {4, 8},
		CategoryBills:     {3, 5},
		CategoryLifestyle: {10, 18},
		CategoryFinance:   {0, 15},
		CategorySaving:    {10, 25},
	},
}

var (
	ownedHousingRange = peerRange{3, 9}

	mortgageHousingFactor = 0.7

	cityHousingFactors = map[CityTier]float64{
		CityMetro: 1.2,
		CityMid:   0.8,
		CitySmall: 0.65,
	}

	familyFoodFactors = map[FamilySize]float64{
		FamilySingle: 1.0,
		FamilyCouple: 1.1,
		FamilySmall:  1.2,
		FamilyLarge:  1.35,
	}
)

// Peer statuses.
const (
	PeerMuchHigher = "much_higher"
	PeerHigher     = "higher"
	PeerSimilar    = "similar"
	PeerLower      = "lower"
	PeerMuchLower  = "much_lower"
)

// PeerComparison places a category's share of income against similar
// households.
type PeerComparison struct {
	Category    Category `json:"category"`
	UserPercent float64  `json:"userPercent"`
	PeerMin     float64  `json:"peerMin"`
	PeerMax     float64  `json:"peerMax"`
	Status      string   `json:"status"`
}

// PeerRange returns the adjusted peer range of a category for an income
// and household profile. Owning outright collapses housing to 3-9%; a
// mortgage scales the rent range by 0.7 and the city tier scales it by
// 1.2, 0.8 or 0.65. Food scales with family size.
func PeerRange(c Category, income float64, profile Profile) (float64, float64) {
	profile = profile.Sanitize()
	r := peerRanges[IncomeTier(income)][c]

	switch c {
	case CategoryHousing:
		if profile.Tenure == TenureOwned {
			return ownedHousingRange.Min, ownedHousingRange.Max
		}
		factor := cityHousingFactors[profile.CityTier]
		if profile.Tenure == TenureMortgage {
			factor *= mortgageHousingFactor
		}
		r.Min *= factor
		r.Max *= factor
	case CategoryFood:
		factor := familyFoodFactors[profile.FamilySize]
		r.Min *= factor
		r.Max *= factor
	}
	return r.Min, r.Max
}

// ComparePeers builds a peer comparison for every category. Without income
// there is nothing to compare.
func ComparePeers(totals Totals, income float64, profile Profile) []PeerComparison {
	comparisons := []PeerComparison{}
	if income <= 0 {
		return comparisons
	}

	for _, c := range Categories {
		lo, hi := PeerRange(c, income, profile)
		pct := totals.Percent(c, income)
		comparisons = append(comparisons, PeerComparison{
			Category:    c,
			UserPercent: pct,
			PeerMin:     lo,
			PeerMax:     hi,
			Status:      peerStatus(pct, lo, hi),
		})
	}
	return comparisons
}

// peerStatus is much_higher beyond one and a half times the peer maximum and
// much_lower under half the peer minimum.
func peerStatus(pct, lo, hi float64) string {
	switch {
	case pct > hi*1.5:
		return PeerMuchHigher
	case pct > hi:
		return PeerHigher
	case pct < lo*0.5:
		return PeerMuchLower
	case pct < lo:
		return PeerLower
	default:
		return PeerSimilar
	}
}
