package insights

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/ecovate/internal/common"
)

type Category string

const (
	CategoryAll         Category = "all"
	CategoryTransport   Category = "transport"
	CategoryEnergy      Category = "energy"
	CategoryWaste       Category = "waste"
	CategoryConsumption Category = "consumption"
	CategoryInvestment  Category = "investment"
)

// ParseCategory accepts the category names case-insensitively; an empty
// string means all categories.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CategoryAll, nil
	case CategoryAll, CategoryTransport, CategoryEnergy, CategoryWaste, CategoryConsumption, CategoryInvestment:
		return c, nil
	default:
		return "", fmt.Errorf("%w %q", common.ErrUnknownCategory, s)
	}
}

type Recommendation struct {
	ID          string
	Title       string
	Description string
	Category    Category
	// KgPerYear is the expected CO2 reduction.
	KgPerYear int
	Effort    string
	Cost      string
	Timeframe string
	Priority  int
}

var recommendations = []Recommendation{
	{
		ID: "1", Title: "Switch to Electric Vehicle", Category: CategoryTransport,
		Description: "Based on a 250km weekly driving pattern, an EV could reduce transport emissions by 75%.",
		KgPerYear:   2400, Effort: "high", Cost: "high", Timeframe: "6 months", Priority: 9,
	},
	{
		ID: "2", Title: "Install Smart Thermostat", Category: CategoryEnergy,
		Description: "Automated temperature control typically saves 20% of heating energy.",
		KgPerYear:   850, Effort: "low", Cost: "low", Timeframe: "1 week", Priority: 8,
	},
	{
		ID: "3", Title: "Solar Panel Installation", Category: CategoryEnergy,
		Description: "Solar panels could offset 60% of your electricity emissions.",
		KgPerYear:   1800, Effort: "high", Cost: "high", Timeframe: "3 months", Priority: 7,
	},
	{
		ID: "4", Title: "Reduce Meat Consumption", Category: CategoryConsumption,
		Description: "Replace 50% of meat meals with plant-based alternatives.",
		KgPerYear:   650, Effort: "medium", Cost: "free", Timeframe: "1 month", Priority: 6,
	},
	{
		ID: "5", Title: "Home Insulation Upgrade", Category: CategoryEnergy,
		Description: "Better insulation could reduce heating needs by 30%.",
		KgPerYear:   950, Effort: "medium", Cost: "medium", Timeframe: "2 months", Priority: 7,
	},
	{
		ID: "6", Title: "Invest in Carbon Credits", Category: CategoryInvestment,
		Description: "Verified reforestation projects that match your offset goals.",
		KgPerYear:   500, Effort: "low", Cost: "medium", Timeframe: "1 day", Priority: 5,
	},
}

// Recommendations returns the catalog entries in category, highest priority
// first. Entries of equal priority keep catalog order.
func Recommendations(category Category) []Recommendation {
	out := make([]Recommendation, 0, len(recommendations))
	for _, r := range recommendations {
		if category == CategoryAll || r.Category == category {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b Recommendation) int { return b.Priority - a.Priority })
	return out
}
