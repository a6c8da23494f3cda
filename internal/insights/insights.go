package insights

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/ecovate/internal/reference"
)

type Kind string

const (
	KindPrediction     Kind = "prediction"
	KindRecommendation Kind = "recommendation"
	KindAlert          Kind = "alert"
	KindOptimization   Kind = "optimization"

	KindPositive Kind = "positive"
	KindWarning  Kind = "warning"
	KindInfo     Kind = "info"
)

type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

type Insight struct {
	Kind        Kind
	Title       string
	Description string
	Confidence  float64
	Impact      Impact
	Category    string
}

// Activity is a recorded emission source with its CO2 impact in kg.
type Activity struct {
	Key    string
	Label  string
	Impact decimal.Decimal
}

// Input is everything Analyze looks at.
type Input struct {
	Readings   []reference.Reading
	Activities []Activity
	Sensors    []reference.Sensor
}

// trendWindow is the number of readings averaged on each side of a trend
// comparison.
const trendWindow = 5

// anomalyRate is the chance that a sensor anomaly is reported.
const anomalyRate = 0.3

// highImpact are the activity keys worth a dedicated reduction hint.
var highImpact = map[string]bool{"car-travel": true, "air-travel": true, "electricity": true}

// Analyze produces insights in a fixed order: the CO2 trend (needs two
// windows of readings), a personal reduction hint, a possible sensor
// anomaly, then the standing efficiency and investment opportunities.
func Analyze(in Input, rnd *rand.Rand) []Insight {
	var out []Insight

	if len(in.Readings) >= 2*trendWindow {
		out = append(out, trendInsight(in.Readings))
	}
	if len(in.Activities) > 0 {
		out = append(out, activityInsight(in.Activities))
	}
	if len(in.Sensors) > 0 && rnd.Float64() < anomalyRate {
		s := in.Sensors[rnd.IntN(len(in.Sensors))]
		out = append(out, Insight{
			Kind:        KindAlert,
			Title:       "Sensor Anomaly Detected",
			Description: fmt.Sprintf("%s is showing irregular readings: possible calibration needed or environmental interference.", s.Name),
			Confidence:  0.75,
			Impact:      ImpactMedium,
			Category:    "Technical",
		})
	}

	return append(out,
		Insight{
			Kind:        KindOptimization,
			Title:       "Energy Efficiency Opportunity",
			Description: "Installing smart thermostats could reduce your carbon footprint by 15-20% based on your usage patterns.",
			Confidence:  0.78,
			Impact:      ImpactHigh,
			Category:    "Efficiency",
		},
		Insight{
			Kind:        KindRecommendation,
			Title:       "Carbon Credit Investment",
			Description: "Based on your emissions profile, investing in reforestation projects would offset 85% of your monthly footprint.",
			Confidence:  0.82,
			Impact:      ImpactMedium,
			Category:    "Investment",
		},
	)
}

// trendInsight compares the mean of the last window with the window before it.
func trendInsight(readings []reference.Reading) Insight {
	n := len(readings)
	recent := mean(readings[n-trendWindow:])
	older := mean(readings[n-2*trendWindow : n-trendWindow])

	change := 0.0
	if older != 0 {
		change = (recent - older) / older * 100
	}

	direction, impact := "decrease", ImpactMedium
	if change > 0 {
		direction, impact = "increase", ImpactHigh
	}
	return Insight{
		Kind:  KindPrediction,
		Title: "CO2 Level Forecast",
		Description: fmt.Sprintf("Based on recent patterns, CO2 levels are expected to %s by %.1f%% in the next 7 days.",
			direction, math.Abs(change)),
		Confidence: math.Min(0.9, 0.6+math.Abs(change)/100),
		Impact:     impact,
		Category:   "Environmental",
	}
}

// activityInsight points at the largest high-impact activity and its share
// of everything recorded.
func activityInsight(activities []Activity) Insight {
	total := decimal.Zero
	for _, a := range activities {
		total = total.Add(a.Impact)
	}

	byKey := map[string]decimal.Decimal{}
	labels := map[string]string{}
	var top string
	for _, a := range activities {
		if !highImpact[a.Key] {
			continue
		}
		byKey[a.Key] = byKey[a.Key].Add(a.Impact)
		labels[a.Key] = a.Label
		if top == "" || byKey[a.Key].GreaterThan(byKey[top]) {
			top = a.Key
		}
	}

	ins := Insight{
		Kind:        KindRecommendation,
		Title:       "Personalized Carbon Reduction",
		Description: "Consider a home energy audit to identify the most impactful reduction opportunities.",
		Confidence:  0.72,
		Impact:      ImpactHigh,
		Category:    "Action",
	}
	if top == "" {
		return ins
	}

	share := decimal.NewFromInt(100)
	if total.IsPositive() {
		share = byKey[top].Div(total).Mul(decimal.NewFromInt(100))
	}
	ins.Description = fmt.Sprintf("Focus on reducing %s: it represents %s%% of your recorded footprint. Consider alternatives like public transport or electric vehicles.",
		strings.ToLower(labels[top]), share.Round(0).String())
	ins.Confidence = 0.85
	return ins
}

func mean(readings []reference.Reading) float64 {
	if len(readings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range readings {
		sum += r.CO2
	}
	return float64(sum) / float64(len(readings))
}

// Averages are mean CO2 levels over trailing windows of hourly readings.
type Averages struct {
	Recent int // last 6 hours
	Day    int
	Week   int
}

// RollingAverages expects hourly readings ordered oldest first.
func RollingAverages(readings []reference.Reading) Averages {
	tail := func(hours int) int {
		return int(math.Round(mean(readings[max(0, len(readings)-hours):])))
	}
	return Averages{Recent: tail(6), Day: tail(24), Week: tail(24 * 7)}
}
