package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ecovate/internal/insights"
	"github.com/dmitrijs2005/ecovate/internal/reference"
)

// analyticsSensor is the sensor whose history feeds forecasts and insights.
const analyticsSensor = "co2-sensor-001"

func (a *App) analyticsHistory() ([]reference.Reading, error) {
	return a.catalog.History(analyticsSensor, reference.DefaultHistoryHours, a.now(), a.rnd)
}

// Predict prints a daily CO2 forecast for the horizon (7d, 30d or 90d).
func (a *App) Predict(ctx context.Context, horizon string) error {
	h, err := insights.ParseHorizon(horizon)
	if err != nil {
		return err
	}
	history, err := a.analyticsHistory()
	if err != nil {
		return err
	}

	f := insights.NewForecast(history, h, a.now(), a.rnd)
	fmt.Fprintf(a.out, "CO2 forecast for %s, next %d days (current %.0f ppm)\n", analyticsSensor, h.Days(), f.Baseline)

	tw := newTable(a.out)
	fmt.Fprintln(tw, "DATE\tPREDICTED (ppm)\tRANGE\tCONFIDENCE")
	for _, p := range f.Points {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f - %.1f\t%.0f%%\n",
			p.Date.Format("2006-01-02"), p.Predicted, p.Lower, p.Upper, p.Confidence*100)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	printInsights(a, f.Summary())
	return nil
}

// Insights prints rolling averages and insights drawn from the sensor
// history and the activities recorded in the emissions calculator.
func (a *App) Insights(ctx context.Context) error {
	history, err := a.analyticsHistory()
	if err != nil {
		return err
	}

	avg := insights.RollingAverages(history)
	fmt.Fprintf(a.out, "Current average: %d ppm | 24-hour average: %d ppm | 7-day average: %d ppm\n",
		avg.Recent, avg.Day, avg.Week)

	var acts []insights.Activity
	for _, e := range a.emissions.Entries() {
		acts = append(acts, insights.Activity{Key: e.Activity.Key, Label: e.Activity.Label, Impact: e.Impact})
	}

	printInsights(a, insights.Analyze(insights.Input{
		Readings:   history,
		Activities: acts,
		Sensors:    a.catalog.Sensors(),
	}, a.rnd))
	return nil
}

// Recommendations prints the reduction catalog, optionally for one category.
func (a *App) Recommendations(ctx context.Context, category string) error {
	c, err := insights.ParseCategory(category)
	if err != nil {
		return err
	}
	recs := insights.Recommendations(c)
	if len(recs) == 0 {
		fmt.Fprintf(a.out, "No recommendations in %s.\n", c)
		return nil
	}

	total := 0
	tw := newTable(a.out)
	fmt.Fprintln(tw, "PRIORITY\tTITLE\tCATEGORY\tCO2 SAVED (kg/yr)\tEFFORT\tCOST\tTIMEFRAME")
	for _, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.Priority, r.Title, r.Category, r.KgPerYear, r.Effort, r.Cost, r.Timeframe)
		total += r.KgPerYear
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Potential reduction: %d kg CO2 per year\n", total)
	return nil
}

func printInsights(a *App, list []insights.Insight) {
	for _, in := range list {
		tags := []string{string(in.Kind)}
		if in.Impact != "" {
			tags = append(tags, string(in.Impact)+" impact")
		}
		if in.Category != "" {
			tags = append(tags, in.Category)
		}
		fmt.Fprintf(a.out, "* %s [%s, %.0f%% confidence]\n  %s\n",
			in.Title, strings.Join(tags, ", "), in.Confidence*100, in.Description)
	}
}
