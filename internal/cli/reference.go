package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ecovate/internal/reference"
)

// historyTail is how many of the most recent hourly readings are printed.
const historyTail = 24

func (a *App) Sensors(ctx context.Context) error {
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tSTATUS\tCO2 (ppm)\tLAST READING")
	for _, s := range a.catalog.Sensors() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			s.ID, s.Name, s.Location.Name, s.Status, s.Last.CO2, s.Last.Timestamp.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(tw, "\nActive sensors: %d\n", a.catalog.ActiveCount())
	return tw.Flush()
}

// History prints statistics of a synthetic week of readings for a sensor
// and the last day hour by hour.
func (a *App) History(ctx context.Context, sensorID string) error {
	readings, err := a.catalog.History(sensorID, reference.DefaultHistoryHours, a.now(), a.rnd)
	if err != nil {
		return err
	}

	lo, hi, sum := readings[0].CO2, readings[0].CO2, 0
	for _, r := range readings {
		lo = min(lo, r.CO2)
		hi = max(hi, r.CO2)
		sum += r.CO2
	}
	fmt.Fprintf(a.out, "%s: %d readings, min %d, max %d, avg %d ppm\n",
		sensorID, len(readings), lo, hi, sum/len(readings))

	tw := newTable(a.out)
	fmt.Fprintln(tw, "TIME\tCO2 (ppm)")
	for _, r := range readings[max(0, len(readings)-historyTail):] {
		fmt.Fprintf(tw, "%s\t%d\n", r.Timestamp.Format("2006-01-02 15:04"), r.CO2)
	}
	return tw.Flush()
}

func (a *App) Tips(ctx context.Context) error {
	total := 0
	for _, t := range reference.Tips() {
		fmt.Fprintf(a.out, "* %s (saves %d kg CO2 per year)\n  %s\n", t.Title, t.KgPerYear, t.Description)
		total += t.KgPerYear
	}
	fmt.Fprintf(a.out, "Potential savings: %d kg CO2 per year\n", total)
	return nil
}

// Projects lists the project catalog.
func (a *App) Projects(ctx context.Context) error {
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tLOCATION\tSTATUS\tPROGRESS\tCO2 (t)\tINVESTORS")
	for _, p := range reference.Projects() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d%%\t%s / %s\t%d\n",
			p.ID, p.Name, p.Type, p.Location, p.Status, p.Progress,
			p.CO2Reduced.String(), p.Target.String(), p.Investors)
	}
	return tw.Flush()
}

func projectNames(projects []reference.Project) string {
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}
