package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/ecovate/internal/models"
	"github.com/dmitrijs2005/ecovate/internal/reference"
	"github.com/dmitrijs2005/ecovate/internal/services"
)

const dateLayout = "2006-01-02"

// Dashboard prints the aggregates of the active account.
func (a *App) Dashboard(ctx context.Context) error {
	st := a.userData.State()
	d := st.Dashboard

	tw := newTable(a.out)
	fmt.Fprintf(tw, "Total CO2 reduced:\t%s t\n", fmtAmount(d.TotalCO2Reduced))
	fmt.Fprintf(tw, "Active sensors:\t%d\n", d.ActiveSensors)
	fmt.Fprintf(tw, "Offset projects:\t%d\n", d.TotalProjects)
	fmt.Fprintf(tw, "Carbon neutral:\t%s %d%%\n", progressBar(d.CarbonNeutralProgress, 20), d.CarbonNeutralProgress)
	fmt.Fprintf(tw, "Calculated emissions:\t%s kg\n", fmtAmount(st.CalculatedEmissions))
	fmt.Fprintf(tw, "Credits purchased:\t%s kg\n", fmtAmount(st.CreditsPurchased))
	return tw.Flush()
}

// Offsets lists the offsets of the active account.
func (a *App) Offsets(ctx context.Context) error {
	printOffsets(a, a.userData.State().CarbonOffsets)
	return nil
}

func printOffsets(a *App, offsets []models.CarbonOffset) {
	if len(offsets) == 0 {
		fmt.Fprintln(a.out, "No offsets yet. Use 'addoffset' or 'demo'.")
		return
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "DATE\tPROJECT\tTONS\tSTATUS")
	for _, o := range offsets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.Date.Format(dateLayout), o.ProjectName, fmtAmount(o.Amount), o.VerificationStatus)
	}
	_ = tw.Flush()
}

// AddOffset prompts for a new offset and appends it.
func (a *App) AddOffset(ctx context.Context) error {
	project, err := getSimpleText(a.reader, "Project name", a.out)
	if err != nil {
		return err
	}
	if project == "" {
		return ErrCancelled
	}

	rawAmount, err := getSimpleText(a.reader, "Amount (tons CO2)", a.out)
	if err != nil {
		return err
	}
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return err
	}

	rawStatus, err := getSimpleText(a.reader, "Status: verified, pending or rejected (empty = pending)", a.out)
	if err != nil {
		return err
	}

	rawDate, err := getSimpleText(a.reader, "Date YYYY-MM-DD (empty = today)", a.out)
	if err != nil {
		return err
	}
	var date time.Time
	if rawDate != "" {
		if date, err = time.Parse(dateLayout, rawDate); err != nil {
			return fmt.Errorf("invalid date %q: %w", rawDate, err)
		}
	}

	st, err := a.userData.AddOffset(ctx, services.OffsetInput{
		ProjectName: project,
		Amount:      amount,
		Status:      models.VerificationStatus(strings.ToLower(rawStatus)),
		Date:        date,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Offset added. Total reduced: %s t\n", fmtAmount(st.Dashboard.TotalCO2Reduced))
	return nil
}

// Demo appends the sample offsets to the active account.
func (a *App) Demo(ctx context.Context) error {
	var st models.PerAccountState
	for _, s := range reference.SampleOffsets() {
		var err error
		st, err = a.userData.AddOffset(ctx, services.OffsetInput{
			ProjectName: s.ProjectName,
			Amount:      s.Amount,
			Status:      s.Status,
			Date:        s.Date,
		})
		if err != nil {
			return err
		}
	}
	fmt.Fprintf(a.out, "Demo data added. Total reduced: %s t\n", fmtAmount(st.Dashboard.TotalCO2Reduced))
	return nil
}

// Reset restores the defaults after confirmation.
func (a *App) Reset(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This removes all offsets and calculator results. Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		return ErrCancelled
	}
	if _, err := a.userData.Reset(ctx); err != nil {
		return err
	}
	a.emissions.Close()
	a.credits.Close()
	fmt.Fprintln(a.out, "All data reset.")
	return nil
}
