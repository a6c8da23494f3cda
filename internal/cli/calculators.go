package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/ecovate/internal/calculator"
	"github.com/dmitrijs2005/ecovate/internal/models"
)

// Emissions runs the emission calculator and stores its total.
func (a *App) Emissions(ctx context.Context) error {
	saved := a.userData.State().CalculatedEmissions
	return a.runCalculator(ctx, a.emissions, "Carbon emission calculator", saved, a.userData.UpdateEmissions)
}

// Credits runs the credit calculator. New credits are added to the
// credits already purchased.
func (a *App) Credits(ctx context.Context) error {
	saved := a.userData.State().CreditsPurchased
	return a.runCalculator(ctx, a.credits, "Carbon credit calculator", saved, a.userData.UpdateCredits)
}

type pushFn func(ctx context.Context, kg decimal.Decimal) (models.PerAccountState, error)

// runCalculator lets the user add activities to ledger until an empty line
// or "done". Every change of the total is pushed right away. A closed ledger
// is opened at saved, the persisted total.
func (a *App) runCalculator(ctx context.Context, ledger *calculator.Ledger, title string, saved decimal.Decimal, push pushFn) error {
	if !ledger.IsOpen() {
		ledger.Open(saved)
	}
	activities := ledger.Table().Activities()

	fmt.Fprintln(a.out, title)
	tw := newTable(a.out)
	for i, act := range activities {
		fmt.Fprintf(tw, "%d)\t%s\t%s kg per %s\n", i+1, act.Label, act.Factor.String(), act.Unit)
	}
	_ = tw.Flush()
	fmt.Fprintf(a.out, "Current total: %s kg\n", fmtAmount(ledger.Total()))

	for {
		choice, err := getSimpleText(a.reader, "Activity number ('list', 'clear', empty or 'done' to finish)", a.out)
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "", "done":
			return nil
		case "list":
			a.printLedger(ledger)
			continue
		case "clear":
			ledger.Clear()
			if _, err := push(ctx, decimal.Zero); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Cleared.")
			continue
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(activities) {
			fmt.Fprintln(a.out, "Unknown activity:", choice)
			continue
		}
		act := activities[n-1]

		rawQty, err := getSimpleText(a.reader, fmt.Sprintf("Quantity (%s)", act.Unit), a.out)
		if err != nil {
			return err
		}
		qty, err := parseAmount(rawQty)
		if err != nil {
			fmt.Fprintln(a.out, describeError(err))
			continue
		}

		entry, err := ledger.Add(act.Key, qty)
		if err != nil {
			fmt.Fprintln(a.out, describeError(err))
			continue
		}
		if _, err := push(ctx, ledger.Total()); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s: %s kg CO2. Total: %s kg\n", act.Label, fmtAmount(entry.Impact), fmtAmount(ledger.Total()))
	}
}

func (a *App) printLedger(ledger *calculator.Ledger) {
	entries := ledger.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No activities yet.")
		return
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ACTIVITY\tQUANTITY\tKG CO2")
	if !ledger.Opening().IsZero() {
		fmt.Fprintf(tw, "Carried forward\t\t%s\n", fmtAmount(ledger.Opening()))
	}
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\n", e.Activity.Label, e.Quantity.String(), e.Activity.Unit, fmtAmount(e.Impact))
	}
	fmt.Fprintf(tw, "TOTAL\t\t%s\n", fmtAmount(ledger.Total()))
	_ = tw.Flush()
}
