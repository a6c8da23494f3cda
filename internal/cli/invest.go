package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/ecovate/internal/invest"
	"github.com/dmitrijs2005/ecovate/internal/reference"
)

// Invest picks an open project, an amount and a payment method and confirms
// a simulated investment.
func (a *App) Invest(ctx context.Context) error {
	var open []reference.Project
	for _, p := range reference.Projects() {
		if p.Investable() {
			open = append(open, p)
		}
	}

	tw := newTable(a.out)
	for i, p := range open {
		fmt.Fprintf(tw, "%d)\t%s\t%s\t%s\n", i+1, p.Name, p.Location, p.Status)
	}
	_ = tw.Flush()

	ref, err := getSimpleText(a.reader, "Project number, id or name", a.out)
	if err != nil {
		return err
	}
	if ref == "" {
		return ErrCancelled
	}
	project, ok := pickProject(open, ref)
	if !ok {
		return fmt.Errorf("unknown project %q, choose one of: %s", ref, projectNames(open))
	}

	rawAmount, err := getSimpleText(a.reader, "Amount (USD)", a.out)
	if err != nil {
		return err
	}
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return err
	}

	methods := make([]string, 0, len(invest.Methods()))
	for _, m := range invest.Methods() {
		methods = append(methods, string(m))
	}
	method, err := getSimpleText(a.reader, "Payment method ("+strings.Join(methods, ", ")+")", a.out)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Processing...")
	receipt, err := a.investor.Invest(ctx, invest.Request{
		Project: project.Name,
		Amount:  amount,
		Method:  invest.Method(method),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, receipt.Message)
	return nil
}

// pickProject resolves a 1-based list number or a catalog id/name among open.
func pickProject(open []reference.Project, ref string) (reference.Project, bool) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(open) {
			return reference.Project{}, false
		}
		return open[n-1], true
	}
	p, ok := reference.FindProject(ref)
	if !ok || !p.Investable() {
		return reference.Project{}, false
	}
	return p, true
}
