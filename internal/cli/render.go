package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/ecovate/internal/common"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// fmtAmount prints at most two decimals.
func fmtAmount(d decimal.Decimal) string {
	return d.Round(2).String()
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// describeError turns service errors into user-facing messages.
func describeError(err error) string {
	switch {
	case errors.Is(err, common.ErrAlreadyExists):
		return "an account with this email already exists"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "invalid email or password"
	case errors.Is(err, common.ErrTooManyAttempts):
		return "too many login attempts, try again in a minute"
	case errors.Is(err, common.ErrBusy):
		return "please wait, the previous request is still running"
	case errors.Is(err, ErrCancelled):
		return "cancelled"
	default:
		return err.Error()
	}
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number", common.ErrInvalidQuantity, s)
	}
	return d, nil
}
