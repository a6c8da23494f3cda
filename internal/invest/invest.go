// Package invest simulates investing in a carbon project with a crypto
// payment. No payment is made; the call only waits for the configured
// confirmation delay and returns a receipt.
package invest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/ecovate/internal/common"
	"github.com/dmitrijs2005/ecovate/internal/idx"
	"github.com/dmitrijs2005/ecovate/internal/logging"
	"github.com/dmitrijs2005/ecovate/internal/simulate"
)

type Method string

const (
	Bitcoin  Method = "bitcoin"
	Ethereum Method = "ethereum"
	USDC     Method = "usdc"
)

// Methods lists the accepted payment methods.
func Methods() []Method {
	return []Method{Bitcoin, Ethereum, USDC}
}

func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Methods() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnsupportedPaymentMethod, s)
}

type Request struct {
	Project string
	Amount  decimal.Decimal
	Method  Method
}

type Receipt struct {
	ID      string
	Project string
	Amount  decimal.Decimal
	Method  Method
	At      time.Time
	Message string
}

// Simulator confirms one investment at a time.
type Simulator struct {
	delay  time.Duration
	logger logging.Logger
	gate   simulate.Gate
	now    func() time.Time
}

func NewSimulator(delay time.Duration, logger logging.Logger) *Simulator {
	return &Simulator{delay: delay, logger: logger.With("component", "invest"), now: time.Now}
}

func validate(req Request) (Request, error) {
	req.Project = strings.TrimSpace(req.Project)
	if req.Project == "" {
		return req, fmt.Errorf("%w: project is required", common.ErrInvalidQuantity)
	}
	if !req.Amount.IsPositive() {
		return req, fmt.Errorf("%w: amount must be positive", common.ErrInvalidQuantity)
	}
	m, err := ParseMethod(string(req.Method))
	if err != nil {
		return req, err
	}
	req.Method = m
	return req, nil
}

// Invest validates req, waits for the confirmation delay and returns the
// receipt. Cancelling ctx aborts the wait.
func (s *Simulator) Invest(ctx context.Context, req Request) (Receipt, error) {
	req, err := validate(req)
	if err != nil {
		return Receipt{}, err
	}

	var rcpt Receipt
	err = s.gate.Run(ctx, s.delay, func() error {
		at := s.now().UTC()
		rcpt = Receipt{
			ID:      idx.NewAt(at),
			Project: req.Project,
			Amount:  req.Amount,
			Method:  req.Method,
			At:      at,
			Message: fmt.Sprintf("You've invested %s via %s in %s.", req.Amount.String(), req.Method, req.Project),
		}
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}

	s.logger.Info(ctx, "investment confirmed", "receipt", rcpt.ID, "project", rcpt.Project, "method", string(rcpt.Method))
	return rcpt, nil
}
