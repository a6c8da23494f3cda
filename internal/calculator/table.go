// Package calculator converts activities into kilograms of CO2.
//
// Emissions and credits use two separate tables of non-negative factors;
// whether an impact counts as emitted or offset is decided by the table it
// came from, never by the sign of the factor.
package calculator

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ecovate/internal/common"
	"github.com/shopspring/decimal"
)

// Kind tells emission tables from credit tables.
type Kind string

const (
	Emission Kind = "emission"
	Credit   Kind = "credit"
)

// Activity is one row of a factor table.
type Activity struct {
	Key    string
	Label  string
	Unit   string
	Factor decimal.Decimal // kg CO2 per unit
}

// Table is an ordered, immutable set of activities.
type Table struct {
	kind       Kind
	activities []Activity
	index      map[string]int
}

// NewTable checks activities and builds a Table. Keys must be unique and
// non-empty; factors must be non-negative.
func NewTable(kind Kind, activities []Activity) (*Table, error) {
	if len(activities) == 0 {
		return nil, fmt.Errorf("%s table is empty", kind)
	}
	t := &Table{
		kind:       kind,
		activities: make([]Activity, 0, len(activities)),
		index:      make(map[string]int, len(activities)),
	}
	for _, a := range activities {
		a.Key = strings.TrimSpace(a.Key)
		if a.Key == "" {
			return nil, fmt.Errorf("%s table: activity without key", kind)
		}
		if _, dup := t.index[a.Key]; dup {
			return nil, fmt.Errorf("%s table: duplicate activity %q", kind, a.Key)
		}
		if a.Factor.IsNegative() {
			return nil, fmt.Errorf("%s table: negative factor for %q", kind, a.Key)
		}
		t.index[a.Key] = len(t.activities)
		t.activities = append(t.activities, a)
	}
	return t, nil
}

func (t *Table) Kind() Kind {
	return t.kind
}

// Activities returns the rows in table order.
func (t *Table) Activities() []Activity {
	out := make([]Activity, len(t.activities))
	copy(out, t.activities)
	return out
}

// Lookup finds an activity by key.
func (t *Table) Lookup(key string) (Activity, bool) {
	i, ok := t.index[key]
	if !ok {
		return Activity{}, false
	}
	return t.activities[i], true
}

// ComputeImpact returns quantity * factor(key) in kg of CO2.
func (t *Table) ComputeImpact(key string, quantity decimal.Decimal) (decimal.Decimal, error) {
	a, ok := t.Lookup(key)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", common.ErrUnknownActivity, key)
	}
	if quantity.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", common.ErrInvalidQuantity, quantity)
	}
	return quantity.Mul(a.Factor), nil
}
