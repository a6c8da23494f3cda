package calculator

import "github.com/shopspring/decimal"

// Entry is one calculated activity.
type Entry struct {
	Activity Activity
	Quantity decimal.Decimal
	Impact   decimal.Decimal // kg CO2
}

// Ledger accumulates the entries of one calculator run on top of an
// opening balance.
//
// A new Ledger is closed: the caller opens it with the persisted total
// before the first entry so that earlier results are carried forward.
type Ledger struct {
	table   *Table
	open    bool
	opening decimal.Decimal
	entries []Entry
	total   decimal.Decimal
}

func NewLedger(t *Table) *Ledger {
	return &Ledger{table: t, opening: decimal.Zero, total: decimal.Zero}
}

func (l *Ledger) Table() *Table {
	return l.table
}

// Open starts a run at balance, dropping any entries.
func (l *Ledger) Open(balance decimal.Decimal) {
	l.open = true
	l.opening = balance
	l.entries = nil
	l.total = balance
}

func (l *Ledger) IsOpen() bool {
	return l.open
}

func (l *Ledger) Opening() decimal.Decimal {
	return l.opening
}

// Add computes and records an entry. The ledger is unchanged on error.
func (l *Ledger) Add(key string, quantity decimal.Decimal) (Entry, error) {
	impact, err := l.table.ComputeImpact(key, quantity)
	if err != nil {
		return Entry{}, err
	}
	a, _ := l.table.Lookup(key)
	e := Entry{Activity: a, Quantity: quantity, Impact: impact}
	l.entries = append(l.entries, e)
	l.total = l.total.Add(impact)
	return e, nil
}

func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Total is the opening balance plus all entry impacts, in kg.
func (l *Ledger) Total() decimal.Decimal {
	return l.total
}

// Clear zeroes the run; the ledger stays open at zero.
func (l *Ledger) Clear() {
	l.Open(decimal.Zero)
}

// Close forgets the run and its opening balance, e.g. when the account changes.
func (l *Ledger) Close() {
	l.open = false
	l.opening = decimal.Zero
	l.entries = nil
	l.total = decimal.Zero
}
