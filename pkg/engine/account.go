package engine

import (
	"time"

	"github.com/solquant/solstice/pkg/common"
	"github.com/solquant/solstice/pkg/utility"
	"github.com/solquant/solstice/pkg/utility/fixed"
)

// Account tracks the simulated cash balance together with two running
// profit totals. Realized profit accumulates on every position close,
// while marked profit accumulates through daily settlement and therefore
// reflects open positions as well. Cash movements are driven exclusively
// by the ledger.
type Account struct {
	initialCash fixed.Point
	cash        fixed.Point
	realized    fixed.Point
	marked      fixed.Point
	history     []common.AccountSnapshot
}

func NewAccount(initialCash fixed.Point) *Account {
	return &Account{
		initialCash: initialCash,
		cash:        initialCash,
	}
}

func (a *Account) InitialCash() fixed.Point {
	return a.initialCash
}

func (a *Account) Cash() fixed.Point {
	return a.cash
}

// Realized returns the profit booked on closed positions so far.
func (a *Account) Realized() fixed.Point {
	return a.realized
}

// Marked returns the cumulative mark to market profit, open positions
// included.
func (a *Account) Marked() fixed.Point {
	return a.marked
}

// History returns a copy of the daily snapshots taken so far, oldest
// first.
func (a *Account) History() []common.AccountSnapshot {
	out := make([]common.AccountSnapshot, len(a.history))
	copy(out, a.history)
	return out
}

func (a *Account) credit(amount fixed.Point) {
	a.cash = a.cash.Add(amount)
}

func (a *Account) debit(amount fixed.Point) {
	a.cash = a.cash.Sub(amount)
}

func (a *Account) addRealized(amount fixed.Point) {
	a.realized = a.realized.Add(amount)
}

func (a *Account) addMarked(amount fixed.Point) {
	a.marked = a.marked.Add(amount)
}

func (a *Account) snapshot(date time.Time) common.AccountSnapshot {
	snap := common.AccountSnapshot{
		Date:        date,
		Cash:        a.cash,
		Realized:    a.realized,
		Marked:      a.marked,
		ExecutionID: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
	}
	a.history = append(a.history, snap)
	return snap
}
