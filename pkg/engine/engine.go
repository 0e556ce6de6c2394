package engine

import (
	"context"
	"errors"
	"time"

	"github.com/solquant/solstice/pkg/bus"
	"github.com/solquant/solstice/pkg/common"
	"github.com/solquant/solstice/pkg/market"
	"github.com/solquant/solstice/pkg/utility/fixed"
)

// Strategy receives one callback per simulated trading day, before that
// day's orders are matched. Implementations place orders through the
// engine's submission methods.
type Strategy interface {
	OnTradingDay(ctx context.Context, day time.Time, e *Engine) error
}

// StrategyFunc adapts a plain function to the Strategy interface.
type StrategyFunc func(ctx context.Context, day time.Time, e *Engine) error

func (f StrategyFunc) OnTradingDay(ctx context.Context, day time.Time, e *Engine) error {
	return f(ctx, day, e)
}

// Engine drives the simulation one calendar day at a time. Each step
// runs the strategy, matches pending orders, sweeps the protective
// monitor, matches any closes the sweep queued, settles the open books
// and snapshots the account.
type Engine struct {
	gateway  market.Gateway
	router   *bus.Router
	strategy Strategy
	sequence TriggerSequence

	account *Account
	record  *Record
	ledger  *Ledger
	counter *Counter
	monitor *Monitor

	start   time.Time
	end     time.Time
	current time.Time
}

func NewEngine(gateway market.Gateway, strategy Strategy, start, end time.Time, initialCash fixed.Point, opts ...Option) *Engine {
	e := &Engine{
		gateway:  gateway,
		strategy: strategy,
		sequence: HighLimitFirst,
		start:    start,
		end:      end,
		current:  start,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.account = NewAccount(initialCash)
	e.record = NewRecord()
	e.ledger = NewLedger(gateway, e.account, e.record, e.router)
	e.counter = NewCounter(gateway, e.ledger, e.router)
	e.monitor = NewMonitor(gateway, e.ledger, e.sequence)
	return e
}

// Step simulates a single day and advances to the next. Returns ErrDone
// once the end date has been passed.
func (e *Engine) Step(ctx context.Context) error {
	if e.current.After(e.end) {
		return ErrDone
	}
	day := e.current

	if e.strategy != nil {
		if err := e.strategy.OnTradingDay(ctx, day, e); err != nil {
			return err
		}
	}

	e.counter.Process(ctx, day)
	for _, side := range common.Sides {
		e.monitor.Check(ctx, day, side)
	}
	// Closing orders the monitor or strategy queued against today's bar
	// still get a chance to fill today.
	e.counter.Process(ctx, day)
	for _, side := range common.Sides {
		e.ledger.MarkToMarket(ctx, day, side)
	}
	e.counter.RollSettlement(ctx, day)

	snap := e.account.snapshot(day)
	if e.router != nil {
		e.router.Post(bus.AccountEvent, snap)
	}

	e.current = day.AddDate(0, 0, 1)
	return nil
}

// Run steps through the whole date range. A cancelled context aborts
// with its error, a completed range returns nil.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Step(ctx); err != nil {
			if errors.Is(err, ErrDone) {
				return nil
			}
			return err
		}
	}
}

// Current returns the next day Step will simulate.
func (e *Engine) Current() time.Time {
	return e.current
}

func (e *Engine) Start() time.Time {
	return e.start
}

func (e *Engine) End() time.Time {
	return e.end
}

func (e *Engine) Account() *Account {
	return e.account
}

func (e *Engine) Record() *Record {
	return e.record
}

func (e *Engine) Ledger() *Ledger {
	return e.ledger
}

func (e *Engine) Counter() *Counter {
	return e.counter
}
