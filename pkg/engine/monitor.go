package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/solquant/solstice/pkg/common"
	"github.com/solquant/solstice/pkg/market"
)

// TriggerSequence decides which protective limit wins when a single
// day's bar reaches both. Real intraday ordering is unknowable from
// daily bars, so the choice is a configurable assumption.
type TriggerSequence int

const (
	// HighLimitFirst assumes the high was touched before the low.
	HighLimitFirst TriggerSequence = iota
	// LowLimitFirst assumes the low was touched before the high.
	LowLimitFirst
)

// Monitor sweeps the open books once per trading day and force closes
// lots whose protective limits, contract expiry or holding deadline were
// hit. Checks run per lot in a fixed order: price limits first, then the
// instrument's own expiry, then the lot's forced close date. The first
// check that fires settles the lot and the rest are skipped.
type Monitor struct {
	gateway  market.Gateway
	ledger   *Ledger
	sequence TriggerSequence
}

func NewMonitor(gateway market.Gateway, ledger *Ledger, sequence TriggerSequence) *Monitor {
	return &Monitor{
		gateway:  gateway,
		ledger:   ledger,
		sequence: sequence,
	}
}

// Check sweeps one side of the ledger for the given trading day.
// Instruments without a bar today cannot be monitored and are skipped
// with a warning.
func (m *Monitor) Check(ctx context.Context, date time.Time, side common.BookSide) {
	book := m.ledger.books[side]

	for _, instrument := range sortedInstruments(book) {
		bar, err := m.gateway.DailyBar(ctx, instrument, date)
		if err != nil {
			slog.Warn("position cannot be monitored without market data",
				"instrument", instrument, "side", side, "error", err)
			continue
		}

		lots := make([]*common.Lot, len(book[instrument]))
		copy(lots, book[instrument])

		for _, lot := range lots {
			m.checkLot(date, side, bar, lot)
		}
	}
}

func (m *Monitor) checkLot(date time.Time, side common.BookSide, bar common.DailyBar, lot *common.Lot) {
	if m.checkLimits(date, side, bar, lot) {
		return
	}

	switch side.Kind() {
	case common.KindFuture:
		// Contracts stop trading at their end date and must be flattened
		// at the final close.
		if !bar.TradeEnd.IsZero() && !date.Before(bar.TradeEnd) {
			m.ledger.Close(date, side, lot.Instrument, lot.Volume, bar.Close,
				common.ReasonEndDate, "")
			return
		}
	case common.KindOption:
		// An option out of the money on its expiry day is worthless.
		if !bar.TradeEnd.IsZero() && market.DayKey(date) == market.DayKey(bar.TradeEnd) && bar.Level.IsNeg() {
			m.ledger.Clear(date, side, lot.Instrument, lot.Volume)
			return
		}
	}

	if !lot.ForcedCloseDate.IsZero() && !date.Before(lot.ForcedCloseDate) {
		m.ledger.Close(date, side, lot.Instrument, lot.Volume, bar.Close,
			common.ReasonMaxDate, "")
	}
}

func (m *Monitor) checkLimits(date time.Time, side common.BookSide, bar common.DailyBar, lot *common.Lot) bool {
	highHit := !lot.HighLimit.IsZero() && bar.High.Gte(lot.HighLimit)
	lowHit := !lot.LowLimit.IsZero() && bar.Low.Lte(lot.LowLimit)

	first, second := highHit, lowHit
	if m.sequence == LowLimitFirst {
		first, second = lowHit, highHit
	}

	switch {
	case first:
		if m.sequence == LowLimitFirst {
			m.closeAtLow(date, side, lot)
		} else {
			m.closeAtHigh(date, side, lot)
		}
	case second:
		if m.sequence == LowLimitFirst {
			m.closeAtHigh(date, side, lot)
		} else {
			m.closeAtLow(date, side, lot)
		}
	default:
		return false
	}
	return true
}

func (m *Monitor) closeAtHigh(date time.Time, side common.BookSide, lot *common.Lot) {
	m.ledger.Close(date, side, lot.Instrument, lot.Volume, lot.HighLimit,
		common.ReasonHighLimit, "")
}

func (m *Monitor) closeAtLow(date time.Time, side common.BookSide, lot *common.Lot) {
	m.ledger.Close(date, side, lot.Instrument, lot.Volume, lot.LowLimit,
		common.ReasonLowLimit, "")
}
