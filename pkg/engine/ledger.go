package engine

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/solquant/solstice/pkg/bus"
	"github.com/solquant/solstice/pkg/common"
	"github.com/solquant/solstice/pkg/market"
	"github.com/solquant/solstice/pkg/utility"
	"github.com/solquant/solstice/pkg/utility/fixed"
)

// Ledger holds the open positions of the simulation, one book per side,
// keyed by instrument. Lots within a book entry are kept in entry order
// and closes always consume from the oldest lot first.
//
// All cash and profit effects flow through the ledger. Opening a
// position debits margin or premium, closing releases the remaining
// margin and books realized profit, and the daily mark shifts margin by
// the settlement move.
type Ledger struct {
	gateway market.Gateway
	account *Account
	record  *Record
	router  *bus.Router
	books   map[common.BookSide]map[string][]*common.Lot
}

func NewLedger(gateway market.Gateway, account *Account, record *Record, router *bus.Router) *Ledger {
	books := make(map[common.BookSide]map[string][]*common.Lot, len(common.Sides))
	for _, side := range common.Sides {
		books[side] = make(map[string][]*common.Lot)
	}
	return &Ledger{
		gateway: gateway,
		account: account,
		record:  record,
		router:  router,
		books:   books,
	}
}

// Open books a fill of an opening order as a new lot. Futures post
// margin, bought options pay premium, written options collect premium
// and post margin, equity pays the full notional. The prevSettle
// argument seeds the settlement reference used by the first daily mark
// after the first trading day.
func (l *Ledger) Open(date time.Time, ord *common.Order, prevSettle fixed.Point) {
	notional := ord.Price.MulInt64(ord.Volume)

	lot := &common.Lot{
		Instrument:      ord.Instrument,
		Side:            ord.Side,
		EntryPrice:      ord.Price,
		Volume:          ord.Volume,
		Margin:          ord.Margin,
		PrevSettle:      prevSettle,
		HighLimit:       ord.HighLimit,
		LowLimit:        ord.LowLimit,
		ForcedCloseDate: ord.ForcedCloseDate,
		Strike:          ord.Strike,
		OpenDate:        date,
		FirstDay:        true,
	}

	switch ord.Side.Kind() {
	case common.KindFuture:
		l.account.debit(ord.Margin)
	case common.KindOption:
		if ord.Side.IsBuyer() {
			lot.Margin = fixed.Zero
			l.account.debit(notional)
		} else {
			l.account.credit(notional.Sub(ord.Margin))
		}
	case common.KindEquity:
		lot.Margin = fixed.Zero
		l.account.debit(notional)
	}
	if !ord.Commission.IsZero() {
		l.account.debit(ord.Commission)
	}

	l.books[ord.Side][ord.Instrument] = append(l.books[ord.Side][ord.Instrument], lot)

	row := common.TradeRecord{
		State:       common.StateOpen,
		Reason:      common.ReasonSignal,
		Date:        date,
		Instrument:  ord.Instrument,
		Side:        ord.Side,
		Price:       ord.Price,
		Volume:      ord.Volume,
		Realized:    fixed.Zero,
		Comment:     ord.Comment,
		ExecutionID: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
	}
	l.record.append(row)
	l.post(bus.PositionOpenEvent, row)
}

// Close unwinds up to volume units of the given book entry at the given
// price, oldest lot first. Requesting more than the open volume closes
// everything that is there. A close against an empty book is a warning,
// not an error. The returned quantity is how much was actually closed,
// zero when the book entry was empty.
func (l *Ledger) Close(date time.Time, side common.BookSide, instrument string, volume int64, price fixed.Point, reason common.CloseReason, comment string) int64 {
	lots := l.books[side][instrument]

	var open int64
	for _, lot := range lots {
		open += lot.Volume
	}
	if open == 0 {
		slog.Warn("close requested with no open position",
			"side", side, "instrument", instrument, "volume", volume)
		return 0
	}

	closeQty := volume
	if closeQty > open {
		closeQty = open
	}

	sign := side.Sign()
	equity := side.Kind() == common.KindEquity

	realized := fixed.Zero
	markedDelta := fixed.Zero
	released := fixed.Zero

	remaining := closeQty
	for remaining > 0 {
		lot := lots[0]
		consumed := lot.Volume
		if consumed > remaining {
			consumed = remaining
		}

		realized = realized.Add(price.Sub(lot.EntryPrice).MulInt64(consumed).MulInt64(sign))

		lotDelta := fixed.Zero
		if !equity {
			lotDelta = price.Sub(lot.PrevSettle).MulInt64(consumed).MulInt64(sign)
		}
		markedDelta = markedDelta.Add(lotDelta)

		if consumed == lot.Volume {
			released = released.Add(lot.Margin).Add(lotDelta)
			lots = lots[1:]
		} else {
			share := lot.Margin.MulInt64(consumed).DivInt64(lot.Volume)
			released = released.Add(share).Add(lotDelta)
			lot.Volume -= consumed
			lot.Margin = lot.Margin.Sub(share)
		}
		remaining -= consumed
	}

	if len(lots) == 0 {
		delete(l.books[side], instrument)
	} else {
		l.books[side][instrument] = lots
	}

	l.account.addRealized(realized)
	if equity {
		// Equity principal was paid in full upfront and is not margined,
		// so closing only moves the profit.
		l.account.credit(realized)
	} else {
		l.account.addMarked(markedDelta)
		l.account.credit(released)
	}

	row := common.TradeRecord{
		State:       common.StateClose,
		Reason:      reason,
		Date:        date,
		Instrument:  instrument,
		Side:        side,
		Price:       price,
		Volume:      closeQty,
		Realized:    realized,
		Comment:     comment,
		ExecutionID: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
	}
	l.record.append(row)
	l.post(bus.PositionCloseEvent, row)
	return closeQty
}

// Clear writes a position off at price zero. Used for options that
// expire out of the money.
func (l *Ledger) Clear(date time.Time, side common.BookSide, instrument string, volume int64) {
	l.Close(date, side, instrument, volume, fixed.Zero, common.ReasonClear, "")
}

// MarkToMarket settles every lot of the given side against the day's
// settlement price. The reference for a lot's very first mark is its
// entry price, afterwards the previous settlement. Lots already marked
// today and instruments without a bar are skipped. Equity books do not
// settle daily.
func (l *Ledger) MarkToMarket(ctx context.Context, date time.Time, side common.BookSide) {
	if side.Kind() == common.KindEquity {
		return
	}

	sign := side.Sign()
	book := l.books[side]

	for _, instrument := range sortedInstruments(book) {
		bar, err := l.gateway.DailyBar(ctx, instrument, date)
		if err != nil {
			if !errors.Is(err, market.ErrNoData) {
				slog.Warn("settlement lookup failed",
					"instrument", instrument, "error", err)
			}
			continue
		}
		for _, lot := range book[instrument] {
			if market.DayKey(lot.LastMarked) == market.DayKey(date) {
				continue
			}
			ref := lot.PrevSettle
			if lot.FirstDay {
				ref = lot.EntryPrice
				lot.FirstDay = false
			}
			delta := bar.Settle.Sub(ref).MulInt64(lot.Volume).MulInt64(sign)
			l.account.addMarked(delta)
			lot.Margin = lot.Margin.Add(delta)
			lot.PrevSettle = bar.Settle
			lot.LastMarked = date
		}
	}
}

// OpenVolume reports the total open volume of a book entry.
func (l *Ledger) OpenVolume(side common.BookSide, instrument string) int64 {
	var total int64
	for _, lot := range l.books[side][instrument] {
		total += lot.Volume
	}
	return total
}

// Lots returns copies of the open lots of a book entry, oldest first.
func (l *Ledger) Lots(side common.BookSide, instrument string) []common.Lot {
	lots := l.books[side][instrument]
	out := make([]common.Lot, 0, len(lots))
	for _, lot := range lots {
		out = append(out, *lot)
	}
	return out
}

// Instruments returns the instruments with open lots on the given side,
// sorted.
func (l *Ledger) Instruments(side common.BookSide) []string {
	return sortedInstruments(l.books[side])
}

func (l *Ledger) post(id bus.EventId, data interface{}) {
	if l.router == nil {
		return
	}
	l.router.Post(id, data)
}

func sortedInstruments(book map[string][]*common.Lot) []string {
	out := make([]string, 0, len(book))
	for instrument := range book {
		out = append(out, instrument)
	}
	sort.Strings(out)
	return out
}
