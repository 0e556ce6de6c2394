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

// Counter is the pending order book. Submitted orders wait here until a
// trading day's bar covers their limit price, at which point they fill
// against the ledger, or until their validity window runs out.
type Counter struct {
	gateway market.Gateway
	ledger  *Ledger
	router  *bus.Router
	nextID  common.OrderID
	pending map[common.OrderID]*common.Order
}

func NewCounter(gateway market.Gateway, ledger *Ledger, router *bus.Router) *Counter {
	return &Counter{
		gateway: gateway,
		ledger:  ledger,
		router:  router,
		nextID:  1,
		pending: make(map[common.OrderID]*common.Order),
	}
}

// Submit validates and queues an order. The returned id identifies the
// order in the pending book until it fills or expires.
func (c *Counter) Submit(ord *common.Order) (common.OrderID, error) {
	if err := c.validate(ord); err != nil {
		c.post(bus.OrderRejectionEvent, *ord)
		return 0, err
	}

	ord.ID = c.nextID
	c.nextID++
	ord.ExecutionID = utility.GetExecutionID()
	ord.TraceID = utility.CreateTraceID()

	c.pending[ord.ID] = ord
	c.post(bus.OrderEvent, *ord)
	return ord.ID, nil
}

func (c *Counter) validate(ord *common.Order) error {
	if ord.Volume <= 0 {
		return ErrInvalidVolume
	}
	if !ord.Price.Gt(fixed.Zero) {
		return ErrInvalidPrice
	}
	if ord.MaxOrderDate.Before(ord.MinOrderDate) {
		return ErrInvalidWindow
	}
	return nil
}

// Process walks the pending book for one trading day. Orders whose
// validity window has closed are dropped first. An order fills when the
// day's bar exists and its low to high range contains the limit price.
// Filled opening orders become ledger lots, filled closing orders unwind
// them. Orders without a bar today simply stay pending.
func (c *Counter) Process(ctx context.Context, date time.Time) {
	for _, id := range c.sortedIDs() {
		ord, ok := c.pending[id]
		if !ok {
			continue
		}

		if !ord.MaxOrderDate.After(date) {
			delete(c.pending, id)
			slog.Warn("order expired without filling",
				"order", id, "instrument", ord.Instrument, "side", ord.Side)
			c.post(bus.OrderExpiryEvent, *ord)
			continue
		}
		if date.Before(ord.MinOrderDate) {
			continue
		}

		bar, err := c.gateway.DailyBar(ctx, ord.Instrument, date)
		if err != nil {
			if !errors.Is(err, market.ErrNoData) {
				slog.Warn("order book lookup failed",
					"order", id, "instrument", ord.Instrument, "error", err)
			}
			continue
		}
		if !bar.InRange(ord.Price) {
			continue
		}

		if ord.State == common.StateOpen {
			prevSettle := ord.PrevSettle
			if ord.Side.Kind() == common.KindFuture {
				// Futures reference the exchange's previous settlement,
				// options carry the one rolled onto the order.
				prevSettle = bar.PrevSettle
			}
			c.ledger.Open(date, ord, prevSettle)
		} else {
			closed := c.ledger.Close(date, ord.Side, ord.Instrument, ord.Volume, ord.Price,
				common.ReasonSignal, ord.Comment)
			if closed > 0 && !ord.Commission.IsZero() {
				c.ledger.account.debit(ord.Commission)
			}
		}

		delete(c.pending, id)
		c.post(bus.OrderFillEvent, *ord)
	}
}

// RollSettlement refreshes the settlement reference carried by every
// pending order with the day's settle, so that an order filling days
// after submission settles against current prices.
func (c *Counter) RollSettlement(ctx context.Context, date time.Time) {
	for _, id := range c.sortedIDs() {
		ord := c.pending[id]
		bar, err := c.gateway.DailyBar(ctx, ord.Instrument, date)
		if err != nil {
			continue
		}
		ord.PrevSettle = bar.Settle
	}
}

func (c *Counter) PendingCount() int {
	return len(c.pending)
}

// Pending returns copies of the queued orders, oldest first.
func (c *Counter) Pending() []common.Order {
	out := make([]common.Order, 0, len(c.pending))
	for _, id := range c.sortedIDs() {
		out = append(out, *c.pending[id])
	}
	return out
}

func (c *Counter) sortedIDs() []common.OrderID {
	ids := make([]common.OrderID, 0, len(c.pending))
	for id := range c.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (c *Counter) post(id bus.EventId, data interface{}) {
	if c.router == nil {
		return
	}
	c.router.Post(id, data)
}
