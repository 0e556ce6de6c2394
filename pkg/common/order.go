package common

import (
	"time"

	"github.com/solquant/solstice/pkg/utility"
	"github.com/solquant/solstice/pkg/utility/fixed"
)

type OrderID = int64

// Order is a pending instruction sitting in the counter. Open orders carry
// the risk parameters copied onto the lot when filled; close orders only name
// what to unwind. Apart from the daily PrevSettle rollover an order is never
// mutated while pending.
type Order struct {
	ID         OrderID     `json:"id"`
	State      OrderState  `json:"state"`
	Side       BookSide    `json:"side"`
	Instrument string      `json:"instrument"`
	Price      fixed.Point `json:"price"`
	Volume     int64       `json:"volume"`

	// Validity window, inclusive. Defaults to the full backtest range.
	MinOrderDate time.Time `json:"min_order_date"`
	MaxOrderDate time.Time `json:"max_order_date"`

	// Open-order risk parameters.
	PrevSettle      fixed.Point `json:"prev_settle,omitempty"`
	Margin          fixed.Point `json:"margin,omitempty"`
	Strike          fixed.Point `json:"strike,omitempty"`
	HighLimit       fixed.Point `json:"high_limit,omitempty"`
	LowLimit        fixed.Point `json:"low_limit,omitempty"`
	ForcedCloseDate time.Time   `json:"forced_close_date,omitempty"`
	Commission      fixed.Point `json:"commission,omitempty"`

	Comment     string              `json:"comment,omitempty"`
	CreateDate  time.Time           `json:"create_date"`
	ExecutionID utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
}
