package common

import (
	"time"

	"github.com/solquant/solstice/pkg/utility"
	"github.com/solquant/solstice/pkg/utility/fixed"
)

// TradeRecord is one row of the append-only trade log: a fill on open, or a
// (possibly multi-lot) close with the realized profit of that close only.
type TradeRecord struct {
	State      OrderState  `json:"state"`
	Reason     CloseReason `json:"reason"`
	Date       time.Time   `json:"date"`
	Instrument string      `json:"instrument"`
	Side       BookSide    `json:"side"`
	Price      fixed.Point `json:"price"`
	Volume     int64       `json:"volume"`
	Realized   fixed.Point `json:"realized"`

	Comment     string              `json:"comment,omitempty"`
	ExecutionID utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
}
