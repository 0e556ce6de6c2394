package common

import (
	"time"

	"github.com/solquant/solstice/pkg/utility/fixed"
)

// DailyBar is one instrument-day of settlement data. PrevSettle is the prior
// day's settlement price and is the only lookahead-safe close reference.
// TradeStart/TradeEnd bound the instrument's trading window. Level is the
// option moneyness indicator (negative means out-of-the-money); it is zero for
// futures and equities.
type DailyBar struct {
	Instrument string      `json:"instrument"`
	Date       time.Time   `json:"date"`
	Open       fixed.Point `json:"open"`
	High       fixed.Point `json:"high"`
	Low        fixed.Point `json:"low"`
	Close      fixed.Point `json:"close"`
	Settle     fixed.Point `json:"settle"`
	PrevSettle fixed.Point `json:"prev_settle"`
	Volume     fixed.Point `json:"volume"`
	TradeStart time.Time   `json:"trade_start"`
	TradeEnd   time.Time   `json:"trade_end"`
	Level      fixed.Point `json:"level"`
}

// InRange reports whether price lies inside the day's tradable band. The
// whole [low, high] range is treated as achievable, ignoring queue position.
func (b DailyBar) InRange(price fixed.Point) bool {
	return b.Low.Lte(price) && b.High.Gte(price)
}
