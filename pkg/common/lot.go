package common

import (
	"time"

	"github.com/solquant/solstice/pkg/utility/fixed"
)

// Lot is one entry batch of an open position. Lots are consumed strictly
// FIFO on close and re-marked against the daily settlement price. FirstDay
// is consumed by the first mark-to-market, which references the entry price
// because no prior settlement exists yet. LastMarked guards against marking
// the same lot twice within one day.
type Lot struct {
	Instrument string      `json:"instrument"`
	Side       BookSide    `json:"side"`
	EntryPrice fixed.Point `json:"entry_price"`
	Volume     int64       `json:"volume"`
	Margin     fixed.Point `json:"margin"`
	PrevSettle fixed.Point `json:"prev_settle"`

	HighLimit       fixed.Point `json:"high_limit,omitempty"`
	LowLimit        fixed.Point `json:"low_limit,omitempty"`
	ForcedCloseDate time.Time   `json:"forced_close_date,omitempty"`
	Strike          fixed.Point `json:"strike,omitempty"`

	OpenDate   time.Time `json:"open_date"`
	FirstDay   bool      `json:"first_day"`
	LastMarked time.Time `json:"last_marked,omitempty"`
}
