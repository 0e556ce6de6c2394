package common

import (
	"time"

	"github.com/solquant/solstice/pkg/utility"
	"github.com/solquant/solstice/pkg/utility/fixed"
)

// AccountSnapshot is the account's scalar state at the end of one simulated
// day. Realized accumulates close-time price deltas, Marked accumulates
// settlement deltas from both closes and daily re-marking.
type AccountSnapshot struct {
	Date     time.Time   `json:"date"`
	Cash     fixed.Point `json:"cash"`
	Realized fixed.Point `json:"realized"`
	Marked   fixed.Point `json:"marked"`

	ExecutionID utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
}
