// Package market provides daily settlement data to the backtest engine. The
// engine never computes prices itself; every bar comes from a Gateway.
package market

import (
	"context"
	"errors"
	"time"

	"github.com/solquant/solstice/pkg/common"
)

// ErrNoData marks an instrument-day without a bar. Callers treat it as a
// gap, not a failure: pending orders stay pending and open lots skip the day.
var ErrNoData = errors.New("no market data")

type Gateway interface {
	// DailyBar returns the bar for one instrument-day, or ErrNoData when the
	// instrument did not trade that day.
	DailyBar(ctx context.Context, instrument string, date time.Time) (common.DailyBar, error)
}

// DayKey truncates a timestamp to its trading date.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
