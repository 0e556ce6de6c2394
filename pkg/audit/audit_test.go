package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solquant/solstice/pkg/common"
	"github.com/solquant/solstice/pkg/utility/fixed"
)

func snap(d time.Time, marked int64) common.AccountSnapshot {
	return common.AccountSnapshot{Date: d, Marked: fixed.FromInt64(marked, 0)}
}

func closeTrade(realized int64, reason common.CloseReason) common.TradeRecord {
	return common.TradeRecord{
		State:    common.StateClose,
		Reason:   reason,
		Realized: fixed.FromInt64(realized, 0),
	}
}

func TestAudit_EmptyRunProducesEmptyReport(t *testing.T) {
	a := NewAudit(fixed.FromInt(100000, 0))
	report := a.GenerateReport()

	assert.True(t, report.InitialEquity.IsZero())
	assert.Equal(t, 0, report.TotalTrades)
}

func TestAudit_EquityFromMarkedProfit(t *testing.T) {
	a := NewAudit(fixed.FromInt(100000, 0))
	ctx := context.Background()
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	a.OnAccount(ctx, snap(start, 0))
	a.OnAccount(ctx, snap(start.AddDate(0, 0, 1), 500))
	a.OnAccount(ctx, snap(start.AddDate(0, 0, 2), 250))

	report := a.GenerateReport()

	assert.True(t, report.InitialEquity.Eq(fixed.FromInt(100000, 0)))
	assert.True(t, report.FinalEquity.Eq(fixed.FromInt(100250, 0)))
	assert.Equal(t, start, report.StartDate)
	assert.Equal(t, start.AddDate(0, 0, 2), report.EndDate)

	// Peak 100500, trough 100250.
	assert.True(t, report.MaxDrawdown.Gt(fixed.Zero), "drawdown %s", report.MaxDrawdown)
}

func TestAudit_TradeStatistics(t *testing.T) {
	a := NewAudit(fixed.FromInt(100000, 0))
	ctx := context.Background()
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	a.OnAccount(ctx, snap(start, 0))
	a.OnAccount(ctx, snap(start.AddDate(0, 0, 1), 100))

	a.OnPositionClose(ctx, closeTrade(300, common.ReasonSignal))
	a.OnPositionClose(ctx, closeTrade(-100, common.ReasonLowLimit))
	a.OnPositionClose(ctx, closeTrade(200, common.ReasonHighLimit))
	a.OnPositionClose(ctx, closeTrade(-50, common.ReasonClear))

	report := a.GenerateReport()

	require.Equal(t, 4, report.TotalTrades)
	assert.Equal(t, 2, report.WinningTrades)
	assert.Equal(t, 2, report.LosingTrades)
	assert.Equal(t, 2, report.LimitTriggeredTrades)
	assert.Equal(t, 1, report.ExpiredWorthless)

	assert.True(t, report.WinRate.Eq(fixed.FromInt(50, 0)), "win rate %s", report.WinRate)
	assert.True(t, report.AverageWin.Eq(fixed.FromInt(250, 0)), "avg win %s", report.AverageWin)
	assert.True(t, report.AverageLoss.Eq(fixed.FromInt(75, 0)), "avg loss %s", report.AverageLoss)
	// 500 won against 150 lost.
	assert.True(t, report.ProfitFactor.Sub(fixed.FromFloat64(3.3333)).Abs().Lt(fixed.FromFloat64(0.001)),
		"profit factor %s", report.ProfitFactor)
	assert.True(t, report.Expectancy.Eq(fixed.FromFloat64(87.5)), "expectancy %s", report.Expectancy)
}
