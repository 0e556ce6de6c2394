package audit

import (
	"context"
	"time"

	"github.com/solquant/solstice/pkg/common"
	"github.com/solquant/solstice/pkg/utility/fixed"
)

type equityPoint struct {
	equity fixed.Point
	t      time.Time
}

// Audit collects the daily account snapshots and closed trades of a
// backtest run and condenses them into a performance Report. Its OnX
// methods satisfy the bus handler signatures, so an Audit plugs straight
// into a router, alone or behind middleware.
//
// Equity is reconstructed as initial cash plus cumulative mark to market
// profit, which values open positions at their latest settlement.
type Audit struct {
	initialCash fixed.Point

	equityCurve  []equityPoint
	closedTrades []common.TradeRecord
}

func NewAudit(initialCash fixed.Point) *Audit {
	return &Audit{
		initialCash: initialCash,
	}
}

func (a *Audit) OnAccount(_ context.Context, snapshot common.AccountSnapshot) {
	a.equityCurve = append(a.equityCurve, equityPoint{
		equity: a.initialCash.Add(snapshot.Marked),
		t:      snapshot.Date,
	})
}

func (a *Audit) OnPositionClose(_ context.Context, record common.TradeRecord) {
	a.closedTrades = append(a.closedTrades, record)
}

func (a *Audit) GenerateReport() Report {

	report := Report{}
	if len(a.equityCurve) == 0 {
		return report
	}

	auditedDays := a.dayCount()
	year := fixed.FromInt64(36500, 2)

	report.InitialEquity = a.equityCurve[0].equity
	report.StartDate = a.equityCurve[0].t
	report.FinalEquity = a.equityCurve[len(a.equityCurve)-1].equity
	report.EndDate = a.equityCurve[len(a.equityCurve)-1].t

	// --- Return Metrics ---
	report.TotalProfit = report.FinalEquity.Div(report.InitialEquity).Sub(fixed.One).MulInt64(100).Rescale(2)
	if auditedDays > 0 && report.InitialEquity.Gt(fixed.Zero) && report.FinalEquity.Gt(fixed.Zero) {
		ratio := report.FinalEquity.Div(report.InitialEquity)
		exponent := year.DivInt64(int64(auditedDays))
		report.AnnualizedReturn = ratio.Pow(exponent).Sub(fixed.One).MulInt64(100).Rescale(2)
	} else {
		report.AnnualizedReturn = fixed.Zero
	}

	// --- Max Drawdown ---
	maxEquity := report.InitialEquity
	for _, point := range a.equityCurve {
		if point.equity.Gt(maxEquity) {
			maxEquity = point.equity
		}
		drawdown := maxEquity.Sub(point.equity).Div(maxEquity)
		if drawdown.Gt(report.MaxDrawdown) {
			report.MaxDrawdown = drawdown
		}
	}

	// --- Trade Statistics ---
	var (
		totalProfit fixed.Point
		totalLoss   fixed.Point
	)
	for _, trade := range a.closedTrades {
		report.TotalTrades++

		if trade.Realized.Gt(fixed.Zero) {
			totalProfit = totalProfit.Add(trade.Realized)
			report.WinningTrades++
		} else {
			totalLoss = totalLoss.Add(trade.Realized.Neg())
			report.LosingTrades++
		}
		if trade.Reason == common.ReasonHighLimit || trade.Reason == common.ReasonLowLimit {
			report.LimitTriggeredTrades++
		}
		if trade.Reason == common.ReasonClear {
			report.ExpiredWorthless++
		}
	}

	// --- Averages & Ratios ---
	if report.WinningTrades > 0 {
		report.AverageWin = totalProfit.DivInt64(int64(report.WinningTrades))
	}
	if report.LosingTrades > 0 {
		report.AverageLoss = totalLoss.DivInt64(int64(report.LosingTrades))
	}
	if totalLoss.Gt(fixed.Zero) {
		report.ProfitFactor = totalProfit.Div(totalLoss)
	}
	if report.AverageLoss.Gt(fixed.Zero) {
		report.RiskRewardRatio = report.AverageWin.Div(report.AverageLoss)
	}
	if report.TotalTrades > 0 {
		report.Expectancy = totalProfit.Sub(totalLoss).DivInt64(int64(report.TotalTrades))
		report.WinRate = fixed.FromInt64(int64(report.WinningTrades), 0).DivInt64(int64(report.TotalTrades)).MulInt64(100).Rescale(2)
	}
	if report.MaxDrawdown.Gt(fixed.Zero) {
		report.RecoveryFactor = report.TotalProfit.Div(report.MaxDrawdown)
	}
	report.MaxDrawdown = report.MaxDrawdown.MulInt64(100).Rescale(2)

	// --- Risk Metrics: Volatility, Sharpe, Sortino ---
	dailyReturns := a.dailyReturns()
	meanReturn := fixed.Mean(dailyReturns)
	vol := fixed.StdDev(dailyReturns, meanReturn)

	if !meanReturn.IsZero() && !vol.IsZero() {
		report.AnnualizedVolatility = vol.Mul(fixed.Sqrt252).MulInt64(100).Rescale(2)
		report.SharpeRatio = fixed.SharpeRatio(dailyReturns, fixed.Zero).Mul(fixed.Sqrt252).Rescale(5)
		report.SortinoRatio = fixed.SortinoRatio(dailyReturns, fixed.Zero).Mul(fixed.Sqrt252).Rescale(5)
	}

	return report
}

func (a *Audit) dayCount() int {
	if len(a.equityCurve) < 2 {
		return 1
	}
	start := a.equityCurve[0].t
	end := a.equityCurve[len(a.equityCurve)-1].t
	return int(end.Sub(start).Hours()/24) + 1
}

func (a *Audit) dailyReturns() []fixed.Point {
	var dailyReturns []fixed.Point
	if len(a.equityCurve) < 2 {
		return dailyReturns
	}

	var (
		prevDate   = a.equityCurve[0].t.Truncate(24 * time.Hour)
		prevEquity = a.equityCurve[0].equity
	)

	for _, point := range a.equityCurve[1:] {
		currDate := point.t.Truncate(24 * time.Hour)

		if currDate.After(prevDate) && prevEquity.Gt(fixed.Zero) {
			ret := point.equity.Div(prevEquity).Sub(fixed.One)
			dailyReturns = append(dailyReturns, ret)

			prevDate = currDate
			prevEquity = point.equity
		}
	}

	return dailyReturns
}
