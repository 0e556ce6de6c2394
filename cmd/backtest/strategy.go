package main

import (
	"context"
	"errors"
	"time"

	"github.com/solquant/solstice/pkg/common"
	"github.com/solquant/solstice/pkg/engine"
	"github.com/solquant/solstice/pkg/market"
	"github.com/solquant/solstice/pkg/utility/fixed"
)

// breakoutStrategy keeps one long futures position open at all times.
// Whenever the book is flat it buys at the day's open with a take profit
// and stop loss bracket around the entry, then lets the monitor do the
// rest.
type breakoutStrategy struct {
	gateway market.Gateway
	cfg     StrategyConfig
}

func newBreakoutStrategy(gateway market.Gateway, cfg StrategyConfig) *breakoutStrategy {
	return &breakoutStrategy{
		gateway: gateway,
		cfg:     cfg,
	}
}

func (s *breakoutStrategy) OnTradingDay(ctx context.Context, day time.Time, e *engine.Engine) error {
	bar, err := s.gateway.DailyBar(ctx, s.cfg.Contract, day)
	if err != nil {
		if errors.Is(err, market.ErrNoData) {
			return nil
		}
		return err
	}

	if e.Ledger().OpenVolume(common.LongFuture, s.cfg.Contract) > 0 ||
		e.Counter().PendingCount() > 0 {
		return nil
	}

	price := bar.Open
	margin := price.MulInt64(s.cfg.Volume).Mul(fixed.FromFloat64(s.cfg.MarginRatio))
	highLimit := price.Mul(fixed.One.Add(fixed.FromFloat64(s.cfg.TakeProfit)))
	lowLimit := price.Mul(fixed.One.Sub(fixed.FromFloat64(s.cfg.StopLoss)))

	_, err = e.SubmitFutureOpen(engine.FutureOrderRequest{
		Side:      common.LongFuture,
		Contract:  s.cfg.Contract,
		Volume:    s.cfg.Volume,
		Price:     price,
		Margin:    margin,
		HighLimit: highLimit,
		LowLimit:  lowLimit,
		Comment:   "breakout entry",
	})
	return err
}
