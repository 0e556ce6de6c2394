package middleware

import (
	"context"

	"go.uber.org/zap"

	"github.com/solquant/solstice/pkg/bus"
	"github.com/solquant/solstice/pkg/common"
)

// Telemetry counts events flowing through the handler chain.
type Telemetry struct {
	logger *zap.Logger

	orderEventCounter          int64
	orderFillEventCounter      int64
	orderExpiryEventCounter    int64
	orderRejectionEventCounter int64
	positionOpenEventCounter   int64
	positionCloseEventCounter  int64
	accountEventCounter        int64
}

func NewTelemetry(logger *zap.Logger) *Telemetry {
	return &Telemetry{
		logger: logger,
	}
}

func (t *Telemetry) WithOrder(handler bus.OrderEventHandler) bus.OrderEventHandler {
	return func(ctx context.Context, order common.Order) {
		t.orderEventCounter++
		handler(ctx, order)
	}
}

func (t *Telemetry) WithOrderFill(handler bus.OrderFillEventHandler) bus.OrderFillEventHandler {
	return func(ctx context.Context, order common.Order) {
		t.orderFillEventCounter++
		handler(ctx, order)
	}
}

func (t *Telemetry) WithOrderExpiry(handler bus.OrderExpiryEventHandler) bus.OrderExpiryEventHandler {
	return func(ctx context.Context, order common.Order) {
		t.orderExpiryEventCounter++
		handler(ctx, order)
	}
}

func (t *Telemetry) WithOrderRejection(handler bus.OrderRejectionEventHandler) bus.OrderRejectionEventHandler {
	return func(ctx context.Context, order common.Order) {
		t.orderRejectionEventCounter++
		handler(ctx, order)
	}
}

func (t *Telemetry) WithPositionOpen(handler bus.PositionOpenEventHandler) bus.PositionOpenEventHandler {
	return func(ctx context.Context, record common.TradeRecord) {
		t.positionOpenEventCounter++
		handler(ctx, record)
	}
}

func (t *Telemetry) WithPositionClose(handler bus.PositionCloseEventHandler) bus.PositionCloseEventHandler {
	return func(ctx context.Context, record common.TradeRecord) {
		t.positionCloseEventCounter++
		handler(ctx, record)
	}
}

func (t *Telemetry) WithAccount(handler bus.AccountEventHandler) bus.AccountEventHandler {
	return func(ctx context.Context, snapshot common.AccountSnapshot) {
		t.accountEventCounter++
		handler(ctx, snapshot)
	}
}

func (t *Telemetry) PrintStatistics() {
	t.logger.Info("telemetry statistics",
		zap.Int64("order_events", t.orderEventCounter),
		zap.Int64("order_fill_events", t.orderFillEventCounter),
		zap.Int64("order_expiry_events", t.orderExpiryEventCounter),
		zap.Int64("order_rejection_events", t.orderRejectionEventCounter),
		zap.Int64("position_open_events", t.positionOpenEventCounter),
		zap.Int64("position_close_events", t.positionCloseEventCounter),
		zap.Int64("account_events", t.accountEventCounter))
}
