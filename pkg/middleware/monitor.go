package middleware

import (
	"context"
	"log/slog"

	"github.com/solquant/solstice/pkg/bus"
	"github.com/solquant/solstice/pkg/common"
)

type MonitorFlags uint16

//goland:noinspection GoUnusedConst
const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorOrders
	MonitorOrderFills
	MonitorOrderExpiries
	MonitorOrderRejections
	MonitorPositionsOpened
	MonitorPositionsClosed
	MonitorAccount
)

// Monitor logs selected events as they pass through the handler chain.
type Monitor struct {
	flags MonitorFlags
}

func NewMonitor(flags MonitorFlags) *Monitor {
	return &Monitor{
		flags: flags,
	}
}

func (m *Monitor) WithOrder(handler bus.OrderEventHandler) bus.OrderEventHandler {
	return func(ctx context.Context, order common.Order) {
		if m.flags&MonitorOrders != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "order", order)
		}
		handler(ctx, order)
	}
}

func (m *Monitor) WithOrderFill(handler bus.OrderFillEventHandler) bus.OrderFillEventHandler {
	return func(ctx context.Context, order common.Order) {
		if m.flags&MonitorOrderFills != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "order_fill", order)
		}
		handler(ctx, order)
	}
}

func (m *Monitor) WithOrderExpiry(handler bus.OrderExpiryEventHandler) bus.OrderExpiryEventHandler {
	return func(ctx context.Context, order common.Order) {
		if m.flags&MonitorOrderExpiries != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "order_expiry", order)
		}
		handler(ctx, order)
	}
}

func (m *Monitor) WithOrderRejection(handler bus.OrderRejectionEventHandler) bus.OrderRejectionEventHandler {
	return func(ctx context.Context, order common.Order) {
		if m.flags&MonitorOrderRejections != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "order_rejection", order)
		}
		handler(ctx, order)
	}
}

func (m *Monitor) WithPositionOpen(handler bus.PositionOpenEventHandler) bus.PositionOpenEventHandler {
	return func(ctx context.Context, record common.TradeRecord) {
		if m.flags&MonitorPositionsOpened != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "position_open", record)
		}
		handler(ctx, record)
	}
}

func (m *Monitor) WithPositionClose(handler bus.PositionCloseEventHandler) bus.PositionCloseEventHandler {
	return func(ctx context.Context, record common.TradeRecord) {
		if m.flags&MonitorPositionsClosed != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "position_close", record)
		}
		handler(ctx, record)
	}
}

func (m *Monitor) WithAccount(handler bus.AccountEventHandler) bus.AccountEventHandler {
	return func(ctx context.Context, snapshot common.AccountSnapshot) {
		if m.flags&MonitorAccount != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "account", snapshot)
		}
		handler(ctx, snapshot)
	}
}
