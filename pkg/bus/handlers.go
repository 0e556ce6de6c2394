package bus

import (
	"context"

	"github.com/solquant/solstice/pkg/common"
)

type EventHandler[T any] = func(context.Context, T)

type OrderEventHandler EventHandler[common.Order]
type OrderFillEventHandler EventHandler[common.Order]
type OrderExpiryEventHandler EventHandler[common.Order]
type OrderRejectionEventHandler EventHandler[common.Order]
type PositionOpenEventHandler EventHandler[common.TradeRecord]
type PositionCloseEventHandler EventHandler[common.TradeRecord]
type AccountEventHandler EventHandler[common.AccountSnapshot]

func MergeHandlers[T any](handlers ...EventHandler[T]) EventHandler[T] {
	return func(ctx context.Context, event T) {
		for _, handler := range handlers {
			handler(ctx, event)
		}
	}
}
