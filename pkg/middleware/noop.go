package middleware

import (
	"context"

	"github.com/solquant/solstice/pkg/common"
)

//goland:noinspection ALL
var (
	NoopOrderHdl    = func(context.Context, common.Order) {}
	NoopOrderFilHdl = func(context.Context, common.Order) {}
	NoopOrderExpHdl = func(context.Context, common.Order) {}
	NoopOrderRjcHdl = func(context.Context, common.Order) {}
	NoopPosOpnHdl   = func(context.Context, common.TradeRecord) {}
	NoopPosClsHdl   = func(context.Context, common.TradeRecord) {}
	NoopAccountHdl  = func(context.Context, common.AccountSnapshot) {}
)
