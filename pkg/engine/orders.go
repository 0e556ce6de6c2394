package engine

import (
	"time"

	"github.com/solquant/solstice/pkg/common"
	"github.com/solquant/solstice/pkg/utility/fixed"
)

// FutureOrderRequest opens a futures position. Zero validity dates
// default to the engine's full date range.
type FutureOrderRequest struct {
	Side            common.BookSide
	Contract        string
	Volume          int64
	Price           fixed.Point
	Margin          fixed.Point
	HighLimit       fixed.Point
	LowLimit        fixed.Point
	ForcedCloseDate time.Time
	MinOrderDate    time.Time
	MaxOrderDate    time.Time
	Commission      fixed.Point
	Comment         string
}

// FutureCloseRequest unwinds an open futures position at a limit price.
type FutureCloseRequest struct {
	Side         common.BookSide
	Contract     string
	Volume       int64
	Price        fixed.Point
	MinOrderDate time.Time
	MaxOrderDate time.Time
	Commission   fixed.Point
	Comment      string
}

// OptionOrderRequest opens an option position. PrevSettle seeds the
// settlement reference; it is rolled daily while the order is pending.
type OptionOrderRequest struct {
	Side            common.BookSide
	Option          string
	Volume          int64
	Price           fixed.Point
	PrevSettle      fixed.Point
	Strike          fixed.Point
	Margin          fixed.Point
	HighLimit       fixed.Point
	LowLimit        fixed.Point
	ForcedCloseDate time.Time
	MinOrderDate    time.Time
	MaxOrderDate    time.Time
	Commission      fixed.Point
	Comment         string
}

type OptionCloseRequest struct {
	Side         common.BookSide
	Option       string
	Volume       int64
	Price        fixed.Point
	MinOrderDate time.Time
	MaxOrderDate time.Time
	Commission   fixed.Point
	Comment      string
}

// EquityOrderRequest opens a long stock position. Equity has no short
// side and does not settle daily.
type EquityOrderRequest struct {
	Symbol          string
	Volume          int64
	Price           fixed.Point
	HighLimit       fixed.Point
	LowLimit        fixed.Point
	ForcedCloseDate time.Time
	MinOrderDate    time.Time
	MaxOrderDate    time.Time
	Commission      fixed.Point
	Comment         string
}

type EquityCloseRequest struct {
	Symbol       string
	Volume       int64
	Price        fixed.Point
	MinOrderDate time.Time
	MaxOrderDate time.Time
	Commission   fixed.Point
	Comment      string
}

func (e *Engine) SubmitFutureOpen(req FutureOrderRequest) (common.OrderID, error) {
	if req.Side != common.LongFuture && req.Side != common.ShortFuture {
		return 0, ErrInvalidSide
	}
	ord := &common.Order{
		State:           common.StateOpen,
		Side:            req.Side,
		Instrument:      req.Contract,
		Price:           req.Price,
		Volume:          req.Volume,
		Margin:          req.Margin,
		HighLimit:       req.HighLimit,
		LowLimit:        req.LowLimit,
		ForcedCloseDate: req.ForcedCloseDate,
		Commission:      req.Commission,
		Comment:         req.Comment,
	}
	e.stampWindow(ord, req.MinOrderDate, req.MaxOrderDate)
	return e.counter.Submit(ord)
}

func (e *Engine) SubmitFutureClose(req FutureCloseRequest) (common.OrderID, error) {
	if req.Side != common.LongFuture && req.Side != common.ShortFuture {
		return 0, ErrInvalidSide
	}
	ord := &common.Order{
		State:      common.StateClose,
		Side:       req.Side,
		Instrument: req.Contract,
		Price:      req.Price,
		Volume:     req.Volume,
		Commission: req.Commission,
		Comment:    req.Comment,
	}
	e.stampWindow(ord, req.MinOrderDate, req.MaxOrderDate)
	return e.counter.Submit(ord)
}

func (e *Engine) SubmitOptionOpen(req OptionOrderRequest) (common.OrderID, error) {
	if req.Side.Kind() != common.KindOption {
		return 0, ErrInvalidSide
	}
	margin := req.Margin
	if req.Side.IsBuyer() {
		// Bought options pay premium only, nothing is margined.
		margin = fixed.Zero
	}
	ord := &common.Order{
		State:           common.StateOpen,
		Side:            req.Side,
		Instrument:      req.Option,
		Price:           req.Price,
		Volume:          req.Volume,
		PrevSettle:      req.PrevSettle,
		Strike:          req.Strike,
		Margin:          margin,
		HighLimit:       req.HighLimit,
		LowLimit:        req.LowLimit,
		ForcedCloseDate: req.ForcedCloseDate,
		Commission:      req.Commission,
		Comment:         req.Comment,
	}
	e.stampWindow(ord, req.MinOrderDate, req.MaxOrderDate)
	return e.counter.Submit(ord)
}

func (e *Engine) SubmitOptionClose(req OptionCloseRequest) (common.OrderID, error) {
	if req.Side.Kind() != common.KindOption {
		return 0, ErrInvalidSide
	}
	ord := &common.Order{
		State:      common.StateClose,
		Side:       req.Side,
		Instrument: req.Option,
		Price:      req.Price,
		Volume:     req.Volume,
		Commission: req.Commission,
		Comment:    req.Comment,
	}
	e.stampWindow(ord, req.MinOrderDate, req.MaxOrderDate)
	return e.counter.Submit(ord)
}

func (e *Engine) SubmitEquityOpen(req EquityOrderRequest) (common.OrderID, error) {
	ord := &common.Order{
		State:           common.StateOpen,
		Side:            common.LongEquity,
		Instrument:      req.Symbol,
		Price:           req.Price,
		Volume:          req.Volume,
		HighLimit:       req.HighLimit,
		LowLimit:        req.LowLimit,
		ForcedCloseDate: req.ForcedCloseDate,
		Commission:      req.Commission,
		Comment:         req.Comment,
	}
	e.stampWindow(ord, req.MinOrderDate, req.MaxOrderDate)
	return e.counter.Submit(ord)
}

func (e *Engine) SubmitEquityClose(req EquityCloseRequest) (common.OrderID, error) {
	ord := &common.Order{
		State:      common.StateClose,
		Side:       common.LongEquity,
		Instrument: req.Symbol,
		Price:      req.Price,
		Volume:     req.Volume,
		Commission: req.Commission,
		Comment:    req.Comment,
	}
	e.stampWindow(ord, req.MinOrderDate, req.MaxOrderDate)
	return e.counter.Submit(ord)
}

func (e *Engine) stampWindow(ord *common.Order, min, max time.Time) {
	ord.CreateDate = e.current
	ord.MinOrderDate = min
	if ord.MinOrderDate.IsZero() {
		ord.MinOrderDate = e.start
	}
	ord.MaxOrderDate = max
	if ord.MaxOrderDate.IsZero() {
		ord.MaxOrderDate = e.end
	}
}
