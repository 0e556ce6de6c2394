package common

type InstrumentKind int

const (
	KindFuture InstrumentKind = iota
	KindOption
	KindEquity
)

func (k InstrumentKind) String() string {
	switch k {
	case KindFuture:
		return "future"
	case KindOption:
		return "option"
	case KindEquity:
		return "equity"
	default:
		return "unknown"
	}
}

// BookSide names one of the directional position books. Each side carries a
// fixed sign so long/buy and short/sell accounting share one formula.
type BookSide int

const (
	LongFuture BookSide = iota
	ShortFuture
	BuyCall
	SellCall
	BuyPut
	SellPut
	LongEquity
)

// Sides lists every book side in the order the daily pipeline visits them.
var Sides = []BookSide{LongFuture, ShortFuture, BuyCall, SellCall, BuyPut, SellPut, LongEquity}

func (s BookSide) String() string {
	switch s {
	case LongFuture:
		return "long"
	case ShortFuture:
		return "short"
	case BuyCall:
		return "buy-call"
	case SellCall:
		return "sell-call"
	case BuyPut:
		return "buy-put"
	case SellPut:
		return "sell-put"
	case LongEquity:
		return "equity"
	default:
		return "unknown"
	}
}

// Sign is +1 for long/buy oriented books and -1 for short/sell oriented ones.
func (s BookSide) Sign() int64 {
	switch s {
	case ShortFuture, SellCall, SellPut:
		return -1
	default:
		return 1
	}
}

func (s BookSide) Kind() InstrumentKind {
	switch s {
	case LongFuture, ShortFuture:
		return KindFuture
	case LongEquity:
		return KindEquity
	default:
		return KindOption
	}
}

// IsBuyer reports whether the side pays premium when opening. Option buyers
// post no margin.
func (s BookSide) IsBuyer() bool {
	return s == BuyCall || s == BuyPut
}

type OrderState int

const (
	StateOpen OrderState = iota
	StateClose
)

func (s OrderState) String() string {
	if s == StateClose {
		return "close"
	}
	return "open"
}

// CloseReason tags why a fill or forced close happened.
type CloseReason int

const (
	// ReasonSignal marks fills requested by the strategy through the counter.
	ReasonSignal CloseReason = iota
	// ReasonHighLimit marks a close at the upper price bound.
	ReasonHighLimit
	// ReasonLowLimit marks a close at the lower price bound.
	ReasonLowLimit
	// ReasonEndDate marks a futures close on the contract's last trading day.
	ReasonEndDate
	// ReasonClear marks an out-of-the-money option cleared at zero on expiry.
	ReasonClear
	// ReasonMaxDate marks a close forced by the lot's own holding limit.
	ReasonMaxDate
)

func (r CloseReason) String() string {
	switch r {
	case ReasonHighLimit:
		return "high_limit"
	case ReasonLowLimit:
		return "low_limit"
	case ReasonEndDate:
		return "end_date"
	case ReasonClear:
		return "clear"
	case ReasonMaxDate:
		return "max_date"
	default:
		return "signal"
	}
}
