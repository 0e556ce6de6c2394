package bus

type EventId uint8

const (
	OrderEvent EventId = iota
	OrderFillEvent
	OrderExpiryEvent
	OrderRejectionEvent
	PositionOpenEvent
	PositionCloseEvent
	AccountEvent
)

func (id EventId) String() string {
	switch id {
	case OrderEvent:
		return "order"
	case OrderFillEvent:
		return "order-fill"
	case OrderExpiryEvent:
		return "order-expiry"
	case OrderRejectionEvent:
		return "order-rejection"
	case PositionOpenEvent:
		return "position-open"
	case PositionCloseEvent:
		return "position-close"
	case AccountEvent:
		return "account"
	default:
		return "unknown"
	}
}
