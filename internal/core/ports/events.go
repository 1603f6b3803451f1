package ports

import "github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"

// TradeEvent is the topic of a trade lifecycle notification.
type TradeEvent string

const (
	TradeCreated    TradeEvent = "TRADE_CREATED"
	EscrowDeposited TradeEvent = "ESCROW_DEPOSITED"
	TradeCompleted  TradeEvent = "TRADE_COMPLETED"
	TradeCancelled  TradeEvent = "TRADE_CANCELLED"
	TradeDisputed   TradeEvent = "TRADE_DISPUTED"
)

// TradeEvents lists all the trade lifecycle events.
var TradeEvents = []TradeEvent{
	TradeCreated, EscrowDeposited, TradeCompleted, TradeCancelled, TradeDisputed,
}

func (e TradeEvent) IsValid() bool {
	for _, ev := range TradeEvents {
		if e == ev {
			return true
		}
	}
	return false
}

// TradeEventPublisher notifies the outer world of committed trade transitions.
type TradeEventPublisher interface {
	PublishTradeEvent(event TradeEvent, trade domain.Trade) error
}
