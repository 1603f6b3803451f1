package metrics

import (
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "escrow"

// TradePublisher counts the committed trade transitions and forwards every
// event to the wrapped publisher, if any.
type TradePublisher struct {
	next ports.TradeEventPublisher

	events *prometheus.CounterVec
	volume *prometheus.CounterVec
}

func NewTradePublisher(
	reg prometheus.Registerer, next ports.TradeEventPublisher,
) (*TradePublisher, error) {
	p := &TradePublisher{
		next: next,
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trade_events_total",
			Help:      "Number of committed trade transitions by event.",
		}, []string{"event"}),
		volume: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trade_volume_total",
			Help:      "Sum of the trade amounts by event.",
		}, []string{"event"}),
	}

	for _, c := range []prometheus.Collector{p.events, p.volume} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	for _, event := range ports.TradeEvents {
		p.events.WithLabelValues(string(event))
		p.volume.WithLabelValues(string(event))
	}
	return p, nil
}

func (p *TradePublisher) PublishTradeEvent(
	event ports.TradeEvent, trade domain.Trade,
) error {
	p.events.WithLabelValues(string(event)).Inc()
	p.volume.WithLabelValues(string(event)).Add(float64(trade.Amount))

	if p.next == nil {
		return nil
	}
	return p.next.PublishTradeEvent(event, trade)
}
