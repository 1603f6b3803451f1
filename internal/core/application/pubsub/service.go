package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	"github.com/thanhpk/randstr"
)

// ErrInvalidEvent is returned when subscribing to an unknown event.
var ErrInvalidEvent = errors.New("invalid webhook event type")

// WebhookInfo is the public view of a subscription. The secret is never
// returned.
type WebhookInfo struct {
	Id        string `json:"id"`
	Event     string `json:"event"`
	Endpoint  string `json:"endpoint"`
	IsSecured bool   `json:"is_secured"`
}

// Service notifies trade lifecycle events to the registered webhooks.
type Service struct {
	pubsub ports.PubSub
}

func NewService(pubsub ports.PubSub) *Service {
	return &Service{pubsub}
}

// AddWebhook subscribes endpoint to event, or to every event if event is "*".
// If generateSecret is set and no secret is given, a random one is created and
// returned so that the receiver can verify the bearer tokens.
func (s *Service) AddWebhook(
	_ context.Context, event, endpoint, secret string, generateSecret bool,
) (string, string, error) {
	if event != ports.AnyTopic && !ports.TradeEvent(event).IsValid() {
		return "", "", fmt.Errorf("%w %q", ErrInvalidEvent, event)
	}
	if generateSecret && len(secret) <= 0 {
		secret = randstr.Hex(32)
	}

	id, err := s.pubsub.Subscribe(event, endpoint, secret)
	if err != nil {
		return "", "", err
	}
	return id, secret, nil
}

func (s *Service) RemoveWebhook(_ context.Context, id string) error {
	return s.pubsub.Unsubscribe(ports.UnspecifiedTopic, id)
}

// ListWebhooks returns the webhooks notified for event, or all of them if
// event is empty.
func (s *Service) ListWebhooks(
	_ context.Context, event string,
) ([]WebhookInfo, error) {
	subs := s.pubsub.ListSubscriptionsForTopic(event)
	webhooks := make([]WebhookInfo, 0, len(subs))
	for _, sub := range subs {
		webhooks = append(webhooks, WebhookInfo{
			Id:        sub.Id(),
			Event:     sub.Topic(),
			Endpoint:  sub.NotifyAt(),
			IsSecured: sub.IsSecured(),
		})
	}
	return webhooks, nil
}

func (s *Service) PublishTradeEvent(
	event ports.TradeEvent, trade domain.Trade,
) error {
	payload := map[string]interface{}{
		"event": event,
		"trade": getTradePayload(trade),
	}
	message, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.pubsub.Publish(string(event), string(message))
}

func (s *Service) Close() {
	//nolint
	s.pubsub.Close()
}
