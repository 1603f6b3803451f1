package pubsub

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	"github.com/Local-DAO/LocalMoney-sub000/pkg/circuitbreaker"
	"github.com/dgraph-io/badger/v3"
	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"
)

const defaultRequestTimeout = 15 * time.Second

type service struct {
	store      *store
	httpClient *client
	cb         *gobreaker.CircuitBreaker
}

// NewService returns a webhook pubsub whose subscriptions are stored under
// datadir, or in memory if datadir is empty.
func NewService(
	datadir string, logger badger.Logger, requestTimeout time.Duration,
) (ports.PubSub, error) {
	st, err := newStore(datadir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening pubsub db: %w", err)
	}
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return &service{
		store:      st,
		httpClient: newHTTPClient(requestTimeout),
		cb:         circuitbreaker.NewCircuitBreaker("webhooks"),
	}, nil
}

func (ws *service) Subscribe(topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscription(topic, endpoint, secret)
	if err != nil {
		return "", err
	}
	if err := ws.store.add(*sub); err != nil {
		return "", err
	}

	log.Debugf("added webhook %s for topic %s", sub.ID, topic)
	return sub.ID, nil
}

func (ws *service) Unsubscribe(_, id string) error {
	if err := ws.store.remove(id); err != nil {
		return err
	}

	log.Debugf("removed webhook %s", id)
	return nil
}

func (ws *service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	return ws.listSubscriptionsForTopic(topic).toPortable()
}

func (ws *service) Publish(topic string, message string) error {
	subs := ws.listSubscriptionsForTopic(topic)

	eg := &errgroup.Group{}
	for i := range subs {
		sub := subs[i]
		eg.Go(func() error { return ws.doRequest(sub, message) })
	}
	return eg.Wait()
}

func (ws *service) Close() error {
	return ws.store.close()
}

// listSubscriptionsForTopic includes the catch-all subscriptions for any
// specific topic.
func (ws *service) listSubscriptionsForTopic(topic string) subscriptions {
	subs, err := ws.store.find(topic)
	if err != nil {
		log.WithError(err).Warnf("failed to list webhooks for topic %s", topic)
		return nil
	}
	if topic != ports.AnyTopic && topic != ports.UnspecifiedTopic {
		subsForAnyTopic, err := ws.store.find(ports.AnyTopic)
		if err != nil {
			log.WithError(err).Warn("failed to list catch-all webhooks")
		}
		subs = append(subs, subsForAnyTopic...)
	}

	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Event == subs[j].Event {
			return subs[i].ID < subs[j].ID
		}
		return subs[i].Event > subs[j].Event
	})
	return subs
}

func (ws *service) doRequest(sub Subscription, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if sub.IsSecured() {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
				Subject:  sub.Event,
				IssuedAt: time.Now().Unix(),
			})
			tokenString, err := token.SignedString([]byte(sub.Secret))
			if err != nil {
				return nil, err
			}
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		return nil, ws.httpClient.post(
			context.Background(), sub.Endpoint, payload, headers,
		)
	})
	if err != nil {
		return fmt.Errorf("webhook %s: %w", sub.ID, err)
	}
	return nil
}
