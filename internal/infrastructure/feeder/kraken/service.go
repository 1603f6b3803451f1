package krakenfeeder

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	// KrakenWebSocketURL is the default endpoint of the kraken public feed.
	KrakenWebSocketURL = "wss://ws.kraken.com"

	maxReconnectAttempts = 5
)

type service struct {
	url         string
	conn        *websocket.Conn
	lock        *sync.RWMutex
	chLock      *sync.Mutex
	stopOnce    *sync.Once
	quitChan    chan struct{}
	isStopped   bool
	connLock    *sync.Mutex
	writeTicker *time.Ticker

	marketByTicker      map[string]ports.Market
	latestFeedsByTicker map[string]ports.PriceFeed
	feedChan            chan ports.PriceFeed
}

// NewKrakenPriceFeeder returns a feeder streaming the last trade price of the
// subscribed tickers. The latest known price of every ticker is pushed to the
// feed channel once per interval. An empty url defaults to KrakenWebSocketURL.
func NewKrakenPriceFeeder(
	url string, interval time.Duration,
) (ports.PriceFeeder, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive")
	}
	if len(url) <= 0 {
		url = KrakenWebSocketURL
	}

	return &service{
		url:                 url,
		writeTicker:         time.NewTicker(interval),
		lock:                &sync.RWMutex{},
		chLock:              &sync.Mutex{},
		connLock:            &sync.Mutex{},
		stopOnce:            &sync.Once{},
		quitChan:            make(chan struct{}),
		marketByTicker:      make(map[string]ports.Market),
		latestFeedsByTicker: make(map[string]ports.PriceFeed),
		feedChan:            make(chan ports.PriceFeed),
	}, nil
}

func (s *service) SubscribeMarkets(markets []ports.Market) error {
	if len(markets) <= 0 {
		return fmt.Errorf("missing markets")
	}

	mktByTicker := make(map[string]ports.Market)
	for _, mkt := range markets {
		if len(mkt.Ticker()) <= 0 {
			return fmt.Errorf("missing market ticker")
		}
		mktByTicker[mkt.Ticker()] = mkt
	}

	conn, err := connectAndSubscribe(s.url, tickers(mktByTicker))
	if err != nil {
		return err
	}

	s.setConn(conn)
	s.marketByTicker = mktByTicker
	return nil
}

// Start blocks reading the feed until Stop is called. A dropped connection
// is re-established a bounded number of times.
func (s *service) Start() error {
	if s.getConn() == nil {
		return fmt.Errorf("feeder has no subscribed markets")
	}

	go func() {
		for {
			select {
			case <-s.quitChan:
				return
			case <-s.writeTicker.C:
				s.writeToFeedChan()
			}
		}
	}()

	attempts := 0
	for {
		err := s.readLoop()
		if s.stopped() {
			return nil
		}
		if attempts >= maxReconnectAttempts {
			s.Stop()
			return fmt.Errorf("kraken feed dropped: %w", err)
		}
		attempts++

		log.WithError(err).Warn(
			"kraken connection dropped unexpectedly, trying to reconnect...",
		)
		time.Sleep(time.Duration(attempts) * time.Second)

		conn, err := connectAndSubscribe(s.url, tickers(s.marketByTicker))
		if err != nil {
			log.WithError(err).Warn("failed to reconnect to kraken")
			continue
		}
		s.setConn(conn)
		attempts = 0
		log.Debug("kraken connection and subscriptions re-established")
	}
}

func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.quitChan)
		s.writeTicker.Stop()
		if conn := s.getConn(); conn != nil {
			//nolint
			conn.Close()
		}

		s.chLock.Lock()
		s.isStopped = true
		close(s.feedChan)
		s.chLock.Unlock()
	})
}

func (s *service) FeedChan() chan ports.PriceFeed {
	return s.feedChan
}

func (s *service) readLoop() error {
	conn := s.getConn()
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		priceFeed := s.parseFeed(message)
		if priceFeed == nil {
			continue
		}
		s.writePriceFeed(priceFeed.GetMarket().Ticker(), priceFeed)
	}
}

func (s *service) stopped() bool {
	select {
	case <-s.quitChan:
		return true
	default:
		return false
	}
}

func (s *service) getConn() *websocket.Conn {
	s.connLock.Lock()
	defer s.connLock.Unlock()
	return s.conn
}

func (s *service) setConn(conn *websocket.Conn) {
	s.connLock.Lock()
	defer s.connLock.Unlock()
	s.conn = conn
}

func (s *service) readPriceFeeds() []ports.PriceFeed {
	s.lock.RLock()
	defer s.lock.RUnlock()

	feeds := make([]ports.PriceFeed, 0, len(s.latestFeedsByTicker))
	for _, priceFeed := range s.latestFeedsByTicker {
		feeds = append(feeds, priceFeed)
	}
	return feeds
}

func (s *service) writePriceFeed(mktTicker string, priceFeed ports.PriceFeed) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.latestFeedsByTicker[mktTicker] = priceFeed
}

func (s *service) writeToFeedChan() {
	priceFeeds := s.readPriceFeeds()
	for _, priceFeed := range priceFeeds {
		s.chLock.Lock()
		if s.isStopped {
			s.chLock.Unlock()
			return
		}
		select {
		case s.feedChan <- priceFeed:
		case <-s.quitChan:
		}
		s.chLock.Unlock()
	}
}

// parseFeed extracts the last trade price from a ticker message, formatted as
// [channelID, {"c": [price, volume], ...}, "ticker", pair].
func (s *service) parseFeed(msg []byte) ports.PriceFeed {
	var i []interface{}
	if err := json.Unmarshal(msg, &i); err != nil {
		return nil
	}
	if len(i) != 4 {
		return nil
	}

	ticker, ok := i[3].(string)
	if !ok {
		return nil
	}
	mkt, ok := s.marketByTicker[ticker]
	if !ok {
		return nil
	}

	ii, ok := i[1].(map[string]interface{})
	if !ok {
		return nil
	}
	iii, ok := ii["c"].([]interface{})
	if !ok || len(iii) < 1 {
		return nil
	}
	priceStr, ok := iii[0].(string)
	if !ok {
		return nil
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil || !price.IsPositive() {
		return nil
	}

	return &priceFeed{
		market: mkt,
		price:  price,
	}
}

func tickers(mktByTicker map[string]ports.Market) []string {
	list := make([]string, 0, len(mktByTicker))
	for ticker := range mktByTicker {
		list = append(list, ticker)
	}
	return list
}

func connectAndSubscribe(
	url string, mktTickers []string,
) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to %s: %w", url, err)
	}

	msg := map[string]interface{}{
		"event": "subscribe",
		"pair":  mktTickers,
		"subscription": map[string]string{
			"name": "ticker",
		},
	}

	buf, _ := json.Marshal(msg)
	if err := conn.WriteMessage(websocket.TextMessage, buf); err != nil {
		//nolint
		conn.Close()
		return nil, fmt.Errorf("cannot subscribe to given markets: %s", err)
	}

	log.Debugf("subscribed to kraken tickers %s", strings.Join(mktTickers, ", "))
	return conn, nil
}
