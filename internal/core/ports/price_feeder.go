package ports

import "github.com/shopspring/decimal"

// Market is a ticker streamed by a price feeder, bound to the oracle currency
// its price is quoted in.
type Market interface {
	Ticker() string
	Currency() string
}

type PriceFeed interface {
	GetMarket() Market
	GetPrice() decimal.Decimal
}

type PriceFeeder interface {
	SubscribeMarkets([]Market) error

	Start() error
	Stop()

	FeedChan() chan PriceFeed
}
