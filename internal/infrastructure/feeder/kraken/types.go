package krakenfeeder

import (
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	"github.com/shopspring/decimal"
)

type priceFeed struct {
	market ports.Market
	price  decimal.Decimal
}

func (p *priceFeed) GetMarket() ports.Market {
	return p.market
}

func (p *priceFeed) GetPrice() decimal.Decimal {
	return p.price
}
