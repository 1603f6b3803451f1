package priceupdater

import (
	"fmt"
	"strings"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
)

// Market binds a feeder ticker to the oracle currency its price is quoted in.
type Market struct {
	MarketTicker   string
	MarketCurrency string
}

// NewMarket parses a ticker in the BASE/QUOTE form. The quote part is the
// oracle currency.
func NewMarket(ticker string) (*Market, error) {
	parts := strings.Split(ticker, "/")
	if len(parts) != 2 || len(parts[0]) <= 0 {
		return nil, fmt.Errorf("invalid ticker %q, must be in BASE/QUOTE form", ticker)
	}
	currency := strings.ToUpper(parts[1])
	if err := domain.ValidateCurrency(currency); err != nil {
		return nil, fmt.Errorf("invalid ticker %q: %w", ticker, err)
	}
	return &Market{ticker, currency}, nil
}

func (m *Market) Ticker() string {
	return m.MarketTicker
}

func (m *Market) Currency() string {
	return m.MarketCurrency
}
