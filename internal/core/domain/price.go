package domain

import (
	"math/big"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	maxCurrencyLength = 10
	bpsDenominator    = 10000
)

// PriceQuote is the reference USD price of a currency.
type PriceQuote struct {
	Currency  string
	UsdPrice  uint64
	UpdatedAt int64
}

// PriceRoute describes a pool used to price an asset denomination.
type PriceRoute struct {
	OfferAsset string
	Pool       Identity
}

// PriceOracle is the singleton record holding the reference quotes.
type PriceOracle struct {
	Admin         Identity
	PriceProvider Identity
	IsInitialized bool
	Quotes        map[string]PriceQuote
	Routes        map[string][]PriceRoute
	UpdatedAt     int64
}

// Initialize sets the admin, that is also the initial price provider.
func (o *PriceOracle) Initialize(admin Identity, now int64) error {
	if o.IsInitialized {
		return ErrDuplicateAddress
	}
	if admin.IsZero() {
		return ErrInvalidIdentity
	}
	o.Admin = admin
	o.PriceProvider = admin
	o.IsInitialized = true
	if o.Quotes == nil {
		o.Quotes = make(map[string]PriceQuote)
	}
	if o.Routes == nil {
		o.Routes = make(map[string][]PriceRoute)
	}
	o.UpdatedAt = now
	return nil
}

// SetPriceProvider replaces the identity allowed to update prices.
func (o *PriceOracle) SetPriceProvider(actor, provider Identity, now int64) error {
	if !o.IsInitialized {
		return ErrInvalidPriceProvider
	}
	if actor != o.Admin {
		return ErrUnauthorized
	}
	if provider.IsZero() {
		return ErrInvalidIdentity
	}
	o.PriceProvider = provider
	o.UpdatedAt = now
	return nil
}

// UpdatePrices upserts the given quotes by currency. Either all quotes are
// applied or none.
func (o *PriceOracle) UpdatePrices(
	actor Identity, quotes []PriceQuote, now int64,
) error {
	if !o.IsInitialized || o.PriceProvider.IsZero() {
		return ErrInvalidPriceProvider
	}
	if actor != o.PriceProvider {
		return ErrUnauthorized
	}
	for _, q := range quotes {
		if err := ValidateCurrency(q.Currency); err != nil {
			return err
		}
		if q.UsdPrice == 0 {
			return ErrInvalidAmount
		}
	}

	if o.Quotes == nil {
		o.Quotes = make(map[string]PriceQuote)
	}
	for _, q := range quotes {
		if q.UpdatedAt == 0 {
			q.UpdatedAt = now
		}
		o.Quotes[q.Currency] = q
	}
	o.UpdatedAt = now
	return nil
}

// RegisterPriceRoute replaces the routes used to price the given denom.
func (o *PriceOracle) RegisterPriceRoute(
	actor Identity, denom string, routes []PriceRoute, now int64,
) error {
	if !o.IsInitialized {
		return ErrInvalidPriceProvider
	}
	if actor != o.Admin {
		return ErrUnauthorized
	}
	if len(denom) == 0 || len(routes) == 0 {
		return ErrInvalidRoute
	}
	for _, r := range routes {
		if len(r.OfferAsset) == 0 || r.Pool.IsZero() {
			return ErrInvalidRoute
		}
	}

	if o.Routes == nil {
		o.Routes = make(map[string][]PriceRoute)
	}
	o.Routes[denom] = append([]PriceRoute{}, routes...)
	o.UpdatedAt = now
	return nil
}

// GetPrice returns the quote for the given currency.
func (o *PriceOracle) GetPrice(currency string) (*PriceQuote, error) {
	q, ok := o.Quotes[currency]
	if !ok {
		return nil, ErrPriceNotFound
	}
	return &q, nil
}

// SortedQuotes returns all quotes ordered by currency.
func (o *PriceOracle) SortedQuotes() []PriceQuote {
	quotes := make([]PriceQuote, 0, len(o.Quotes))
	for _, q := range o.Quotes {
		quotes = append(quotes, q)
	}
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Currency < quotes[j].Currency
	})
	return quotes
}

// Verify checks that price is within toleranceBps of the reference quote of
// currency. Bounds are inclusive.
func (o *PriceOracle) Verify(
	price uint64, currency string, toleranceBps uint32,
) error {
	if !o.IsInitialized || o.PriceProvider.IsZero() {
		return ErrInvalidPriceProvider
	}
	quote, err := o.GetPrice(currency)
	if err != nil {
		return err
	}

	lower, upper := ToleranceBand(quote.UsdPrice, toleranceBps)
	p := decimalFromUint64(price)
	if p.LessThan(lower) || p.GreaterThan(upper) {
		return ErrPriceOutOfRange
	}
	return nil
}

// ToleranceBand returns the inclusive range of prices accepted around the
// given reference. The lower bound never goes below zero.
func ToleranceBand(
	reference uint64, toleranceBps uint32,
) (decimal.Decimal, decimal.Decimal) {
	ref := decimalFromUint64(reference)
	tolerance := decimal.NewFromInt(int64(toleranceBps)).Div(
		decimal.NewFromInt(bpsDenominator),
	)
	one := decimal.NewFromInt(1)

	lower := ref.Mul(one.Sub(tolerance))
	if lower.IsNegative() {
		lower = decimal.Zero
	}
	upper := ref.Mul(one.Add(tolerance))
	return lower, upper
}

// ValidateCurrency checks that the code is made of 1 to 10 upper case letters
// or digits.
func ValidateCurrency(currency string) error {
	if len(currency) == 0 || len(currency) > maxCurrencyLength {
		return ErrInvalidCurrency
	}
	for _, c := range currency {
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return ErrInvalidCurrency
		}
	}
	return nil
}

func decimalFromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}
