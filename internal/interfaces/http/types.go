package httpinterface

import (
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
)

type keyResponse struct {
	Key domain.Address `json:"key"`
}

type actorRequest struct {
	Actor domain.Identity `json:"actor"`
}

type createOfferRequest struct {
	Maker         domain.Identity  `json:"maker"`
	TokenMint     domain.Identity  `json:"token_mint"`
	PricePerToken uint64           `json:"price_per_token"`
	MinAmount     uint64           `json:"min_amount"`
	MaxAmount     uint64           `json:"max_amount"`
	OfferType     domain.OfferType `json:"offer_type"`
}

type updateOfferRequest struct {
	Actor         domain.Identity `json:"actor"`
	PricePerToken *uint64         `json:"price_per_token"`
	MinAmount     *uint64         `json:"min_amount"`
	MaxAmount     *uint64         `json:"max_amount"`
}

type takeOfferRequest struct {
	Taker  domain.Identity `json:"taker"`
	Amount uint64          `json:"amount"`
}

type offerResponse struct {
	Key           domain.Address     `json:"key"`
	Maker         domain.Identity    `json:"maker"`
	TokenMint     domain.Identity    `json:"token_mint"`
	PricePerToken uint64             `json:"price_per_token"`
	MinAmount     uint64             `json:"min_amount"`
	MaxAmount     uint64             `json:"max_amount"`
	OfferType     domain.OfferType   `json:"offer_type"`
	Status        domain.OfferStatus `json:"status"`
	CreatedAt     int64              `json:"created_at"`
	UpdatedAt     int64              `json:"updated_at"`
}

func newOfferResponse(o *domain.Offer) offerResponse {
	return offerResponse{
		Key:           o.Key,
		Maker:         o.Maker,
		TokenMint:     o.TokenMint,
		PricePerToken: o.PricePerToken,
		MinAmount:     o.MinAmount,
		MaxAmount:     o.MaxAmount,
		OfferType:     o.OfferType,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

type createTradeRequest struct {
	Initiator    domain.Identity `json:"initiator"`
	Counterparty domain.Identity `json:"counterparty"`
	TokenMint    domain.Identity `json:"token_mint"`
	Amount       uint64          `json:"amount"`
	Price        uint64          `json:"price"`
}

type depositEscrowRequest struct {
	Depositor domain.Identity `json:"depositor"`
	Amount    uint64          `json:"amount"`
}

type completeTradeRequest struct {
	Actor        domain.Identity `json:"actor"`
	Currency     string          `json:"currency"`
	ToleranceBps *uint32         `json:"tolerance_bps"`
}

type tradeResponse struct {
	Key           domain.Address     `json:"key"`
	Maker         domain.Identity    `json:"maker"`
	Taker         domain.Identity    `json:"taker"`
	TokenMint     domain.Identity    `json:"token_mint"`
	Amount        uint64             `json:"amount"`
	Price         uint64             `json:"price"`
	EscrowAccount domain.Identity    `json:"escrow_account"`
	EscrowBalance uint64             `json:"escrow_balance"`
	Depositor     domain.Identity    `json:"depositor"`
	Offer         *domain.Address    `json:"offer,omitempty"`
	Status        domain.TradeStatus `json:"status"`
	CreatedAt     int64              `json:"created_at"`
	UpdatedAt     int64              `json:"updated_at"`
}

func newTradeResponse(t *domain.Trade) tradeResponse {
	res := tradeResponse{
		Key:           t.Key,
		Maker:         t.Maker,
		Taker:         t.Taker,
		TokenMint:     t.TokenMint,
		Amount:        t.Amount,
		Price:         t.Price,
		EscrowAccount: t.EscrowAccount,
		EscrowBalance: t.EscrowBalance(),
		Depositor:     t.Depositor,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if !t.Offer.IsZero() {
		offer := t.Offer
		res.Offer = &offer
	}
	return res
}

type createProfileRequest struct {
	Owner    domain.Identity `json:"owner"`
	Username string          `json:"username"`
}

type updateProfileRequest struct {
	Actor    domain.Identity `json:"actor"`
	Username *string         `json:"username"`
}

type updateReputationRequest struct {
	Authority  domain.Identity `json:"authority"`
	ScoreDelta int64           `json:"score_delta"`
}

type authorityRequest struct {
	Authority domain.Identity `json:"authority"`
}

type profileResponse struct {
	Key             domain.Address  `json:"key"`
	Owner           domain.Identity `json:"owner"`
	Username        string          `json:"username"`
	ReputationScore int64           `json:"reputation_score"`
	TradesCompleted uint64          `json:"trades_completed"`
	TradesDisputed  uint64          `json:"trades_disputed"`
	IsVerified      bool            `json:"is_verified"`
	CreatedAt       int64           `json:"created_at"`
	UpdatedAt       int64           `json:"updated_at"`
}

func newProfileResponse(p *domain.Profile) profileResponse {
	return profileResponse{
		Key:             p.Key,
		Owner:           p.Owner,
		Username:        p.Username,
		ReputationScore: p.ReputationScore,
		TradesCompleted: p.TradesCompleted,
		TradesDisputed:  p.TradesDisputed,
		IsVerified:      p.IsVerified,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

type initializeOracleRequest struct {
	Admin domain.Identity `json:"admin"`
}

type setPriceProviderRequest struct {
	Admin    domain.Identity `json:"admin"`
	Provider domain.Identity `json:"provider"`
}

type priceQuote struct {
	Currency  string `json:"currency"`
	UsdPrice  uint64 `json:"usd_price"`
	UpdatedAt int64  `json:"updated_at,omitempty"`
}

type updatePricesRequest struct {
	Authority domain.Identity `json:"authority"`
	Quotes    []priceQuote    `json:"quotes"`
}

type priceRoute struct {
	OfferAsset string          `json:"offer_asset"`
	Pool       domain.Identity `json:"pool"`
}

type registerPriceRouteRequest struct {
	Admin  domain.Identity `json:"admin"`
	Denom  string          `json:"denom"`
	Routes []priceRoute    `json:"routes"`
}

type verifyPriceRequest struct {
	Price        uint64  `json:"price"`
	Currency     string  `json:"currency"`
	ToleranceBps *uint32 `json:"tolerance_bps"`
}

type oracleResponse struct {
	Admin         domain.Identity         `json:"admin"`
	PriceProvider domain.Identity         `json:"price_provider"`
	IsInitialized bool                    `json:"is_initialized"`
	Quotes        []priceQuote            `json:"quotes"`
	Routes        map[string][]priceRoute `json:"routes"`
	UpdatedAt     int64                   `json:"updated_at"`
}

func newOracleResponse(o *domain.PriceOracle) oracleResponse {
	quotes := make([]priceQuote, 0, len(o.Quotes))
	for _, q := range o.SortedQuotes() {
		quotes = append(quotes, priceQuote(q))
	}
	routes := make(map[string][]priceRoute, len(o.Routes))
	for denom, list := range o.Routes {
		for _, r := range list {
			routes[denom] = append(routes[denom], priceRoute(r))
		}
	}
	return oracleResponse{
		Admin:         o.Admin,
		PriceProvider: o.PriceProvider,
		IsInitialized: o.IsInitialized,
		Quotes:        quotes,
		Routes:        routes,
		UpdatedAt:     o.UpdatedAt,
	}
}

type creditRequest struct {
	Account domain.Identity `json:"account"`
	Asset   domain.Identity `json:"asset"`
	Amount  uint64          `json:"amount"`
}

type balanceResponse struct {
	Account domain.Identity `json:"account"`
	Asset   domain.Identity `json:"asset"`
	Amount  uint64          `json:"amount"`
}

type addWebhookRequest struct {
	Event          string `json:"event"`
	Endpoint       string `json:"endpoint"`
	Secret         string `json:"secret"`
	GenerateSecret bool   `json:"generate_secret"`
}

type addWebhookResponse struct {
	Id     string `json:"id"`
	Secret string `json:"secret,omitempty"`
}
