package domain

import "sort"

// Offer is a maker's resting quote to buy or sell an asset within an amount
// range at a fixed price per token.
type Offer struct {
	Maker         Identity
	TokenMint     Identity
	PricePerToken uint64
	MinAmount     uint64
	MaxAmount     uint64
	OfferType     OfferType
	Status        OfferStatus
	CreatedAt     int64
	UpdatedAt     int64
	Key           Address
}

// OfferUpdate holds the optional fields of an offer update. Nil fields are
// left untouched.
type OfferUpdate struct {
	PricePerToken *uint64
	MinAmount     *uint64
	MaxAmount     *uint64
}

// NewOffer validates the given arguments and returns an Active offer keyed by
// its derived address.
func NewOffer(
	maker, tokenMint Identity, pricePerToken, minAmount, maxAmount uint64,
	offerType OfferType, now int64,
) (*Offer, error) {
	if maker.IsZero() || tokenMint.IsZero() {
		return nil, ErrInvalidIdentity
	}
	if !offerType.IsValid() {
		return nil, ErrUnknownStatus
	}
	if err := validateOfferAmounts(minAmount, maxAmount); err != nil {
		return nil, err
	}
	if pricePerToken == 0 {
		return nil, ErrInvalidPrice
	}

	return &Offer{
		Maker:         maker,
		TokenMint:     tokenMint,
		PricePerToken: pricePerToken,
		MinAmount:     minAmount,
		MaxAmount:     maxAmount,
		OfferType:     offerType,
		Status:        OfferStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
		Key: DeriveOfferAddress(
			maker, tokenMint, offerType, minAmount, maxAmount,
		),
	}, nil
}

func (o *Offer) IsActive() bool {
	return o.Status == OfferStatusActive
}

func (o *Offer) IsPaused() bool {
	return o.Status == OfferStatusPaused
}

func (o *Offer) IsClosed() bool {
	return o.Status == OfferStatusClosed
}

// Update applies the given changes. The record key is not re-derived.
func (o *Offer) Update(actor Identity, update OfferUpdate, now int64) error {
	if actor != o.Maker {
		return ErrUnauthorized
	}
	if o.IsClosed() {
		return ErrInvalidState
	}

	price, min, max := o.PricePerToken, o.MinAmount, o.MaxAmount
	if update.PricePerToken != nil {
		price = *update.PricePerToken
	}
	if update.MinAmount != nil {
		min = *update.MinAmount
	}
	if update.MaxAmount != nil {
		max = *update.MaxAmount
	}
	if err := validateOfferAmounts(min, max); err != nil {
		return err
	}
	if price == 0 {
		return ErrInvalidPrice
	}

	o.PricePerToken = price
	o.MinAmount = min
	o.MaxAmount = max
	o.UpdatedAt = now
	return nil
}

// Pause brings an Active offer to the Paused status.
func (o *Offer) Pause(actor Identity, now int64) error {
	if actor != o.Maker {
		return ErrUnauthorized
	}
	if !o.IsActive() {
		return ErrInvalidState
	}
	o.Status = OfferStatusPaused
	o.UpdatedAt = now
	return nil
}

// Resume brings a Paused offer back to the Active status.
func (o *Offer) Resume(actor Identity, now int64) error {
	if actor != o.Maker {
		return ErrUnauthorized
	}
	if !o.IsPaused() {
		return ErrInvalidState
	}
	o.Status = OfferStatusActive
	o.UpdatedAt = now
	return nil
}

// Close permanently closes an Active or Paused offer.
func (o *Offer) Close(actor Identity, now int64) error {
	if actor != o.Maker {
		return ErrUnauthorized
	}
	if o.IsClosed() {
		return ErrInvalidState
	}
	o.Status = OfferStatusClosed
	o.UpdatedAt = now
	return nil
}

// CanBeTaken checks that the offer can be taken by the given taker for the
// given amount.
func (o *Offer) CanBeTaken(taker Identity, amount uint64) error {
	if taker == o.Maker {
		return ErrUnauthorized
	}
	if !o.IsActive() {
		return ErrInvalidState
	}
	if amount < o.MinAmount || amount > o.MaxAmount {
		return ErrInvalidAmount
	}
	return nil
}

// Depositor returns who funds the escrow of a trade taken from this offer,
// that is the party selling the asset.
func (o *Offer) Depositor(taker Identity) Identity {
	if o.OfferType == OfferTypeBuy {
		return taker
	}
	return o.Maker
}

func validateOfferAmounts(min, max uint64) error {
	if min == 0 || max == 0 || min > max {
		return ErrInvalidAmounts
	}
	return nil
}

// SortOffers orders offers by creation time, then by key.
func SortOffers(offers []*Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].CreatedAt == offers[j].CreatedAt {
			return offers[i].Key.Less(offers[j].Key)
		}
		return offers[i].CreatedAt < offers[j].CreatedAt
	})
}
