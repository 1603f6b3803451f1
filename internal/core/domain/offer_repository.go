package domain

import "context"

// OfferFilter restricts the result of a listing. Nil fields match anything.
type OfferFilter struct {
	TokenMint *Identity
	OfferType *OfferType
	Status    *OfferStatus
	Maker     *Identity
}

func (f OfferFilter) Match(o *Offer) bool {
	if f.TokenMint != nil && *f.TokenMint != o.TokenMint {
		return false
	}
	if f.OfferType != nil && *f.OfferType != o.OfferType {
		return false
	}
	if f.Status != nil && *f.Status != o.Status {
		return false
	}
	if f.Maker != nil && *f.Maker != o.Maker {
		return false
	}
	return true
}

// OfferRepository is the abstraction for any kind of database intended to
// persist Offers.
type OfferRepository interface {
	// AddOffer stores a new offer, failing with ErrDuplicateAddress if one
	// already exists at the same key.
	AddOffer(ctx context.Context, offer *Offer) error
	// GetOffer returns the offer with the given key.
	GetOffer(ctx context.Context, key Address) (*Offer, error)
	// GetOffers returns the offers matching the given filter.
	GetOffers(ctx context.Context, filter OfferFilter) ([]*Offer, error)
	// UpdateOffer allows to commit multiple changes to the same offer in a
	// transactional way.
	UpdateOffer(
		ctx context.Context, key Address,
		updateFn func(o *Offer) (*Offer, error),
	) error
}
