package domain

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Domain tags prefixed to every derivation.
const (
	OfferDomain   = "offer"
	TradeDomain   = "trade"
	ProfileDomain = "profile"
	EscrowDomain  = "escrow"
	BalanceDomain = "balance"
	PriceDomain   = "price"
)

// Seed is a single component of a derivation. It returns the exact bytes
// appended to the hash preimage.
type Seed interface {
	SeedBytes() []byte
}

// U64 serializes as 8 little-endian bytes.
type U64 uint64

func (u U64) SeedBytes() []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(u))
	return buf
}

// U8 serializes as a single byte.
type U8 uint8

func (u U8) SeedBytes() []byte {
	return []byte{byte(u)}
}

// Bytes serializes as-is.
type Bytes []byte

func (b Bytes) SeedBytes() []byte {
	return b
}

func (i Identity) SeedBytes() []byte {
	return i[:]
}

func (a Address) SeedBytes() []byte {
	return a[:]
}

// Derive computes the storage key of a record as SHA-256 over the domain tag
// followed by the seeds, in order.
func Derive(domainTag string, seeds ...Seed) Address {
	preimage := make([]byte, 0, len(domainTag)+len(seeds)*IdentitySize)
	preimage = append(preimage, domainTag...)
	for _, s := range seeds {
		preimage = append(preimage, s.SeedBytes()...)
	}
	return Address(chainhash.HashH(preimage))
}

// DeriveOfferAddress returns the key of an offer. The whole parameter tuple
// identifies the offer, so a maker can hold several offers for the same asset.
func DeriveOfferAddress(
	maker, tokenMint Identity, offerType OfferType, minAmount, maxAmount uint64,
) Address {
	return Derive(
		OfferDomain, maker, tokenMint, U8(offerType), U64(minAmount),
		U64(maxAmount),
	)
}

// DeriveTradeAddress returns the key of a trade, identified by all of its
// negotiation parameters.
func DeriveTradeAddress(
	taker, maker, tokenMint Identity, amount uint64,
) Address {
	return Derive(TradeDomain, taker, maker, tokenMint, U64(amount))
}

// DeriveProfileAddress returns the key of the profile of the given owner.
func DeriveProfileAddress(owner Identity) Address {
	return Derive(ProfileDomain, owner)
}

// DeriveEscrowAccount returns the custody account holding a trade's funds.
func DeriveEscrowAccount(tradeKey Address) Identity {
	return Derive(EscrowDomain, tradeKey).Identity()
}

// DeriveBalanceAddress returns the key of the balance of an asset held by an
// account.
func DeriveBalanceAddress(account, asset Identity) Address {
	return Derive(BalanceDomain, account, asset)
}

// PriceOracleAddress is the key of the singleton oracle record.
var PriceOracleAddress = Derive(PriceDomain, Bytes("state"))
