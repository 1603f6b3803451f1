package domain_test

import (
	"crypto/rand"
	"testing"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	maker := randomIdentity()
	taker := randomIdentity()
	mint := randomIdentity()

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		a := domain.DeriveTradeAddress(taker, maker, mint, 100)
		b := domain.DeriveTradeAddress(taker, maker, mint, 100)
		require.Equal(t, a, b)
	})

	t.Run("different_seeds", func(t *testing.T) {
		t.Parallel()

		keys := []domain.Address{
			domain.DeriveTradeAddress(taker, maker, mint, 100),
			domain.DeriveTradeAddress(taker, maker, mint, 101),
			domain.DeriveTradeAddress(maker, taker, mint, 100),
			domain.DeriveOfferAddress(maker, mint, domain.OfferTypeSell, 1, 10),
			domain.DeriveOfferAddress(maker, mint, domain.OfferTypeBuy, 1, 10),
			domain.DeriveOfferAddress(maker, mint, domain.OfferTypeSell, 1, 11),
			domain.DeriveProfileAddress(maker),
			domain.DeriveProfileAddress(taker),
		}
		seen := make(map[domain.Address]struct{})
		for _, k := range keys {
			_, ok := seen[k]
			require.False(t, ok)
			seen[k] = struct{}{}
		}
	})

	t.Run("domain_separation", func(t *testing.T) {
		t.Parallel()

		require.NotEqual(
			t,
			domain.Derive(domain.ProfileDomain, maker),
			domain.Derive(domain.OfferDomain, maker),
		)
	})

	t.Run("little_endian_integers", func(t *testing.T) {
		t.Parallel()

		require.Equal(
			t,
			[]byte{0x01, 0x02, 0, 0, 0, 0, 0, 0},
			domain.U64(0x0201).SeedBytes(),
		)
		require.Equal(t, []byte{1}, domain.U8(domain.OfferTypeSell).SeedBytes())
	})
}

func TestIdentityText(t *testing.T) {
	id := randomIdentity()

	parsed, err := domain.NewIdentityFromString(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	var zero domain.Identity
	parsed, err = domain.NewIdentityFromString(zero.String())
	require.NoError(t, err)
	require.True(t, parsed.IsZero())

	tests := []struct {
		name string
		str  string
	}{
		{"empty", ""},
		{"too_short", "3yZe7d"},
		{"invalid_alphabet", "0OIl"},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := domain.NewIdentityFromString(tt.str)
			require.EqualError(t, err, domain.ErrInvalidIdentity.Error())
		})
	}
}

func TestStatusDecoding(t *testing.T) {
	t.Parallel()

	s, err := domain.ParseTradeStatus("escrow_deposited")
	require.NoError(t, err)
	require.Equal(t, domain.TradeStatusEscrowDeposited, s)

	_, err = domain.ParseTradeStatus("open")
	require.ErrorIs(t, err, domain.ErrUnknownStatus)

	_, err = domain.ParseOfferStatus("expired")
	require.ErrorIs(t, err, domain.ErrUnknownStatus)

	_, err = domain.ParseOfferType("swap")
	require.ErrorIs(t, err, domain.ErrUnknownStatus)

	_, err = domain.TradeStatus(9).MarshalText()
	require.ErrorIs(t, err, domain.ErrUnknownStatus)
	require.False(t, domain.OfferStatus(3).IsValid())
}

func randomIdentity() domain.Identity {
	var id domain.Identity
	// nolint
	rand.Read(id[:])
	return id
}
