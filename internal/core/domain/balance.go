package domain

import (
	"bytes"
	"errors"
	"sort"
)

// ErrBalanceOverflow is returned when a credit would overflow a balance.
var ErrBalanceOverflow = errors.New("balance overflow")

// Balance is the amount of an asset held by a custody account.
type Balance struct {
	Account Identity
	Asset   Identity
	Amount  uint64
	Key     Address
}

func NewBalance(account, asset Identity) *Balance {
	return &Balance{
		Account: account,
		Asset:   asset,
		Key:     DeriveBalanceAddress(account, asset),
	}
}

func (b *Balance) Credit(amount uint64) error {
	if b.Amount+amount < b.Amount {
		return ErrBalanceOverflow
	}
	b.Amount += amount
	return nil
}

func (b *Balance) Debit(amount uint64) error {
	if b.Amount < amount {
		return ErrInsufficientFunds
	}
	b.Amount -= amount
	return nil
}

// SortBalances orders balances by asset.
func SortBalances(balances []*Balance) {
	sort.SliceStable(balances, func(i, j int) bool {
		return bytes.Compare(balances[i].Asset[:], balances[j].Asset[:]) < 0
	})
}
