package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmounts is returned when an offer range is empty or inverted.
	ErrInvalidAmounts = errors.New("min amount must be positive and not greater than max amount")
	// ErrInvalidAmount is returned for a zero amount or price, or for a take
	// amount outside of the offer range.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidPrice is returned for a zero price per token.
	ErrInvalidPrice = errors.New("price must be greater than zero")
	// ErrInvalidState is returned when an operation is not allowed in the
	// current status of the record.
	ErrInvalidState = errors.New("operation not allowed in current status")
	// ErrUnauthorized is returned when the actor is not allowed to perform the
	// operation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDuplicateAddress is returned when a record already exists at the
	// derived address.
	ErrDuplicateAddress = errors.New("record already exists at derived address")
	// ErrAmountMismatch is returned when the deposited amount differs from the
	// trade amount.
	ErrAmountMismatch = errors.New("deposit amount does not match trade amount")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrPriceNotFound is returned when the oracle has no quote for a currency.
	ErrPriceNotFound = errors.New("price not found for currency")
	// ErrPriceOutOfRange is returned when a trade price falls outside of the
	// tolerance band around the reference price.
	ErrPriceOutOfRange = errors.New("price out of tolerance range")
	// ErrInvalidPriceProvider is returned when the oracle has no price provider
	// configured.
	ErrInvalidPriceProvider = errors.New("price oracle not initialized")
	// ErrUnknownStatus is returned when a status tag cannot be decoded.
	ErrUnknownStatus = errors.New("unknown status")
	// ErrCorruptRecord is returned when a stored record cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt stored record")
	// ErrNotFound ...
	ErrNotFound = errors.New("not found")

	ErrInvalidIdentity = errors.New("invalid identity")
	ErrInvalidAddress  = errors.New("invalid address")
	ErrInvalidUsername = errors.New("username must be 1 to 32 printable characters")
	ErrInvalidCurrency = errors.New("currency must be 1 to 10 upper case letters or digits")
	ErrInvalidRoute    = errors.New("invalid price route")
)

// NewCorruptRecordError wraps the decode failure of a stored record so that
// it matches both ErrCorruptRecord and cause.
func NewCorruptRecordError(cause error) error {
	return fmt.Errorf("%w: %w", ErrCorruptRecord, cause)
}
