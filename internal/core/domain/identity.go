package domain

import (
	"bytes"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// IdentitySize is the length in bytes of the canonical binary form of an
// identity, an asset identifier or a derived address.
const IdentitySize = 32

// Identity is the 32-byte public key of a participant. Asset identifiers
// (token mints) and custody accounts share the same representation.
type Identity [IdentitySize]byte

// NewIdentityFromString parses the base58 text form of an identity.
func NewIdentityFromString(str string) (Identity, error) {
	var id Identity
	if len(str) <= 0 {
		return id, ErrInvalidIdentity
	}
	buf := base58.Decode(str)
	if len(buf) != IdentitySize {
		return id, ErrInvalidIdentity
	}
	copy(id[:], buf)
	return id, nil
}

// NewIdentityFromBytes copies the given buffer into an Identity.
func NewIdentityFromBytes(buf []byte) (Identity, error) {
	var id Identity
	if len(buf) != IdentitySize {
		return id, ErrInvalidIdentity
	}
	copy(id[:], buf)
	return id, nil
}

// String returns the base58 encoding of the identity.
func (i Identity) String() string {
	return base58.Encode(i[:])
}

func (i Identity) Bytes() []byte {
	buf := make([]byte, IdentitySize)
	copy(buf, i[:])
	return buf
}

func (i Identity) IsZero() bool {
	return i == Identity{}
}

func (i Identity) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Identity) UnmarshalText(text []byte) error {
	id, err := NewIdentityFromString(string(text))
	if err != nil {
		return err
	}
	*i = id
	return nil
}

// Address is the deterministic storage key of a record, see Derive.
type Address [IdentitySize]byte

// NewAddressFromString parses the base58 text form of an address.
func NewAddressFromString(str string) (Address, error) {
	id, err := NewIdentityFromString(str)
	if err != nil {
		return Address{}, ErrInvalidAddress
	}
	return Address(id), nil
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) Bytes() []byte {
	buf := make([]byte, IdentitySize)
	copy(buf, a[:])
	return buf
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// Less orders addresses by their binary form.
func (a Address) Less(b Address) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// Identity returns the address as an account identity. Escrow accounts are
// addressed this way by the custody ledger.
func (a Address) Identity() Identity {
	return Identity(a)
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := NewAddressFromString(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
