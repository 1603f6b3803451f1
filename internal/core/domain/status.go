package domain

import "strings"

// OfferType tells whether the maker buys or sells the asset.
type OfferType uint8

const (
	OfferTypeBuy OfferType = iota
	OfferTypeSell
)

var offerTypeNames = map[OfferType]string{
	OfferTypeBuy:  "BUY",
	OfferTypeSell: "SELL",
}

func (t OfferType) IsValid() bool {
	_, ok := offerTypeNames[t]
	return ok
}

func (t OfferType) String() string {
	if name, ok := offerTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

func (t OfferType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, ErrUnknownStatus
	}
	return []byte(t.String()), nil
}

func (t *OfferType) UnmarshalText(text []byte) error {
	v, err := ParseOfferType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseOfferType decodes the textual form of an offer type.
func ParseOfferType(str string) (OfferType, error) {
	for k, v := range offerTypeNames {
		if strings.EqualFold(v, str) {
			return k, nil
		}
	}
	return 0, ErrUnknownStatus
}

// OfferStatus is the lifecycle status of an offer.
type OfferStatus uint8

const (
	OfferStatusActive OfferStatus = iota
	OfferStatusPaused
	OfferStatusClosed
)

var offerStatusNames = map[OfferStatus]string{
	OfferStatusActive: "ACTIVE",
	OfferStatusPaused: "PAUSED",
	OfferStatusClosed: "CLOSED",
}

func (s OfferStatus) IsValid() bool {
	_, ok := offerStatusNames[s]
	return ok
}

func (s OfferStatus) String() string {
	if name, ok := offerStatusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s OfferStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, ErrUnknownStatus
	}
	return []byte(s.String()), nil
}

func (s *OfferStatus) UnmarshalText(text []byte) error {
	v, err := ParseOfferStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseOfferStatus decodes the textual form of an offer status.
func ParseOfferStatus(str string) (OfferStatus, error) {
	for k, v := range offerStatusNames {
		if strings.EqualFold(v, str) {
			return k, nil
		}
	}
	return 0, ErrUnknownStatus
}

// TradeStatus is the lifecycle status of a trade.
type TradeStatus uint8

const (
	TradeStatusCreated TradeStatus = iota
	TradeStatusEscrowDeposited
	TradeStatusCompleted
	TradeStatusCancelled
	TradeStatusDisputed
)

var tradeStatusNames = map[TradeStatus]string{
	TradeStatusCreated:         "CREATED",
	TradeStatusEscrowDeposited: "ESCROW_DEPOSITED",
	TradeStatusCompleted:       "COMPLETED",
	TradeStatusCancelled:       "CANCELLED",
	TradeStatusDisputed:        "DISPUTED",
}

func (s TradeStatus) IsValid() bool {
	_, ok := tradeStatusNames[s]
	return ok
}

// IsFinal returns whether no further transition is possible.
func (s TradeStatus) IsFinal() bool {
	return s == TradeStatusCompleted || s == TradeStatusCancelled ||
		s == TradeStatusDisputed
}

func (s TradeStatus) String() string {
	if name, ok := tradeStatusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s TradeStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, ErrUnknownStatus
	}
	return []byte(s.String()), nil
}

func (s *TradeStatus) UnmarshalText(text []byte) error {
	v, err := ParseTradeStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseTradeStatus decodes the textual form of a trade status.
func ParseTradeStatus(str string) (TradeStatus, error) {
	for k, v := range tradeStatusNames {
		if strings.EqualFold(v, str) {
			return k, nil
		}
	}
	return 0, ErrUnknownStatus
}
