package domain

import "sort"

// Trade is a single escrowed exchange between a maker and a taker.
type Trade struct {
	Maker         Identity
	Taker         Identity
	TokenMint     Identity
	Amount        uint64
	Price         uint64
	EscrowAccount Identity
	Status        TradeStatus
	CreatedAt     int64
	UpdatedAt     int64
	Key           Address
	// Offer is the key of the offer the trade was taken from, zero for trades
	// negotiated directly.
	Offer     Address
	Depositor Identity
}

// NewTrade validates the negotiation parameters and returns a Created trade
// keyed by its derived address. The depositor must be either the maker or the
// taker.
func NewTrade(
	maker, taker, tokenMint Identity, amount, price uint64,
	offer Address, depositor Identity, now int64,
) (*Trade, error) {
	if maker.IsZero() || taker.IsZero() || tokenMint.IsZero() {
		return nil, ErrInvalidIdentity
	}
	if maker == taker {
		return nil, ErrUnauthorized
	}
	if depositor != maker && depositor != taker {
		return nil, ErrUnauthorized
	}
	if amount == 0 || price == 0 {
		return nil, ErrInvalidAmount
	}

	key := DeriveTradeAddress(taker, maker, tokenMint, amount)
	return &Trade{
		Maker:         maker,
		Taker:         taker,
		TokenMint:     tokenMint,
		Amount:        amount,
		Price:         price,
		EscrowAccount: DeriveEscrowAccount(key),
		Status:        TradeStatusCreated,
		CreatedAt:     now,
		UpdatedAt:     now,
		Key:           key,
		Offer:         offer,
		Depositor:     depositor,
	}, nil
}

func (t *Trade) IsCreated() bool {
	return t.Status == TradeStatusCreated
}

func (t *Trade) IsEscrowDeposited() bool {
	return t.Status == TradeStatusEscrowDeposited
}

func (t *Trade) IsCompleted() bool {
	return t.Status == TradeStatusCompleted
}

func (t *Trade) IsCancelled() bool {
	return t.Status == TradeStatusCancelled
}

func (t *Trade) IsDisputed() bool {
	return t.Status == TradeStatusDisputed
}

// IsParty returns whether the given identity is the maker or the taker.
func (t *Trade) IsParty(id Identity) bool {
	return id == t.Maker || id == t.Taker
}

// Receiver returns the party that is paid the escrow on completion.
func (t *Trade) Receiver() Identity {
	if t.Depositor == t.Maker {
		return t.Taker
	}
	return t.Maker
}

// EscrowBalance returns the amount that the escrow account is expected to hold
// in the current status.
func (t *Trade) EscrowBalance() uint64 {
	if t.IsEscrowDeposited() || t.IsDisputed() {
		return t.Amount
	}
	return 0
}

// Deposit brings a Created trade to the EscrowDeposited status. Moving the
// funds is up to the caller.
func (t *Trade) Deposit(depositor Identity, amount uint64, now int64) error {
	if depositor != t.Depositor {
		return ErrUnauthorized
	}
	if !t.IsCreated() {
		return ErrInvalidState
	}
	if amount != t.Amount {
		return ErrAmountMismatch
	}

	t.Status = TradeStatusEscrowDeposited
	t.UpdatedAt = now
	return nil
}

// Complete brings a funded trade to the Completed status.
func (t *Trade) Complete(actor Identity, now int64) error {
	if !t.IsParty(actor) {
		return ErrUnauthorized
	}
	if !t.IsEscrowDeposited() {
		return ErrInvalidState
	}

	t.Status = TradeStatusCompleted
	t.UpdatedAt = now
	return nil
}

// Cancel brings a Created or funded trade to the Cancelled status. The
// returned amount is what must be refunded to the depositor.
func (t *Trade) Cancel(actor Identity, now int64) (uint64, error) {
	if actor != t.Maker {
		return 0, ErrUnauthorized
	}
	if !t.IsCreated() && !t.IsEscrowDeposited() {
		return 0, ErrInvalidState
	}

	refund := t.EscrowBalance()
	t.Status = TradeStatusCancelled
	t.UpdatedAt = now
	return refund, nil
}

// Dispute brings a funded trade to the Disputed status. The escrow stays
// untouched.
func (t *Trade) Dispute(actor Identity, now int64) error {
	if !t.IsParty(actor) {
		return ErrUnauthorized
	}
	if !t.IsEscrowDeposited() {
		return ErrInvalidState
	}

	t.Status = TradeStatusDisputed
	t.UpdatedAt = now
	return nil
}

// SortTrades orders trades by creation time, then by key.
func SortTrades(trades []*Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		if trades[i].CreatedAt == trades[j].CreatedAt {
			return trades[i].Key.Less(trades[j].Key)
		}
		return trades[i].CreatedAt < trades[j].CreatedAt
	})
}
