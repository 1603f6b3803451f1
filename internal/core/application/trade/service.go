package trade

import (
	"context"
	"fmt"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// PriceVerifier checks a trade price against the reference quotes.
type PriceVerifier interface {
	Verify(
		ctx context.Context, price uint64, currency string, toleranceBps uint32,
	) error
}

// ProfileRecorder updates the reputation ledger on settlement.
type ProfileRecorder interface {
	RecordTradeCompletion(ctx context.Context, key domain.Address) error
	RecordTradeDispute(ctx context.Context, key domain.Address) error
}

// Service is the escrow state machine. Every transition runs in a single db
// transaction that also carries the custody transfers and the profile updates.
type Service struct {
	repoManager ports.RepoManager
	custody     ports.AssetCustody
	oracle      PriceVerifier
	profiles    ProfileRecorder
	publisher   ports.TradeEventPublisher
	clock       ports.Clock
}

func NewService(
	repoManager ports.RepoManager,
	custody ports.AssetCustody,
	oracle PriceVerifier,
	profiles ProfileRecorder,
	publisher ports.TradeEventPublisher,
	clock ports.Clock,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if custody == nil {
		return nil, fmt.Errorf("missing asset custody")
	}
	if oracle == nil {
		return nil, fmt.Errorf("missing price oracle")
	}
	if profiles == nil {
		return nil, fmt.Errorf("missing profile ledger")
	}
	if clock == nil {
		clock = ports.SystemClock()
	}

	return &Service{
		repoManager, custody, oracle, profiles, publisher, clock,
	}, nil
}

// CreateTrade opens a trade negotiated directly between initiator, the maker
// that funds the escrow, and counterparty.
func (s *Service) CreateTrade(
	ctx context.Context, initiator, counterparty, tokenMint domain.Identity,
	amount, price uint64,
) (domain.Address, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return s.OpenTrade(
				ctx, initiator, counterparty, tokenMint, amount, price,
				domain.Address{}, initiator,
			)
		},
	)
	if err != nil {
		return domain.Address{}, err
	}

	trade := res.(*domain.Trade)
	s.PublishEvent(ports.TradeCreated, *trade)
	return trade.Key, nil
}

// OpenTrade stores a new trade without notifying it. It joins the transaction
// carried by ctx, if any, and is used when taking an offer.
func (s *Service) OpenTrade(
	ctx context.Context, maker, taker, tokenMint domain.Identity,
	amount, price uint64, offer domain.Address, depositor domain.Identity,
) (*domain.Trade, error) {
	trade, err := domain.NewTrade(
		maker, taker, tokenMint, amount, price, offer, depositor, s.now(),
	)
	if err != nil {
		return nil, err
	}

	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.TradeRepository().AddTrade(ctx, trade)
		},
	); err != nil {
		return nil, err
	}

	log.Debugf("trade %s created", trade.Key)
	return trade, nil
}

// DepositEscrow moves the trade amount from the depositor into the escrow
// account.
func (s *Service) DepositEscrow(
	ctx context.Context, key domain.Address, depositor domain.Identity,
	amount uint64,
) error {
	trade, err := s.transition(
		ctx, key, func(ctx context.Context, t *domain.Trade) error {
			if err := t.Deposit(depositor, amount, s.now()); err != nil {
				return err
			}

			balance, err := s.custody.BalanceOf(ctx, depositor, t.TokenMint)
			if err != nil {
				return err
			}
			if balance < amount {
				return domain.ErrInsufficientFunds
			}

			return s.custody.Transfer(
				ctx, depositor, t.EscrowAccount, amount, t.TokenMint,
			)
		},
	)
	if err != nil {
		return err
	}

	log.Debugf("escrow of trade %s deposited", key)
	s.PublishEvent(ports.EscrowDeposited, *trade)
	return nil
}

// CompleteTrade releases the escrow to the receiving party if the trade price
// is within toleranceBps of the reference quote of currency.
func (s *Service) CompleteTrade(
	ctx context.Context, key domain.Address, actor domain.Identity,
	currency string, toleranceBps uint32,
) error {
	trade, err := s.transition(
		ctx, key, func(ctx context.Context, t *domain.Trade) error {
			if err := t.Complete(actor, s.now()); err != nil {
				return err
			}
			if err := s.oracle.Verify(ctx, t.Price, currency, toleranceBps); err != nil {
				return err
			}

			if err := s.custody.Transfer(
				ctx, t.EscrowAccount, t.Receiver(), t.Amount, t.TokenMint,
			); err != nil {
				return err
			}

			if err := s.profiles.RecordTradeCompletion(
				ctx, domain.DeriveProfileAddress(t.Maker),
			); err != nil {
				return fmt.Errorf("maker profile: %w", err)
			}
			if err := s.profiles.RecordTradeCompletion(
				ctx, domain.DeriveProfileAddress(t.Taker),
			); err != nil {
				return fmt.Errorf("taker profile: %w", err)
			}
			return nil
		},
	)
	if err != nil {
		return err
	}

	log.Debugf("trade %s completed", key)
	s.PublishEvent(ports.TradeCompleted, *trade)
	return nil
}

// CancelTrade cancels the trade on behalf of the maker, refunding the
// depositor if the escrow was funded.
func (s *Service) CancelTrade(
	ctx context.Context, key domain.Address, actor domain.Identity,
) error {
	trade, err := s.transition(
		ctx, key, func(ctx context.Context, t *domain.Trade) error {
			refund, err := t.Cancel(actor, s.now())
			if err != nil {
				return err
			}
			if refund == 0 {
				return nil
			}
			return s.custody.Transfer(
				ctx, t.EscrowAccount, t.Depositor, refund, t.TokenMint,
			)
		},
	)
	if err != nil {
		return err
	}

	log.Debugf("trade %s cancelled", key)
	s.PublishEvent(ports.TradeCancelled, *trade)
	return nil
}

// DisputeTrade freezes the escrow of a funded trade.
func (s *Service) DisputeTrade(
	ctx context.Context, key domain.Address, disputer domain.Identity,
) error {
	trade, err := s.transition(
		ctx, key, func(ctx context.Context, t *domain.Trade) error {
			if err := t.Dispute(disputer, s.now()); err != nil {
				return err
			}

			if err := s.profiles.RecordTradeDispute(
				ctx, domain.DeriveProfileAddress(t.Maker),
			); err != nil {
				return fmt.Errorf("maker profile: %w", err)
			}
			if err := s.profiles.RecordTradeDispute(
				ctx, domain.DeriveProfileAddress(t.Taker),
			); err != nil {
				return fmt.Errorf("taker profile: %w", err)
			}
			return nil
		},
	)
	if err != nil {
		return err
	}

	log.Debugf("trade %s disputed", key)
	s.PublishEvent(ports.TradeDisputed, *trade)
	return nil
}

func (s *Service) GetTrade(
	ctx context.Context, key domain.Address,
) (*domain.Trade, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return s.repoManager.TradeRepository().GetTrade(ctx, key)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.Trade), nil
}

// GetTradesByParty returns the trades where party is either the maker or the
// taker, oldest first.
func (s *Service) GetTradesByParty(
	ctx context.Context, party domain.Identity,
) ([]*domain.Trade, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return s.repoManager.TradeRepository().GetTradesByParty(ctx, party)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.([]*domain.Trade), nil
}

// PublishEvent notifies a committed transition. Failures are only logged.
func (s *Service) PublishEvent(event ports.TradeEvent, trade domain.Trade) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTradeEvent(event, trade); err != nil {
		log.WithError(err).Warnf(
			"failed to publish %s event for trade %s", event, trade.Key,
		)
	}
}

// transition applies fn to the trade and commits the result, together with
// any other change made through ctx, only if fn succeeds.
func (s *Service) transition(
	ctx context.Context, key domain.Address,
	fn func(ctx context.Context, t *domain.Trade) error,
) (*domain.Trade, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			var updated domain.Trade
			if err := s.repoManager.TradeRepository().UpdateTrade(
				ctx, key, func(t *domain.Trade) (*domain.Trade, error) {
					if err := fn(ctx, t); err != nil {
						return nil, err
					}
					updated = *t
					return t, nil
				},
			); err != nil {
				return nil, err
			}
			return &updated, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.Trade), nil
}

func (s *Service) now() int64 {
	return s.clock.Now().Unix()
}
