package profile

import (
	"context"
	"fmt"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// ScorePolicy holds the reputation deltas applied automatically on trade
// settlement.
type ScorePolicy struct {
	TradeCompletedDelta int64
	TradeDisputedDelta  int64
}

// Service is the reputation ledger.
type Service struct {
	repoManager ports.RepoManager
	clock       ports.Clock
	authority   domain.Identity
	policy      ScorePolicy
}

func NewService(
	repoManager ports.RepoManager, clock ports.Clock,
	authority domain.Identity, policy ScorePolicy,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if clock == nil {
		clock = ports.SystemClock()
	}
	if authority.IsZero() {
		log.Warn(
			"profile authority not set, reputation updates and verifications " +
				"will be rejected",
		)
	}
	return &Service{repoManager, clock, authority, policy}, nil
}

func (s *Service) Authority() domain.Identity {
	return s.authority
}

func (s *Service) CreateProfile(
	ctx context.Context, owner domain.Identity, username string,
) (domain.Address, error) {
	profile, err := domain.NewProfile(owner, username, s.now())
	if err != nil {
		return domain.Address{}, err
	}

	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.ProfileRepository().AddProfile(ctx, profile)
		},
	); err != nil {
		return domain.Address{}, err
	}

	log.Debugf("created profile %s for %s", profile.Key, owner)
	return profile.Key, nil
}

func (s *Service) UpdateProfile(
	ctx context.Context, key domain.Address, actor domain.Identity,
	username *string,
) error {
	return s.update(ctx, key, func(p *domain.Profile) error {
		return p.Update(actor, username, s.now())
	})
}

func (s *Service) UpdateReputation(
	ctx context.Context, key domain.Address, authority domain.Identity,
	scoreDelta int64,
) error {
	if err := s.update(ctx, key, func(p *domain.Profile) error {
		return p.UpdateReputation(s.authority, authority, scoreDelta, s.now())
	}); err != nil {
		return err
	}

	log.Debugf("reputation of profile %s changed by %d", key, scoreDelta)
	return nil
}

func (s *Service) VerifyProfile(
	ctx context.Context, key domain.Address, authority domain.Identity,
) error {
	return s.update(ctx, key, func(p *domain.Profile) error {
		return p.Verify(s.authority, authority, s.now())
	})
}

// RecordTradeCompletion is meant to be called by the trade engine only, in
// the same transaction of the settlement.
func (s *Service) RecordTradeCompletion(
	ctx context.Context, key domain.Address,
) error {
	return s.update(ctx, key, func(p *domain.Profile) error {
		p.RecordTradeCompletion(s.policy.TradeCompletedDelta, s.now())
		return nil
	})
}

// RecordTradeDispute is meant to be called by the trade engine only, in the
// same transaction of the dispute.
func (s *Service) RecordTradeDispute(
	ctx context.Context, key domain.Address,
) error {
	return s.update(ctx, key, func(p *domain.Profile) error {
		p.RecordTradeDispute(s.policy.TradeDisputedDelta, s.now())
		return nil
	})
}

func (s *Service) GetProfile(
	ctx context.Context, key domain.Address,
) (*domain.Profile, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return s.repoManager.ProfileRepository().GetProfile(ctx, key)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.Profile), nil
}

func (s *Service) GetProfileByOwner(
	ctx context.Context, owner domain.Identity,
) (*domain.Profile, error) {
	return s.GetProfile(ctx, domain.DeriveProfileAddress(owner))
}

func (s *Service) update(
	ctx context.Context, key domain.Address, fn func(p *domain.Profile) error,
) error {
	_, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.ProfileRepository().UpdateProfile(
				ctx, key, func(p *domain.Profile) (*domain.Profile, error) {
					if err := fn(p); err != nil {
						return nil, err
					}
					return p, nil
				},
			)
		},
	)
	return err
}

func (s *Service) now() int64 {
	return s.clock.Now().Unix()
}
