package domain

import (
	"math"
	"unicode"
	"unicode/utf8"
)

const maxUsernameLength = 32

// Profile is the reputation record of a participant.
type Profile struct {
	Owner           Identity
	Username        string
	ReputationScore int64
	TradesCompleted uint64
	TradesDisputed  uint64
	IsVerified      bool
	CreatedAt       int64
	UpdatedAt       int64
	Key             Address
}

func NewProfile(owner Identity, username string, now int64) (*Profile, error) {
	if owner.IsZero() {
		return nil, ErrInvalidIdentity
	}
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	return &Profile{
		Owner:     owner,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
		Key:       DeriveProfileAddress(owner),
	}, nil
}

// Update changes the username if given. Only the owner can update its profile.
func (p *Profile) Update(actor Identity, username *string, now int64) error {
	if actor != p.Owner {
		return ErrUnauthorized
	}
	if username == nil {
		return nil
	}
	if err := validateUsername(*username); err != nil {
		return err
	}
	p.Username = *username
	p.UpdatedAt = now
	return nil
}

// UpdateReputation adds the given delta to the score on behalf of authority.
func (p *Profile) UpdateReputation(
	authority, actor Identity, delta int64, now int64,
) error {
	if authority.IsZero() || actor != authority {
		return ErrUnauthorized
	}
	p.ReputationScore = addScore(p.ReputationScore, delta)
	p.UpdatedAt = now
	return nil
}

// Verify flags the profile as verified on behalf of authority.
func (p *Profile) Verify(authority, actor Identity, now int64) error {
	if authority.IsZero() || actor != authority {
		return ErrUnauthorized
	}
	p.IsVerified = true
	p.UpdatedAt = now
	return nil
}

func (p *Profile) RecordTradeCompletion(scoreDelta int64, now int64) {
	if p.TradesCompleted < math.MaxUint64 {
		p.TradesCompleted++
	}
	p.ReputationScore = addScore(p.ReputationScore, scoreDelta)
	p.UpdatedAt = now
}

func (p *Profile) RecordTradeDispute(scoreDelta int64, now int64) {
	if p.TradesDisputed < math.MaxUint64 {
		p.TradesDisputed++
	}
	p.ReputationScore = addScore(p.ReputationScore, scoreDelta)
	p.UpdatedAt = now
}

// addScore saturates at the int64 bounds.
func addScore(score, delta int64) int64 {
	if delta > 0 && score > math.MaxInt64-delta {
		return math.MaxInt64
	}
	if delta < 0 && score < math.MinInt64-delta {
		return math.MinInt64
	}
	return score + delta
}

func validateUsername(username string) error {
	if len(username) == 0 || len(username) > maxUsernameLength {
		return ErrInvalidUsername
	}
	if !utf8.ValidString(username) {
		return ErrInvalidUsername
	}
	for _, r := range username {
		if !unicode.IsPrint(r) {
			return ErrInvalidUsername
		}
	}
	return nil
}
