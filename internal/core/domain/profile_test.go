package domain_test

import (
	"math"
	"strings"
	"testing"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	owner := randomIdentity()

	profile, err := domain.NewProfile(owner, "alice", 1)
	require.NoError(t, err)
	require.Equal(t, domain.DeriveProfileAddress(owner), profile.Key)
	require.Zero(t, profile.TradesCompleted)
	require.Zero(t, profile.TradesDisputed)
	require.False(t, profile.IsVerified)

	tests := []struct {
		name     string
		username string
	}{
		{"empty", ""},
		{"too_long", strings.Repeat("a", 33)},
		{"control_char", "al\nice"},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := domain.NewProfile(owner, tt.username, 1)
			require.EqualError(t, err, domain.ErrInvalidUsername.Error())
		})
	}
}

func TestProfileUpdate(t *testing.T) {
	t.Parallel()

	profile, _ := domain.NewProfile(randomIdentity(), "alice", 1)
	name := "bob"

	require.EqualError(
		t, profile.Update(randomIdentity(), &name, 2), domain.ErrUnauthorized.Error(),
	)
	require.NoError(t, profile.Update(profile.Owner, &name, 2))
	require.Equal(t, "bob", profile.Username)
	require.NoError(t, profile.Update(profile.Owner, nil, 3))
	require.Equal(t, int64(2), profile.UpdatedAt)
}

func TestProfileReputation(t *testing.T) {
	authority := randomIdentity()

	tests := []struct {
		name          string
		start         int64
		delta         int64
		actor         domain.Identity
		expectedScore int64
		expectedError error
	}{
		{"positive", 0, 10, authority, 10, nil},
		{"negative", 5, -10, authority, -5, nil},
		{"saturate_max", math.MaxInt64 - 1, 10, authority, math.MaxInt64, nil},
		{"saturate_min", math.MinInt64 + 1, -10, authority, math.MinInt64, nil},
		{"not_authority", 0, 10, randomIdentity(), 0, domain.ErrUnauthorized},
	}

	for i := range tests {
		tt := tests[i]

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			profile, _ := domain.NewProfile(randomIdentity(), "carol", 1)
			profile.ReputationScore = tt.start
			err := profile.UpdateReputation(authority, tt.actor, tt.delta, 2)
			if tt.expectedError != nil {
				require.EqualError(t, err, tt.expectedError.Error())
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.expectedScore, profile.ReputationScore)
		})
	}
}

func TestProfileVerifyAndRecord(t *testing.T) {
	t.Parallel()

	authority := randomIdentity()
	profile, _ := domain.NewProfile(randomIdentity(), "dave", 1)

	require.EqualError(
		t, profile.Verify(authority, profile.Owner, 2), domain.ErrUnauthorized.Error(),
	)
	require.EqualError(
		t, profile.Verify(domain.Identity{}, domain.Identity{}, 2),
		domain.ErrUnauthorized.Error(),
	)
	require.NoError(t, profile.Verify(authority, authority, 2))
	require.True(t, profile.IsVerified)

	profile.RecordTradeCompletion(3, 4)
	profile.RecordTradeCompletion(3, 5)
	profile.RecordTradeDispute(-1, 6)
	require.Equal(t, uint64(2), profile.TradesCompleted)
	require.Equal(t, uint64(1), profile.TradesDisputed)
	require.Equal(t, int64(5), profile.ReputationScore)
	require.Equal(t, int64(6), profile.UpdatedAt)
}
