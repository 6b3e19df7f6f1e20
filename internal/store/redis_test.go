package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devfolio-auth/internal/models"
)

func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb)
}

func seedUser(t *testing.T, s *RedisStore) *models.User {
	t.Helper()
	u := &models.User{
		Name:        "Ann",
		Email:       "ann@x.com",
		Password:    "hashed",
		PhoneNumber: "+15550000",
	}
	require.NoError(t, s.Save(context.Background(), u))
	return u
}

func TestRedisStoreSaveAssignsIDs(t *testing.T) {
	s := newRedisStore(t)
	ctx := context.Background()

	first := seedUser(t, s)
	assert.Equal(t, uint(1), first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &models.User{Name: "Bob", Email: "bob@x.com", PhoneNumber: "+15550001"}
	require.NoError(t, s.Save(ctx, second))
	assert.Equal(t, uint(2), second.ID)
}

func TestRedisStoreLookups(t *testing.T) {
	s := newRedisStore(t)
	ctx := context.Background()
	seeded := seedUser(t, s)

	byEmail, err := s.FindByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, byEmail.ID)
	assert.Equal(t, "Ann", byEmail.Name)

	byPhone, err := s.FindByPhone(ctx, "+15550000")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", byPhone.Email)

	byID, err := s.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", byID.Email)
}

func TestRedisStoreNotFound(t *testing.T) {
	s := newRedisStore(t)
	ctx := context.Background()

	_, err := s.FindByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindByPhone(ctx, "+10000000")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreUpdateMovesPhoneIndex(t *testing.T) {
	s := newRedisStore(t)
	ctx := context.Background()
	u := seedUser(t, s)

	u.PhoneNumber = "+15550111"
	require.NoError(t, s.Save(ctx, u))

	moved, err := s.FindByPhone(ctx, "+15550111")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", moved.Email)

	_, err = s.FindByPhone(ctx, "+15550000")
	assert.ErrorIs(t, err, ErrNotFound, "stale phone index must be gone")
}

func TestRedisStoreChallengeRoundTrip(t *testing.T) {
	s := newRedisStore(t)
	ctx := context.Background()
	u := seedUser(t, s)

	expiry := time.Date(2025, 3, 1, 12, 10, 0, 0, time.UTC)
	u.SetChallenge("123456", expiry)
	require.NoError(t, s.Save(ctx, u))

	got, err := s.FindByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	require.NotNil(t, got.OTPCode)
	assert.Equal(t, "123456", *got.OTPCode)
	require.NotNil(t, got.OTPExpiresAt)
	assert.True(t, got.OTPExpiresAt.Equal(expiry))

	got.ClearChallenge()
	require.NoError(t, s.Save(ctx, got))

	cleared, err := s.FindByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Nil(t, cleared.OTPCode)
	assert.Nil(t, cleared.OTPExpiresAt)
}
