package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"devfolio-auth/internal/models"
)

const (
	acctKeyPrefix  = "acct:"
	phoneKeyPrefix = "acct:phone:"
	idKeyPrefix    = "acct:id:"
	idCounterKey   = "acct:next_id"
)

// RedisStore keeps each account as a JSON record keyed by email, with
// secondary indexes mapping phone number and ID back to the email. Challenge
// expiry is stored inside the record as a timestamp, never as a key TTL, so
// that expiry is decided by comparison at verification time.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// acctRecord is the storage shape. The model's JSON tags hide the password
// and challenge fields from API responses, so the record encodes every field
// explicitly instead of reusing them.
type acctRecord struct {
	ID           uint             `json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Password     string           `json:"password"`
	PhoneNumber  string           `json:"phone_number"`
	Verified     bool             `json:"verified"`
	OTPCode      *string          `json:"otp_code,omitempty"`
	OTPExpiresAt *time.Time       `json:"otp_expires_at,omitempty"`
	Heading      string           `json:"heading,omitempty"`
	Bio          string           `json:"bio,omitempty"`
	Projects     []models.Project `json:"projects,omitempty"`
}

func toRecord(u *models.User) *acctRecord {
	return &acctRecord{
		ID:           u.ID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		Name:         u.Name,
		Email:        u.Email,
		Password:     u.Password,
		PhoneNumber:  u.PhoneNumber,
		Verified:     u.Verified,
		OTPCode:      u.OTPCode,
		OTPExpiresAt: u.OTPExpiresAt,
		Heading:      u.Heading,
		Bio:          u.Bio,
		Projects:     u.Projects,
	}
}

func (r *acctRecord) toUser() *models.User {
	return &models.User{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Name:         r.Name,
		Email:        r.Email,
		Password:     r.Password,
		PhoneNumber:  r.PhoneNumber,
		Verified:     r.Verified,
		OTPCode:      r.OTPCode,
		OTPExpiresAt: r.OTPExpiresAt,
		Heading:      r.Heading,
		Bio:          r.Bio,
		Projects:     r.Projects,
	}
}

func acctKey(email string) string  { return acctKeyPrefix + email }
func phoneKey(phone string) string { return phoneKeyPrefix + phone }
func idKey(id uint) string         { return fmt.Sprintf("%s%d", idKeyPrefix, id) }

func decodeAccount(raw []byte) (*models.User, error) {
	var rec acctRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	return rec.toUser(), nil
}

func (s *RedisStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	email, err := s.rdb.Get(ctx, idKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.FindByEmail(ctx, email)
}

func (s *RedisStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	raw, err := s.rdb.Get(ctx, acctKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeAccount(raw)
}

func (s *RedisStore) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	email, err := s.rdb.Get(ctx, phoneKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.FindByEmail(ctx, email)
}

func (s *RedisStore) Save(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	if u.ID == 0 {
		id, err := s.rdb.Incr(ctx, idCounterKey).Result()
		if err != nil {
			return err
		}
		u.ID = uint(id)
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	key := acctKey(u.Email)
	payload, err := json.Marshal(toRecord(u))
	if err != nil {
		return err
	}

	// Watch the account key so a concurrent Save for the same account
	// restarts rather than interleaving with our read of the old record.
	return s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		var oldPhone string
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			if prev, decErr := decodeAccount(raw); decErr == nil {
				oldPhone = prev.PhoneNumber
			}
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if oldPhone != "" && oldPhone != u.PhoneNumber {
				pipe.Del(ctx, phoneKey(oldPhone))
			}
			pipe.Set(ctx, key, payload, 0)
			pipe.Set(ctx, phoneKey(u.PhoneNumber), u.Email, 0)
			pipe.Set(ctx, idKey(u.ID), u.Email, 0)
			return nil
		})
		return err
	}, key)
}
