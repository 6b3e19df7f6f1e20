package store

import (
	"context"
	"errors"

	"devfolio-auth/internal/models"
)

// ErrNotFound is returned by lookups when no matching account exists.
var ErrNotFound = errors.New("account not found")

// Store persists account records. Implementations must keep email and phone
// number unique across accounts and must apply Save as a single
// read-modify-write per account, so two concurrent challenge writes for the
// same account cannot interleave.
type Store interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	// Save creates the record when its ID is zero, otherwise updates it in
	// place.
	Save(ctx context.Context, u *models.User) error
}
