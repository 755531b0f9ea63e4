package ports

import (
	"context"
	"time"

	"github.com/casa-moreno/catalog-system/internal/core/domain"
)

// AccountStore defines the persistence contract for user accounts.
type AccountStore interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByLoginOrEmail resolves a login handle that may be either the
	// username or the email address.
	FindByLoginOrEmail(ctx context.Context, login string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error

	// SetResetToken stores the (token, expiry) pair on the account,
	// overwriting any previous pair.
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	FindByResetToken(ctx context.Context, token string) (*domain.User, error)
	// ConsumeResetToken swaps the credential hash and clears the stored
	// token in one atomic update filtered on the token still being
	// present. Returns domain.ErrInvalidToken when no account holds the
	// token, which is what a concurrent second consume must observe.
	ConsumeResetToken(ctx context.Context, token, newHash string, now time.Time) (*domain.User, error)
}
