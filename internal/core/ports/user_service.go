package ports

import (
	"context"

	"github.com/casa-moreno/catalog-system/internal/core/domain"
)

// CreateUserInput carries the data needed to register a new account.
type CreateUserInput struct {
	Name     string
	Username string
	Password string
	Email    string
	Phone    string
}

// UpdateUserInput carries a partial account update. Nil fields are left
// untouched.
type UpdateUserInput struct {
	UserID   string
	Name     *string
	Username *string
	Password *string
	Email    *string
	Phone    *string
}

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context, principal *domain.Principal) ([]domain.User, error)
	Update(ctx context.Context, principal *domain.Principal, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, principal *domain.Principal, userID string) error

	// RequestPasswordReset never reveals whether the email exists; unknown
	// addresses return nil with no observable side effect.
	RequestPasswordReset(ctx context.Context, email string) error
	// ResetPassword consumes a reset token at most once.
	ResetPassword(ctx context.Context, token, newPassword string) error
}
