package ports

import (
	"context"
	"time"

	"github.com/casa-moreno/catalog-system/internal/core/domain"
)

// TokenResult is the outcome of a successful token issuance.
type TokenResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthService interface {
	// Login verifies the supplied secret against the stored hash and
	// issues a signed token on success.
	Login(ctx context.Context, login, password string) (*TokenResult, *domain.User, error)
	// CompleteOAuthLogin finishes a federated login: the account is
	// looked up by email, created with a temporary credential when
	// absent, and a token is issued either way.
	CompleteOAuthLogin(ctx context.Context, email, name string) (*TokenResult, *domain.User, error)
}
