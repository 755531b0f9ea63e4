package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/casa-moreno/catalog-system/internal/api/metrics"
	"github.com/casa-moreno/catalog-system/internal/core/domain"
	"github.com/casa-moreno/catalog-system/internal/core/ports"
)

// DefaultTokenTTL is the validity window for issued tokens. A single value is
// used for both direct and federated logins.
const DefaultTokenTTL = 24 * time.Hour

// AuthService verifies credentials and issues signed tokens.
type AuthService struct {
	accounts  ports.AccountStore
	notifier  ports.Notifier
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(accounts ports.AccountStore, notifier ports.Notifier, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		accounts:  accounts,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Login resolves the account by username or email, verifies the password
// against the stored bcrypt hash, and issues a token. Unknown accounts and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, login, password string) (*ports.TokenResult, *domain.User, error) {
	if login == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.accounts.FindByLoginOrEmail(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("denied").Inc()
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("denied").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	result, err := s.issueToken(user)
	if err != nil {
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("username", user.Username).Msg("login succeeded")
	return result, user, nil
}

// CompleteOAuthLogin finishes a federated login. A missing account is created
// on the fly with a random temporary credential, which is mailed to the user
// so they can set a real password later.
func (s *AuthService) CompleteOAuthLogin(ctx context.Context, email, name string) (*ports.TokenResult, *domain.User, error) {
	if email == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.createOAuthUser(ctx, email, name)
	}
	if err != nil {
		return nil, nil, err
	}

	result, err := s.issueToken(user)
	if err != nil {
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("oauth").Inc()
	s.logger.Info().Str("username", user.Username).Msg("federated login completed")
	return result, user, nil
}

func (s *AuthService) createOAuthUser(ctx context.Context, email, name string) (*domain.User, error) {
	temporaryPassword := uuid.NewString()[:8]
	hash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash temporary password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Username:     email,
		Email:        email,
		PasswordHash: string(hash),
		Profile:      domain.ProfileUser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.accounts.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.SendOAuthWelcome(ctx, created.Email, created.Name, temporaryPassword); err != nil {
		s.logger.Error().Err(err).Str("email", created.Email).Msg("oauth welcome mail failed")
	}
	return created, nil
}

// issueToken builds the signed HS256 token. Claims: sub = login handle,
// user_id, scope = profile, exp. The only failure mode is unusable signing
// material, reported as domain.ErrSigningFailure.
func (s *AuthService) issueToken(user *domain.User) (*ports.TokenResult, error) {
	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"sub":     user.Username,
		"user_id": user.ID,
		"scope":   user.Profile,
		"iat":     time.Now().Unix(),
		"exp":     expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.logger.Error().Err(err).Msg("token signing failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrSigningFailure, err)
	}

	return &ports.TokenResult{Token: signed, ExpiresAt: expiresAt}, nil
}
