package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/casa-moreno/catalog-system/internal/api/metrics"
	"github.com/casa-moreno/catalog-system/internal/core/domain"
	"github.com/casa-moreno/catalog-system/internal/core/ports"
)

// ResetTokenTTL is how long a password-reset token stays usable.
const ResetTokenTTL = time.Hour

// ResetThrottle rate-limits reset requests per email address.
type ResetThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// UserService implements account management and the password-reset lifecycle.
type UserService struct {
	accounts ports.AccountStore
	notifier ports.Notifier
	throttle ResetThrottle
	logger   zerolog.Logger
}

func NewUserService(accounts ports.AccountStore, notifier ports.Notifier, throttle ResetThrottle, logger zerolog.Logger) *UserService {
	return &UserService{accounts: accounts, notifier: notifier, throttle: throttle, logger: logger}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || input.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		Phone:        input.Phone,
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

	if err := s.notifier.SendWelcome(ctx, created.Email, created.Name); err != nil {
		s.logger.Error().Err(err).Str("email", created.Email).Msg("welcome mail failed")
	}

	s.logger.Info().Str("username", created.Username).Msg("user created")
	return created, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.accounts.FindByUsername(ctx, username)
}

// FindAll lists every account. Admin only.
func (s *UserService) FindAll(ctx context.Context, principal *domain.Principal) ([]domain.User, error) {
	if err := AuthorizeAdmin(principal); err != nil {
		return nil, err
	}
	return s.accounts.FindAll(ctx)
}

// Update applies a partial update. Allowed for admins and for the account
// owner.
func (s *UserService) Update(ctx context.Context, principal *domain.Principal, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.accounts.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeAdminOrOwner(principal, user.Username); err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.accounts.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account. Allowed for admins and for the account owner.
func (s *UserService) Delete(ctx context.Context, principal *domain.Principal, userID string) error {
	user, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := AuthorizeAdminOrOwner(principal, user.Username); err != nil {
		return err
	}

	return s.accounts.Delete(ctx, userID)
}

// RequestPasswordReset issues a fresh reset token for the account behind the
// email and mails a reset link. The caller learns nothing about whether the
// email exists: unknown addresses, throttled requests, and notifier failures
// all return nil.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			s.logger.Error().Err(err).Msg("reset throttle check failed")
		} else if !allowed {
			s.logger.Debug().Str("email", email).Msg("reset request throttled")
			return nil
		}
	}

	user, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug().Str("email", email).Msg("reset requested for unknown email")
			return nil
		}
		return err
	}

	token := uuid.NewString()
	expiresAt := time.Now().UTC().Add(ResetTokenTTL)

	if err := s.accounts.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()

	if err := s.notifier.SendPasswordResetLink(ctx, user.Email, user.Name, token); err != nil {
		s.logger.Error().Err(err).Str("username", user.Username).Msg("reset link mail failed")
	}
	return nil
}

// ResetPassword consumes a reset token. Expired tokens leave the credential
// hash untouched; the single-use guarantee comes from the store's atomic
// consume, so a concurrent second call observes ErrInvalidToken.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return domain.ErrInvalidToken
	}

	user, err := s.accounts.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.PasswordResetsTotal.WithLabelValues("invalid").Inc()
			return domain.ErrInvalidToken
		}
		return err
	}

	now := time.Now().UTC()
	if user.PasswordResetExpires == nil || now.After(*user.PasswordResetExpires) {
		metrics.PasswordResetsTotal.WithLabelValues("expired").Inc()
		return domain.ErrTokenExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	updated, err := s.accounts.ConsumeResetToken(ctx, token, string(hash), now)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			metrics.PasswordResetsTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("consumed").Inc()
	s.logger.Info().Str("username", updated.Username).Msg("password reset completed")

	if err := s.notifier.SendPasswordChangeConfirmation(ctx, updated.Email, updated.Name); err != nil {
		s.logger.Error().Err(err).Str("username", updated.Username).Msg("change confirmation mail failed")
	}
	return nil
}
