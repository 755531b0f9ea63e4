package ports

import "context"

// Notifier delivers transactional account email. Implementations are
// fire-and-forget from the caller's perspective: failures are logged by the
// implementation and never propagated into lifecycle operations.
type Notifier interface {
	SendWelcome(ctx context.Context, to, name string) error
	SendOAuthWelcome(ctx context.Context, to, name, temporaryPassword string) error
	SendPasswordResetLink(ctx context.Context, to, name, token string) error
	SendPasswordChangeConfirmation(ctx context.Context, to, name string) error
}
