// Package notifier implements the Notifier port on Postmark. All sends are
// best-effort: callers log the returned error and move on, so a mail outage
// never breaks an account operation.
package notifier

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"
	"github.com/rs/zerolog"
)

// PostmarkNotifier sends transactional account email through Postmark.
type PostmarkNotifier struct {
	client       *postmark.Client
	from         string
	resetBaseURL string
	logger       zerolog.Logger
}

// NewPostmarkNotifier creates a notifier. resetBaseURL is the public frontend
// URL the reset token is appended to.
func NewPostmarkNotifier(serverToken, from, resetBaseURL string, logger zerolog.Logger) *PostmarkNotifier {
	return &PostmarkNotifier{
		client:       postmark.NewClient(serverToken, ""),
		from:         from,
		resetBaseURL: resetBaseURL,
		logger:       logger,
	}
}

func (n *PostmarkNotifier) SendWelcome(ctx context.Context, to, name string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour account has been created. Welcome aboard!", name)
	return n.send(ctx, to, "Welcome to Casa Moreno", body)
}

func (n *PostmarkNotifier) SendOAuthWelcome(ctx context.Context, to, name, temporaryPassword string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour account was created from your social login. "+
			"A temporary password was generated for you: %s\n\n"+
			"Please change it after your first direct login.",
		name, temporaryPassword,
	)
	return n.send(ctx, to, "Your new account", body)
}

func (n *PostmarkNotifier) SendPasswordResetLink(ctx context.Context, to, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", n.resetBaseURL, token)
	body := fmt.Sprintf(
		"Hello %s,\n\nA password reset was requested for your account. "+
			"The link below is valid for one hour and can be used once:\n\n%s\n\n"+
			"If you did not request this, you can ignore this message.",
		name, link,
	)
	return n.send(ctx, to, "Password reset", body)
}

func (n *PostmarkNotifier) SendPasswordChangeConfirmation(ctx context.Context, to, name string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour password has just been changed. "+
			"If this wasn't you, request a new reset immediately.",
		name,
	)
	return n.send(ctx, to, "Your password was changed", body)
}

func (n *PostmarkNotifier) send(ctx context.Context, to, subject, body string) error {
	email := postmark.Email{
		From:     n.from,
		To:       to,
		Subject:  subject,
		TextBody: body,
	}

	res, err := n.client.SendEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("postmark send: %w", err)
	}
	if res.ErrorCode != 0 {
		return fmt.Errorf("postmark send: %s (code %d)", res.Message, res.ErrorCode)
	}

	n.logger.Debug().Str("to", to).Str("subject", subject).Msg("mail sent")
	return nil
}
