package app

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/mailblast/internal/config"
	"github.com/dmitrymomot/mailblast/pkg/mailer"
	"github.com/dmitrymomot/mailblast/pkg/mailer/resend"
	"github.com/dmitrymomot/mailblast/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailblast/pkg/oauth"
)

// newTransport builds the transport selected by cfg.
func newTransport(ctx context.Context, cfg *config.Config, log *slog.Logger) (mailer.Transport, error) {
	if cfg.DryRun {
		return mailer.NewLogTransport(log), nil
	}

	switch cfg.Provider {
	case config.ProviderResend:
		return resend.New(cfg.Resend)
	default:
		opts := []smtp.Option{smtp.WithLogger(log)}
		if cfg.Google.RefreshToken != "" {
			ts, err := oauth.NewGoogleTokenSource(ctx, cfg.Google)
			if err != nil {
				return nil, err
			}
			opts = append(opts, smtp.WithTokenSource(ts))
		}
		return smtp.New(cfg.SMTP, opts...)
	}
}
