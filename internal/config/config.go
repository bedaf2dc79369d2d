// Package config loads the mailblast configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/mailblast/pkg/logger"
	"github.com/dmitrymomot/mailblast/pkg/mailer"
	"github.com/dmitrymomot/mailblast/pkg/mailer/resend"
	"github.com/dmitrymomot/mailblast/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailblast/pkg/oauth"
	"github.com/dmitrymomot/mailblast/pkg/storage"
)

// ErrInvalidConfig is returned when the configuration cannot be used.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Mail providers.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
)

// Config is the complete runtime configuration.
type Config struct {
	Provider       string        `env:"MAIL_PROVIDER" envDefault:"smtp"`
	RecipientsFile string        `env:"RECIPIENTS_FILE" envDefault:"email_list.txt"`
	MessageFile    string        `env:"MESSAGE_FILE" envDefault:"message.md"`
	Attachment     string        `env:"ATTACHMENT"`
	ReportPath     string        `env:"REPORT_PATH" envDefault:"email_sending_report.json"`
	ReportS3Key    string        `env:"REPORT_S3_KEY"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	BatchSize      int           `env:"BATCH_SIZE" envDefault:"50"`
	Concurrency    int           `env:"SEND_CONCURRENCY"`
	BatchCooldown  time.Duration `env:"BATCH_COOLDOWN" envDefault:"60s"`
	MaxAttempts    int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	RetryBackoff   time.Duration `env:"RETRY_BACKOFF" envDefault:"1s"`
	DryRun         bool          `env:"DRY_RUN"`

	SMTP    smtp.Config
	Google  oauth.GoogleConfig
	Resend  resend.Config
	Storage storage.Config
	Sentry  logger.SentryConfig
}

// Load reads the given env files, or an optional .env file from the working
// directory when none are given, then parses the environment. Named files
// must exist. The result is not validated; call Validate once flags have
// been applied.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && (len(files) > 0 || !errors.Is(err, fs.ErrNotExist)) {
		return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("load env file: %w", err))
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	return &cfg, nil
}

// Validate checks the settings the run cannot do without.
func (c *Config) Validate() error {
	var errs []error

	if c.RecipientsFile == "" {
		errs = append(errs, errors.New("recipients file is required"))
	}
	if c.MessageFile == "" {
		errs = append(errs, errors.New("message file is required"))
	}
	if c.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("batch size must be positive, got %d", c.BatchSize))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("send concurrency must not be negative, got %d", c.Concurrency))
	}
	if c.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("max attempts must be positive, got %d", c.MaxAttempts))
	}
	if c.BatchCooldown < 0 || c.RetryBackoff < 0 {
		errs = append(errs, errors.New("cooldown and backoff must not be negative"))
	}
	if c.ReportS3Key != "" && !c.Storage.Enabled() {
		errs = append(errs, errors.New("REPORT_S3_KEY requires S3_BUCKET"))
	}
	if strings.HasPrefix(c.Attachment, mailer.S3Scheme) && !c.Storage.Enabled() {
		errs = append(errs, errors.New("s3 attachment requires S3_BUCKET"))
	}

	if !c.DryRun {
		switch c.Provider {
		case ProviderSMTP:
			if c.SMTP.Username == "" {
				errs = append(errs, errors.New("G_USER_EMAIL is required"))
			}
			if c.SMTP.Password == "" && c.Google.RefreshToken == "" {
				errs = append(errs, errors.New("G_REFRESH_TOKEN or SMTP_PASSWORD is required"))
			}
		case ProviderResend:
			if c.Resend.APIKey == "" {
				errs = append(errs, errors.New("RESEND_API_KEY is required"))
			}
			if c.Resend.SenderEmail == "" {
				errs = append(errs, errors.New("RESEND_FROM_EMAIL is required"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown mail provider %q", c.Provider))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// Sender returns the From header used for outgoing messages, including the
// display name when one is configured.
func (c *Config) Sender() string {
	if c.Provider == ProviderResend {
		return mailer.Recipient(c.Resend.SenderName, c.Resend.SenderEmail)
	}
	return mailer.Recipient(c.SMTP.SenderName, c.SMTP.Username)
}
