package config_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailblast/internal/config"
)

// Tests that use t.Setenv or t.Chdir cannot run in parallel.

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("G_USER_EMAIL", "me@gmail.com")
	t.Setenv("G_REFRESH_TOKEN", "refresh")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, config.ProviderSMTP, cfg.Provider)
	assert.Equal(t, "email_list.txt", cfg.RecipientsFile)
	assert.Equal(t, "message.md", cfg.MessageFile)
	assert.Equal(t, "email_sending_report.json", cfg.ReportPath)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Zero(t, cfg.Concurrency)
	assert.Equal(t, time.Minute, cfg.BatchCooldown)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, time.Second, cfg.RetryBackoff)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "me@gmail.com", cfg.Sender())

	cfg.SMTP.SenderName = "Deepak Rajput"
	assert.Equal(t, "Deepak Rajput <me@gmail.com>", cfg.Sender())
	assert.Equal(t, "production", cfg.Sentry.Environment)
	assert.False(t, cfg.Storage.Enabled())
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"MAIL_PROVIDER=Resend\nRESEND_API_KEY=re_123\nRESEND_FROM_EMAIL=news@x.com\nRESEND_FROM_NAME=Acme News\nBATCH_SIZE=10\n"), 0o600))
	// .env never overrides the real environment
	t.Setenv("BATCH_SIZE", "20")
	t.Cleanup(func() {
		for _, k := range []string{"MAIL_PROVIDER", "RESEND_API_KEY", "RESEND_FROM_EMAIL", "RESEND_FROM_NAME"} {
			_ = os.Unsetenv(k)
		}
	})

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, config.ProviderResend, cfg.Provider)
	assert.Equal(t, "re_123", cfg.Resend.APIKey)
	assert.Equal(t, "Acme News <news@x.com>", cfg.Sender())
	assert.Equal(t, 20, cfg.BatchSize)
}

func TestLoad_BadValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BATCH_SIZE", "many")

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoad_MissingNamedFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			Provider:       config.ProviderSMTP,
			RecipientsFile: "email_list.txt",
			MessageFile:    "message.md",
			BatchSize:      50,
			MaxAttempts:    3,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *config.Config)
		ok     bool
	}{
		{name: "smtp with refresh token", ok: true, mutate: func(c *config.Config) {
			c.SMTP.Username, c.Google.RefreshToken = "me@x.com", "r"
		}},
		{name: "smtp with password", ok: true, mutate: func(c *config.Config) {
			c.SMTP.Username, c.SMTP.Password = "me@x.com", "p"
		}},
		{name: "smtp without credentials", mutate: func(c *config.Config) {
			c.SMTP.Username = "me@x.com"
		}},
		{name: "smtp without user", mutate: func(c *config.Config) {
			c.Google.RefreshToken = "r"
		}},
		{name: "dry run needs no credentials", ok: true, mutate: func(c *config.Config) {
			c.DryRun = true
		}},
		{name: "unknown provider", mutate: func(c *config.Config) {
			c.Provider = "pigeon"
		}},
		{name: "resend without key", mutate: func(c *config.Config) {
			c.Provider = config.ProviderResend
			c.Resend.SenderEmail = "a@x.com"
		}},
		{name: "zero batch size", mutate: func(c *config.Config) {
			c.DryRun, c.BatchSize = true, 0
		}},
		{name: "negative concurrency", mutate: func(c *config.Config) {
			c.DryRun, c.Concurrency = true, -1
		}},
		{name: "zero attempts", mutate: func(c *config.Config) {
			c.DryRun, c.MaxAttempts = true, 0
		}},
		{name: "negative cooldown", mutate: func(c *config.Config) {
			c.DryRun, c.BatchCooldown = true, -time.Second
		}},
		{name: "report upload without bucket", mutate: func(c *config.Config) {
			c.DryRun, c.ReportS3Key = true, "reports/run.json"
		}},
		{name: "s3 attachment without bucket", mutate: func(c *config.Config) {
			c.DryRun, c.Attachment = true, "s3://bucket/file.pdf"
		}},
		{name: "s3 attachment with bucket", ok: true, mutate: func(c *config.Config) {
			c.DryRun, c.Attachment, c.Storage.Bucket = true, "s3://bucket/file.pdf", "bucket"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}
