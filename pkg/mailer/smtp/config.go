package smtp

import "time"

// Config holds SMTP relay configuration.
// The defaults target Gmail's submission port with STARTTLS.
type Config struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Username string `env:"G_USER_EMAIL"`
	// Password enables PLAIN auth when no token source is given.
	Password string `env:"SMTP_PASSWORD"`
	// SenderName is shown next to Username in the From header.
	SenderName string        `env:"SMTP_FROM_NAME"`
	Port       int           `env:"SMTP_PORT" envDefault:"587"`
	Timeout    time.Duration `env:"SMTP_TIMEOUT" envDefault:"30s"`
	// MaxRate caps outbound messages per second across all callers.
	MaxRate float64 `env:"SMTP_MAX_RATE" envDefault:"30"`
}
