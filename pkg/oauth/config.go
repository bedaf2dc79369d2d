package oauth

// GoogleConfig holds the Google OAuth client used to mint SMTP access tokens.
// The refresh token is obtained once, out of band, for the sending account.
type GoogleConfig struct {
	ClientID     string   `env:"G_CLIENT_ID"`
	ClientSecret string   `env:"G_CLIENT_SECRET"`
	RefreshToken string   `env:"G_REFRESH_TOKEN"`
	Scopes       []string `env:"G_OAUTH_SCOPES" envSeparator:","`
}
