package oauth

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
	googleOAuth "golang.org/x/oauth2/google"
)

// GmailScope grants full SMTP/IMAP access, which XOAUTH2 relaying requires.
const GmailScope = "https://mail.google.com/"

// GoogleDefaultScopes returns the default scopes for SMTP relaying through Gmail.
func GoogleDefaultScopes() []string {
	return []string{GmailScope}
}

// NewGoogleTokenSource returns a token source that exchanges the configured
// refresh token for short-lived access tokens and caches them until expiry.
//
// ctx is retained for refresh requests made later; it must outlive the
// token source.
func NewGoogleTokenSource(ctx context.Context, cfg GoogleConfig, opts ...Option) (oauth2.TokenSource, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}
	if cfg.RefreshToken == "" {
		return nil, ErrMissingRefreshToken
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = GoogleDefaultScopes()
	}

	endpoint := googleOAuth.Endpoint
	if o.tokenURL != "" {
		endpoint.TokenURL = o.tokenURL
	}

	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       scopes,
		Endpoint:     endpoint,
	}

	if o.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)
	}

	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	return &tokenSource{src: ts}, nil
}

// tokenSource tags refresh failures with ErrTokenRefreshFailed.
type tokenSource struct {
	src oauth2.TokenSource
}

func (t *tokenSource) Token() (*oauth2.Token, error) {
	tok, err := t.src.Token()
	if err != nil {
		return nil, errors.Join(ErrTokenRefreshFailed, err)
	}
	return tok, nil
}
