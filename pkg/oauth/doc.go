// Package oauth mints OAuth2 access tokens for authenticated SMTP relaying.
//
// Gmail's SMTP relay accepts XOAUTH2 authentication: the client presents a
// short-lived access token instead of a password. The token is derived from a
// long-lived refresh token issued once for the sending account.
//
// # Usage
//
//	ts, err := oauth.NewGoogleTokenSource(ctx, oauth.GoogleConfig{
//		ClientID:     os.Getenv("G_CLIENT_ID"),
//		ClientSecret: os.Getenv("G_CLIENT_SECRET"),
//		RefreshToken: os.Getenv("G_REFRESH_TOKEN"),
//	})
//	if err != nil {
//		log.Fatal(err) // ErrMissingClientID, ErrMissingClientSecret, ErrMissingRefreshToken
//	}
//
//	tok, err := ts.Token() // cached until it expires
//
// The token source is passed to the smtp transport, which fetches a token
// each time it (re)dials the relay.
//
// # Errors
//
// All sentinel errors carry the "oauth:" prefix. A rejected refresh is
// reported as ErrTokenRefreshFailed joined with the provider error.
package oauth
