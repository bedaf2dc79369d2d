// Package smtp implements mailer.Transport for an authenticated SMTP relay.
//
// The sender keeps a single connection open for the whole run, serializes
// sends on it and paces them with a token-bucket limiter (Config.MaxRate
// messages per second). With WithTokenSource it authenticates with XOAUTH2,
// which is what Gmail requires for OAuth-enabled accounts:
//
//	ts, _ := oauth.NewGoogleTokenSource(ctx, cfg.Google)
//	sender, err := smtp.New(cfg.SMTP, smtp.WithTokenSource(ts))
//	if err != nil {
//		return err
//	}
//	defer sender.Close()
//
// Without a token source, Config.Password is used with PLAIN auth.
package smtp
