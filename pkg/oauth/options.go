package oauth

import "net/http"

// Option configures a token source.
type Option func(*options)

type options struct {
	httpClient *http.Client
	tokenURL   string
}

// WithHTTPClient sets a custom HTTP client for token refresh requests.
// This is useful for testing with httptest servers or injecting
// custom transports (e.g., logging, proxies).
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTokenURL overrides the provider's token endpoint.
func WithTokenURL(url string) Option {
	return func(o *options) {
		o.tokenURL = url
	}
}
