package storage

// Option configures Put operations.
type Option func(*putOptions)

type putOptions struct {
	contentType string
}

// WithContentType sets the object's content type.
func WithContentType(ct string) Option {
	return func(o *putOptions) {
		o.contentType = ct
	}
}

// ResolveContentType applies opts and returns the resulting content type,
// defaulting to MIMEOctetStream. Storage implementations share it.
func ResolveContentType(opts ...Option) string {
	o := &putOptions{contentType: MIMEOctetStream}
	for _, opt := range opts {
		opt(o)
	}
	return o.contentType
}
