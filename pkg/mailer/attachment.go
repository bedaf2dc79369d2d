package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ObjectGetter fetches an object by key. storage.S3Storage satisfies it.
type ObjectGetter interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// S3Scheme is the attachment reference prefix resolved through an ObjectGetter.
const S3Scheme = "s3://"

// LoadAttachment resolves ref into an Attachment.
//
// A ref of the form "s3://bucket/key" is fetched through objects (the bucket
// part is informational, the getter is already bound to a bucket); any other
// ref is a local file path. The filename is the base name of the ref.
func LoadAttachment(ctx context.Context, ref string, objects ObjectGetter) (Attachment, error) {
	if ref == "" {
		return Attachment{}, fmt.Errorf("%w: empty reference", ErrAttachmentNotFound)
	}

	var (
		name    string
		content []byte
		err     error
	)
	if strings.HasPrefix(ref, S3Scheme) {
		name, content, err = loadObject(ctx, ref, objects)
	} else {
		name = filepath.Base(ref)
		content, err = os.ReadFile(ref)
	}
	if err != nil {
		return Attachment{}, errors.Join(ErrAttachmentNotFound, fmt.Errorf("load %s: %w", ref, err))
	}

	return Attachment{
		Filename:    name,
		ContentType: detectContentType(name, content),
		Content:     content,
	}, nil
}

func loadObject(ctx context.Context, ref string, objects ObjectGetter) (string, []byte, error) {
	if objects == nil {
		return "", nil, errors.New("no object storage configured")
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", nil, err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", nil, errors.New("missing object key")
	}

	rc, err := objects.Get(ctx, key)
	if err != nil {
		return "", nil, err
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return "", nil, err
	}
	return path.Base(key), content, nil
}

// detectContentType prefers the extension and falls back to sniffing.
func detectContentType(name string, content []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return http.DetectContentType(content)
}
