package mailer_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailblast/pkg/mailer"
)

type fakeObjects struct {
	objects map[string][]byte
	keys    []string
}

func (f *fakeObjects) Get(_ context.Context, key string) (io.ReadCloser, error) {
	f.keys = append(f.keys, key)
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func TestLoadAttachment_LocalFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "DeepakRajput.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0o600))

	att, err := mailer.LoadAttachment(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "DeepakRajput.pdf", att.Filename)
	assert.Equal(t, "application/pdf", att.ContentType)
	assert.Equal(t, []byte("%PDF-1.4 test"), att.Content)
}

func TestLoadAttachment_SniffsUnknownExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.unknownext")
	require.NoError(t, os.WriteFile(path, []byte("plain words"), 0o600))

	att, err := mailer.LoadAttachment(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", att.ContentType)
}

func TestLoadAttachment_S3(t *testing.T) {
	t.Parallel()

	objects := &fakeObjects{objects: map[string][]byte{"resumes/cv.pdf": []byte("%PDF")}}

	att, err := mailer.LoadAttachment(context.Background(), "s3://bucket/resumes/cv.pdf", objects)
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", att.Filename)
	assert.Equal(t, []string{"resumes/cv.pdf"}, objects.keys)
}

func TestLoadAttachment_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tests := []struct {
		name    string
		ref     string
		objects mailer.ObjectGetter
	}{
		{name: "empty ref", ref: ""},
		{name: "missing file", ref: filepath.Join(t.TempDir(), "missing.pdf")},
		{name: "s3 without storage", ref: "s3://bucket/cv.pdf"},
		{name: "s3 without key", ref: "s3://bucket/", objects: &fakeObjects{}},
		{name: "s3 missing object", ref: "s3://bucket/cv.pdf", objects: &fakeObjects{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := mailer.LoadAttachment(ctx, tt.ref, tt.objects)
			require.ErrorIs(t, err, mailer.ErrAttachmentNotFound)
		})
	}
}
