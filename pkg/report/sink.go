package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/mailblast/pkg/storage"
)

// Sink persists a serialized report.
type Sink interface {
	Write(ctx context.Context, data []byte) error
	// Location describes where the report ends up, for user-facing messages.
	Location() string
}

// Marshal serializes r as indented JSON.
func Marshal(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Save serializes r and writes it to every sink. All sinks are attempted;
// failures are joined with ErrWriteFailed.
func Save(ctx context.Context, r *Report, sinks ...Sink) error {
	data, err := Marshal(r)
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}

	var errs []error
	for _, s := range sinks {
		if err := s.Write(ctx, data); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Location(), err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrWriteFailed}, errs...)...)
	}
	return nil
}

// FileSink writes the report to a local file, replacing any previous one.
type FileSink struct {
	Path string
}

// Write replaces the file atomically via a temp file in the same directory.
func (s FileSink) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}

func (s FileSink) Location() string { return s.Path }

// StorageSink uploads the report as an object.
type StorageSink struct {
	Store interface {
		storage.Storage
		Location(key string) string
	}
	Key string
}

func (s StorageSink) Write(ctx context.Context, data []byte) error {
	_, err := s.Store.Put(ctx, s.Key, bytes.NewReader(data), int64(len(data)),
		storage.WithContentType("application/json"))
	return err
}

func (s StorageSink) Location() string { return s.Store.Location(s.Key) }
