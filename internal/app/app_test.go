package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailblast/internal/app"
	"github.com/dmitrymomot/mailblast/internal/config"
	"github.com/dmitrymomot/mailblast/pkg/mailer"
	"github.com/dmitrymomot/mailblast/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailblast/pkg/report"
	"github.com/dmitrymomot/mailblast/pkg/storage"
)

const message = "---\nSubject: Quarterly update\n---\nHello **there**.\n"

type fixture struct {
	dir string
	cfg *config.Config
}

func newFixture(t *testing.T, list string) *fixture {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	return &fixture{dir: dir, cfg: &config.Config{
		Provider:       config.ProviderSMTP,
		RecipientsFile: write("email_list.txt", list),
		MessageFile:    write("message.md", message),
		Attachment:     write("brochure.pdf", "%PDF-1.4 test"),
		ReportPath:     filepath.Join(dir, "email_sending_report.json"),
		BatchSize:      50,
		BatchCooldown:  time.Minute,
		MaxAttempts:    3,
		RetryBackoff:   time.Second,
		SMTP:           smtp.Config{Username: "me@x.com"},
	}}
}

func (f *fixture) readReport(t *testing.T) report.Report {
	t.Helper()
	data, err := os.ReadFile(f.cfg.ReportPath)
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal(data, &rep))
	return rep
}

type fakeTransport struct {
	mu     sync.Mutex
	fail   map[string]bool
	sent   []*mailer.Email
	closed int
}

func (f *fakeTransport) Send(_ context.Context, e *mailer.Email) (*mailer.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[e.To[0]] {
		return nil, errors.New("550 mailbox unavailable")
	}
	f.sent = append(f.sent, e)
	return &mailer.Receipt{MessageID: "<id@test>"}, nil
}

func (f *fakeTransport) Close() error {
	f.closed++
	return nil
}

func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "a@x.com\n\nbad\nb@x.com\n")
	f.cfg.DryRun = true
	var out bytes.Buffer

	rep, err := app.New(f.cfg, app.WithOutput(&out), app.WithSleep(noSleep)).Run()
	require.NoError(t, err)
	assert.Equal(t, 2, rep.TotalRecipients)
	assert.Equal(t, 2, rep.SuccessCount)

	saved := f.readReport(t)
	assert.Equal(t, 2, saved.SuccessCount)
	assert.Empty(t, saved.Failures)

	text := out.String()
	assert.Contains(t, text, "Starting to process 2 emails...")
	assert.Contains(t, text, "Processing batch 1/1")
	assert.Contains(t, text, "✓ Email sent successfully to a@x.com")
	assert.Contains(t, text, "Successfully sent: 2")
	assert.Contains(t, text, "Detailed report saved to "+f.cfg.ReportPath)
	assert.NotContains(t, text, "Waiting")
}

func TestRun_FailuresAreReported(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "c@x.com\nd@x.com\n")
	tr := &fakeTransport{fail: map[string]bool{"c@x.com": true}}
	var out bytes.Buffer

	rep, err := app.New(f.cfg, app.WithTransport(tr), app.WithOutput(&out), app.WithSleep(noSleep)).Run()
	require.NoError(t, err)
	assert.Equal(t, 1, rep.SuccessCount)
	assert.Equal(t, 1, rep.FailureCount)
	assert.Equal(t, 1, tr.closed)

	require.Len(t, tr.sent, 1)
	sent := tr.sent[0]
	assert.Equal(t, []string{"d@x.com"}, sent.To)
	assert.Equal(t, "Quarterly update", sent.Subject)
	assert.Equal(t, "me@x.com", sent.From)
	require.Len(t, sent.Attachments, 1)
	assert.Equal(t, "brochure.pdf", sent.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", sent.Attachments[0].ContentType)

	saved := f.readReport(t)
	assert.Equal(t, []report.Failure{{Recipient: "c@x.com", Error: "550 mailbox unavailable"}}, saved.Failures)

	text := out.String()
	assert.Contains(t, text, "Retrying c@x.com (Attempt 2/3)...")
	assert.Contains(t, text, "Retrying c@x.com (Attempt 3/3)...")
	assert.Equal(t, 3, strings.Count(text, "✗ Error sending to c@x.com"))
	assert.Contains(t, text, "Failed: 1")
}

func TestRun_SenderName(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "a@x.com\n")
	f.cfg.SMTP.SenderName = "Deepak Rajput"
	tr := &fakeTransport{}

	_, err := app.New(f.cfg, app.WithTransport(tr), app.WithOutput(io.Discard)).Run()
	require.NoError(t, err)
	require.Len(t, tr.sent, 1)
	assert.Equal(t, "Deepak Rajput <me@x.com>", tr.sent[0].From)
}

func TestRun_CooldownBetweenBatches(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "a@x.com\nb@x.com\nc@x.com\n")
	f.cfg.BatchSize = 2
	var (
		mu    sync.Mutex
		waits []time.Duration
	)
	sleep := func(ctx context.Context, d time.Duration) error {
		mu.Lock()
		waits = append(waits, d)
		mu.Unlock()
		return ctx.Err()
	}
	var out bytes.Buffer

	_, err := app.New(f.cfg, app.WithTransport(&fakeTransport{}), app.WithOutput(&out), app.WithSleep(sleep)).Run()
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Minute}, waits)
	assert.Contains(t, out.String(), "Processing batch 2/2")
	assert.Equal(t, 1, strings.Count(out.String(), "Waiting 60 seconds before next batch..."))
}

func TestRun_SetupErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing recipients file", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, "a@x.com\n")
		f.cfg.RecipientsFile = filepath.Join(f.dir, "nope.txt")
		tr := &fakeTransport{}

		rep, err := app.New(f.cfg, app.WithTransport(tr), app.WithOutput(io.Discard)).Run()
		require.ErrorIs(t, err, app.ErrSetup)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Nil(t, rep)
		assert.Empty(t, tr.sent)
		assert.Equal(t, 1, tr.closed)
		assert.NoFileExists(t, f.cfg.ReportPath)
	})

	t.Run("message without subject", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, "a@x.com\n")
		require.NoError(t, os.WriteFile(f.cfg.MessageFile, []byte("no frontmatter"), 0o600))

		tr := &fakeTransport{}

		_, err := app.New(f.cfg, app.WithTransport(tr), app.WithOutput(io.Discard)).Run()
		require.ErrorIs(t, err, app.ErrSetup)
		assert.ErrorIs(t, err, mailer.ErrNoSubject)
		assert.Equal(t, 1, tr.closed)
	})

	t.Run("missing attachment", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, "a@x.com\n")
		f.cfg.Attachment = filepath.Join(f.dir, "missing.pdf")

		tr := &fakeTransport{}

		_, err := app.New(f.cfg, app.WithTransport(tr), app.WithOutput(io.Discard)).Run()
		require.ErrorIs(t, err, app.ErrSetup)
		assert.ErrorIs(t, err, mailer.ErrAttachmentNotFound)
		assert.Equal(t, 1, tr.closed)
	})
}

func TestRun_ReportWriteFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "a@x.com\n")
	f.cfg.ReportPath = filepath.Join(f.dir, "missing", "report.json")
	var out bytes.Buffer

	rep, err := app.New(f.cfg, app.WithTransport(&fakeTransport{}), app.WithOutput(&out)).Run()
	require.NoError(t, err)
	assert.Equal(t, 1, rep.SuccessCount)
	assert.Contains(t, out.String(), "Failed to save report:")
}

func TestRun_ObjectStorage(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "a@x.com\n")
	f.cfg.Attachment = "s3://assets/docs/offer.pdf"
	f.cfg.ReportS3Key = "reports/run.json"
	store := &memStore{objects: map[string][]byte{"docs/offer.pdf": []byte("%PDF-1.4 remote")}}
	tr := &fakeTransport{}
	var out bytes.Buffer

	_, err := app.New(f.cfg, app.WithTransport(tr), app.WithStorage(store), app.WithOutput(&out)).Run()
	require.NoError(t, err)

	require.Len(t, tr.sent, 1)
	assert.Equal(t, "offer.pdf", tr.sent[0].Attachments[0].Filename)
	assert.Equal(t, []byte("%PDF-1.4 remote"), tr.sent[0].Attachments[0].Content)

	var uploaded report.Report
	require.NoError(t, json.Unmarshal(store.objects["reports/run.json"], &uploaded))
	assert.Equal(t, 1, uploaded.SuccessCount)
	assert.FileExists(t, f.cfg.ReportPath)
	assert.Contains(t, out.String(), "Detailed report saved to mem://reports/run.json")
}

func TestRun_Interrupted(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "a@x.com\nb@x.com\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr := &fakeTransport{}

	rep, err := app.New(f.cfg, app.WithContext(ctx), app.WithTransport(tr), app.WithOutput(io.Discard)).Run()
	require.ErrorIs(t, err, app.ErrInterrupted)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, rep)
	assert.Equal(t, 2, rep.FailureCount)
	assert.Equal(t, 1, tr.closed)

	saved := f.readReport(t)
	assert.Equal(t, 2, saved.FailureCount)
}

func TestRun_ShutdownHooks(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "a@x.com\n")
	tr := &fakeTransport{}
	var order []string
	hook := func(context.Context) error {
		order = append(order, "hook")
		if tr.closed == 1 {
			order = append(order, "after-close")
		}
		return errors.New("ignored")
	}

	_, err := app.New(f.cfg, app.WithTransport(tr), app.WithOutput(io.Discard), app.ShutdownHook(hook)).Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"hook", "after-close"}, order)
}

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memStore) Put(_ context.Context, key string, r io.Reader, size int64, _ ...storage.Option) (*storage.FileInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return &storage.FileInfo{Key: key, Size: size}, nil
}

func (m *memStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStore) Location(key string) string { return "mem://" + key }

func TestRun_ReportKeyPrefix(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "a@x.com\n")
	f.cfg.ReportS3Key = "reports/"
	store := &memStore{objects: map[string][]byte{}}

	_, err := app.New(f.cfg, app.WithTransport(&fakeTransport{}), app.WithStorage(store), app.WithOutput(io.Discard)).Run()
	require.NoError(t, err)

	require.Len(t, store.objects, 1)
	for key := range store.objects {
		assert.Regexp(t, `^reports/[0-9A-HJKMNP-TV-Z]{26}\.json$`, key)
	}
}
