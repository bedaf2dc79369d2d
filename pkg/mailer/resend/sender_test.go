package resend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailblast/pkg/mailer"
)

func testEmail() *mailer.Email {
	return &mailer.Email{
		To:      []string{"hr@company.com"},
		Subject: "Application",
		Text:    "Dear Hiring Manager",
		Attachments: []mailer.Attachment{
			{Filename: "cv.pdf", ContentType: "application/pdf", Content: []byte("%PDF")},
		},
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(Config{SenderEmail: "me@example.com"})
	require.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = New(Config{APIKey: "re_test"})
	require.ErrorIs(t, err, ErrMissingSender)

	s, err := New(Config{APIKey: "re_test", SenderEmail: "me@example.com"})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestSender_buildRequest(t *testing.T) {
	t.Parallel()

	s, err := New(Config{APIKey: "re_test", SenderEmail: "me@example.com", SenderName: "Deepak"})
	require.NoError(t, err)

	req := s.buildRequest(testEmail())
	assert.Equal(t, "Deepak <me@example.com>", req.From)
	assert.Equal(t, []string{"hr@company.com"}, req.To)
	assert.Equal(t, "Dear Hiring Manager", req.Text)
	require.Len(t, req.Attachments, 1)
	assert.Equal(t, "cv.pdf", req.Attachments[0].Filename)

	email := testEmail()
	email.From = "other@example.com"
	assert.Equal(t, "other@example.com", s.buildRequest(email).From)
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Application", body["subject"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "email-123"})
	}))
	t.Cleanup(srv.Close)

	s, err := New(Config{APIKey: "re_test", SenderEmail: "me@example.com"}, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	s.client.BaseURL = base

	receipt, err := s.Send(context.Background(), testEmail())
	require.NoError(t, err)
	assert.Equal(t, "email-123", receipt.MessageID)
}

func TestSender_Send_InvalidEmail(t *testing.T) {
	t.Parallel()

	s, err := New(Config{APIKey: "re_test", SenderEmail: "me@example.com"})
	require.NoError(t, err)

	_, err = s.Send(context.Background(), &mailer.Email{Subject: "s", Text: "t"})
	require.ErrorIs(t, err, mailer.ErrSendFailed)
	require.ErrorIs(t, err, mailer.ErrNoRecipient)
}
