package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheus3301/notilog/internal/apitest"
	"github.com/matheus3301/notilog/internal/logs"
)

func newTestClient(t *testing.T) (*Client, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	c, err := NewClient(srv.URL + "/")
	require.NoError(t, err)
	return c, srv
}

func TestNormalizeBaseURL(t *testing.T) {
	u, err := NormalizeBaseURL(" http://localhost:8000/ ")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", u.String())

	for _, bad := range []string{"", "localhost:8000", "ftp://x", "http://"} {
		_, err := NormalizeBaseURL(bad)
		assert.Error(t, err, "NormalizeBaseURL(%q)", bad)
	}
}

func TestNilHTTPClientIgnored(t *testing.T) {
	srv := apitest.New(t)
	srv.AddEmail(logs.EmailLog{EmailTo: "a@b.co"})

	var c *Client
	require.NotPanics(t, func() {
		var err error
		c, err = NewClient(srv.URL, WithHTTPClient(nil), WithTimeout(time.Second))
		require.NoError(t, err)
	})

	emails, err := c.ListEmails(context.Background())
	require.NoError(t, err)
	assert.Len(t, emails, 1)
}

func TestListsAndStats(t *testing.T) {
	c, srv := newTestClient(t)
	srv.AddEmail(logs.EmailLog{EmailTo: "old@x.com", CreatedAt: "2026-01-01T10:00:00Z"})
	srv.AddEmail(logs.EmailLog{EmailTo: "new@x.com", CreatedAt: "2026-01-02T10:00:00Z"})
	srv.AddMessage(logs.SMS, logs.MessageLog{MobileNumber: "1", Message: "a"})
	srv.AddMessage(logs.WhatsApp, logs.MessageLog{ID: 7, MobileNumber: "2", Message: "b"})

	ctx := context.Background()
	emails, err := c.ListEmails(ctx)
	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Equal(t, "new@x.com", emails[0].EmailTo, "newest first")

	sms, err := c.ListSMS(ctx)
	require.NoError(t, err)
	assert.Len(t, sms, 1)

	wa, err := c.ListWhatsApp(ctx)
	require.NoError(t, err)
	require.Len(t, wa, 1)
	assert.Equal(t, int64(7), wa[0].ID)

	st, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, logs.Stats{Emails: 2, SMS: 1, WhatsApp: 1}, st)

	got, err := c.List(ctx, logs.WhatsApp)
	require.NoError(t, err)
	assert.Len(t, got.WhatsApp, 1)
	assert.Empty(t, got.Emails)
}

func TestFetchJSONFailure(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Fail(http.MethodGet, "/api/sms/", http.StatusInternalServerError, "boom")

	_, err := c.ListSMS(context.Background())
	require.Error(t, err)
	assert.Equal(t, "failed to load: /api/sms/", err.Error())

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "/api/sms/", le.Path)
}

func TestFetchJSONUnreachable(t *testing.T) {
	srv := apitest.NewServer()
	url := srv.URL
	srv.Close()

	c, err := NewClient(url)
	require.NoError(t, err)
	_, err = c.Stats(context.Background())
	var le *LoadError
	assert.True(t, errors.As(err, &le))
}

func TestCreateFetchesCSRFOnce(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.CreateEmail(ctx, "a@example.com"))
	require.NoError(t, c.CreateMessage(ctx, logs.SMS, "+1555", "hello"))
	require.NoError(t, c.Create(ctx, logs.WhatsApp, logs.Draft{MobileNumber: "+1", Message: "hi"}))

	assert.Equal(t, 1, srv.Count(http.MethodGet, "/"), "csrf cookie fetched once")
	assert.Equal(t, 1, srv.Len(logs.Email))
	assert.Equal(t, 1, srv.Len(logs.SMS))
	assert.Equal(t, 1, srv.Len(logs.WhatsApp))

	for _, r := range srv.Requests() {
		assert.NotEmpty(t, r.RequestID, "%s %s missing request id", r.Method, r.Path)
	}
}

func TestCreateValidationMessage(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	err := c.CreateEmail(ctx, "not-an-email")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Valid email_to is required", apiErr.Message)

	err = c.CreateMessage(ctx, logs.WhatsApp, " ", "hi")
	assert.Equal(t, "mobile_number and message are required", UserMessage(err, "fallback"))
}

func TestPostJSONNonJSONError(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Fail(http.MethodPost, "/api/sms/", http.StatusBadGateway, "")

	err := c.CreateMessage(context.Background(), logs.SMS, "1", "m")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, DefaultErrorMessage, apiErr.Message)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestMissingCSRFIsRejected(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Fail(http.MethodGet, "/", http.StatusNotFound, "")

	err := c.CreateEmail(context.Background(), "a@example.com")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "Request failed", apiErr.Message)
	assert.Equal(t, 0, srv.Len(logs.Email))
}

func TestDelete(t *testing.T) {
	c, srv := newTestClient(t)
	srv.AddMessage(logs.WhatsApp, logs.MessageLog{ID: 7, MobileNumber: "1", Message: "m"})
	ctx := context.Background()

	n, err := c.Delete(ctx, logs.WhatsApp, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, srv.Len(logs.WhatsApp))

	n, err = c.Delete(ctx, logs.WhatsApp, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "deleting a missing id is not an error")

	_, err = c.Delete(ctx, logs.Variant("fax"), 1)
	assert.Equal(t, "Valid type is required (email/sms/whatsapp)", UserMessage(err, ""))
}

func TestDuplicateIDRejected(t *testing.T) {
	c, srv := newTestClient(t)
	srv.AddEmail(logs.EmailLog{ID: 3, EmailTo: "a@x.com"})
	srv.AddEmail(logs.EmailLog{ID: 3, EmailTo: "b@x.com"})

	_, err := c.ListEmails(context.Background())
	assert.ErrorIs(t, err, logs.ErrDuplicateID)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "invalid number", UserMessage(&APIError{Status: 400, Message: "invalid number"}, "x"))
	assert.Equal(t, "fallback", UserMessage(errors.New("dial tcp: refused"), "fallback"))
	assert.Equal(t, "fallback", UserMessage(&APIError{Status: 500}, "fallback"))
}
