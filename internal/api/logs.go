package api

import (
	"context"
	"fmt"

	"github.com/matheus3301/notilog/internal/logs"
)

const (
	statsPath  = "/api/stats/"
	deletePath = "/api/delete/"
)

// ListEmails returns every email log, newest first.
func (c *Client) ListEmails(ctx context.Context) ([]logs.EmailLog, error) {
	var rows []logs.EmailLog
	if err := c.FetchJSON(ctx, logs.Email.Endpoint(), &rows); err != nil {
		return nil, err
	}
	if err := logs.CheckUnique(logs.Email, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListMessages returns every SMS or WhatsApp log, newest first.
func (c *Client) ListMessages(ctx context.Context, v logs.Variant) ([]logs.MessageLog, error) {
	if v != logs.SMS && v != logs.WhatsApp {
		return nil, fmt.Errorf("%w %q for message list", logs.ErrUnknownVariant, v)
	}
	var rows []logs.MessageLog
	if err := c.FetchJSON(ctx, v.Endpoint(), &rows); err != nil {
		return nil, err
	}
	if err := logs.CheckUnique(v, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListSMS returns every SMS log.
func (c *Client) ListSMS(ctx context.Context) ([]logs.MessageLog, error) {
	return c.ListMessages(ctx, logs.SMS)
}

// ListWhatsApp returns every WhatsApp log.
func (c *Client) ListWhatsApp(ctx context.Context) ([]logs.MessageLog, error) {
	return c.ListMessages(ctx, logs.WhatsApp)
}

// List fetches one variant into a Collections with only that variant set.
func (c *Client) List(ctx context.Context, v logs.Variant) (logs.Collections, error) {
	var out logs.Collections
	var err error
	switch v {
	case logs.Email:
		out.Emails, err = c.ListEmails(ctx)
	case logs.SMS:
		out.SMS, err = c.ListSMS(ctx)
	case logs.WhatsApp:
		out.WhatsApp, err = c.ListWhatsApp(ctx)
	default:
		err = fmt.Errorf("%w %q", logs.ErrUnknownVariant, v)
	}
	return out, err
}

// Stats returns the per-variant counts.
func (c *Client) Stats(ctx context.Context) (logs.Stats, error) {
	var s logs.Stats
	if err := c.FetchJSON(ctx, statsPath, &s); err != nil {
		return logs.Stats{}, err
	}
	return s, nil
}

type createEmailRequest struct {
	EmailTo string `json:"email_to"`
}

type createMessageRequest struct {
	MobileNumber string `json:"mobile_number"`
	Message      string `json:"message"`
}

// CreateEmail records an email attempt.
func (c *Client) CreateEmail(ctx context.Context, emailTo string) error {
	return c.PostJSON(ctx, logs.Email.Endpoint(), createEmailRequest{EmailTo: emailTo}, nil)
}

// CreateMessage records an SMS or WhatsApp attempt.
func (c *Client) CreateMessage(ctx context.Context, v logs.Variant, mobile, message string) error {
	if v != logs.SMS && v != logs.WhatsApp {
		return fmt.Errorf("%w %q for message create", logs.ErrUnknownVariant, v)
	}
	return c.PostJSON(ctx, v.Endpoint(), createMessageRequest{MobileNumber: mobile, Message: message}, nil)
}

// Create records the draft as a new log of variant v.
func (c *Client) Create(ctx context.Context, v logs.Variant, d logs.Draft) error {
	if v == logs.Email {
		return c.CreateEmail(ctx, d.EmailTo)
	}
	return c.CreateMessage(ctx, v, d.MobileNumber, d.Message)
}

type deleteRequest struct {
	Type logs.Variant `json:"type"`
	ID   int64        `json:"id"`
}

type deleteResponse struct {
	OK      bool `json:"ok"`
	Deleted int  `json:"deleted"`
}

// Delete removes one record and returns how many rows the server deleted.
// Deleting an id that no longer exists succeeds with zero.
func (c *Client) Delete(ctx context.Context, v logs.Variant, id int64) (int, error) {
	var resp deleteResponse
	if err := c.PostJSON(ctx, deletePath, deleteRequest{Type: v, ID: id}, &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}
