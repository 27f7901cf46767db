// Package filter narrows cached log collections by per-variant search text.
package filter

import (
	"strings"

	"github.com/matheus3301/notilog/internal/logs"
)

// Queries holds the raw search text of each variant.
type Queries struct {
	Email    string
	SMS      string
	WhatsApp string
}

// Get returns the query for one variant.
func (q Queries) Get(v logs.Variant) string {
	switch v {
	case logs.Email:
		return q.Email
	case logs.SMS:
		return q.SMS
	case logs.WhatsApp:
		return q.WhatsApp
	}
	return ""
}

// With returns a copy of q with the query for v replaced.
func (q Queries) With(v logs.Variant, query string) Queries {
	switch v {
	case logs.Email:
		q.Email = query
	case logs.SMS:
		q.SMS = query
	case logs.WhatsApp:
		q.WhatsApp = query
	}
	return q
}

// Apply returns the records of c matching q. The input is never modified; the
// returned slices are freshly allocated.
func Apply(c logs.Collections, q Queries) logs.Collections {
	return logs.Collections{
		Emails:   Emails(c.Emails, q.Email),
		SMS:      Messages(c.SMS, q.SMS),
		WhatsApp: Messages(c.WhatsApp, q.WhatsApp),
	}
}

// Emails keeps the records whose address contains query.
func Emails(rows []logs.EmailLog, query string) []logs.EmailLog {
	needle := normalize(query)
	out := make([]logs.EmailLog, 0, len(rows))
	for _, r := range rows {
		if needle == "" || strings.Contains(strings.ToLower(r.EmailTo), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Messages keeps the records whose number or message contains query.
func Messages(rows []logs.MessageLog, query string) []logs.MessageLog {
	needle := normalize(query)
	out := make([]logs.MessageLog, 0, len(rows))
	for _, r := range rows {
		if needle == "" ||
			strings.Contains(strings.ToLower(r.MobileNumber), needle) ||
			strings.Contains(strings.ToLower(r.Message), needle) {
			out = append(out, r)
		}
	}
	return out
}

func normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
