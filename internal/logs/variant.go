package logs

import (
	"errors"
	"fmt"
	"strings"
)

// Variant is one of the independently stored notification-log categories.
type Variant string

const (
	Email    Variant = "email"
	SMS      Variant = "sms"
	WhatsApp Variant = "whatsapp"
)

// Variants lists every variant in display order.
var Variants = []Variant{Email, SMS, WhatsApp}

// ErrUnknownVariant is returned by ParseVariant for anything but email, sms or whatsapp.
var ErrUnknownVariant = errors.New("unknown variant")

// ParseVariant accepts the wire name of a variant, case-insensitively.
// "wa" is accepted as a short form of whatsapp.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "email", "emails":
		return Email, nil
	case "sms":
		return SMS, nil
	case "whatsapp", "wa":
		return WhatsApp, nil
	}
	return "", fmt.Errorf("%w %q (want email, sms or whatsapp)", ErrUnknownVariant, s)
}

// Endpoint is the collection path used for listing and creating records.
func (v Variant) Endpoint() string {
	return "/api/" + string(v) + "/"
}

// Label is the human-readable name.
func (v Variant) Label() string {
	switch v {
	case Email:
		return "Email"
	case SMS:
		return "SMS"
	case WhatsApp:
		return "WhatsApp"
	}
	return string(v)
}

// CSVFile is the fixed export filename.
func (v Variant) CSVFile() string {
	if v == Email {
		return "emails.csv"
	}
	return string(v) + ".csv"
}

// Columns are the exported fields, in order.
func (v Variant) Columns() []string {
	if v == Email {
		return []string{"id", "email_to", "created_at"}
	}
	return []string{"id", "mobile_number", "message", "created_at"}
}

// EmptyText is the placeholder shown for a table with no rows.
func (v Variant) EmptyText() string {
	if v == Email {
		return "No emails yet."
	}
	return "No data yet."
}
