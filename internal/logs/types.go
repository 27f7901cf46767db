package logs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrDuplicateID is returned when a collection carries the same id twice.
var ErrDuplicateID = errors.New("duplicate id")

// Record is the behaviour shared by every log variant.
type Record interface {
	RecordID() int64
	// Field returns the value of an export column, or "" for unknown columns.
	Field(column string) string
	// Target is the delete selection for this record.
	Target(v Variant) DeleteTarget
}

// EmailLog is one recorded email attempt.
type EmailLog struct {
	ID        int64  `json:"id"`
	EmailTo   string `json:"email_to"`
	CreatedAt string `json:"created_at"`
}

func (r EmailLog) RecordID() int64 { return r.ID }

func (r EmailLog) Field(column string) string {
	switch column {
	case "id":
		return strconv.FormatInt(r.ID, 10)
	case "email_to":
		return r.EmailTo
	case "created_at":
		return r.CreatedAt
	}
	return ""
}

func (r EmailLog) Target(v Variant) DeleteTarget {
	return DeleteTarget{Variant: v, ID: r.ID, Label: "Email to: " + stripQuotes(r.EmailTo)}
}

// MessageLog is one recorded SMS or WhatsApp attempt.
type MessageLog struct {
	ID           int64  `json:"id"`
	MobileNumber string `json:"mobile_number"`
	Message      string `json:"message"`
	CreatedAt    string `json:"created_at"`
}

func (r MessageLog) RecordID() int64 { return r.ID }

func (r MessageLog) Field(column string) string {
	switch column {
	case "id":
		return strconv.FormatInt(r.ID, 10)
	case "mobile_number":
		return r.MobileNumber
	case "message":
		return r.Message
	case "created_at":
		return r.CreatedAt
	}
	return ""
}

func (r MessageLog) Target(v Variant) DeleteTarget {
	return DeleteTarget{Variant: v, ID: r.ID, Label: "Mobile: " + stripQuotes(r.MobileNumber)}
}

// Stats are the server-computed counts per variant.
type Stats struct {
	Emails   int `json:"emails"`
	SMS      int `json:"sms"`
	WhatsApp int `json:"whatsapp"`
}

// Count returns the count for one variant.
func (s Stats) Count(v Variant) int {
	switch v {
	case Email:
		return s.Emails
	case SMS:
		return s.SMS
	case WhatsApp:
		return s.WhatsApp
	}
	return 0
}

// Collections holds the three record sequences in server order.
type Collections struct {
	Emails   []EmailLog
	SMS      []MessageLog
	WhatsApp []MessageLog
}

// Messages returns the SMS or WhatsApp sequence.
func (c Collections) Messages(v Variant) []MessageLog {
	if v == WhatsApp {
		return c.WhatsApp
	}
	return c.SMS
}

// Records returns one variant's sequence behind the Record interface.
func (c Collections) Records(v Variant) []Record {
	var out []Record
	if v == Email {
		out = make([]Record, 0, len(c.Emails))
		for _, r := range c.Emails {
			out = append(out, r)
		}
		return out
	}
	msgs := c.Messages(v)
	out = make([]Record, 0, len(msgs))
	for _, r := range msgs {
		out = append(out, r)
	}
	return out
}

// Len returns the number of records of one variant.
func (c Collections) Len(v Variant) int {
	if v == Email {
		return len(c.Emails)
	}
	return len(c.Messages(v))
}

// Snapshot is the result of one successful load.
type Snapshot struct {
	Collections
	Stats Stats
}

// DeleteTarget identifies a record selected for deletion.
type DeleteTarget struct {
	Variant Variant
	ID      int64
	Label   string
}

// Draft holds the contents of a creation form.
type Draft struct {
	EmailTo      string
	MobileNumber string
	Message      string
}

// IsZero reports whether every field is empty.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

// localLayout matches timestamps sent without a UTC offset, as a backend
// running with USE_TZ=False does.
const localLayout = "2006-01-02T15:04:05.999999999"

// Time parses the record timestamp. Timestamps without an offset are read
// as local time.
func Time(createdAt string) (time.Time, error) {
	return TimeIn(createdAt, time.Local)
}

// TimeIn is Time with offset-less timestamps read in loc.
func TimeIn(createdAt string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(createdAt)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.Local
	}
	if lt, lerr := time.ParseInLocation(localLayout, s, loc); lerr == nil {
		return lt, nil
	}
	return time.Time{}, err
}

// CheckUnique verifies ids are unique within one collection.
func CheckUnique[R Record](v Variant, rows []R) error {
	seen := make(map[int64]struct{}, len(rows))
	for _, r := range rows {
		id := r.RecordID()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s: %w %d", v, ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func stripQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}
