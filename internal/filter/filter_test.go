package filter

import (
	"testing"

	"github.com/matheus3301/notilog/internal/logs"
)

func sample() logs.Collections {
	return logs.Collections{
		Emails: []logs.EmailLog{
			{ID: 1, EmailTo: "alice@example.com"},
			{ID: 2, EmailTo: "Bob@Corp.io"},
		},
		SMS: []logs.MessageLog{
			{ID: 3, MobileNumber: "+5511999", Message: "Your code is 1234"},
			{ID: 4, MobileNumber: "+1555", Message: "Delivery ARRIVED"},
		},
		WhatsApp: []logs.MessageLog{
			{ID: 5, MobileNumber: "+44700", Message: "hello"},
		},
	}
}

func ids[R logs.Record](rows []R) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.RecordID())
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyEmptyQueryIsIdentity(t *testing.T) {
	c := sample()
	for _, q := range []Queries{{}, {Email: "   ", SMS: "\t", WhatsApp: " "}} {
		got := Apply(c, q)
		if !equalIDs(ids(got.Emails), []int64{1, 2}) {
			t.Errorf("Emails = %v", ids(got.Emails))
		}
		if !equalIDs(ids(got.SMS), []int64{3, 4}) {
			t.Errorf("SMS = %v", ids(got.SMS))
		}
		if !equalIDs(ids(got.WhatsApp), []int64{5}) {
			t.Errorf("WhatsApp = %v", ids(got.WhatsApp))
		}
	}
}

func TestApplyMatching(t *testing.T) {
	tests := []struct {
		name  string
		q     Queries
		email []int64
		sms   []int64
		wa    []int64
	}{
		{"email case-insensitive", Queries{Email: "BOB"}, []int64{2}, []int64{3, 4}, []int64{5}},
		{"email trimmed", Queries{Email: "  alice "}, []int64{1}, []int64{3, 4}, []int64{5}},
		{"email no match", Queries{Email: "zzz"}, []int64{}, []int64{3, 4}, []int64{5}},
		{"sms by number", Queries{SMS: "5511"}, []int64{1, 2}, []int64{3}, []int64{5}},
		{"sms by message", Queries{SMS: "arrived"}, []int64{1, 2}, []int64{4}, []int64{5}},
		{"whatsapp independent", Queries{WhatsApp: "HELLO"}, []int64{1, 2}, []int64{3, 4}, []int64{5}},
		{"whatsapp no match", Queries{WhatsApp: "bye"}, []int64{1, 2}, []int64{3, 4}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sample(), tt.q)
			if !equalIDs(ids(got.Emails), tt.email) {
				t.Errorf("Emails = %v, want %v", ids(got.Emails), tt.email)
			}
			if !equalIDs(ids(got.SMS), tt.sms) {
				t.Errorf("SMS = %v, want %v", ids(got.SMS), tt.sms)
			}
			if !equalIDs(ids(got.WhatsApp), tt.wa) {
				t.Errorf("WhatsApp = %v, want %v", ids(got.WhatsApp), tt.wa)
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	c := sample()
	got := Apply(c, Queries{Email: "alice"})
	got.Emails[0].EmailTo = "changed"
	if c.Emails[0].EmailTo != "alice@example.com" {
		t.Errorf("input mutated: %q", c.Emails[0].EmailTo)
	}
	if len(c.Emails) != 2 {
		t.Errorf("input length changed: %d", len(c.Emails))
	}
}

func TestQueriesWith(t *testing.T) {
	q := Queries{}.With(logs.SMS, "x").With(logs.WhatsApp, "y")
	if q.Get(logs.Email) != "" || q.Get(logs.SMS) != "x" || q.Get(logs.WhatsApp) != "y" {
		t.Errorf("Queries = %+v", q)
	}
}
