package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matheus3301/notilog/internal/logs"
)

func TestEncodeQuotesEveryField(t *testing.T) {
	c := logs.Collections{Emails: []logs.EmailLog{
		{ID: 1, EmailTo: `a"b@x.com`, CreatedAt: "2026-01-01T00:00:00Z"},
	}}
	got := string(Encode(logs.Email, c))
	want := `"id","email_to","created_at"` + "\n" + `"1","a""b@x.com","2026-01-01T00:00:00Z"`
	if got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeEmptyHasHeaderOnly(t *testing.T) {
	got := string(Encode(logs.SMS, logs.Collections{}))
	if got != `"id","mobile_number","message","created_at"` {
		t.Errorf("Encode(empty) = %q", got)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	c := logs.Collections{WhatsApp: []logs.MessageLog{
		{ID: 1, MobileNumber: "+1", Message: `say "hi", ok`, CreatedAt: "2026-01-01T00:00:00Z"},
		{ID: 2, MobileNumber: "+2", Message: "multi\nline", CreatedAt: "2026-01-02T00:00:00Z"},
		{ID: 3, MobileNumber: "", Message: "", CreatedAt: ""},
	}}

	r := csv.NewReader(strings.NewReader(string(Encode(logs.WhatsApp, c))))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("records = %d, want 4", len(records))
	}
	if strings.Join(records[0], ",") != "id,mobile_number,message,created_at" {
		t.Errorf("header = %v", records[0])
	}
	for i, m := range c.WhatsApp {
		row := records[i+1]
		want := []string{m.Field("id"), m.MobileNumber, m.Message, m.CreatedAt}
		for j := range want {
			if row[j] != want[j] {
				t.Errorf("row %d col %d = %q, want %q", i, j, row[j], want[j])
			}
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	c := logs.Collections{SMS: []logs.MessageLog{{ID: 5, MobileNumber: "9", Message: "m"}}}

	path, err := WriteFile(dir, logs.SMS, c)
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if filepath.Base(path) != "sms.csv" {
		t.Errorf("path = %q, want sms.csv", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(Encode(logs.SMS, c)) {
		t.Errorf("file content = %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only sms.csv", len(entries))
	}
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	paths, err := WriteAll(dir, logs.Collections{})
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	want := []string{"emails.csv", "sms.csv", "whatsapp.csv"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i, w := range want {
		if filepath.Base(paths[i]) != w {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], w)
		}
	}
}
