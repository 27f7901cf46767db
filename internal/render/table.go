// Package render turns log collections into UI-agnostic tables.
package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/matheus3301/notilog/internal/logs"
)

// TimeLayout is the display format for record timestamps.
const TimeLayout = "02 Jan 2006 — 03:04 PM"

// Table is a fully rendered variant table. Rows is empty when there is
// nothing to show, in which case Placeholder should be displayed instead.
type Table struct {
	Variant     logs.Variant
	Headers     []string
	Rows        []Row
	Placeholder string
}

// Row is one rendered record.
type Row struct {
	Index  int
	Cells  []string
	Target logs.DeleteTarget
	Record logs.Record
}

// Headers returns the column titles for a variant.
func Headers(v logs.Variant) []string {
	if v == logs.Email {
		return []string{"#", "Email To", "Created", "Action"}
	}
	return []string{"#", "Mobile", "Message", "Created", "Action"}
}

// ActionLabel is the text of the per-row delete action.
const ActionLabel = "Delete"

// Build renders one variant of c in local time.
func Build(v logs.Variant, c logs.Collections) Table {
	return BuildIn(v, c, time.Local)
}

// BuildIn renders one variant of c with timestamps shown in loc.
func BuildIn(v logs.Variant, c logs.Collections, loc *time.Location) Table {
	t := Table{
		Variant: v,
		Headers: Headers(v),
	}
	if v == logs.Email {
		for i, r := range c.Emails {
			t.Rows = append(t.Rows, Row{
				Index:  i + 1,
				Cells:  []string{strconv.Itoa(i + 1), r.EmailTo, FormatTimestamp(r.CreatedAt, loc), ActionLabel},
				Target: r.Target(v),
				Record: r,
			})
		}
	} else {
		for i, r := range c.Messages(v) {
			t.Rows = append(t.Rows, Row{
				Index:  i + 1,
				Cells:  []string{strconv.Itoa(i + 1), r.MobileNumber, r.Message, FormatTimestamp(r.CreatedAt, loc), ActionLabel},
				Target: r.Target(v),
				Record: r,
			})
		}
	}
	if len(t.Rows) == 0 {
		t.Placeholder = v.EmptyText()
	}
	return t
}

// FormatTimestamp renders an ISO-8601 timestamp as "02 Jan 2006 — 03:04 PM".
// Values that do not parse are returned unchanged.
func FormatTimestamp(ts string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	parsed, err := logs.TimeIn(ts, loc)
	if err != nil {
		return ts
	}
	return parsed.In(loc).Format(TimeLayout)
}

// Truncate shortens s to width display cells, appending "..." when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, width, "...")
}
