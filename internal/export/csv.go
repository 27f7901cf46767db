// Package export writes cached log collections as CSV files.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matheus3301/notilog/internal/logs"
)

// Encode renders one variant of c as CSV: a header row of the variant's
// columns followed by one row per record. Every field is double-quoted with
// embedded quotes doubled, and rows are separated by "\n" with no trailing
// newline.
func Encode(v logs.Variant, c logs.Collections) []byte {
	cols := v.Columns()
	var buf bytes.Buffer
	writeRow(&buf, cols)
	for _, r := range c.Records(v) {
		fields := make([]string, len(cols))
		for i, col := range cols {
			fields[i] = r.Field(col)
		}
		buf.WriteByte('\n')
		writeRow(&buf, fields)
	}
	return buf.Bytes()
}

// Write streams Encode's output to w.
func Write(w io.Writer, v logs.Variant, c logs.Collections) error {
	_, err := w.Write(Encode(v, c))
	return err
}

// WriteFile writes one variant into dir under its fixed filename and
// returns the path written.
func WriteFile(dir string, v logs.Variant, c logs.Collections) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, v.CSVFile())

	// Temp file + rename: readers never see a partial CSV.
	tmp, err := os.CreateTemp(dir, "."+v.CSVFile()+".*")
	if err != nil {
		return "", fmt.Errorf("export %s: %w", v, err)
	}
	werr := Write(tmp, v, c)
	if cerr := tmp.Close(); cerr != nil && werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("export %s: %w", v, werr)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("export %s: %w", v, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("export %s: %w", v, err)
	}
	return path, nil
}

// WriteAll exports every variant into dir.
func WriteAll(dir string, c logs.Collections) ([]string, error) {
	paths := make([]string, 0, len(logs.Variants))
	for _, v := range logs.Variants {
		p, err := WriteFile(dir, v, c)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func writeRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
}
