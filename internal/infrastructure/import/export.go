package csvimport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates an export format name. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported export format: %s", s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv; charset=utf-8"
}

// Extension returns the file extension without a dot.
func (f Format) Extension() string {
	return string(f)
}

// Table is a header plus rows of string cells and the matching records for
// JSON output.
type Table struct {
	Headers []string
	Rows    [][]string
	Records any
}

// WriteCSV writes the table as UTF-8 CSV with a leading BOM so spreadsheet
// applications detect the encoding.
func WriteCSV(w io.Writer, t Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteJSON writes the table records as an indented JSON array.
func WriteJSON(w io.Writer, t Table) error {
	records := t.Records
	if records == nil {
		records = []any{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Write dispatches on the format.
func Write(w io.Writer, f Format, t Table) error {
	if f == FormatJSON {
		return WriteJSON(w, t)
	}
	return WriteCSV(w, t)
}
