package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Header is the fixed first row of every output file.
var Header = []string{"ID", "Alsatian_transformed"}

// Row is one output line.
type Row struct {
	ID   int
	Text string
}

// Writer writes rows as comma-separated CSV with CRLF line endings, quoting
// fields only when needed.
type Writer struct {
	cw *csv.Writer
}

// NewWriter writes the header and returns a row writer.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(Header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &Writer{cw: cw}, nil
}

// Write appends a row.
func (w *Writer) Write(row Row) error {
	if err := w.cw.Write([]string{strconv.Itoa(row.ID), row.Text}); err != nil {
		return fmt.Errorf("write row %d: %w", row.ID, err)
	}
	return nil
}

// Flush writes buffered rows and reports any write error.
func (w *Writer) Flush() error {
	w.cw.Flush()
	return w.cw.Error()
}
