package output

import (
	"bufio"
	"fmt"
	"io"
)

// TextWriter writes the content of records as plain text. When more than
// one record is written each one gets a "==> source <==" header.
type TextWriter struct {
	w       *bufio.Writer
	records []Record
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Write buffers a record.
func (w *TextWriter) Write(r Record) error {
	w.records = append(w.records, r)
	return nil
}

// WriteAll buffers records.
func (w *TextWriter) WriteAll(rs []Record) error {
	w.records = append(w.records, rs...)
	return nil
}

// Close writes the buffered records.
func (w *TextWriter) Close() error {
	headers := len(w.records) > 1
	for i, r := range w.records {
		if headers {
			if i > 0 {
				if _, err := w.w.WriteString("\n"); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w.w, "==> %s <==\n", r.Source); err != nil {
				return err
			}
		}
		if _, err := w.w.WriteString(r.text() + "\n"); err != nil {
			return err
		}
	}
	w.records = nil
	return w.w.Flush()
}
