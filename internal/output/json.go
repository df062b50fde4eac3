package output

import (
	"encoding/json"
	"io"
)

// JSONWriter writes a report as one JSON document: an object for a single
// record, an array otherwise.
type JSONWriter struct {
	enc     *json.Encoder
	records []Record
	closed  bool
}

// NewJSONWriter creates a JSON report writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	enc := newJSONEncoder(w)
	if pretty {
		enc.SetIndent("", indent)
	}
	return &JSONWriter{enc: enc}
}

// Write buffers a record.
func (w *JSONWriter) Write(r Record) error {
	w.records = append(w.records, r)
	return nil
}

// WriteAll buffers records.
func (w *JSONWriter) WriteAll(rs []Record) error {
	w.records = append(w.records, rs...)
	return nil
}

// Close writes the report. Later calls do nothing.
func (w *JSONWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if len(w.records) == 1 {
		return w.enc.Encode(w.records[0].encoded())
	}
	docs := make([]any, len(w.records))
	for i, r := range w.records {
		docs[i] = r.encoded()
	}
	return w.enc.Encode(docs)
}

// JSONLWriter writes one JSON line per record as soon as it is written.
type JSONLWriter struct {
	enc *json.Encoder
}

// NewJSONLWriter creates a JSON Lines writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{enc: newJSONEncoder(w)}
}

// Write writes a record line.
func (w *JSONLWriter) Write(r Record) error {
	return w.enc.Encode(r.encoded())
}

// WriteAll writes a line per record.
func (w *JSONLWriter) WriteAll(rs []Record) error {
	for _, r := range rs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op.
func (w *JSONLWriter) Close() error {
	return nil
}

// newJSONEncoder leaves <, > and & alone since converted text is not
// embedded in HTML.
func newJSONEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}
