package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes each record as its own YAML document. Multi-line
// content is emitted as a literal block.
type YAMLWriter struct {
	enc  *yaml.Encoder
	docs int
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &YAMLWriter{enc: enc}
}

// Write writes a record document.
func (w *YAMLWriter) Write(r Record) error {
	w.docs++
	return w.enc.Encode(r.encoded())
}

// WriteAll writes a document per record.
func (w *YAMLWriter) WriteAll(rs []Record) error {
	for _, r := range rs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Close finishes the document stream. An empty stream writes nothing.
func (w *YAMLWriter) Close() error {
	if w.docs == 0 {
		return nil
	}
	return w.enc.Close()
}
