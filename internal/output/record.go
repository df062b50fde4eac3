package output

import "github.com/jmylchreest/pmrt/pkg/pmrt"

// Record is one converted input.
type Record struct {
	Source   string         `json:"source" yaml:"source"`
	Content  string         `json:"content" yaml:"content"`
	Stats    *pmrt.Stats    `json:"stats,omitempty" yaml:"stats,omitempty"`
	Warnings []pmrt.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error    string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewRecord builds the record of a conversion of source. A failed
// conversion keeps only the error text.
func NewRecord(source string, result *pmrt.Result, err error) Record {
	r := Record{Source: source}
	if err != nil {
		r.Error = err.Error()
		return r
	}
	if result != nil {
		r.Content = result.Content
		r.Stats = result.Stats
		r.Warnings = result.Warnings
	}
	return r
}

// failure is how a failed record is serialized: no content, no stats.
type failure struct {
	Source string `json:"source" yaml:"source"`
	Error  string `json:"error" yaml:"error"`
}

func (r Record) encoded() any {
	if r.Error != "" {
		return failure{Source: r.Source, Error: r.Error}
	}
	return r
}

func (r Record) text() string {
	if r.Error != "" {
		return "error: " + r.Error
	}
	return r.Content
}
