package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func capture(t *testing.T, opts Options) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	opts.Output = buf
	Init(opts)
	t.Cleanup(func() { Init(Options{}) })
	return buf
}

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantDebug bool
		wantWarn  bool
	}{
		{"default", Options{}, false, true},
		{"debug", Options{Debug: true}, true, true},
		{"quiet", Options{Quiet: true}, false, false},
		{"quiet wins over debug", Options{Debug: true, Quiet: true}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.opts)

			Debug("break collapsed")
			Warn("links without target rendered as text")
			Error("render failed")

			out := buf.String()
			if got := strings.Contains(out, "break collapsed"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v:\n%s", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "links without target"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v:\n%s", got, tt.wantWarn, out)
			}
			if !strings.Contains(out, "render failed") {
				t.Errorf("error should always be logged:\n%s", out)
			}
		})
	}
}

func TestInit_JSON(t *testing.T) {
	buf := capture(t, Options{JSON: true})

	Warn("conversion warning", "source", "mail.html", "input_bytes", 42)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["level"] != "WARN" || rec["msg"] != "conversion warning" {
		t.Errorf("unexpected record %v", rec)
	}
	if rec["source"] != "mail.html" || rec["input_bytes"] != float64(42) {
		t.Errorf("expected structured attributes, got %v", rec)
	}
}

func TestInit_Text(t *testing.T) {
	buf := capture(t, Options{})

	Error("conversion failed", "source", "bad.html")

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "source=bad.html") {
		t.Errorf("unexpected text output %q", out)
	}
}

func TestWith(t *testing.T) {
	buf := capture(t, Options{})

	log := With("component", "server")
	log.Info("listening", "addr", ":8080")

	out := buf.String()
	if !strings.Contains(out, "component=server") || !strings.Contains(out, "addr=:8080") {
		t.Errorf("expected attributes in %q", out)
	}
}
