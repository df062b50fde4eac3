package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStaticFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/mail/index.html":
			if got := r.Header.Get("X-Test"); got != "yes" {
				t.Errorf("expected custom header, got %q", got)
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><head><title> Inbox </title></head><body>` +
				`<a href="doc.html">doc</a><a href="#top">top</a>` +
				`<img src="/img/cat.png"><a href="https://other.example/x">x</a></body></html>`))
		case "/data.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewStatic(StaticConfig{})
	defer func() { _ = f.Close() }()

	t.Run("resolves relative targets", func(t *testing.T) {
		content, err := f.Fetch(context.Background(), srv.URL+"/mail/index.html", Options{
			Headers: map[string]string{"X-Test": "yes"},
		})
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if content.Title != "Inbox" {
			t.Errorf("expected title 'Inbox', got %q", content.Title)
		}
		if content.StatusCode != http.StatusOK {
			t.Errorf("expected status 200, got %d", content.StatusCode)
		}
		for _, want := range []string{
			`href="` + srv.URL + `/mail/doc.html"`,
			`src="` + srv.URL + `/img/cat.png"`,
			`href="#top"`,
			`href="https://other.example/x"`,
		} {
			if !strings.Contains(content.HTML, want) {
				t.Errorf("expected %s in %s", want, content.HTML)
			}
		}
	})

	t.Run("rejects non html", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), srv.URL+"/data.json", Options{})
		if !errors.Is(err, ErrNotHTML) {
			t.Errorf("expected ErrNotHTML, got %v", err)
		}
	})

	t.Run("reports missing pages", func(t *testing.T) {
		content, err := f.Fetch(context.Background(), srv.URL+"/missing", Options{})
		if err == nil {
			t.Fatal("expected error")
		}
		if content.StatusCode != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", content.StatusCode)
		}
	})
}

func TestIsHTML(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"", true},
		{"text/html", true},
		{"text/html; charset=utf-8", true},
		{"application/xhtml+xml", true},
		{"application/json", false},
		{"not a type;;", false},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			if got := isHTML(tt.contentType); got != tt.want {
				t.Errorf("isHTML(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestNewStatic_Defaults(t *testing.T) {
	f := NewStatic(StaticConfig{})
	def := DefaultStaticConfig()
	if f.config.UserAgent != def.UserAgent || f.config.Timeout != def.Timeout || f.config.MaxBodySize != def.MaxBodySize {
		t.Errorf("expected defaults, got %+v", f.config)
	}
	if f.Type() != "static" {
		t.Errorf("expected type 'static', got %q", f.Type())
	}
}
