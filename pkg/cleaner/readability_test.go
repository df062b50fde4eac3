package cleaner

import (
	"strings"
	"testing"
)

const articlePage = `<html><head><title>Release notes</title></head><body>
<nav><a href="/">Home</a> <a href="/blog">Blog</a></nav>
<article>
<h1>Release notes</h1>
<p>The converter now keeps emphasis, lists, quotes and tables readable in plain text. Bold text is written between asterisks and italic text between slashes, so a reader without a mail client that renders markup still sees what the sender meant.</p>
<p>Links are collected into reference blocks at the end of the paragraph or list that contains them. Every destination gets a stable number, so the same link used twice points at the same entry and the body stays short enough to read on a small screen.</p>
<p>Images become captions derived from their alternative text or their file name. The sources are listed once at the end of the document, which keeps long tracking URLs out of the running text where they would otherwise break every line.</p>
</article>
<footer>Copyright</footer>
</body></html>`

func TestReadabilityCleaner_Name(t *testing.T) {
	if got := NewReadability().Name(); got != "readability" {
		t.Errorf("Name() = %q, want %q", got, "readability")
	}
}

func TestReadabilityCleaner_KeepsArticle(t *testing.T) {
	c := NewReadability(WithBaseURL("https://example.com/notes"))

	out, err := c.Clean(articlePage)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if !strings.Contains(out, "Links are collected into reference blocks") {
		t.Errorf("article paragraph missing from output:\n%s", out)
	}
}

func TestWithBaseURL_IgnoresRelative(t *testing.T) {
	c := NewReadability(WithBaseURL("/relative/path"))
	if c.baseURL != nil {
		t.Errorf("baseURL = %v, want nil", c.baseURL)
	}

	c = NewReadability(WithBaseURL("https://example.com/a"))
	if c.baseURL == nil || c.baseURL.Host != "example.com" {
		t.Errorf("baseURL = %v, want host example.com", c.baseURL)
	}
}
