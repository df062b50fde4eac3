// Package undo reverts what mail providers do to a message body: injected
// banners, hidden fragments and rewritten link targets.
package undo

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/pmrt/internal/logger"
)

// Options selects what is undone.
type Options struct {
	// BannerLinks are link targets whose parent element is removed.
	BannerLinks []string
	// StyleSignatures are style fragments, compared without whitespace and
	// case, that mark an element for removal.
	StyleSignatures []string
}

// Report counts what Apply changed.
type Report struct {
	BannersRemoved  int
	ElementsRemoved int
	LinksRewritten  int
}

// Apply edits doc in place.
func Apply(doc *goquery.Document, opts Options) Report {
	var r Report
	r.BannersRemoved = removeBanners(doc, opts.BannerLinks)
	r.ElementsRemoved = removeBySignature(doc, opts.StyleSignatures)
	r.LinksRewritten = rewriteLinks(doc)
	return r
}

func removeBanners(doc *goquery.Document, links []string) int {
	removed := 0
	for _, link := range links {
		doc.Find(fmt.Sprintf("a[href=%q]", link)).Each(func(_ int, s *goquery.Selection) {
			parent := s.Parent()
			switch goquery.NodeName(parent) {
			case "", "body", "html":
				s.Remove()
			default:
				parent.Remove()
			}
			removed++
			logger.Debug("removed banner", "link", link)
		})
	}
	return removed
}

func compactStyle(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

func removeBySignature(doc *goquery.Document, signatures []string) int {
	if len(signatures) == 0 {
		return 0
	}
	sigs := make([]string, 0, len(signatures))
	for _, s := range signatures {
		if s = compactStyle(s); s != "" {
			sigs = append(sigs, s)
		}
	}
	removed := 0
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style := compactStyle(s.AttrOr("style", ""))
		for _, sig := range sigs {
			if strings.Contains(style, sig) {
				s.Remove()
				removed++
				return
			}
		}
	})
	return removed
}

func rewriteLinks(doc *goquery.Document) int {
	rewritten := 0
	doc.Find("a[originalsrc]").Each(func(_ int, s *goquery.Selection) {
		if orig := strings.TrimSpace(s.AttrOr("originalsrc", "")); orig != "" {
			s.SetAttr("href", orig)
			rewritten++
		}
		s.RemoveAttr("originalsrc")
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if target, ok := Unredirect(href); ok {
			s.SetAttr("href", target)
			rewritten++
		}
	})
	return rewritten
}

// Unredirect returns the original target of an Outlook SafeLinks or Google
// redirect URL.
func Unredirect(href string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	var param string
	switch {
	case strings.HasSuffix(host, ".safelinks.protection.outlook.com"):
		param = "url"
	case isGoogleHost(host) && u.Path == "/url":
		param = "q"
	default:
		return "", false
	}
	target := u.Query().Get(param)
	if target == "" {
		return "", false
	}
	if t, err := url.Parse(target); err != nil || t.Scheme == "" {
		return "", false
	}
	return target, true
}

func isGoogleHost(host string) bool {
	host = strings.TrimPrefix(host, "www.")
	return host == "google.com" || strings.HasPrefix(host, "google.")
}
