package pmrt

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// strippedTags never carry readable text.
var strippedTags = []string{
	"head", "script", "style", "noscript", "template",
	"svg", "math", "iframe", "object", "embed",
	"form", "input", "button", "select", "textarea",
	"canvas", "video", "audio",
}

// sanitize removes elements that never contribute text and hidden ones.
func sanitize(doc *goquery.Document, stats *Stats) {
	for _, tag := range strippedTags {
		removeElements(doc, tag, stats)
	}
	removeHiddenElements(doc, stats)
}

// removeElements removes all elements matching the given tag.
func removeElements(doc *goquery.Document, tag string, stats *Stats) {
	doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		stats.RecordRemoval(tag)
		s.Remove()
	})
}

// removeHiddenElements removes elements with the hidden attribute,
// aria-hidden="true", display:none or visibility:hidden.
func removeHiddenElements(doc *goquery.Document, stats *Stats) {
	remove := func(_ int, s *goquery.Selection) {
		stats.HiddenElementRemovals++
		stats.RecordRemoval(goquery.NodeName(s))
		s.Remove()
	}

	doc.Find("body [hidden]").Each(remove)
	doc.Find("body [aria-hidden='true']").Each(remove)

	doc.Find("body [style]").Each(func(i int, s *goquery.Selection) {
		style := strings.ToLower(strings.Join(strings.Fields(s.AttrOr("style", "")), ""))
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			remove(i, s)
		}
	})
}
