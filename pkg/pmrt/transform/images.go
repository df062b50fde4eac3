package transform

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
)

// DefaultImagePlaceholder is the alt text some mail clients generate.
const DefaultImagePlaceholder = "Description automatically generated"

// ImageCaption returns the alt text, or a caption derived from the source
// when alt is empty or contains one of placeholders.
func ImageCaption(alt, src string, placeholders []string) string {
	alt = strings.TrimSpace(alt)
	if alt != "" && !containsAny(alt, placeholders) {
		return alt
	}
	if c := captionFromSource(src); c != "" {
		return c
	}
	return "image"
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func captionFromSource(src string) string {
	p := src
	if u, err := url.Parse(src); err == nil {
		switch {
		case u.Path != "":
			p = u.EscapedPath()
		case u.Opaque != "":
			p = u.Opaque
		}
	}
	p = strings.TrimRight(p, "/")
	seg := path.Base(p)
	if seg == "." || seg == "/" {
		return ""
	}
	if dec, err := url.PathUnescape(seg); err == nil {
		seg = dec
	}
	seg = strings.TrimSuffix(seg, path.Ext(seg))
	return strings.TrimSpace(strings.ReplaceAll(seg, "_", " "))
}

// linearizeImage replaces an image by "[caption][#n]", numbering sources
// for the whole document.
func (l *linearizer) linearizeImage(id dom.NodeID) {
	t := l.t
	n := t.Node(id)
	src, _ := n.Attr("src")
	src = strings.TrimSpace(src)
	alt, _ := n.Attr("alt")
	caption := ImageCaption(alt, src, l.opts.ImagePlaceholders)
	text := "[" + caption + "]"
	if src != "" {
		text += "[#" + strconv.Itoa(l.ctx.Images.Ordinal(src)) + "]"
	}
	t.ReplaceWith(id, t.NewText(text))
}
