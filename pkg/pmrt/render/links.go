package render

import (
	"strconv"
	"strings"

	"github.com/jmylchreest/pmrt/internal/logger"
	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
)

// IsScope reports whether k collects a trailing link block.
func IsScope(k dom.Kind) bool {
	switch k {
	case dom.KindDocument, dom.KindDiv, dom.KindP, dom.KindUl, dom.KindOl:
		return true
	default:
		return false
	}
}

// LinkKey is the registry key of a link: the destination, plus the title
// in parentheses when it adds anything.
func LinkKey(href, title string) string {
	if title == "" || title == href {
		return href
	}
	return href + " (" + title + ")"
}

// IsBare reports whether a link whose visible text is text can be written
// as its destination alone.
func IsBare(href, text string) bool {
	if text == "" || text == href {
		return true
	}
	h := strings.TrimSuffix(href, "/")
	return strings.HasSuffix(h, "/"+text) || strings.HasSuffix(h, ":"+text)
}

// link linearizes an anchor whose content reduced to text.
func (c *Context) link(n *dom.Node, text string) string {
	href, _ := n.Attr("href")
	href = strings.TrimSpace(href)
	if href == "" {
		c.MissingTargets++
		logger.Debug("link without target", "text", text)
		return text
	}
	if IsBare(href, text) {
		c.LinksInlined++
		return href
	}
	reg := c.Links()
	if reg == nil {
		return text
	}
	title, _ := n.Attr("title")
	c.LinksReferenced++
	return "[" + text + "][" + strconv.Itoa(reg.Ordinal(LinkKey(href, strings.TrimSpace(title)))) + "]"
}

// linkBlock formats the reference block of a scope, each line prefixed.
func linkBlock(entries []Entry, prefix, mark string) string {
	if len(entries) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(blankPrefix(prefix))
	for _, e := range entries {
		sb.WriteString("\n")
		sb.WriteString(prefix)
		sb.WriteString("\t[")
		sb.WriteString(mark)
		sb.WriteString(strconv.Itoa(e.Ordinal))
		sb.WriteString("]: ")
		sb.WriteString(e.Key)
	}
	return sb.String()
}

// blankPrefix is the prefix used on an otherwise empty line.
func blankPrefix(prefix string) string {
	return strings.TrimRight(prefix, " \t")
}
