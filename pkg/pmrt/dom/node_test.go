package dom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
)

func parse(t *testing.T, src string) *dom.Tree {
	t.Helper()
	n, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return dom.Build(n)
}

func TestTree_AppendAndSiblings(t *testing.T) {
	t.Parallel()

	tr := dom.NewTree()
	p := tr.NewElement(dom.KindP)
	a := tr.NewText("a")
	b := tr.NewElement(dom.KindB)
	c := tr.NewText("c")
	tr.AppendChild(tr.Root(), p)
	tr.AppendChild(p, a)
	tr.AppendChild(p, b)
	tr.AppendChild(p, c)

	assert.Equal(t, p, tr.Parent(a))
	assert.Equal(t, a, tr.FirstChild(p))
	assert.Equal(t, c, tr.LastChild(p))
	assert.Equal(t, b, tr.NextSibling(a))
	assert.Equal(t, b, tr.PrevSibling(c))
	assert.Equal(t, dom.Nil, tr.PrevSibling(a))
	assert.Equal(t, dom.Nil, tr.NextSibling(c))
	assert.Equal(t, 1, tr.Index(b))
}

func TestTree_InsertAttachedPanics(t *testing.T) {
	t.Parallel()

	tr := dom.NewTree()
	p := tr.NewElement(dom.KindP)
	x := tr.NewText("x")
	tr.AppendChild(tr.Root(), p)
	tr.AppendChild(p, x)

	assert.Panics(t, func() { tr.AppendChild(tr.Root(), x) })
	assert.Panics(t, func() { tr.InsertBefore(p, x) })
	assert.Panics(t, func() { tr.AppendChild(p, tr.Root()) })
}

func TestTree_UnwrapKeepsOrder(t *testing.T) {
	t.Parallel()

	tr := parse(t, `<p>a<span>b<i>c</i></span>d</p>`)
	p := tr.FirstChild(tr.Root())
	span := tr.Children(p)[1]
	require.True(t, tr.IsElement(span, dom.KindSpan))

	tr.Unwrap(span)

	kids := tr.Children(p)
	require.Len(t, kids, 4)
	assert.Equal(t, "b", tr.Node(kids[1]).Text)
	assert.True(t, tr.IsElement(kids[2], dom.KindI))
	assert.Equal(t, dom.Nil, tr.Parent(span))
	assert.Equal(t, "abcd", tr.TextContent(p))
}

func TestTree_WrapAndWrapChildren(t *testing.T) {
	t.Parallel()

	tr := parse(t, `<p>x<b>y</b></p>`)
	p := tr.FirstChild(tr.Root())
	x := tr.FirstChild(p)

	i := tr.NewElement(dom.KindI)
	tr.Wrap(x, i)
	assert.Equal(t, i, tr.FirstChild(p))
	assert.Equal(t, i, tr.Parent(x))

	u := tr.NewElement(dom.KindU)
	tr.WrapChildren(p, u)
	assert.Equal(t, 1, tr.NumChildren(p))
	assert.Equal(t, 2, tr.NumChildren(u))
	assert.Equal(t, "xy", tr.TextContent(u))
}

func TestTree_ReplaceAndRemove(t *testing.T) {
	t.Parallel()

	tr := parse(t, `<p>a<b>b</b>c</p>`)
	p := tr.FirstChild(tr.Root())
	b := tr.Children(p)[1]

	n := tr.NewText("B")
	tr.ReplaceWith(b, n)
	assert.Equal(t, "aBc", tr.TextContent(p))

	tr.Remove(p)
	assert.Equal(t, 0, tr.NumChildren(tr.Root()))
	assert.Equal(t, 0, tr.NumChildren(p))
}

func TestTree_MergeText(t *testing.T) {
	t.Parallel()

	tr := dom.NewTree()
	p := tr.NewElement(dom.KindP)
	tr.AppendChild(tr.Root(), p)
	for _, s := range []string{"a", "", "b", "c"} {
		tr.AppendChild(p, tr.NewText(s))
	}
	tr.AppendChild(p, tr.NewElement(dom.KindBr))
	tr.AppendChild(p, tr.NewText("d"))

	assert.True(t, tr.MergeText(p))
	kids := tr.Children(p)
	require.Len(t, kids, 3)
	assert.Equal(t, "abc", tr.Node(kids[0]).Text)
	assert.False(t, tr.MergeText(p))
}

func TestTree_WalkOrders(t *testing.T) {
	t.Parallel()

	tr := parse(t, `<div><p>a</p><p>b</p></div>`)

	var pre, post []string
	tr.Walk(tr.Root(), func(id dom.NodeID) bool {
		pre = append(pre, label(tr, id))
		return true
	})
	tr.WalkPost(tr.Root(), func(id dom.NodeID) {
		post = append(post, label(tr, id))
	})

	assert.Equal(t, []string{"document", "div", "p", "a", "p", "b"}, pre)
	assert.Equal(t, []string{"a", "p", "b", "p", "div", "document"}, post)
}

func TestTree_WalkPostAllowsDetach(t *testing.T) {
	t.Parallel()

	tr := parse(t, `<p><span>a</span><span>b</span></p>`)
	tr.WalkPost(tr.Root(), func(id dom.NodeID) {
		if tr.IsElement(id, dom.KindSpan) {
			tr.Unwrap(id)
		}
	})
	tr.MergeAllText(tr.Root())

	p := tr.FirstChild(tr.Root())
	require.Equal(t, 1, tr.NumChildren(p))
	assert.Equal(t, "ab", tr.Node(tr.FirstChild(p)).Text)
}

func TestBuild_CollapsesWhitespaceOutsidePre(t *testing.T) {
	t.Parallel()

	tr := parse(t, "<body style=\"font-weight:bold\"><p>a \n\t b</p><pre>x\n  y</pre><!-- gone --></body>")
	root := tr.Node(tr.Root())
	v, ok := root.Attr("style")
	assert.True(t, ok)
	assert.Equal(t, "font-weight:bold", v)

	kids := tr.Children(tr.Root())
	require.Len(t, kids, 2)
	assert.Equal(t, "a b", tr.TextContent(kids[0]))
	assert.Equal(t, "x\n  y", tr.TextContent(kids[1]))
}

func TestBuild_UnknownTags(t *testing.T) {
	t.Parallel()

	tr := parse(t, `<section><font>x</font></section>`)
	sec := tr.FirstChild(tr.Root())
	assert.True(t, tr.IsElement(sec, dom.KindDiv))
	assert.Equal(t, "section", tr.Node(sec).Tag)
	assert.True(t, tr.IsElement(tr.FirstChild(sec), dom.KindSpan))
}

func TestKind_Classification(t *testing.T) {
	t.Parallel()

	for _, k := range dom.Kinds() {
		assert.NotEmpty(t, k.String())
		assert.NotContains(t, k.String(), "kind(")
	}
	assert.Equal(t, dom.KindB, dom.KindStrong.Canonical())
	assert.Equal(t, dom.KindS, dom.KindDel.Canonical())
	assert.Equal(t, 3, dom.KindH3.HeadingLevel())
	assert.Equal(t, 0, dom.KindP.HeadingLevel())
	assert.True(t, dom.KindImg.IsVoid())
	assert.False(t, dom.KindSpan.IsVoid())
	assert.True(t, dom.KindLi.DefaultBlock())
	assert.False(t, dom.KindTd.DefaultBlock())
	assert.Equal(t, dom.KindDiv, dom.KindOf(atom.Article))
	assert.Equal(t, dom.KindSpan, dom.KindOf(atom.Font))
}

func TestDefaultMargins(t *testing.T) {
	t.Parallel()

	assert.Equal(t, dom.Margins{Top: 1, Bottom: 1}, dom.DefaultMargins(dom.KindP, false))
	assert.Equal(t, dom.Margins{Top: 1, Bottom: 1}, dom.DefaultMargins(dom.KindUl, false))
	assert.Equal(t, dom.Margins{}, dom.DefaultMargins(dom.KindUl, true))
	assert.Equal(t, dom.Margins{}, dom.DefaultMargins(dom.KindDiv, false))
}

func TestRender_Dump(t *testing.T) {
	t.Parallel()

	tr := parse(t, `<p>Hi <b>there</b></p>`)
	br := tr.NewBreak(dom.BreakAfter, 2)
	tr.Node(br).Prefix = "> "
	tr.AppendChild(tr.Root(), br)

	want := "document block\n" +
		"  p block\n" +
		"    \"Hi \"\n" +
		"    b\n" +
		"      \"there\"\n" +
		"  br after lines=2 prefix=\"> \"\n"
	assert.Equal(t, want, dom.Render(tr))
}

func label(tr *dom.Tree, id dom.NodeID) string {
	if tr.IsText(id) {
		return tr.Node(id).Text
	}
	return tr.Kind(id).String()
}
