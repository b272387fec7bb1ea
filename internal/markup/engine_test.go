package markup

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/postgen/internal/markup/directive"
	th "git.home.luguber.info/inful/postgen/internal/testing"
)

func render(t *testing.T, body string, opts ...Option) *th.HTMLDoc {
	t.Helper()
	out, err := New(opts...).Render(body, "/assets")
	require.NoError(t, err)
	return th.ParseHTML(t, out)
}

func TestRender_Note_TwoParagraphsInOrder(t *testing.T) {
	doc := render(t, "!note{ line one\nline two }")

	var paras []string
	for _, c := range th.Children(doc.MustClass("ext-callout-note")) {
		if c.Data == "p" {
			paras = append(paras, th.Text(c))
		}
	}
	require.Equal(t, []string{"line one", "line two"}, paras)
}

func TestRender_Quote_LinkAndCollapsedBody(t *testing.T) {
	doc := render(t, `!quote[src="http://x", author="A"]{ hi }`)

	author := doc.MustClass("ext-quote-author")
	links := th.FindAll(author, func(n *html.Node) bool { return n.DataAtom == atom.A })
	require.Len(t, links, 1)
	require.Equal(t, "http://x", th.Attr(links[0], "href"))
	require.Equal(t, "A", th.Text(links[0]))

	kids := th.Children(doc.MustClass("ext-quote"))
	require.Equal(t, "hi", th.Text(kids[len(kids)-1]))
}

func TestRender_ImageWithCommentCaption_RelativeSource(t *testing.T) {
	doc := render(t, "Intro.\n\n![A cat](./cat.png)\n<!--% caption=\"Sleeping\" %-->\n")

	box := doc.MustClass("ext-image")
	img := th.Children(box)[0]
	require.Equal(t, "/assets/cat.png", th.Attr(img, "src"))
	require.Equal(t, "A cat", th.Attr(img, "alt"))
	require.Equal(t, "Sleeping", th.Text(doc.MustClass("ext-image-caption")))
	require.Len(t, doc.ByTag("p"), 1)
}

func TestRender_RelativeLink_Rewritten(t *testing.T) {
	out, err := New().Render("[doc](./a.pdf)", "assets")
	require.NoError(t, err)

	links := th.ParseHTML(t, out).ByTag("a")
	require.Len(t, links, 1)
	require.Equal(t, "assets/a.pdf", th.Attr(links[0], "href"))
}

func TestRender_OrphanConfig_NotInOutput(t *testing.T) {
	out, err := New().Render("Hello.\n\n<!--% caption=\"x\" %-->\n", "")
	require.NoError(t, err)
	require.NotContains(t, out, directive.Sentinel)
	require.NotContains(t, out, "caption")
}

func TestRender_Table(t *testing.T) {
	doc := render(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.Len(t, doc.ByTag("table"), 1)
	require.Len(t, doc.ByTag("td"), 2)
}

func TestRender_FencedCode_DirectiveLeftLiteral(t *testing.T) {
	doc := render(t, "```go\n!tldr{ nope }\n```\n")

	require.Empty(t, doc.ByClass("ext-tldr"))
	require.Contains(t, th.Text(doc.ByTag("code")[0]), "!tldr{ nope }")
}

func TestRender_FencedCode_ConfigCommentLeftLiteral(t *testing.T) {
	out, err := New().Render("```\n<!--% caption=\"x\" %-->\n```\n", "")
	require.NoError(t, err)
	require.NotContains(t, out, directive.Sentinel)

	code := th.ParseHTML(t, out).ByTag("code")
	require.Len(t, code, 1)
	require.Contains(t, th.Text(code[0]), `<!--% caption="x" %-->`)
}

func TestRender_Note_ListLikeBodyLines(t *testing.T) {
	doc := render(t, "Intro.\n\n!note{\nFirst point.\n- second point\n1. third\n# fourth\n}\n\nAfter.\n")

	var paras []string
	for _, c := range th.Children(doc.MustClass("ext-callout-note")) {
		if c.Data == "p" {
			paras = append(paras, th.Text(c))
		}
	}
	require.Equal(t, []string{"First point.", "- second point", "1. third", "# fourth"}, paras)
	require.Empty(t, doc.ByTag("ul"))
	require.Empty(t, doc.ByTag("ol"))
	require.Empty(t, doc.ByTag("h1"))
	require.Len(t, doc.ByTag("p"), 6)
}

func TestRender_TOC_NestedHeadingLinks(t *testing.T) {
	doc := render(t, "[TOC]\n\n# One\n\n## Two\n\n# Three\n", WithTOCTitle("On this page"))

	toc := doc.MustClass("toc")
	require.Equal(t, "On this page", th.Text(doc.MustClass("toctitle")))

	var hrefs []string
	for _, a := range th.FindAll(toc, func(n *html.Node) bool { return n.DataAtom == atom.A }) {
		hrefs = append(hrefs, th.Attr(a, "href"))
	}
	require.Equal(t, []string{"#one", "#two", "#three"}, hrefs)

	var top *html.Node
	for _, c := range th.Children(toc) {
		if c.DataAtom == atom.Ul {
			top = c
		}
	}
	require.NotNil(t, top)
	items := th.Children(top)
	require.Len(t, items, 2)
	nested := th.FindAll(items[0], func(n *html.Node) bool { return n.DataAtom == atom.Ul })
	require.Len(t, nested, 1)
	require.Empty(t, doc.ByTag("p"))
}

func TestRender_TOC_ShallowerSubheadingSharesNestedList(t *testing.T) {
	doc := render(t, "[TOC]\n\n# One\n\n### Deep\n\n## Mid\n\n# Two\n")

	toc := doc.MustClass("toc")
	lists := th.FindAll(toc, func(n *html.Node) bool { return n.DataAtom == atom.Ul })
	require.Len(t, lists, 2)

	first := th.Children(lists[0])[0]
	var nested []*html.Node
	for _, c := range th.Children(first) {
		if c.DataAtom == atom.Ul {
			nested = append(nested, c)
		}
	}
	require.Len(t, nested, 1)
	require.Len(t, th.Children(nested[0]), 2)
	require.Len(t, th.Children(lists[0]), 2)
}

func TestRender_TOCMarkerInsideText_Ignored(t *testing.T) {
	doc := render(t, "see [TOC] here\n\n# One\n")
	require.Empty(t, doc.ByClass("toc"))
}

func TestRender_Highlighting_InlineStyles(t *testing.T) {
	doc := render(t, "```go\npackage main\n```\n", WithHighlightStyle("monokai"))

	pres := doc.ByTag("pre")
	require.Len(t, pres, 1)
	require.NotEmpty(t, th.Attr(pres[0], "style"))
}

func TestRender_Sanitize_StripsScriptKeepsDirectiveClasses(t *testing.T) {
	out, err := New(WithSanitize(true)).Render("<script>alert(1)</script>\n\n!tldr{ safe }\n", "")
	require.NoError(t, err)

	require.NotContains(t, out, "<script")
	th.ParseHTML(t, out).MustClass("ext-tldr")
}

func TestRender_WithoutMinify_KeepsNewlines(t *testing.T) {
	out, err := New(WithMinify(false)).Render("# A\n\nText.\n", "")
	require.NoError(t, err)
	require.Contains(t, out, "\n")

	minified, err := New().Render("# A\n\nText.\n", "")
	require.NoError(t, err)
	require.NotContains(t, minified, "\n")
}

func TestRender_FencedDivs(t *testing.T) {
	doc := render(t, "::: {.aside}\nInside.\n:::\n", WithFencedDivs(true))
	require.Len(t, doc.ByClass("aside"), 1)
}

func TestRenderPage_HeaderPrecedesBody(t *testing.T) {
	h1 := &html.Node{Type: html.ElementNode, Data: "h1", DataAtom: atom.H1}
	h1.AppendChild(&html.Node{Type: html.TextNode, Data: "Title."})

	out, err := New().RenderPage(h1, "Body.", "")
	require.NoError(t, err)
	require.Equal(t, "<h1>Title.</h1><p>Body.</p>", out)
}

func TestRender_CustomDirectiveRegistry(t *testing.T) {
	reg := directive.NewRegistry().MustRegister(directive.Directive{
		Name:    "kbd",
		Pattern: `!kbd\{(?P<body>[^}]*)\}`,
		Render: func(m directive.Match) *html.Node {
			n := &html.Node{Type: html.ElementNode, Data: "kbd", DataAtom: atom.Kbd}
			n.AppendChild(&html.Node{Type: html.TextNode, Data: m.Group("body")})
			return n
		},
	})

	doc := render(t, "Press !kbd{Ctrl} now, !note{not registered}", WithDirectives(reg))
	require.Len(t, doc.ByTag("kbd"), 1)
	require.Empty(t, doc.ByClass("ext-callout-note"))
}
