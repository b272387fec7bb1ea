package markup

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/postgen/internal/markup/directive"
)

var tocMarker = []byte("[TOC]")

type heading struct {
	level int
	id    string
	text  string
}

// tocTransformer replaces a paragraph holding only [TOC] with a nested list
// of links to the document's headings.
type tocTransformer struct {
	title string
}

func (t *tocTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	var markers []ast.Node
	var headings []heading

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			h := heading{level: n.Level, text: plainText(n, source)}
			if id, ok := n.AttributeString("id"); ok {
				if b, ok := id.([]byte); ok {
					h.id = string(b)
				}
			}
			headings = append(headings, h)
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if bytes.Equal(bytes.TrimSpace(linesOf(n, source)), tocMarker) {
				markers = append(markers, n)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, m := range markers {
		parent := m.Parent()
		parent.ReplaceChild(parent, m, directive.NewNode("toc", t.build(headings)))
	}
}

func (t *tocTransformer) build(headings []heading) *html.Node {
	box := element(atom.Div, "toc")
	title := element(atom.Span, "toctitle")
	title.AppendChild(&html.Node{Type: html.TextNode, Data: t.title})
	box.AppendChild(title)

	root := element(atom.Ul, "")
	box.AppendChild(root)
	if len(headings) == 0 {
		return box
	}

	type frame struct {
		level int
		list  *html.Node
	}
	base := headings[0].level
	for _, h := range headings {
		base = min(base, h.level)
	}
	stack := []frame{{level: base, list: root}}
	for _, h := range headings {
		for len(stack) > 1 && h.level < stack[len(stack)-1].level {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]
		if h.level > top.level && top.list.LastChild != nil {
			item := top.list.LastChild
			sub := item.LastChild
			if sub == nil || sub.DataAtom != atom.Ul {
				sub = element(atom.Ul, "")
				item.AppendChild(sub)
			}
			top = frame{level: h.level, list: sub}
			stack = append(stack, top)
		}

		a := element(atom.A, "")
		a.Attr = append(a.Attr, html.Attribute{Key: "href", Val: "#" + h.id})
		a.AppendChild(&html.Node{Type: html.TextNode, Data: h.text})
		li := element(atom.Li, "")
		li.AppendChild(a)
		top.list.AppendChild(li)
	}
	return box
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}

func linesOf(n ast.Node, source []byte) []byte {
	var buf []byte
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf = append(buf, seg.Value(source)...)
	}
	return buf
}

func plainText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(source))
			if c.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
