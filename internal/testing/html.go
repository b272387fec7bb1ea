package testing

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// HTMLDoc is a parsed HTML document with class-based lookups for assertions.
type HTMLDoc struct {
	t    *testing.T
	root *html.Node
}

// ParseHTML parses s as an HTML document, failing the test on error.
func ParseHTML(t *testing.T, s string) *HTMLDoc {
	t.Helper()
	root, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return &HTMLDoc{t: t, root: root}
}

// ByClass returns every element carrying class, in document order.
func (d *HTMLDoc) ByClass(class string) []*html.Node {
	return FindAll(d.root, func(n *html.Node) bool { return HasClass(n, class) })
}

// ByTag returns every element named tag, in document order.
func (d *HTMLDoc) ByTag(tag string) []*html.Node {
	return FindAll(d.root, func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == tag })
}

// MustClass returns the single element carrying class.
func (d *HTMLDoc) MustClass(class string) *html.Node {
	d.t.Helper()
	found := d.ByClass(class)
	if len(found) != 1 {
		d.t.Fatalf("expected exactly one .%s, found %d", class, len(found))
	}
	return found[0]
}

// FindAll walks n depth-first and collects the nodes matching pred.
func FindAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Children returns the element children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// HasClass reports whether n is an element whose class list contains class.
func HasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
