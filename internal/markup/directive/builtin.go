package directive

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Image renders ![alt](src), optionally captioned through a trailing
// configuration payload carrying caption="...".
func Image() Directive {
	return Directive{
		Name:    "image",
		Pattern: `!\[(?P<alt>[^\]\n]*)\]\((?P<src>[^)\s]*)\)`,
		Render: func(m Match) *html.Node {
			box := element("div", "ext-image")
			img := element("img", "")
			img.Attr = append(img.Attr,
				attr("alt", m.Group("alt")),
				attr("src", m.Group("src")),
			)
			box.AppendChild(img)
			if caption := m.Options.Value("caption"); caption != "" {
				box.AppendChild(withText(element("span", "ext-image-caption"), caption))
			}
			return box
		},
	}
}

// Note renders !note{...} as a labelled callout with one paragraph per
// non-empty body line.
func Note() Directive {
	return Directive{
		Name:    "note",
		Pattern: `!note\{(?P<body>(?s:.*?))\}`,
		Render: func(m Match) *html.Node {
			box := element("div", "ext-callout-note")
			box.AppendChild(withText(element("span", "ext-callout-note-label"), "Note."))
			for _, line := range strings.Split(m.Group("body"), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					box.AppendChild(withText(element("p", ""), line))
				}
			}
			return box
		},
	}
}

// TLDR renders !tldr{...} as a labelled single-paragraph summary.
func TLDR() Directive {
	return Directive{
		Name:    "tldr",
		Pattern: `!tldr\{(?P<body>(?s:.*?))\}`,
		Render: func(m Match) *html.Node {
			box := element("div", "ext-tldr")
			box.AppendChild(withText(element("span", "ext-tldr-label"), "TLDR."))
			box.AppendChild(withText(element("p", ""), collapse(m.Group("body"))))
			return box
		},
	}
}

// Quote renders !quote[src="...", author="..."]{...}. The bracketed options
// are optional and may also arrive as trailing configuration.
func Quote() Directive {
	return Directive{
		Name:    "quote",
		Pattern: `!quote(?:\[(?P<options>[^\]]*)\])?\{(?P<body>(?s:.*?))\}`,
		Render: func(m Match) *html.Node {
			box := element("div", "ext-quote")
			author := element("span", "ext-quote-author")
			src, name := m.Options.Value("src"), m.Options.Value("author")
			switch {
			case src != "" && name != "":
				a := withText(element("a", ""), name)
				a.Attr = append(a.Attr, attr("href", src))
				author.AppendChild(a)
			case name != "":
				author.AppendChild(withText(element("p", ""), name))
			case src != "":
				author.AppendChild(withText(element("p", ""), src))
			}
			box.AppendChild(author)
			box.AppendChild(withText(element("p", ""), collapse(m.Group("body"))))
			return box
		},
	}
}

func element(tag, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}

// Directive text is markdown source, so entities are decoded here and
// escaped once more when the fragment is rendered.
func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: html.UnescapeString(text)})
	return n
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: html.UnescapeString(val)}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
