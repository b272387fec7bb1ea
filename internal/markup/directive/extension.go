package directive

import (
	"bytes"
	"log/slog"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/postgen/internal/logfields"
)

// Directives are tried ahead of goldmark's link parser so ![alt](src) is
// claimed by the image directive.
const inlinePriority = 150

// Multi-line directives at the start of a line are claimed ahead of lists,
// headings and paragraphs so their bodies are not split into blocks.
const blockPriority = 90

var orphanConfig = regexp.MustCompile(`\A` + regexp.QuoteMeta(Sentinel) + `(?s:.*?)` + regexp.QuoteMeta(Sentinel))

// Extender plugs a directive registry into goldmark.
type Extender struct {
	Registry *Registry
}

// New returns an Extender for r, or for Defaults() when r is nil.
func New(r *Registry) *Extender {
	if r == nil {
		r = Defaults()
	}
	return &Extender{Registry: r}
}

// Extend implements goldmark.Extender.
func (e *Extender) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(newBlockParser(e.Registry), blockPriority)),
		parser.WithInlineParsers(util.Prioritized(newInlineParser(e.Registry), inlinePriority)),
		parser.WithASTTransformers(util.Prioritized(&unwrapTransformer{}, 100)),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(&nodeRenderer{}, 500)))
}

type inlineParser struct {
	directives []*Directive
	triggers   []byte
}

func newInlineParser(r *Registry) *inlineParser {
	directives := r.List()
	return &inlineParser{directives: directives, triggers: triggers(directives, Sentinel[0])}
}

func triggers(directives []*Directive, extra ...byte) []byte {
	var out []byte
	seen := map[byte]bool{}
	for _, c := range extra {
		seen[c] = true
		out = append(out, c)
	}
	for _, d := range directives {
		if c := d.Trigger(); !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func (p *inlineParser) Trigger() []byte {
	return p.triggers
}

func (p *inlineParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	var candidates []*Directive
	for _, d := range p.directives {
		if bytes.HasPrefix(line, d.prefix) {
			candidates = append(candidates, d)
		}
	}
	orphan := bytes.HasPrefix(line, []byte(Sentinel))
	if len(candidates) == 0 && !orphan {
		return nil
	}

	src := rest(block)
	for _, d := range candidates {
		m, n, ok := d.Match(src)
		if !ok {
			continue
		}
		advance(block, n)
		slog.Debug("Directive matched", logfields.Directive(d.Name), logfields.Count(m.Options.Len()))
		return NewNode(d.Name, d.Render(m))
	}
	if orphan {
		if loc := orphanConfig.FindIndex(src); loc != nil {
			advance(block, loc[1])
			return NewNode("config", nil)
		}
	}
	return nil
}

// rest returns the unread text of the paragraph without moving the reader.
func rest(block text.Reader) []byte {
	l, pos := block.Position()
	defer block.SetPosition(l, pos)
	var buf []byte
	for {
		line, _ := block.PeekLine()
		if line == nil {
			return buf
		}
		buf = append(buf, line...)
		block.AdvanceLine()
	}
}

func advance(block text.Reader, n int) {
	for n > 0 {
		line, _ := block.PeekLine()
		if line == nil {
			return
		}
		if n < len(line) {
			block.Advance(n)
			return
		}
		n -= len(line)
		block.AdvanceLine()
	}
}

// unwrapTransformer lifts directives out of paragraphs that hold nothing
// else, so block-level fragments are not nested inside <p>.
type unwrapTransformer struct{}

func (t *unwrapTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	var targets []*ast.Paragraph
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		p, ok := n.(*ast.Paragraph)
		if !ok {
			return ast.WalkContinue, nil
		}
		if onlyDirectives(p, source) {
			targets = append(targets, p)
		}
		return ast.WalkSkipChildren, nil
	})

	for _, p := range targets {
		parent := p.Parent()
		for c := p.FirstChild(); c != nil; {
			next := c.NextSibling()
			p.RemoveChild(p, c)
			if d, ok := c.(*Node); ok && d.Fragment != nil {
				parent.InsertBefore(parent, p, d)
			}
			c = next
		}
		parent.RemoveChild(parent, p)
	}
}

func onlyDirectives(p *ast.Paragraph, source []byte) bool {
	found := false
	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *Node:
			found = true
		case *ast.Text:
			if len(bytes.TrimSpace(n.Segment.Value(source))) != 0 {
				return false
			}
		default:
			return false
		}
	}
	return found
}
