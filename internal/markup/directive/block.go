package directive

import (
	"bytes"
	"log/slog"
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/postgen/internal/logfields"
)

var fenceLine = regexp.MustCompile("(?m)^[ \t]*(```|~~~)")

// blockParser claims a directive that starts a top-level line and ends on a
// later line with nothing after it. The matched lines become one Block, so
// list markers or headings inside the body stay plain body text.
type blockParser struct {
	directives []*Directive
	triggers   []byte
}

func newBlockParser(r *Registry) *blockParser {
	directives := r.List()
	return &blockParser{directives: directives, triggers: triggers(directives)}
}

func (p *blockParser) Trigger() []byte {
	return p.triggers
}

func (p *blockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	pos := pc.BlockOffset()
	if pos < 0 || parent.Kind() != ast.KindDocument {
		return nil, parser.NoChildren
	}
	_, segment := reader.PeekLine()
	src := reader.Source()[segment.Start-segment.Padding+pos:]

	for _, d := range p.directives {
		if !bytes.HasPrefix(src, d.prefix) {
			continue
		}
		m, n, ok := d.Match(src)
		if !ok {
			continue
		}
		lines := bytes.Count(src[:n], []byte{'\n'})
		if lines == 0 || !util.IsBlank(restOfLine(src[n:])) || fenceLine.Match(src[:n]) {
			continue
		}
		slog.Debug("Directive matched", logfields.Directive(d.Name), logfields.Count(m.Options.Len()))
		b := NewBlock(d.Name, d.Render(m))
		b.remaining = lines
		return b, parser.NoChildren
	}
	return nil, parser.NoChildren
}

// Continue swallows the lines the directive spans, then closes the block
// without consuming the next one.
func (p *blockParser) Continue(node ast.Node, _ text.Reader, _ parser.Context) parser.State {
	b := node.(*Block)
	if b.remaining == 0 {
		return parser.Close
	}
	b.remaining--
	return parser.Continue | parser.NoChildren
}

func (p *blockParser) Close(ast.Node, text.Reader, parser.Context) {}

func (p *blockParser) CanInterruptParagraph() bool { return true }

func (p *blockParser) CanAcceptIndentedLine() bool { return false }

func restOfLine(src []byte) []byte {
	if i := bytes.IndexByte(src, '\n'); i >= 0 {
		return src[:i]
	}
	return src
}
