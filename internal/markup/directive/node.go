package directive

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
)

// KindDirective is the ast.NodeKind of Node.
var KindDirective = ast.NewNodeKind("Directive")

// KindDirectiveBlock is the ast.NodeKind of Block.
var KindDirectiveBlock = ast.NewNodeKind("DirectiveBlock")

// Node is a prerendered HTML fragment in the markdown AST. A Node with a nil
// Fragment renders nothing.
type Node struct {
	ast.BaseInline
	Name     string
	Fragment *html.Node
}

// NewNode wraps fragment as an AST node produced by the named directive.
func NewNode(name string, fragment *html.Node) *Node {
	return &Node{Name: name, Fragment: fragment}
}

// Kind implements ast.Node.
func (n *Node) Kind() ast.NodeKind {
	return KindDirective
}

// Dump implements ast.Node.
func (n *Node) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": n.Name}, nil)
}

// Block is a directive that occupies whole lines of the document.
type Block struct {
	ast.BaseBlock
	Name     string
	Fragment *html.Node

	remaining int
}

// NewBlock wraps fragment as a block-level AST node.
func NewBlock(name string, fragment *html.Node) *Block {
	return &Block{Name: name, Fragment: fragment}
}

// Kind implements ast.Node.
func (b *Block) Kind() ast.NodeKind {
	return KindDirectiveBlock
}

// Dump implements ast.Node.
func (b *Block) Dump(source []byte, level int) {
	ast.DumpHelper(b, source, level, map[string]string{"Name": b.Name}, nil)
}

type nodeRenderer struct{}

func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindDirective, r.render)
	reg.Register(KindDirectiveBlock, r.render)
}

func (r *nodeRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	var fragment *html.Node
	switch n := node.(type) {
	case *Node:
		fragment = n.Fragment
	case *Block:
		fragment = n.Fragment
	}
	if fragment != nil {
		if err := html.Render(w, fragment); err != nil {
			return ast.WalkStop, err
		}
	}
	if node.Type() == ast.TypeBlock {
		_ = w.WriteByte('\n')
	}
	return ast.WalkSkipChildren, nil
}
