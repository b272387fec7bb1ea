package markup

import (
	"bytes"
	"log/slog"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	fences "github.com/stefanfritsch/goldmark-fences"
	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/postgen/internal/foundation/errors"
	"git.home.luguber.info/inful/postgen/internal/logfields"
	"git.home.luguber.info/inful/postgen/internal/markup/directive"
)

const (
	// DefaultTOCTitle labels the generated table of contents.
	DefaultTOCTitle = "Contents"

	mediaType = "text/html"
)

type settings struct {
	directives     *directive.Registry
	tocTitle       string
	highlightStyle string
	sanitize       bool
	minify         bool
	fencedDivs     bool
}

// Option configures an Engine.
type Option func(*settings)

// WithDirectives replaces the default directive registry.
func WithDirectives(r *directive.Registry) Option {
	return func(s *settings) { s.directives = r }
}

// WithTOCTitle sets the label of the [TOC] block.
func WithTOCTitle(title string) Option {
	return func(s *settings) { s.tocTitle = title }
}

// WithHighlightStyle enables chroma highlighting of fenced code in the named
// style. An empty name disables highlighting.
func WithHighlightStyle(style string) Option {
	return func(s *settings) { s.highlightStyle = style }
}

// WithSanitize runs the rendered HTML through a user-generated-content policy.
func WithSanitize(on bool) Option {
	return func(s *settings) { s.sanitize = on }
}

// WithMinify toggles whitespace minification of the output.
func WithMinify(on bool) Option {
	return func(s *settings) { s.minify = on }
}

// WithFencedDivs enables ::: fenced div blocks.
func WithFencedDivs(on bool) Option {
	return func(s *settings) { s.fencedDivs = on }
}

// Engine turns post bodies into HTML. It is safe to reuse across documents
// but not for concurrent use.
type Engine struct {
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	minifier *minify.M
}

// New builds an Engine. Without options it renders with the default
// directives, a "Contents" table of contents and minified output.
func New(opts ...Option) *Engine {
	s := settings{tocTitle: DefaultTOCTitle, minify: true}
	for _, opt := range opts {
		opt(&s)
	}
	if s.directives == nil {
		s.directives = directive.Defaults()
	}

	exts := []goldmark.Extender{extension.Table, directive.New(s.directives)}
	if s.highlightStyle != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(s.highlightStyle),
			highlighting.WithFormatOptions(chromahtml.TabWidth(4)),
		))
	}
	if s.fencedDivs {
		exts = append(exts, &fences.Extender{})
	}

	e := &Engine{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
				parser.WithASTTransformers(util.Prioritized(&tocTransformer{title: s.tocTitle}, 200)),
			),
			goldmark.WithRendererOptions(ghtml.WithUnsafe()),
		),
	}
	if s.sanitize {
		e.policy = sanitizePolicy()
	}
	if s.minify {
		e.minifier = minify.New()
		e.minifier.Add(mediaType, &mhtml.Minifier{KeepEndTags: true, KeepQuotes: true, KeepDocumentTags: true})
	}
	return e
}

func sanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "id").Globally()
	p.AllowStyles("color", "background-color", "font-weight", "font-style", "text-decoration").Globally()
	return p
}

// Render converts body to HTML, re-rooting relative links under prefix.
func (e *Engine) Render(body, prefix string) (string, error) {
	return e.RenderPage(nil, body, prefix)
}

// RenderPage is Render with header written ahead of the body.
func (e *Engine) RenderPage(header *html.Node, body, prefix string) (string, error) {
	src := Munge(RewritePaths(body, prefix))

	var buf bytes.Buffer
	if header != nil {
		if err := html.Render(&buf, header); err != nil {
			return "", errors.WrapError(err, errors.CategoryRender, "render page header").Fatal().Build()
		}
	}
	if err := e.md.Convert([]byte(src), &buf); err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "convert markdown").Fatal().Build()
	}

	out := buf.String()
	if e.policy != nil {
		out = e.policy.Sanitize(out)
	}
	if e.minifier != nil {
		minified, err := e.minifier.String(mediaType, out)
		if err != nil {
			return "", errors.WrapError(err, errors.CategoryRender, "minify html").Fatal().Build()
		}
		out = minified
	}
	slog.Debug("Rendered markup", logfields.Count(len(out)))
	return out, nil
}
