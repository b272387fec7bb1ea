// Package post pairs a validated front matter header with its markdown body
// and publishes it as an HTML page.
package post

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/net/html"

	ferrors "git.home.luguber.info/inful/postgen/internal/foundation/errors"
	"git.home.luguber.info/inful/postgen/internal/frontmatter"
	"git.home.luguber.info/inful/postgen/internal/index"
	"git.home.luguber.info/inful/postgen/internal/logfields"
)

// ErrFormat is the cause of errors for files that do not follow the
// front matter layout.
var ErrFormat = frontmatter.ErrFormat

// Renderer converts a body to HTML with header written first. Relative links
// are re-rooted under prefix.
type Renderer interface {
	RenderPage(header *html.Node, body, prefix string) (string, error)
}

// Post is one source document.
type Post struct {
	Source      string
	FrontMatter frontmatter.FrontMatter
	Body        string
}

// FromSource reads and validates the document at path.
func FromSource(path string) (*Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read post").
			WithContext(frontmatter.ContextPath, path).
			Build()
	}
	return Parse(path, raw)
}

// Parse validates raw as the content of the document at path.
func Parse(path string, raw []byte) (*Post, error) {
	fmRaw, body, err := frontmatter.Split(raw)
	if err != nil {
		return nil, ferrors.WrapError(ErrFormat, ferrors.CategoryFormat,
			fmt.Sprintf("invalid post format, could not parse %s", path)).
			Fatal().
			WithContext(frontmatter.ContextPath, path).
			WithContext(frontmatter.ContextRule, "layout").
			Build()
	}

	fields, err := frontmatter.ParseYAML(fmRaw)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategorySchema,
			fmt.Sprintf("%s: front matter is not valid YAML", path)).
			Fatal().
			WithContext(frontmatter.ContextPath, path).
			WithContext(frontmatter.ContextRule, "yaml").
			Build()
	}

	fm, err := frontmatter.Parse(fields)
	if err != nil {
		return nil, frontmatter.AtPath(err, path)
	}
	if err := fm.CheckAgainstSource(path); err != nil {
		return nil, err
	}
	return &Post{Source: path, FrontMatter: fm, Body: string(body)}, nil
}

// Target describes where and how posts are published.
type Target struct {
	OutputRoot   string
	StaticPrefix string
	Renderer     Renderer
}

// Publish renders the post below t.OutputRoot and folds it into idx. Drafts
// are skipped: nothing is written and idx is untouched. The written path is
// returned, or "" for drafts.
func (p *Post) Publish(t Target, idx *index.Index) (string, error) {
	if !p.FrontMatter.ShouldPublish() {
		slog.Debug("Skipping draft", logfields.Path(p.Source))
		return "", nil
	}

	out := p.FrontMatter.OutputPath(t.OutputRoot)
	page, err := t.Renderer.RenderPage(p.FrontMatter.Header(), p.Body, t.StaticPrefix)
	if err != nil {
		return "", frontmatter.AtPath(err, p.Source)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "create output directory").
			WithContext(frontmatter.ContextPath, filepath.Dir(out)).
			Build()
	}
	if err := os.WriteFile(out, []byte(page), 0o600); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "write page").
			WithContext(frontmatter.ContextPath, out).
			Build()
	}

	p.FrontMatter.UpdateIndex(idx)
	slog.Debug("Published post", logfields.Path(p.Source), logfields.Output(out), logfields.DocType(string(p.FrontMatter.Type())))
	return out, nil
}

// Ref returns the blog reference of the post, or "" for other types.
func (p *Post) Ref() string {
	if b, ok := p.FrontMatter.(*frontmatter.Blog); ok {
		return b.Ref()
	}
	return ""
}
