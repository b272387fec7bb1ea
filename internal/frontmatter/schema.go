package frontmatter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	ferrors "git.home.luguber.info/inful/postgen/internal/foundation/errors"
	"git.home.luguber.info/inful/postgen/internal/foundation/normalization"
	"git.home.luguber.info/inful/postgen/internal/index"
)

// Type discriminates the front matter variants.
type Type string

const (
	TypeBlog  Type = "blog"
	TypeAbout Type = "about"
)

var types = normalization.NewNormalizer("document type", map[string]Type{
	string(TypeBlog):  TypeBlog,
	string(TypeAbout): TypeAbout,
})

var leadingDigits = regexp.MustCompile(`^\d+`)

// FrontMatter is a validated document header. Implementations are Blog and
// About.
type FrontMatter interface {
	Type() Type
	Meta() Common
	// ShouldPublish is false for drafts.
	ShouldPublish() bool
	// OutputPath is where the rendered document lives under root.
	OutputPath(root string) string
	// CheckAgainstSource verifies the header is consistent with the file it
	// was read from.
	CheckAgainstSource(path string) error
	// UpdateIndex folds the document into the build index.
	UpdateIndex(idx *index.Index)
	// Header is the HTML written ahead of the rendered body.
	Header() *html.Node

	fields() []field
}

// Common holds the attributes shared by every document type.
type Common struct {
	Date  time.Time
	Draft bool
}

// ShouldPublish reports whether the document is not a draft.
func (c Common) ShouldPublish() bool {
	return !c.Draft
}

// Meta returns the shared attributes.
func (c Common) Meta() Common {
	return c
}

// Blog is a post that belongs to a section and is listed in the index.
type Blog struct {
	Common
	ID      int
	Title   string
	Preview string
	Section string
	Tags    []string
}

// Type implements FrontMatter.
func (b *Blog) Type() Type { return TypeBlog }

// Ref is the post's permanent reference, section/id.
func (b *Blog) Ref() string {
	return fmt.Sprintf("%s/%d", b.Section, b.ID)
}

// OutputPath implements FrontMatter.
func (b *Blog) OutputPath(root string) string {
	return filepath.Join(root, b.Section, strconv.Itoa(b.ID)+".html")
}

// CheckAgainstSource requires the file to live in a directory named after the
// section and its name to start with the id's digits.
func (b *Blog) CheckAgainstSource(path string) error {
	dir := filepath.Base(filepath.Dir(path))
	if dir != b.Section {
		return sourceError(ferrors.CategoryPlacement, ErrPlacement, path, "section.directory",
			"post file %q was saved in the %s directory, but its front matter puts it in the %s directory", path, dir, b.Section)
	}

	digits := leadingDigits.FindString(filepath.Base(path))
	if digits == "" {
		return sourceError(ferrors.CategoryIdentifier, ErrMissingIdentifier, path, "id.prefix",
			"post file %q is not prefixed with its id %d", path, b.ID)
	}
	fileID, err := strconv.Atoi(digits)
	if err != nil || fileID != b.ID {
		return sourceError(ferrors.CategoryIdentifier, ErrIdentifierMismatch, path, "id.match",
			"post file %q front matter requires id %d but the file name is prefixed with %s", path, b.ID, digits)
	}
	return nil
}

// UpdateIndex adds the post's summary, tags and section to idx.
func (b *Blog) UpdateIndex(idx *index.Index) {
	idx.AddPost(index.Summary{
		Ref:     b.Ref(),
		Title:   b.Title,
		Preview: b.Preview,
		Date:    index.NewDate(b.Date),
		Section: b.Section,
		Tags:    append([]string{}, b.Tags...),
	})
}

// Header implements FrontMatter.
func (b *Blog) Header() *html.Node {
	return heading(b.Title)
}

// About is the site's single about page.
type About struct {
	Common
}

// Type implements FrontMatter.
func (a *About) Type() Type { return TypeAbout }

// OutputPath implements FrontMatter.
func (a *About) OutputPath(root string) string {
	return filepath.Join(root, "about.html")
}

// CheckAgainstSource implements FrontMatter; about pages may live anywhere.
func (a *About) CheckAgainstSource(string) error { return nil }

// UpdateIndex implements FrontMatter; about pages are not indexed.
func (a *About) UpdateIndex(*index.Index) {}

// Header implements FrontMatter.
func (a *About) Header() *html.Node {
	return heading("About Me.")
}

func heading(text string) *html.Node {
	h := &html.Node{Type: html.ElementNode, Data: "h1", DataAtom: atom.H1}
	h.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return h
}

// Parse validates a decoded front matter mapping. A missing type selects the
// blog schema; unknown keys are ignored.
func Parse(fields map[string]any) (FrontMatter, error) {
	kind := TypeBlog
	if raw, ok := fields["type"]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return nil, schemaError("type.string", "type must be a string, got %T", raw)
		}
		t, err := types.Normalize(s)
		if err != nil {
			return nil, schemaError("type.known", "%v", err)
		}
		kind = t
	}

	common, err := parseCommon(fields)
	if err != nil {
		return nil, err
	}
	if kind == TypeAbout {
		return &About{Common: common}, nil
	}
	return parseBlog(fields, common)
}

func parseCommon(fields map[string]any) (Common, error) {
	c := Common{Draft: true}

	date, err := dateField(fields, "date")
	if err != nil {
		return c, err
	}
	c.Date = date

	if raw, ok := fields["draft"]; ok && raw != nil {
		draft, ok := raw.(bool)
		if !ok {
			return c, schemaError("draft.bool", "draft must be true or false, got %v", raw)
		}
		c.Draft = draft
	}
	return c, nil
}

func parseBlog(fields map[string]any, common Common) (*Blog, error) {
	b := &Blog{Common: common}

	id, err := intField(fields, "id")
	if err != nil {
		return nil, err
	}
	b.ID = id

	if b.Title, err = sentenceField(fields, "title"); err != nil {
		return nil, err
	}
	if b.Preview, err = sentenceField(fields, "preview"); err != nil {
		return nil, err
	}

	section, err := stringField(fields, "section")
	if err != nil {
		return nil, err
	}
	if b.Section, err = slugValue("section", section); err != nil {
		return nil, err
	}

	raw, ok := fields["tags"]
	if !ok || raw == nil {
		return nil, schemaError("tags.required", "tags is required")
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, schemaError("tags.list", "tags must be a list, got %T", raw)
	}
	b.Tags = make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, schemaError("tags.string", "tags[%d] must be a string, got %T", i, item)
		}
		tag, err := slugValue("tag", s)
		if err != nil {
			return nil, err
		}
		b.Tags = append(b.Tags, tag)
	}
	return b, nil
}

func dateField(fields map[string]any, key string) (time.Time, error) {
	switch v := fields[key].(type) {
	case nil:
		return time.Time{}, schemaError(key+".required", "%s is required", key)
	case time.Time:
		return index.NewDate(v).Time, nil
	case string:
		t, err := time.Parse(index.DateLayout, strings.TrimSpace(v))
		if err != nil {
			return time.Time{}, schemaError(key+".format", "%s must be a calendar date (YYYY-MM-DD), got %q", key, v)
		}
		return t, nil
	default:
		return time.Time{}, schemaError(key+".format", "%s must be a calendar date, got %T", key, v)
	}
}

func intField(fields map[string]any, key string) (int, error) {
	var n int
	switch v := fields[key].(type) {
	case nil:
		return 0, schemaError(key+".required", "%s is required", key)
	case int:
		n = v
	case int64:
		n = int(v)
	case uint64:
		n = int(v)
	default:
		return 0, schemaError(key+".integer", "%s must be an integer, got %v", key, v)
	}
	if n < 0 {
		return 0, schemaError(key+".non_negative", "%s must not be negative, got %d", key, n)
	}
	return n, nil
}

func stringField(fields map[string]any, key string) (string, error) {
	switch v := fields[key].(type) {
	case nil:
		return "", schemaError(key+".required", "%s is required", key)
	case string:
		return v, nil
	default:
		return "", schemaError(key+".string", "%s must be a string, got %T", key, v)
	}
}

func sentenceField(fields map[string]any, key string) (string, error) {
	s, err := stringField(fields, key)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", schemaError(key+".non_empty", "%s cannot be empty", key)
	}
	return normalization.Sentence(s), nil
}

func slugValue(what, s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", schemaError(what+".non_empty", "%s cannot be empty", what)
	}
	slug := normalization.Slug(s)
	if slug == "" {
		return "", schemaError(what+".slug", "%s %q has no letters or digits", what, s)
	}
	return slug, nil
}
