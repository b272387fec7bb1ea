package post

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/postgen/internal/foundation/errors"
	"git.home.luguber.info/inful/postgen/internal/foundation/normalization"
	"git.home.luguber.info/inful/postgen/internal/frontmatter"
)

var idPrefix = regexp.MustCompile(`^\d+`)

// Draft describes a blog post to scaffold.
type Draft struct {
	Section string
	Title   string
	Preview string
	Tags    []string
	Date    time.Time
	// ID is used as given when set; nil picks the next free id in the section.
	ID *int
}

// NextID returns one more than the largest id prefix of the posts in dir,
// that is the files ending in ext. A missing directory yields 1.
func NextID(dir, ext string) (int, error) {
	suffix := "." + strings.TrimPrefix(ext, ".")
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	highest := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		if n, err := strconv.Atoi(idPrefix.FindString(e.Name())); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

// Scaffold writes a new draft blog post below contentRoot and returns its
// path. The file is validated exactly as a build would read it and is never
// overwritten.
func Scaffold(contentRoot, ext string, d Draft) (string, error) {
	section := normalization.Slug(d.Section)
	if section == "" {
		return "", ferrors.SchemaError(fmt.Sprintf("section %q has no letters or digits", d.Section)).
			WithContext(frontmatter.ContextRule, "section.slug").
			Build()
	}
	dir := filepath.Join(contentRoot, section)

	var id int
	if d.ID != nil {
		id = *d.ID
	} else {
		next, err := NextID(dir, ext)
		if err != nil {
			return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "scan section directory").
				WithContext(frontmatter.ContextPath, dir).
				Fatal().
				Build()
		}
		id = next
	}

	date := d.Date
	if date.IsZero() {
		date = time.Now()
	}
	preview := d.Preview
	if strings.TrimSpace(preview) == "" {
		preview = d.Title
	}
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}

	blog := &frontmatter.Blog{
		Common:  frontmatter.Common{Date: date, Draft: true},
		ID:      id,
		Title:   d.Title,
		Preview: preview,
		Section: section,
		Tags:    tags,
	}
	fm, err := frontmatter.Marshal(blog)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryInternal, "encode front matter").Fatal().Build()
	}

	name := fmt.Sprintf("%03d-%s.%s", id, normalization.Slug(d.Title), strings.TrimPrefix(ext, "."))
	path := filepath.Join(dir, name)
	content := frontmatter.Join(fm, []byte("\n[TOC]\n\n## Introduction\n"))
	if _, err := Parse(path, content); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "create section directory").
			WithContext(frontmatter.ContextPath, dir).
			Fatal().
			Build()
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "create post").
			WithContext(frontmatter.ContextPath, path).
			Fatal().
			Build()
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "write post").
			WithContext(frontmatter.ContextPath, path).
			Fatal().
			Build()
	}
	if err := f.Close(); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "write post").
			WithContext(frontmatter.ContextPath, path).
			Fatal().
			Build()
	}
	return path, nil
}
