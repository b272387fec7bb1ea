package build

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/postgen/internal/foundation/errors"
)

// Sources lists the files under a content root.
type Sources struct {
	Root   string
	Posts  []string // files with the post extension
	Assets []string // every other regular file
}

// Discover walks root and splits its files into posts (by extension, without
// the dot) and static assets. Both lists are sorted.
func Discover(root, ext string) (*Sources, error) {
	suffix := "." + strings.TrimPrefix(ext, ".")
	src := &Sources{Root: root}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasSuffix(d.Name(), suffix) {
			src.Posts = append(src.Posts, path)
		} else {
			src.Assets = append(src.Assets, path)
		}
		return nil
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to scan content directory").
			WithContext("path", root).
			Build()
	}

	sort.Strings(src.Posts)
	sort.Strings(src.Assets)
	return src, nil
}
