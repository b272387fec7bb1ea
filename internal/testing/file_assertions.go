package testing

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

const (
	fixtureDirMode  = 0o750
	fixtureFileMode = 0o600
)

// Tree is a scratch directory for writing fixtures and asserting on the
// files a build produced.
type Tree struct {
	t    *testing.T
	Root string
}

// NewTree returns a Tree rooted in a fresh temporary directory.
func NewTree(t *testing.T) *Tree {
	t.Helper()
	return &Tree{t: t, Root: t.TempDir()}
}

// Path joins rel onto the tree root.
func (tr *Tree) Path(rel string) string {
	return filepath.Join(tr.Root, filepath.FromSlash(rel))
}

// WriteFile creates rel with content, making parent directories as needed.
func (tr *Tree) WriteFile(rel, content string) *Tree {
	tr.t.Helper()
	full := tr.Path(rel)
	if err := os.MkdirAll(filepath.Dir(full), fixtureDirMode); err != nil {
		tr.t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
	}
	if err := os.WriteFile(full, []byte(content), fixtureFileMode); err != nil {
		tr.t.Fatalf("write %s: %v", full, err)
	}
	return tr
}

// AssertFileExists validates that a file exists
func (tr *Tree) AssertFileExists(rel string) *Tree {
	tr.t.Helper()
	if _, err := os.Stat(tr.Path(rel)); err != nil {
		tr.t.Errorf("Expected file to exist: %s", rel)
	}
	return tr
}

// AssertFileNotExists validates that a file does not exist
func (tr *Tree) AssertFileNotExists(rel string) *Tree {
	tr.t.Helper()
	if _, err := os.Stat(tr.Path(rel)); err == nil {
		tr.t.Errorf("Expected file to not exist: %s", rel)
	}
	return tr
}

// AssertFileContains validates that a file contains expected content
func (tr *Tree) AssertFileContains(rel, expected string) *Tree {
	tr.t.Helper()
	content := tr.ReadFile(rel)
	if !strings.Contains(content, expected) {
		tr.t.Errorf("Expected file %s to contain %q\nActual content:\n%s", rel, expected, content)
	}
	return tr
}

// ReadFile returns the content of rel, failing the test if it is missing.
func (tr *Tree) ReadFile(rel string) string {
	tr.t.Helper()
	content, err := os.ReadFile(tr.Path(rel))
	if err != nil {
		tr.t.Fatalf("Failed to read file %s: %v", rel, err)
	}
	return string(content)
}

// ListFiles returns the slash-separated paths of every file under rel, sorted.
func (tr *Tree) ListFiles(rel string) []string {
	tr.t.Helper()
	base := tr.Path(rel)
	var files []string
	err := filepath.WalkDir(base, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			r, _ := filepath.Rel(base, p)
			files = append(files, filepath.ToSlash(r))
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		tr.t.Fatalf("walk %s: %v", rel, err)
	}
	sort.Strings(files)
	return files
}
