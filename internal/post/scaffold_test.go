package post

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/postgen/internal/foundation/errors"
	"git.home.luguber.info/inful/postgen/internal/frontmatter"
	th "git.home.luguber.info/inful/postgen/internal/testing"
)

func TestNextID(t *testing.T) {
	tr := th.NewTree(t)
	tr.WriteFile("data/go/003-a.md", "").
		WriteFile("data/go/12-b.md", "").
		WriteFile("data/go/notes.txt", "").
		WriteFile("data/go/2020-photo.png", "").
		WriteFile("data/go/99-draft.md.bak", "")

	id, err := NextID(tr.Path("data/go"), "md")
	require.NoError(t, err)
	assert.Equal(t, 13, id)

	id, err = NextID(tr.Path("data/go"), ".png")
	require.NoError(t, err)
	assert.Equal(t, 2021, id)

	id, err = NextID(tr.Path("data/missing"), "md")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestScaffold_WritesValidDraft(t *testing.T) {
	tr := th.NewTree(t)
	tr.WriteFile("data/go/004-old.md", "")

	path, err := Scaffold(tr.Path("data"), "md", Draft{
		Section: "Go",
		Title:   "Hello World",
		Tags:    []string{"intro"},
		Date:    time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, tr.Path("data/go/005-hello-world.md"), path)

	p, err := FromSource(path)
	require.NoError(t, err)
	assert.False(t, p.FrontMatter.ShouldPublish())
	assert.Equal(t, "go/5", p.Ref())

	blog, ok := p.FrontMatter.(*frontmatter.Blog)
	require.True(t, ok)
	assert.Equal(t, "Hello World.", blog.Title)
	assert.Equal(t, "Hello World.", blog.Preview)
	assert.Equal(t, []string{"intro"}, blog.Tags)
	assert.Equal(t, "2024-05-06", blog.Date.Format("2006-01-02"))
}

func TestScaffold_ExplicitIDNeverOverwrites(t *testing.T) {
	tr := th.NewTree(t)
	tr.WriteFile("data/go/002-taken.md", "original")

	_, err := Scaffold(tr.Path("data"), "md", Draft{Section: "go", Title: "taken", ID: ptr(2)})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
	tr.AssertFileContains("data/go/002-taken.md", "original")
}

func TestScaffold_ExplicitZeroID(t *testing.T) {
	tr := th.NewTree(t)
	tr.WriteFile("data/go/007-later.md", "")

	path, err := Scaffold(tr.Path("data"), "md", Draft{Section: "go", Title: "First", ID: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, tr.Path("data/go/000-first.md"), path)

	p, err := FromSource(path)
	require.NoError(t, err)
	assert.Equal(t, "go/0", p.Ref())
}

func ptr(n int) *int { return &n }

func TestScaffold_RejectsBadInput(t *testing.T) {
	tr := th.NewTree(t)

	_, err := Scaffold(tr.Path("data"), "md", Draft{Section: "???", Title: "x"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategorySchema))

	_, err = Scaffold(tr.Path("data"), "md", Draft{Section: "go", Title: "  "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, frontmatter.ErrSchema))
	tr.AssertFileNotExists("data/go")
}
