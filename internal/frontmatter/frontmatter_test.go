package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nkey: value\n---\n# Title\n")

	fm, body, err := Split(input)
	require.NoError(t, err)
	require.Equal(t, []byte("key: value"), fm)
	require.Equal(t, []byte("\n# Title\n"), body)
}

func TestSplit_LeadingWhitespace_Allowed(t *testing.T) {
	fm, body, err := Split([]byte("\n\n  ---\nk: v\n---\nbody"))
	require.NoError(t, err)
	require.Equal(t, []byte("k: v"), fm)
	require.Equal(t, []byte("\nbody"), body)
}

func TestSplit_NoFrontmatter_ReturnsFormatError(t *testing.T) {
	_, _, err := Split([]byte("# Title\n\nHello\n"))
	require.True(t, errors.Is(err, ErrFormat))
}

func TestSplit_MissingClosingDelimiter_ReturnsFormatError(t *testing.T) {
	_, _, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.True(t, errors.Is(err, ErrFormat))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, err := Split([]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.Equal(t, []byte("key: value"), fm)
	require.Equal(t, []byte("\r\n# Title\r\n"), body)
}

func TestSplit_CRLF_EmptyFrontmatterBlock(t *testing.T) {
	fm, body, err := Split([]byte("---\r\n---\r\nx"))
	require.NoError(t, err)
	require.Empty(t, fm)
	require.Equal(t, []byte("\r\nx"), body)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	fm, body, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.Empty(t, fm)
	require.Equal(t, []byte("\n# Title\n"), body)
}

func TestSplit_DashesInsideValue_DoNotCloseBlock(t *testing.T) {
	fm, body, err := Split([]byte("---\ntitle: a---b\n---\nx"))
	require.NoError(t, err)
	require.Equal(t, []byte("title: a---b"), fm)
	require.Equal(t, []byte("\nx"), body)
}

func TestJoin_SplitRecoversFrontmatter(t *testing.T) {
	doc := Join([]byte("key: value\n"), []byte("Body\n"))
	require.Equal(t, "---\nkey: value\n---\nBody\n", string(doc))

	fm, _, err := Split(doc)
	require.NoError(t, err)
	require.Equal(t, []byte("key: value"), fm)
}

func TestParseYAML_ValidYAML_ReturnsMap(t *testing.T) {
	fm := []byte("uid: abc\ntags:\n  - one\n")

	fields, err := ParseYAML(fm)
	require.NoError(t, err)
	require.Equal(t, "abc", fields["uid"])
	require.Equal(t, []any{"one"}, fields["tags"])
}

func TestParseYAML_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := ParseYAML(nil)
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestParseYAML_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := ParseYAML([]byte(": not yaml"))
	require.Error(t, err)
}
