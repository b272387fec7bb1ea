package directive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOptions_MixedQuotes_TrimsKeysAndValues(t *testing.T) {
	opts := ParseOptions(` src = "http://x" , author='  Ada  '`)

	require.Equal(t, []string{"src", "author"}, opts.Keys())
	require.Equal(t, "http://x", opts.Value("src"))
	require.Equal(t, "Ada", opts.Value("author"))
}

func TestParseOptions_EmptyInput_ReturnsEmptyMapping(t *testing.T) {
	require.Equal(t, 0, ParseOptions("").Len())
	require.Equal(t, 0, ParseOptions("   ").Len())
}

func TestParseOptions_MalformedText_IsIgnored(t *testing.T) {
	opts := ParseOptions(`garbage, bare=value, caption="kept", broken="unterminated`)

	require.Equal(t, []string{"caption"}, opts.Keys())
	require.Equal(t, "kept", opts.Value("caption"))
}

func TestParseOptions_RepeatedKey_LastValueWins(t *testing.T) {
	opts := ParseOptions(`a="1", b="2", a="3"`)

	require.Equal(t, []string{"a", "b"}, opts.Keys())
	require.Equal(t, "3", opts.Value("a"))
}

func TestParseOptions_EmptyQuotedValue_IsPresent(t *testing.T) {
	opts := ParseOptions(`caption=""`)

	v, ok := opts.Get("caption")
	require.True(t, ok)
	require.Empty(t, v)
}

func TestOptions_Merge_OverlaysWithoutMutating(t *testing.T) {
	base := ParseOptions(`src="a", author="b"`)
	merged := base.Merge(ParseOptions(`author="c", extra="d"`))

	require.Equal(t, "b", base.Value("author"))
	require.Equal(t, []string{"src", "author", "extra"}, merged.Keys())
	require.Equal(t, "c", merged.Value("author"))
}

func TestOptions_ZeroValue_IsUsable(t *testing.T) {
	var opts Options
	_, ok := opts.Get("x")
	require.False(t, ok)

	opts.Set(" x ", " y ")
	require.Equal(t, "y", opts.Value("x"))
}
