package markup

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/postgen/internal/markup/directive"
)

func TestRewritePaths_RelativeLink_UsesPrefix(t *testing.T) {
	require.Equal(t, "[t](assets/img.png)", RewritePaths("[t](./img.png)", "assets"))
	require.Equal(t, "[t](/assets/img.png)", RewritePaths("[t](./img.png)", "/assets/"))
}

func TestRewritePaths_ImageAndNestedPath(t *testing.T) {
	got := RewritePaths("see ![cat](./pics/cat.png) and [doc](./a/b.pdf)", "/static")
	require.Equal(t, "see ![cat](/static/pics/cat.png) and [doc](/static/a/b.pdf)", got)
}

func TestRewritePaths_NonRelativeLinks_Untouched(t *testing.T) {
	for _, in := range []string{
		"[x](http://example.com/./a)",
		"[x](../up.png)",
		"[x](/abs.png)",
		"[x](img.png)",
	} {
		require.Equal(t, in, RewritePaths(in, "assets"), in)
	}
}

func TestMunge_ConfigCommentLine_Wrapped(t *testing.T) {
	got := Munge("![a](b.png)\n  <!--%  caption=\"Cap\"  %-->  \nnext")
	require.Equal(t, "![a](b.png)\n"+directive.Sentinel+`caption="Cap"`+directive.Sentinel+"\nnext", got)
}

func TestMunge_OtherComments_Untouched(t *testing.T) {
	for _, in := range []string{
		"<!-- plain comment -->",
		"text <!--% inline %--> text",
		"<!--% unterminated",
	} {
		require.Equal(t, in, Munge(in), in)
	}
}

func TestMunge_CRLF_Wrapped(t *testing.T) {
	got := Munge("<!--% a='1' %-->\r\nx")
	require.Equal(t, directive.Sentinel+"a='1'"+directive.Sentinel+"\nx", got)
}

func TestMunge_FencedCode_Untouched(t *testing.T) {
	for _, in := range []string{
		"```\n<!--% caption=\"x\" %-->\n```",
		"~~~~ md\n<!--% a='1' %-->\n~~~\n<!--% b='2' %-->\n~~~~",
		"```\n~~~\n<!--% a='1' %-->\n```",
	} {
		require.Equal(t, in, Munge(in), in)
	}
}

func TestMunge_AfterClosedFence_Wrapped(t *testing.T) {
	got := Munge("```\ncode\n```\n<!--% a='1' %-->")
	require.Equal(t, "```\ncode\n```\n"+directive.Sentinel+"a='1'"+directive.Sentinel, got)
}
