package markup

import (
	"regexp"
	"strings"
)

var relativeLink = regexp.MustCompile(`\[([^\]]*)\]\(\./([^)]*)\)`)

// RewritePaths re-roots every [text](./rel) link under prefix. The prefix's
// trailing slash is dropped; links not starting with ./ are untouched.
func RewritePaths(body, prefix string) string {
	prefix = strings.TrimRight(prefix, "/")
	return relativeLink.ReplaceAllStringFunc(body, func(link string) string {
		m := relativeLink.FindStringSubmatch(link)
		return "[" + m[1] + "](" + prefix + "/" + m[2] + ")"
	})
}
