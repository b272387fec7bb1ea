package markup

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/postgen/internal/markup/directive"
)

var (
	configComment = regexp.MustCompile(`^\s*<!--%(.*)%-->\s*$`)
	fenceMarker   = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
)

// Munge rewrites every line of the form <!--% payload %--> into the payload
// wrapped in directive.Sentinel. Lines inside fenced code blocks and all
// other lines are left untouched.
func Munge(body string) string {
	lines := strings.Split(body, "\n")
	fence := ""
	for i, line := range lines {
		if f := fenceMarker.FindStringSubmatch(line); f != nil {
			if fence == "" {
				fence = f[1]
			} else if closesFence(fence, f[1], line[len(f[0]):]) {
				fence = ""
			}
			continue
		}
		if fence != "" {
			continue
		}
		m := configComment.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lines[i] = directive.Sentinel + strings.TrimSpace(m[1]) + directive.Sentinel
	}
	return strings.Join(lines, "\n")
}

// closesFence reports whether marker ends a block opened by open: same
// character, at least as long, nothing but whitespace after it.
func closesFence(open, marker, rest string) bool {
	return marker[0] == open[0] && len(marker) >= len(open) && strings.TrimSpace(rest) == ""
}
