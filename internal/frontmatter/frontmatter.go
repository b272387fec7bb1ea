// Package frontmatter splits post files into their YAML header and body and
// validates the header against the blog and about page schemas.
package frontmatter

import (
	"errors"
	"regexp"

	"gopkg.in/yaml.v3"
)

// document is the whole-file layout: optional leading whitespace, a ---
// line, the YAML block, a --- line starting a line of its own, then the body.
// The opening line ending is consumed whole, so CRLF files split like LF ones.
var document = regexp.MustCompile(`(?ms)\A\s*?-{3}(?:[ \t]*\r?\n|\s+?)(.*?)\s*?^-{3}\s*?(.*)\z`)

// ErrFormat indicates a document that does not follow the front matter layout.
var ErrFormat = errors.New("document does not match the front matter layout")

// Split separates the YAML front matter from the markdown body.
func Split(content []byte) (frontmatter []byte, body []byte, err error) {
	m := document.FindSubmatchIndex(content)
	if m == nil {
		return nil, nil, ErrFormat
	}
	return content[m[2]:m[3]], content[m[4]:m[5]], nil
}

// Join reassembles a document from raw front matter and body.
func Join(frontmatter []byte, body []byte) []byte {
	out := make([]byte, 0, len(frontmatter)+len(body)+8)
	out = append(out, "---\n"...)
	out = append(out, frontmatter...)
	if len(frontmatter) > 0 && frontmatter[len(frontmatter)-1] != '\n' {
		out = append(out, '\n')
	}
	out = append(out, "---\n"...)
	out = append(out, body...)
	return out
}

// ParseYAML parses raw YAML front matter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
