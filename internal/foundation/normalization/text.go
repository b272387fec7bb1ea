package normalization

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slug folds s into a URL-safe token: accents are stripped, letters are
// lower-cased and every run of other characters becomes a single hyphen.
// The result never starts or ends with a hyphen, so Slug(Slug(s)) == Slug(s).
func Slug(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = nonSlugRun.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(folded, "-")
}

// Sentence trims s, upper-cases its first character and terminates it with a
// period. Already normalized input is returned unchanged.
func Sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
