// Package markup renders post bodies to HTML.
//
// A body passes through two text rewrites before goldmark sees it: relative
// links are re-rooted under the static asset prefix, and configuration
// comments are disguised as sentinel-delimited text so they stay attached to
// the directive they follow. goldmark then renders tables, fenced code and
// the table of contents while the directive extension claims its own inline
// syntax. The result is optionally sanitized and finally minified.
package markup
