// Package build runs a site build: it discovers the post files under the
// content root, validates every one of them, and only then cleans the output
// directory, publishes the pages, writes the index and copies static assets.
//
// A single invalid document fails the whole build before anything is
// written.
package build
