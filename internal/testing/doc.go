// Package testing holds fixtures shared by package tests: a scratch Tree for
// content and build output, and HTML lookups for rendered markup.
package testing
