package normalization

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testKind string

const (
	testKindAlpha testKind = "alpha"
	testKindBeta  testKind = "beta"
)

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer("kind", map[string]testKind{
		"alpha": testKindAlpha,
		"beta":  testKindBeta,
	})

	tests := []struct {
		name     string
		input    string
		expected testKind
	}{
		{"exact match", "alpha", testKindAlpha},
		{"case insensitive", "ALPHA", testKindAlpha},
		{"with spaces", "  beta  ", testKindBeta},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizer_UnknownValue(t *testing.T) {
	n := NewNormalizer("kind", map[string]testKind{"beta": testKindBeta, "alpha": testKindAlpha})

	_, err := n.Normalize("gamma")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid kind "gamma"`)
	assert.Contains(t, err.Error(), "[alpha beta]")
	assert.Equal(t, []string{"alpha", "beta"}, n.ValidKeys())
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Go  & Rust!! ", "go-rust"},
		{"Café Crème", "cafe-creme"},
		{"--already-a-slug--", "already-a-slug"},
		{"snake_case_tag", "snake-case-tag"},
		{"C++", "c"},
		{"2021", "2021"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}

func TestSlug_IdempotentAndWellFormed(t *testing.T) {
	wellFormed := regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*)?$`)
	inputs := []string{"Hello World", "Ünïcödé Tëxt", "a--b__c", " trailing- ", "MiXeD 123 cAsE", "日本語 tag"}
	for _, in := range inputs {
		once := Slug(in)
		assert.Equal(t, once, Slug(once), "slug must be idempotent for %q", in)
		assert.Regexp(t, wellFormed, once)
	}
}

func TestSentence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello world  ", "Hello world."},
		{"Already done.", "Already done."},
		{"élan", "Élan."},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Sentence(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Sentence(got))
		})
	}
}
