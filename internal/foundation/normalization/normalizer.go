package normalization

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Normalizer maps free-form input onto a closed set of enum values.
// Matching ignores case and surrounding whitespace.
type Normalizer[T comparable] struct {
	name   string
	values map[string]T
	keys   []string
}

// NewNormalizer builds a Normalizer for the enum called name; name only
// appears in error messages.
func NewNormalizer[T comparable](name string, values map[string]T) *Normalizer[T] {
	n := &Normalizer[T]{name: name, values: make(map[string]T, len(values))}
	for k, v := range values {
		n.values[enumKey(k)] = v
	}
	n.keys = slices.Sorted(maps.Keys(n.values))
	return n
}

// Normalize returns the enum value for raw. Unknown input is an error listing
// the accepted keys.
func (n *Normalizer[T]) Normalize(raw string) (T, error) {
	v, ok := n.values[enumKey(raw)]
	if !ok {
		return v, fmt.Errorf("invalid %s %q, valid options: %v", n.name, raw, n.keys)
	}
	return v, nil
}

// ValidKeys returns the accepted keys in sorted order.
func (n *Normalizer[T]) ValidKeys() []string {
	return slices.Clone(n.keys)
}

func enumKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
