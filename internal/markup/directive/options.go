package directive

import (
	"regexp"
	"strings"
)

// optionPair matches key="value" or key='value'. The quote character may
// differ between pairs; text that does not fit the shape is skipped.
var optionPair = regexp.MustCompile(`([^\s=,"']+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// Options is an ordered string mapping parsed from directive configuration.
// The zero value is an empty mapping ready to use.
type Options struct {
	keys   []string
	values map[string]string
}

// ParseOptions reads every key="value" / key='value' pair in s. Keys and
// values are trimmed; a repeated key keeps its first position and last value.
func ParseOptions(s string) Options {
	var opts Options
	for _, m := range optionPair.FindAllStringSubmatch(s, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		opts.Set(m[1], value)
	}
	return opts
}

// Set assigns value to key, appending key if it is new.
func (o *Options) Set(key, value string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	if o.values == nil {
		o.values = make(map[string]string)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = strings.TrimSpace(value)
}

// Get returns the value for key and whether it was present.
func (o Options) Get(key string) (string, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Value returns the value for key or the empty string.
func (o Options) Value(key string) string {
	return o.values[key]
}

// Keys returns the keys in first-seen order.
func (o Options) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len reports the number of keys.
func (o Options) Len() int {
	return len(o.keys)
}

// Merge returns a copy of o overlaid with other.
func (o Options) Merge(other Options) Options {
	var out Options
	for _, k := range o.keys {
		out.Set(k, o.values[k])
	}
	for _, k := range other.keys {
		out.Set(k, other.values[k])
	}
	return out
}
