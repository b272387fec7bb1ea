package frontmatter

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/postgen/internal/index"
)

type field struct {
	key   string
	value any
}

func (c Common) commonFields(t Type) []field {
	return []field{
		{"type", string(t)},
		{"date", c.Date},
		{"draft", c.Draft},
	}
}

func (b *Blog) fields() []field {
	return append(b.commonFields(TypeBlog),
		field{"section", b.Section},
		field{"id", b.ID},
		field{"title", b.Title},
		field{"preview", b.Preview},
		field{"tags", b.Tags},
	)
}

func (a *About) fields() []field {
	return a.commonFields(TypeAbout)
}

// Marshal encodes fm as YAML front matter (without delimiters). Keys follow
// the schema order so generated files read naturally.
func Marshal(fm FrontMatter) ([]byte, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fm.fields() {
		val, err := nodeFromAny(f.value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.key, err)
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.key}, val)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func nodeFromAny(v any) (*yaml.Node, error) {
	switch vv := v.(type) {
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: vv}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(vv)}, nil
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(vv)}, nil
	case time.Time:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: vv.Format(index.DateLayout)}, nil
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, item := range vv {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item})
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("unsupported front matter value %T", v)
	}
}
