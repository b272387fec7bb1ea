package directive

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"golang.org/x/net/html"
)

// Sentinel delimits configuration payloads smuggled through the markdown
// parser. It starts with a character that has no markdown meaning so the
// inline parser can trigger on it, and is long enough never to occur in prose.
const Sentinel = "%%zQ7pCfgX3k9vTnW2%%"

var trailingConfig = regexp.MustCompile(`\A\s*` + regexp.QuoteMeta(Sentinel) + `(.*?)` + regexp.QuoteMeta(Sentinel))

// OptionsGroup is the capture group name whose text is parsed as Options.
const OptionsGroup = "options"

var (
	ErrInvalidDirective   = errors.New("invalid directive")
	ErrDuplicateDirective = errors.New("directive already registered")
)

// RenderFunc builds the HTML fragment for one directive occurrence.
type RenderFunc func(m Match) *html.Node

// Directive is one pluggable inline syntax extension.
type Directive struct {
	// Name identifies the directive in the registry and in logs.
	Name string
	// Pattern is matched at the position of the directive's leading sigil and
	// may span lines within a paragraph. A group named "options" is parsed
	// with ParseOptions.
	Pattern string
	Render  RenderFunc

	re           *regexp.Regexp
	prefix       []byte
	optionsIndex int
}

// Match is one directive occurrence handed to a RenderFunc.
type Match struct {
	Text    string
	Groups  []string
	Options Options
	names   []string
}

// Group returns the text captured by the named group, or "".
func (m Match) Group(name string) string {
	for i, n := range m.names {
		if n == name && i < len(m.Groups) {
			return m.Groups[i]
		}
	}
	return ""
}

func (d *Directive) compile() error {
	if d.Name == "" || d.Render == nil {
		return fmt.Errorf("%w: name and render func are required", ErrInvalidDirective)
	}
	unanchored, err := regexp.Compile(d.Pattern)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidDirective, d.Name, err)
	}
	prefix, _ := unanchored.LiteralPrefix()
	if prefix == "" {
		return fmt.Errorf("%w %q: pattern must start with a literal sigil", ErrInvalidDirective, d.Name)
	}
	d.re = regexp.MustCompile(`\A(?:` + d.Pattern + `)`)
	d.prefix = []byte(prefix)
	d.optionsIndex = d.re.SubexpIndex(OptionsGroup)
	return nil
}

// Trigger returns the first byte of the directive's literal prefix.
func (d *Directive) Trigger() byte {
	return d.prefix[0]
}

// Match tries the directive at the start of src, followed by an optional
// sentinel-delimited configuration payload. It returns the match and the
// number of bytes consumed.
func (d *Directive) Match(src []byte) (Match, int, bool) {
	loc := d.re.FindSubmatchIndex(src)
	if loc == nil {
		return Match{}, 0, false
	}

	m := Match{
		Groups: make([]string, len(loc)/2),
		names:  d.re.SubexpNames(),
	}
	for i := range m.Groups {
		if loc[2*i] >= 0 {
			m.Groups[i] = string(src[loc[2*i]:loc[2*i+1]])
		}
	}
	if d.optionsIndex > 0 {
		m.Options = ParseOptions(m.Groups[d.optionsIndex])
	}

	end := loc[1]
	if t := trailingConfig.FindSubmatchIndex(src[end:]); t != nil {
		m.Options = m.Options.Merge(ParseOptions(string(src[end+t[2] : end+t[3]])))
		end += t[1]
	}
	m.Text = string(src[:end])
	return m, end, true
}

// Registry holds the directives known to a markup engine.
type Registry struct {
	byName map[string]*Directive
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Directive)}
}

// Register compiles d and adds it. Names must be unique.
func (r *Registry) Register(d Directive) error {
	if err := d.compile(); err != nil {
		return err
	}
	if _, ok := r.byName[d.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDirective, d.Name)
	}
	r.byName[d.Name] = &d
	return nil
}

// MustRegister is Register for package-level setup; it panics on error.
func (r *Registry) MustRegister(d Directive) *Registry {
	if err := r.Register(d); err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the directive registered under name.
func (r *Registry) Lookup(name string) (*Directive, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// List returns the directives sorted by name.
func (r *Registry) List() []*Directive {
	items := make([]*Directive, 0, len(r.byName))
	for _, d := range r.byName {
		items = append(items, d)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

// Defaults returns a registry holding the image, note, tldr and quote directives.
func Defaults() *Registry {
	return NewRegistry().
		MustRegister(Image()).
		MustRegister(Note()).
		MustRegister(TLDR()).
		MustRegister(Quote())
}
