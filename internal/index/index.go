// Package index accumulates the site metadata written next to the rendered
// posts: the post listing plus tag and section lookups.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"
)

// DateLayout is the calendar date format used in the index.
const DateLayout = "2006-01-02"

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Summary describes one published post in the listing.
type Summary struct {
	Ref     string   `json:"ref"`
	Title   string   `json:"title"`
	Preview string   `json:"preview"`
	Date    Date     `json:"date"`
	Section string   `json:"section"`
	Tags    []string `json:"tags"`
}

// Index is the aggregated metadata of one build.
type Index struct {
	Posts       []Summary           `json:"posts"`
	TagRefs     map[string][]string `json:"tagRefs"`
	SectionRefs map[string][]string `json:"sectionRefs"`
}

// New returns an empty index. Its collections serialize as [] and {}.
func New() *Index {
	return &Index{
		Posts:       []Summary{},
		TagRefs:     map[string][]string{},
		SectionRefs: map[string][]string{},
	}
}

// AddPost appends s to the listing and files its ref under each tag and its
// section. A ref is recorded at most once per tag and per section.
func (i *Index) AddPost(s Summary) {
	if s.Tags == nil {
		s.Tags = []string{}
	}
	i.Posts = append(i.Posts, s)
	for _, tag := range s.Tags {
		i.TagRefs[tag] = appendUnique(i.TagRefs[tag], s.Ref)
	}
	i.SectionRefs[s.Section] = appendUnique(i.SectionRefs[s.Section], s.Ref)
}

func appendUnique(refs []string, ref string) []string {
	if slices.Contains(refs, ref) {
		return refs
	}
	return append(refs, ref)
}

// Sort orders the listing newest first; posts sharing a date are ordered by
// ref ascending.
func (i *Index) Sort() {
	sort.SliceStable(i.Posts, func(a, b int) bool {
		pa, pb := i.Posts[a], i.Posts[b]
		if !pa.Date.Equal(pb.Date.Time) {
			return pa.Date.After(pb.Date.Time)
		}
		return pa.Ref < pb.Ref
	})
}

// Len returns the number of posts in the listing.
func (i *Index) Len() int {
	return len(i.Posts)
}

// WriteFile serializes the index as indented JSON, replacing path atomically.
func (i *Index) WriteFile(path string) error {
	data, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("ensure index directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write temp index: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}

// ReadFile loads an index previously written by WriteFile.
func ReadFile(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	idx := New()
	if err := json.Unmarshal(data, idx); err != nil {
		return nil, fmt.Errorf("decode index %s: %w", path, err)
	}
	return idx, nil
}
