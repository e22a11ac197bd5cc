package model

import (
	"encoding/json"
	"strings"
)

// TagSet is an insertion-ordered set of categorical labels. Adding a tag
// that is already present is a no-op; serialization keeps first-add order.
type TagSet struct {
	tags []string
	seen map[string]struct{}
}

// Add appends tag unless an identical tag is already present.
func (t *TagSet) Add(tag string) {
	if tag == "" {
		return
	}
	if t.seen == nil {
		t.seen = make(map[string]struct{})
	}
	if _, ok := t.seen[tag]; ok {
		return
	}
	t.seen[tag] = struct{}{}
	t.tags = append(t.tags, tag)
}

// Contains reports whether the exact tag is present.
func (t *TagSet) Contains(tag string) bool {
	_, ok := t.seen[tag]
	return ok
}

// All returns the tags in insertion order.
func (t *TagSet) All() []string {
	return t.tags
}

// Len returns the number of distinct tags.
func (t *TagSet) Len() int {
	return len(t.tags)
}

// String serializes the set as a comma-joined string in insertion order,
// the format CRM tag imports expect.
func (t *TagSet) String() string {
	return strings.Join(t.tags, ",")
}

// MarshalJSON serializes the set as a JSON array in insertion order.
func (t TagSet) MarshalJSON() ([]byte, error) {
	if t.tags == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.tags)
}

// UnmarshalJSON rebuilds the set from a JSON array, preserving order.
func (t *TagSet) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}
	*t = TagSet{}
	for _, tag := range tags {
		t.Add(tag)
	}
	return nil
}
