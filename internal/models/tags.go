package models

import (
	"strings"
)

const tagSeparator = ","

// Tags is a set of tag names. It keeps members in the order they were first
// added so that encoding is deterministic and reproduces the source string
// whenever that string held no duplicates.
type Tags struct {
	members []string
	seen    map[string]struct{}
}

// ParseTags splits s on commas. Duplicate segments collapse.
// An empty s yields a set holding the empty tag, matching how exported
// documents have always been read.
func ParseTags(s string) Tags {
	return NewTags(strings.Split(s, tagSeparator)...)
}

// NewTags builds a set from members. Members must not contain a comma.
func NewTags(members ...string) Tags {
	t := Tags{seen: make(map[string]struct{}, len(members))}
	for _, m := range members {
		if _, ok := t.seen[m]; ok {
			continue
		}
		t.seen[m] = struct{}{}
		t.members = append(t.members, m)
	}
	return t
}

// Len returns the number of distinct tags.
func (t Tags) Len() int {
	return len(t.members)
}

// Has reports whether tag is a member.
func (t Tags) Has(tag string) bool {
	_, ok := t.seen[tag]
	return ok
}

// Members returns a copy of the tags in first-insertion order.
func (t Tags) Members() []string {
	out := make([]string, len(t.members))
	copy(out, t.members)
	return out
}

// String returns the wire form: members joined by commas.
func (t Tags) String() string {
	return strings.Join(t.members, tagSeparator)
}

// MarshalJSON implements the json.Marshaler interface.
func (t Tags) MarshalJSON() ([]byte, error) {
	return api.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Tags) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	s, err := parseString("", "", data)
	if err != nil {
		return err
	}
	*t = ParseTags(s)
	return nil
}
