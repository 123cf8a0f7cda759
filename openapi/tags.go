package openapi

import "sort"

// TagSet is an immutable set of tag names. The zero value is empty.
type TagSet struct {
	m map[string]struct{}
}

// NewTagSet returns a set holding tags.
func NewTagSet(tags ...string) TagSet {
	m := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		m[t] = struct{}{}
	}
	return TagSet{m: m}
}

// With returns a new set holding s and tag. s is left unchanged.
func (s TagSet) With(tag string) TagSet {
	m := make(map[string]struct{}, len(s.m)+1)
	for t := range s.m {
		m[t] = struct{}{}
	}
	m[tag] = struct{}{}
	return TagSet{m: m}
}

// Has reports whether tag is in the set.
func (s TagSet) Has(tag string) bool {
	_, ok := s.m[tag]
	return ok
}

// Len returns the number of tags.
func (s TagSet) Len() int {
	return len(s.m)
}

// Sorted returns the tags in lexical order.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s.m))
	for t := range s.m {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether every tag of other is in s.
func (s TagSet) Contains(other TagSet) bool {
	for t := range other.m {
		if !s.Has(t) {
			return false
		}
	}
	return true
}

// Matches reports whether op belongs to the set: any of its tags is
// included, or it is untagged and untagged is included.
func (s TagSet) Matches(op Operation, untagged string) bool {
	if op.Untagged() {
		return s.Has(untagged)
	}
	for _, t := range op.Tags {
		if s.Has(t) {
			return true
		}
	}
	return false
}
