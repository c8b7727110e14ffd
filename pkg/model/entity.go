package model

import (
	"sort"
	"strings"
)

// Kind of entity
type Kind uint8

// Kinds of entities
const (
	KindDataset Kind = iota + 1
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDataset:
		return "dataset"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Entity is either a *Dataset or a *DataFile.
//
// The set of implementations is closed.
type Entity interface {
	EntityID() string
	Kind() Kind
	Metadata() *Meta

	isEntity()
}

// Meta holds the tags and properties shared by all entities
type Meta struct {
	Tags  TagSet
	Attrs Attrs
}

func newMeta() Meta {
	return Meta{Tags: TagSet{}, Attrs: Attrs{}}
}

// Attrs maps property names to values. Values are any JSON value.
type Attrs map[string]interface{}

// String value of a property, when it is set to a string
func (a Attrs) String(property string) (string, bool) {
	value, ok := a[property].(string)
	return value, ok
}

// NameAttr is the property holding the name of an entity
const NameAttr = "name"

// TagSet is a set of case-preserving tags
type TagSet map[string]struct{}

// NewTagSet builds a tag set
func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	s.Add(tags...)
	return s
}

// Add tags to the set
func (s TagSet) Add(tags ...string) {
	for _, tag := range tags {
		s[tag] = struct{}{}
	}
}

// Remove tags from the set
func (s TagSet) Remove(tags ...string) {
	for _, tag := range tags {
		delete(s, tag)
	}
}

// Has tells if a tag is in the set
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// HasFold tells if a tag is in the set, ignoring case
func (s TagSet) HasFold(tag string) bool {
	if s.Has(tag) {
		return true
	}
	for t := range s {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Contains tells if all the given tags are in the set
func (s TagSet) Contains(tags ...string) bool {
	for _, tag := range tags {
		if !s.Has(tag) {
			return false
		}
	}
	return true
}

// Disjoint tells if none of the given tags are in the set
func (s TagSet) Disjoint(tags ...string) bool {
	for _, tag := range tags {
		if s.Has(tag) {
			return false
		}
	}
	return true
}

// Sorted list of tags
func (s TagSet) Sorted() []string {
	tags := make([]string, 0, len(s))
	for tag := range s {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
