package command

import (
	"fmt"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/oneconcern/datatool/pkg/model"
)

const (
	nameAddTags     = "addtags"
	nameRemoveTags  = "removetags"
	nameSetProperty = "setproperty"
)

type tagsPayload struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
}

// legacyTagsPayload is the shape of tag commands in older logs
type legacyTagsPayload struct {
	ID   string   `json:"id"`
	Set  string   `json:"set"`
	Tags []string `json:"tags"`
}

func decodeTags(payload jsoniter.RawMessage) (string, []string, error) {
	var p legacyTagsPayload
	if err := decodeInto(payload, &p); err != nil {
		return "", nil, err
	}
	id := p.ID
	if id == "" {
		id = p.Set
	}
	return id, normalizeTags(p.Tags), nil
}

// normalizeTags sorts and dedupes tags, so that commands serialize deterministically
func normalizeTags(tags []string) []string {
	res := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		res = append(res, tag)
	}
	sort.Strings(res)
	return res
}

// AddTags adds tags to any entity
type AddTags struct {
	stamp
	ID   string
	Tags []string
}

// NewAddTags builds a command adding tags to an entity
func NewAddTags(id string, tags []string) *AddTags {
	return &AddTags{stamp: freshStamp(), ID: id, Tags: normalizeTags(tags)}
}

func decodeAddTags(s stamp, payload jsoniter.RawMessage) (Command, error) {
	id, tags, err := decodeTags(payload)
	if err != nil {
		return nil, err
	}
	return &AddTags{stamp: s, ID: id, Tags: tags}, nil
}

// Name of the command
func (c *AddTags) Name() string { return nameAddTags }

// Payload of the command
func (c *AddTags) Payload() interface{} { return tagsPayload{ID: c.ID, Tags: nonNil(c.Tags)} }

// Apply the command
func (c *AddTags) Apply(s *model.Store) error {
	e, err := s.Entity(c.ID)
	if err != nil {
		return err
	}
	e.Metadata().Tags.Add(c.Tags...)
	return nil
}

func (c *AddTags) String() string {
	return fmt.Sprintf("[Add tags {%s} to %s]", strings.Join(c.Tags, ", "), c.ID)
}

// RemoveTags removes tags from any entity
type RemoveTags struct {
	stamp
	ID   string
	Tags []string
}

// NewRemoveTags builds a command removing tags from an entity
func NewRemoveTags(id string, tags []string) *RemoveTags {
	return &RemoveTags{stamp: freshStamp(), ID: id, Tags: normalizeTags(tags)}
}

func decodeRemoveTags(s stamp, payload jsoniter.RawMessage) (Command, error) {
	id, tags, err := decodeTags(payload)
	if err != nil {
		return nil, err
	}
	return &RemoveTags{stamp: s, ID: id, Tags: tags}, nil
}

// Name of the command
func (c *RemoveTags) Name() string { return nameRemoveTags }

// Payload of the command
func (c *RemoveTags) Payload() interface{} { return tagsPayload{ID: c.ID, Tags: nonNil(c.Tags)} }

// Apply the command
func (c *RemoveTags) Apply(s *model.Store) error {
	e, err := s.Entity(c.ID)
	if err != nil {
		return err
	}
	e.Metadata().Tags.Remove(c.Tags...)
	return nil
}

func (c *RemoveTags) String() string {
	return fmt.Sprintf("[Remove tags {%s} from %s]", strings.Join(c.Tags, ", "), c.ID)
}

type propertyPayload struct {
	ID       string      `json:"id"`
	Property string      `json:"property"`
	Value    interface{} `json:"value"`
}

// SetProperty sets a property on any entity
type SetProperty struct {
	stamp
	ID       string
	Property string
	Value    interface{}
}

// NewSetProperty builds a command setting a property on an entity. The value is any JSON value.
func NewSetProperty(id, property string, value interface{}) *SetProperty {
	return &SetProperty{stamp: freshStamp(), ID: id, Property: property, Value: asJSONValue(value)}
}

// asJSONValue gives a value the shape it has once read back from a log
func asJSONValue(value interface{}) interface{} {
	switch value.(type) {
	case nil, string, bool, float64:
		return value
	}
	b, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var decoded interface{}
	if err = json.Unmarshal(b, &decoded); err != nil {
		return value
	}
	return decoded
}

func decodeSetProperty(s stamp, payload jsoniter.RawMessage) (Command, error) {
	var p propertyPayload
	if err := decodeInto(payload, &p); err != nil {
		return nil, err
	}
	if p.Property == "" {
		return nil, fmt.Errorf("missing property")
	}
	return &SetProperty{stamp: s, ID: p.ID, Property: p.Property, Value: p.Value}, nil
}

// Name of the command
func (c *SetProperty) Name() string { return nameSetProperty }

// Payload of the command
func (c *SetProperty) Payload() interface{} {
	return propertyPayload{ID: c.ID, Property: c.Property, Value: c.Value}
}

// Apply the command
func (c *SetProperty) Apply(s *model.Store) error {
	e, err := s.Entity(c.ID)
	if err != nil {
		return err
	}
	e.Metadata().Attrs[c.Property] = c.Value
	return nil
}

func (c *SetProperty) String() string {
	return fmt.Sprintf("[Set %s.%s to %v]", c.ID, c.Property, c.Value)
}
