package command

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/oneconcern/datatool/pkg/model"
	"github.com/oneconcern/datatool/pkg/model/status"
)

const (
	nameCreateSet          = "createset"
	nameDeleteSet          = "deleteset"
	nameAddFilesToSet      = "addfilestoset"
	nameRemoveFilesFromSet = "removefilesfromset"
)

// NewSetID generates a random dataset id: 128 bits rendered as hex
func NewSetID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// CreateSet inserts a new, empty dataset
type CreateSet struct {
	stamp
	ID string
}

// NewCreateSet builds a command creating a dataset. An empty id gets a random one.
func NewCreateSet(id string) *CreateSet {
	if id == "" {
		id = NewSetID()
	}
	return &CreateSet{stamp: freshStamp(), ID: id}
}

type idPayload struct {
	ID string `json:"id"`
}

func decodeCreateSet(s stamp, payload jsoniter.RawMessage) (Command, error) {
	var p idPayload
	if err := decodeInto(payload, &p); err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, fmt.Errorf("missing id")
	}
	return &CreateSet{stamp: s, ID: p.ID}, nil
}

// Name of the command
func (c *CreateSet) Name() string { return nameCreateSet }

// Payload of the command
func (c *CreateSet) Payload() interface{} { return idPayload{ID: c.ID} }

// Apply the command
func (c *CreateSet) Apply(s *model.Store) error {
	return s.Insert(model.NewDataset(c.ID))
}

func (c *CreateSet) String() string { return fmt.Sprintf("[Create set %s]", c.ID) }

// DeleteSet removes a dataset. Its files remain known.
type DeleteSet struct {
	stamp
	ID string
}

// NewDeleteSet builds a command deleting a dataset
func NewDeleteSet(id string) *DeleteSet {
	return &DeleteSet{stamp: freshStamp(), ID: id}
}

func decodeDeleteSet(s stamp, payload jsoniter.RawMessage) (Command, error) {
	var p idPayload
	if err := decodeInto(payload, &p); err != nil {
		return nil, err
	}
	return &DeleteSet{stamp: s, ID: p.ID}, nil
}

// Name of the command
func (c *DeleteSet) Name() string { return nameDeleteSet }

// Payload of the command
func (c *DeleteSet) Payload() interface{} { return idPayload{ID: c.ID} }

// Apply the command
func (c *DeleteSet) Apply(s *model.Store) error {
	if _, err := s.Dataset(c.ID); err != nil {
		return err
	}
	s.Remove(c.ID)
	return nil
}

func (c *DeleteSet) String() string { return fmt.Sprintf("[Delete set %s]", c.ID) }

type setFilesPayload struct {
	Set   string   `json:"set"`
	Files []string `json:"files"`
}

// AddFilesToSet appends known data files to a dataset, in order
type AddFilesToSet struct {
	stamp
	Set   string
	Files []string
}

// NewAddFilesToSet builds a command adding files, by content hash, to a dataset
func NewAddFilesToSet(set string, files []string) *AddFilesToSet {
	return &AddFilesToSet{stamp: freshStamp(), Set: set, Files: append([]string(nil), files...)}
}

func decodeAddFilesToSet(s stamp, payload jsoniter.RawMessage) (Command, error) {
	var p setFilesPayload
	if err := decodeInto(payload, &p); err != nil {
		return nil, err
	}
	return &AddFilesToSet{stamp: s, Set: p.Set, Files: p.Files}, nil
}

// Name of the command
func (c *AddFilesToSet) Name() string { return nameAddFilesToSet }

// Payload of the command
func (c *AddFilesToSet) Payload() interface{} {
	return setFilesPayload{Set: c.Set, Files: nonNil(c.Files)}
}

// Apply the command. All files must be known before the dataset is altered.
func (c *AddFilesToSet) Apply(s *model.Store) error {
	dataset, err := s.Dataset(c.Set)
	if err != nil {
		return err
	}
	files := make([]*model.DataFile, 0, len(c.Files))
	for _, id := range c.Files {
		f, err := s.File(id)
		if err != nil {
			return status.ErrUnknownEntity.Wrapf("cannot add file %q to set %q", id, c.Set)
		}
		files = append(files, f)
	}
	dataset.AddFiles(files...)
	return nil
}

func (c *AddFilesToSet) String() string {
	return fmt.Sprintf("[Add %d files to %s]", len(c.Files), c.Set)
}

// RemoveFilesFromSet removes data files from a dataset
type RemoveFilesFromSet struct {
	stamp
	Set   string
	Files []string
}

// NewRemoveFilesFromSet builds a command removing files, by content hash, from a dataset
func NewRemoveFilesFromSet(set string, files []string) *RemoveFilesFromSet {
	return &RemoveFilesFromSet{stamp: freshStamp(), Set: set, Files: append([]string(nil), files...)}
}

func decodeRemoveFilesFromSet(s stamp, payload jsoniter.RawMessage) (Command, error) {
	var p setFilesPayload
	if err := decodeInto(payload, &p); err != nil {
		return nil, err
	}
	return &RemoveFilesFromSet{stamp: s, Set: p.Set, Files: p.Files}, nil
}

// Name of the command
func (c *RemoveFilesFromSet) Name() string { return nameRemoveFilesFromSet }

// Payload of the command
func (c *RemoveFilesFromSet) Payload() interface{} {
	return setFilesPayload{Set: c.Set, Files: nonNil(c.Files)}
}

// Apply the command. Files which are not in the dataset are ignored.
func (c *RemoveFilesFromSet) Apply(s *model.Store) error {
	dataset, err := s.Dataset(c.Set)
	if err != nil {
		return err
	}
	dataset.RemoveFiles(c.Files...)
	return nil
}

func (c *RemoveFilesFromSet) String() string {
	return fmt.Sprintf("[Remove %d files from %s]", len(c.Files), c.Set)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
