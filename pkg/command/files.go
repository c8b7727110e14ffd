package command

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/oneconcern/datatool/pkg/fingerprint"
	"github.com/oneconcern/datatool/pkg/model"
)

const nameCreateFile = "createfile"

// CreateFile inserts a new data file, keyed by its content hash.
//
// The instance carried by the command becomes the first instance of the
// data file when it names a location.
type CreateFile struct {
	stamp
	Entry model.FileInstance
}

// NewCreateFile builds a command creating a data file from an observed instance
func NewCreateFile(entry model.FileInstance) *CreateFile {
	return &CreateFile{stamp: freshStamp(), Entry: entry}
}

func decodeCreateFile(s stamp, payload jsoniter.RawMessage) (Command, error) {
	var entry model.FileInstance
	if err := decodeInto(payload, &entry); err != nil {
		return nil, err
	}
	if entry.Hashsum == "" {
		return nil, fmt.Errorf("missing hashsum")
	}
	if !fingerprint.IsHash(entry.Hashsum) {
		return nil, fmt.Errorf("invalid hashsum %q", entry.Hashsum)
	}
	return &CreateFile{stamp: s, Entry: entry}, nil
}

// ID of the data file created, i.e. its content hash
func (c *CreateFile) ID() string { return c.Entry.Hashsum }

// Name of the command
func (c *CreateFile) Name() string { return nameCreateFile }

// Payload of the command
func (c *CreateFile) Payload() interface{} { return c.Entry }

// Apply the command
func (c *CreateFile) Apply(s *model.Store) error {
	f := model.NewDataFile(c.Entry.Hashsum)
	if c.Entry.Filename != "" {
		f.AddInstance(c.Entry)
	}
	return s.Insert(f)
}

func (c *CreateFile) String() string { return fmt.Sprintf("[Create file %s]", c.Entry.Hashsum) }
