package authority

import (
	"reflect"

	"github.com/oneconcern/datatool/pkg/authority/status"
	"github.com/oneconcern/datatool/pkg/command"
	"github.com/oneconcern/datatool/pkg/model"
)

// CreateSet creates a dataset and returns its id.
//
// A non-empty name must not be used by any other dataset.
func (a *Authority) CreateSet(name string) (string, error) {
	if name != "" && a.nameTaken(name, "") {
		return "", status.ErrNameCollision.Wrapf("%q", name)
	}
	create := command.NewCreateSet("")
	if err := a.apply(create); err != nil {
		return "", err
	}
	if name != "" {
		if err := a.apply(command.NewSetProperty(create.ID, model.NameAttr, name)); err != nil {
			return "", err
		}
	}
	return create.ID, nil
}

// DeleteSet deletes a dataset. Its files remain known.
func (a *Authority) DeleteSet(id string) error {
	return a.apply(command.NewDeleteSet(id))
}

// RenameSet names or renames a dataset
func (a *Authority) RenameSet(id, name string) error {
	d, err := a.store.Dataset(id)
	if err != nil {
		return err
	}
	if d.HasName() && d.Name() == name {
		return nil
	}
	if a.nameTaken(name, id) {
		return status.ErrNameCollision.Wrapf("%q", name)
	}
	return a.apply(command.NewSetProperty(id, model.NameAttr, name))
}

// AddFiles adds file instances to a dataset.
//
// Data files are created for content not seen before, then all the files
// are added to the dataset in a single command.
func (a *Authority) AddFiles(setID string, entries []model.FileInstance) error {
	if _, err := a.store.Dataset(setID); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	hashes := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !a.store.HasFile(entry.Hashsum) {
			if err := a.apply(command.NewCreateFile(entry)); err != nil {
				return err
			}
		}
		hashes = append(hashes, entry.Hashsum)
	}
	return a.apply(command.NewAddFilesToSet(setID, hashes))
}

// RemoveFiles removes files, by content hash, from a dataset
func (a *Authority) RemoveFiles(setID string, hashes []string) error {
	if len(hashes) == 0 {
		_, err := a.store.Dataset(setID)
		return err
	}
	return a.apply(command.NewRemoveFilesFromSet(setID, hashes))
}

// AddTags tags a dataset or a data file. Nothing is recorded when the entity already has all the tags.
func (a *Authority) AddTags(id string, tags []string) error {
	e, err := a.store.Entity(id)
	if err != nil {
		return err
	}
	if e.Metadata().Tags.Contains(tags...) {
		return nil
	}
	return a.apply(command.NewAddTags(id, tags))
}

// RemoveTags untags a dataset or a data file. Nothing is recorded when the entity has none of the tags.
func (a *Authority) RemoveTags(id string, tags []string) error {
	e, err := a.store.Entity(id)
	if err != nil {
		return err
	}
	if e.Metadata().Tags.Disjoint(tags...) {
		return nil
	}
	return a.apply(command.NewRemoveTags(id, tags))
}

// SetProperty sets a property on a dataset or a data file.
//
// Names of datasets should be set with CreateSet or RenameSet, which check for collisions.
func (a *Authority) SetProperty(id, property string, value interface{}) error {
	e, err := a.store.Entity(id)
	if err != nil {
		return err
	}
	cmd := command.NewSetProperty(id, property, value)
	if current, ok := e.Metadata().Attrs[property]; ok && reflect.DeepEqual(current, cmd.Value) {
		return nil
	}
	return a.apply(cmd)
}

// datasetNamed finds the dataset carrying exactly this name
func (a *Authority) datasetNamed(name string) *model.Dataset {
	for _, d := range a.store.Datasets() {
		if d.HasName() && d.Name() == name {
			return d
		}
	}
	return nil
}

// nameTaken tells if a dataset other than except carries this name
func (a *Authority) nameTaken(name, except string) bool {
	for _, d := range a.store.Datasets() {
		if d.ID != except && d.HasName() && d.Name() == name {
			return true
		}
	}
	return false
}
