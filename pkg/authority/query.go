package authority

import (
	"strings"

	"go.uber.org/zap"

	"github.com/oneconcern/datatool/pkg/model"
	"github.com/oneconcern/datatool/pkg/model/status"
)

// FetchDataset finds a single dataset from its name, or from a prefix of its id.
//
// Both comparisons ignore case. It returns nil when nothing matches, and
// ErrAmbiguousLookup when more than one dataset matches.
func (a *Authority) FetchDataset(nameOrID string) (*model.Dataset, error) {
	if nameOrID == "" {
		return nil, nil
	}
	query := strings.ToLower(nameOrID)
	var found []*model.Dataset
	for _, d := range a.store.Datasets() {
		if strings.HasPrefix(strings.ToLower(d.ID), query) || (d.HasName() && strings.EqualFold(d.Name(), nameOrID)) {
			found = append(found, d)
		}
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, status.ErrAmbiguousLookup.Wrapf("%q matches %d datasets", nameOrID, len(found))
	}
}

// FindEntity finds a single dataset or data file from a prefix of its id, or a dataset name.
//
// It returns nil when nothing matches, and ErrAmbiguousLookup when more than one entity matches.
func (a *Authority) FindEntity(query string) (model.Entity, error) {
	if query == "" {
		return nil, nil
	}
	if e, ok := a.store.Get(query); ok {
		return e, nil
	}
	lower := strings.ToLower(query)
	var found []model.Entity
	for _, e := range a.store.Entities() {
		if strings.HasPrefix(strings.ToLower(e.EntityID()), lower) {
			found = append(found, e)
		}
	}
	if len(found) == 0 {
		d, err := a.FetchDataset(query)
		if err != nil || d == nil {
			return nil, err
		}
		return d, nil
	}
	if len(found) > 1 {
		return nil, status.ErrAmbiguousLookup.Wrapf("%q matches %d entities", query, len(found))
	}
	return found[0], nil
}

// Dataset retrieves a dataset by its full id
func (a *Authority) Dataset(id string) (*model.Dataset, error) {
	return a.store.Dataset(id)
}

// File retrieves a data file by its content hash
func (a *Authority) File(hashsum string) (*model.DataFile, error) {
	return a.store.File(hashsum)
}

// Datasets known, in creation order
func (a *Authority) Datasets() []*model.Dataset {
	return a.store.Datasets()
}

// Search returns the datasets carrying all of the given tags
func (a *Authority) Search(tags []string) []*model.Dataset {
	var found []*model.Dataset
	for _, d := range a.store.Datasets() {
		if d.Tags.Contains(tags...) {
			found = append(found, d)
		}
	}
	a.l.Debug("search", zap.Strings("tags", tags), zap.Int("results", len(found)))
	return found
}

// Identify returns the datasets containing a data file
func (a *Authority) Identify(hashsum string) []*model.Dataset {
	var found []*model.Dataset
	for _, d := range a.store.Datasets() {
		if d.HasFile(hashsum) {
			found = append(found, d)
		}
	}
	return found
}
