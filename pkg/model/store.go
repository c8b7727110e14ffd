package model

import (
	"github.com/oneconcern/datatool/pkg/model/status"
)

// Store holds datasets and data files in a single identity namespace.
//
// The typed views are kept in lockstep with the namespace: every
// mutation goes through Insert or Remove.
type Store struct {
	entries  map[string]Entity
	datasets map[string]*Dataset
	files    map[string]*DataFile
	order    []string
}

// NewStore builds an empty store
func NewStore() *Store {
	return &Store{
		entries:  make(map[string]Entity),
		datasets: make(map[string]*Dataset),
		files:    make(map[string]*DataFile),
	}
}

// Get an entity by id
func (s *Store) Get(id string) (Entity, bool) {
	e, ok := s.entries[id]
	return e, ok
}

// Has tells if an id is in use
func (s *Store) Has(id string) bool {
	_, ok := s.entries[id]
	return ok
}

// Insert a new entity. The id must not be in use.
func (s *Store) Insert(e Entity) error {
	id := e.EntityID()
	if s.Has(id) {
		return status.ErrDuplicateID.Wrapf("%s %q", e.Kind(), id)
	}
	switch v := e.(type) {
	case *Dataset:
		s.datasets[id] = v
	case *DataFile:
		s.files[id] = v
	}
	s.entries[id] = e
	s.order = append(s.order, id)
	return nil
}

// Remove an entity. Removing an unknown id does nothing.
func (s *Store) Remove(id string) {
	if !s.Has(id) {
		return
	}
	delete(s.entries, id)
	delete(s.datasets, id)
	delete(s.files, id)
	for i, known := range s.order {
		if known == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Entity retrieves an entity which must exist
func (s *Store) Entity(id string) (Entity, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, status.ErrUnknownEntity.Wrapf("%q", id)
	}
	return e, nil
}

// Dataset retrieves a dataset which must exist
func (s *Store) Dataset(id string) (*Dataset, error) {
	if d, ok := s.datasets[id]; ok {
		return d, nil
	}
	if s.Has(id) {
		return nil, status.ErrNotADataset.Wrapf("%q", id)
	}
	return nil, status.ErrUnknownEntity.Wrapf("dataset %q", id)
}

// File retrieves a data file which must exist
func (s *Store) File(id string) (*DataFile, error) {
	if f, ok := s.files[id]; ok {
		return f, nil
	}
	if s.Has(id) {
		return nil, status.ErrNotAFile.Wrapf("%q", id)
	}
	return nil, status.ErrUnknownEntity.Wrapf("file %q", id)
}

// HasFile tells if a data file with this content hash is known
func (s *Store) HasFile(id string) bool {
	_, ok := s.files[id]
	return ok
}

// Datasets in insertion order
func (s *Store) Datasets() []*Dataset {
	res := make([]*Dataset, 0, len(s.datasets))
	for _, id := range s.order {
		if d, ok := s.datasets[id]; ok {
			res = append(res, d)
		}
	}
	return res
}

// Files in insertion order
func (s *Store) Files() []*DataFile {
	res := make([]*DataFile, 0, len(s.files))
	for _, id := range s.order {
		if f, ok := s.files[id]; ok {
			res = append(res, f)
		}
	}
	return res
}

// Entities in insertion order
func (s *Store) Entities() []Entity {
	res := make([]Entity, 0, len(s.order))
	for _, id := range s.order {
		res = append(res, s.entries[id])
	}
	return res
}

// Len is the number of entities in the store
func (s *Store) Len() int {
	return len(s.entries)
}
