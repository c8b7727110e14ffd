// Package status declares error constants returned by
// the model package and the packages querying it.
package status

import (
	"github.com/oneconcern/datatool/pkg/errors"
)

var (
	// ErrDuplicateID signals an attempt to insert an entity with an id already in use
	ErrDuplicateID = errors.New("duplicate entity id")

	// ErrUnknownEntity signals a reference to an entity which does not exist
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrNotADataset signals that an entity was expected to be a dataset
	ErrNotADataset = errors.New("entity is not a dataset")

	// ErrNotAFile signals that an entity was expected to be a data file
	ErrNotAFile = errors.New("entity is not a data file")

	// ErrAmbiguousLookup indicates that a name, path or prefix matches more than one entity
	ErrAmbiguousLookup = errors.New("ambiguous lookup")

	// ErrNoMatch indicates that a lookup expecting exactly one result found none
	ErrNoMatch = errors.New("no match")

	// ErrMissingInstance indicates that no instance of a data file can be found on disk
	ErrMissingInstance = errors.New("missing data file instance")
)
