// Package status declares error constants returned by
// the index package.
package status

import (
	"github.com/oneconcern/datatool/pkg/errors"
)

var (
	// ErrIndexFormat signals an index line which does not follow the index grammar
	ErrIndexFormat = errors.New("malformed index line")

	// ErrIndexLoad indicates a failure when reading an index log
	ErrIndexLoad = errors.New("failed to load index")

	// ErrIndexWrite indicates a failure when appending observations to an index log
	ErrIndexWrite = errors.New("failed to write index")

	// ErrNotRegular signals a path which cannot be indexed, since it is not a regular file
	ErrNotRegular = errors.New("not a regular file")

	// ErrHash indicates a failure when computing the content hash of a file
	ErrHash = errors.New("failed to hash file")
)
