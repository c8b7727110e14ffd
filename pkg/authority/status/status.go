// Package status declares error constants returned by
// the authority package.
package status

import (
	"github.com/oneconcern/datatool/pkg/errors"
)

var (
	// ErrLoad signals that an authority log could not be replayed
	ErrLoad = errors.New("failed to load authority")

	// ErrWrite signals that new commands could not be appended to the authority log
	ErrWrite = errors.New("failed to write authority")

	// ErrNotPersistent indicates an attempt to write an authority which is not backed by a log file
	ErrNotPersistent = errors.New("authority is not backed by a log file")

	// ErrNameCollision indicates that a dataset name is already in use
	ErrNameCollision = errors.New("dataset name already in use")

	// ErrSnapshot signals a malformed deployment snapshot
	ErrSnapshot = errors.New("malformed snapshot")
)
