// Package status declares error constants returned by
// the logline package.
package status

import (
	"github.com/oneconcern/datatool/pkg/errors"
)

var (
	// ErrLogFormat signals a log line which does not follow the log grammar, or carries an invalid JSON payload
	ErrLogFormat = errors.New("malformed log line")

	// ErrAppend indicates a failure when appending lines to a log file
	ErrAppend = errors.New("failed to append to log")

	// ErrRead indicates a failure when reading a log stream
	ErrRead = errors.New("failed to read log")
)
