// Package status declares error constants returned by
// the command package.
package status

import (
	"github.com/oneconcern/datatool/pkg/errors"
)

var (
	// ErrUnknownCommand signals a command name which is not part of the command set
	ErrUnknownCommand = errors.New("unknown command")

	// ErrTimestampFormat signals a command timestamp which cannot be parsed
	ErrTimestampFormat = errors.New("invalid command timestamp")

	// ErrPayload signals a command payload which does not fit the command
	ErrPayload = errors.New("invalid command payload")
)
