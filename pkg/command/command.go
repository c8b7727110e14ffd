// Package command defines the mutations recorded in the authority log.
//
// Commands are immutable once built. A command is either fresh, and stamped
// with its creation time, or read back from a log line with its recorded time.
// Applying a command mutates a model.Store and may fail, for instance when
// the command references an unknown entity.
package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	jsoniter "github.com/json-iterator/go"

	"github.com/oneconcern/datatool/pkg/command/status"
	"github.com/oneconcern/datatool/pkg/logline"
	"github.com/oneconcern/datatool/pkg/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Now is the clock used to stamp fresh commands
var Now = func() time.Time { return time.Now().UTC() }

// Command is a timestamped, serializable mutation of a model.Store
type Command interface {
	// Name is the tag of this command in the log
	Name() string
	Timestamp() time.Time
	// Payload is the JSON-serializable content of this command
	Payload() interface{}
	Apply(*model.Store) error
	fmt.Stringer
}

type stamp struct {
	ts time.Time
}

func (s stamp) Timestamp() time.Time { return s.ts }

func freshStamp() stamp {
	return stamp{ts: Now()}
}

type decoder func(stamp, jsoniter.RawMessage) (Command, error)

// commands maps command names to their decoder. The table is closed.
var commands = map[string]decoder{
	nameCreateSet:          decodeCreateSet,
	nameCreateFile:         decodeCreateFile,
	nameAddFilesToSet:      decodeAddFilesToSet,
	nameRemoveFilesFromSet: decodeRemoveFilesFromSet,
	"rmfilesfromset":       decodeRemoveFilesFromSet,
	nameAddTags:            decodeAddTags,
	nameRemoveTags:         decodeRemoveTags,
	nameSetProperty:        decodeSetProperty,
	nameDeleteSet:          decodeDeleteSet,
}

// Names of the known commands, as written in logs
func Names() []string {
	return []string{
		nameCreateSet, nameCreateFile, nameAddFilesToSet, nameRemoveFilesFromSet,
		nameAddTags, nameRemoveTags, nameSetProperty, nameDeleteSet,
	}
}

// Decode builds a command from its name, recorded timestamp and payload
func Decode(name, timestamp string, payload []byte) (Command, error) {
	dec, ok := commands[strings.ToLower(name)]
	if !ok {
		return nil, status.ErrUnknownCommand.Wrapf("%q", name)
	}
	ts, err := ParseTimestamp(timestamp)
	if err != nil {
		return nil, err
	}
	cmd, err := dec(stamp{ts: ts}, payload)
	if err != nil {
		return nil, status.ErrPayload.Wrapf("%s: %v", name, err)
	}
	return cmd, nil
}

// FromLine builds a command from a parsed log line
func FromLine(line logline.Line) (Command, error) {
	cmd, err := Decode(line.Name, line.Timestamp, line.Payload)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", line.Num, err)
	}
	return cmd, nil
}

// Format renders a command as a log line
func Format(cmd Command) (string, error) {
	return logline.Format(cmd.Timestamp(), cmd.Name(), cmd.Payload())
}

// ParseTimestamp reads a recorded command timestamp.
//
// ISO-8601 timestamps as well as looser date formats are accepted.
// Timestamps without a time zone are UTC.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(logline.TimeLayout, value); err == nil {
		return t.UTC(), nil
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, status.ErrTimestampFormat.Wrapf("%q", value)
	}
	return t.UTC(), nil
}

func decodeInto(payload jsoniter.RawMessage, target interface{}) error {
	if len(payload) == 0 {
		return fmt.Errorf("empty payload")
	}
	return json.Unmarshal(payload, target)
}
