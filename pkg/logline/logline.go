// Package logline reads and writes the lines of an append-only command log.
//
// Each line carries a timestamp, a command name and a JSON payload:
//
//	2014-01-01T00:00:00Z createset {"id":"f3a1..."}
//
// Blank lines and lines starting with '#' are comments.
package logline

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/oneconcern/datatool/pkg/logline/status"
)

// TimeLayout is the layout used to render timestamps when writing a log
const TimeLayout = time.RFC3339Nano

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	reLineHeader = regexp.MustCompile(`^\s*(\S+)\s+(\w+)\s+(.*)$`)
)

// Line is a parsed log line
type Line struct {
	Num       int
	Timestamp string
	Name      string
	Payload   jsoniter.RawMessage
}

// IsComment tells if a line carries no command
func IsComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// Parse a single log line. num is the 1-based line number, reported in errors.
//
// The boolean result is false when the line is a comment.
func Parse(num int, line string) (Line, bool, error) {
	if IsComment(line) {
		return Line{}, false, nil
	}
	groups := reLineHeader.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if groups == nil {
		return Line{}, false, status.ErrLogFormat.Wrapf("could not read line %d", num)
	}
	payload, err := decodePayload(groups[3])
	if err != nil {
		return Line{}, false, status.ErrLogFormat.Wrapf("invalid payload on line %d: %v", num, err)
	}
	return Line{
		Num:       num,
		Timestamp: groups[1],
		Name:      groups[2],
		Payload:   payload,
	}, true, nil
}

// decodePayload reads the first JSON value in raw and ignores whatever trails it.
//
// Values which are not JSON objects are wrapped as {"data": value}.
func decodePayload(raw string) (jsoniter.RawMessage, error) {
	var value jsoniter.RawMessage
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	value = bytes.TrimSpace(value)
	if len(value) > 0 && value[0] == '{' {
		return value, nil
	}
	return json.Marshal(map[string]jsoniter.RawMessage{"data": value})
}

// Format renders a log line, terminated by a newline
func Format(t time.Time, name string, payload interface{}) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(FormatTime(t))
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteByte(' ')
	sb.Write(b)
	sb.WriteByte('\n')
	return sb.String(), nil
}

// FormatTime renders a timestamp the way it is written to logs
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ReadAll parses all the command lines from a log stream, skipping comments
func ReadAll(r io.Reader) ([]Line, error) {
	var lines []Line
	err := Scan(r, func(num int, text string) error {
		line, ok, err := Parse(num, text)
		if err != nil {
			return err
		}
		if ok {
			lines = append(lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Scan feeds each raw line of a stream to a callback, with its 1-based line number.
//
// Lines are not limited in length.
func Scan(r io.Reader, fn func(num int, text string) error) error {
	rdr := bufio.NewReader(r)
	for num := 1; ; num++ {
		text, err := rdr.ReadString('\n')
		if err != nil && err != io.EOF {
			return status.ErrRead.Wrap(err)
		}
		if text == "" && err == io.EOF {
			return nil
		}
		if e := fn(num, text); e != nil {
			return e
		}
		if err == io.EOF {
			return nil
		}
	}
}
