package index

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/oneconcern/datatool/pkg/fingerprint"
	"github.com/oneconcern/datatool/pkg/index/status"
	"github.com/oneconcern/datatool/pkg/logline"
	"github.com/oneconcern/datatool/pkg/model"
)

// index lines: <date> <hashsum> <mtime> <size> <path>
var reIndexLine = regexp.MustCompile(`^\s*(\S+)\s+(\w+)\s+(\S+)\s+(\w+)\s+(.*)$`)

// record is a file observation, with the date it was indexed on
type record struct {
	indexed time.Time
	model.FileInstance
}

func parseRecord(num int, text string) (record, error) {
	groups := reIndexLine.FindStringSubmatch(strings.TrimRight(text, "\r\n"))
	if groups == nil {
		return record{}, status.ErrIndexFormat.Wrapf("could not read line %d", num)
	}
	indexed, err := parseDate(groups[1])
	if err != nil {
		return record{}, status.ErrIndexFormat.Wrapf("invalid date on line %d: %v", num, err)
	}
	if !fingerprint.IsHash(groups[2]) {
		return record{}, status.ErrIndexFormat.Wrapf("invalid content hash on line %d: %q", num, groups[2])
	}
	mtime, err := strconv.ParseFloat(groups[3], 64)
	if err != nil {
		return record{}, status.ErrIndexFormat.Wrapf("invalid modification time on line %d: %v", num, err)
	}
	size, err := strconv.ParseInt(groups[4], 10, 64)
	if err != nil {
		return record{}, status.ErrIndexFormat.Wrapf("invalid size on line %d: %v", num, err)
	}
	if groups[5] == "" {
		return record{}, status.ErrIndexFormat.Wrapf("missing path on line %d", num)
	}
	return record{
		indexed: indexed,
		FileInstance: model.FileInstance{
			Filename:  groups[5],
			Hashsum:   groups[2],
			Size:      size,
			Timestamp: mtime,
		},
	}, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(logline.TimeLayout, value); err == nil {
		return t.UTC(), nil
	}
	return dateparse.ParseIn(value, time.UTC)
}

func (r record) String() string {
	return fmt.Sprintf("%s %s %s %d %s\n",
		logline.FormatTime(r.indexed),
		r.Hashsum,
		strconv.FormatFloat(r.Timestamp, 'f', -1, 64),
		r.Size,
		r.Filename,
	)
}
