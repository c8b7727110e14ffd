package logline

import (
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/oneconcern/datatool/pkg/logline/status"
)

// Append writes lines at the end of a log file, creating it if needed.
//
// When the file does not end with a newline, one is written first so the
// new lines never run into the last existing one.
func Append(fs afero.Fs, path string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	needsNewline, err := missingTrailingNewline(fs, path)
	if err != nil {
		return status.ErrAppend.Wrap(err)
	}

	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return status.ErrAppend.Wrap(err)
	}
	w := io.Writer(f)
	if needsNewline {
		if _, err = io.WriteString(w, "\n"); err != nil {
			_ = f.Close()
			return status.ErrAppend.Wrap(err)
		}
	}
	for _, line := range lines {
		if _, err = io.WriteString(w, line); err != nil {
			_ = f.Close()
			return status.ErrAppend.Wrap(err)
		}
	}
	if err = f.Close(); err != nil {
		return status.ErrAppend.Wrap(err)
	}
	return nil
}

func missingTrailingNewline(fs afero.Fs, path string) (bool, error) {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return false, err
	}
	if fi.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err = f.ReadAt(last, fi.Size()-1); err != nil && err != io.EOF {
		return false, err
	}
	return last[0] != '\n', nil
}
