package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/oneconcern/datatool/pkg/errors"
)

const (
	authorityFile    = "data.authority"
	defaultAuthority = ".data.authority"
	defaultIndex     = ".data.index"
)

var (
	errNoAuthority = errors.New("no data authority specified. Please set DATA_AUTHORITY or pass in with --authority")
	errNoIndex     = errors.New("no data index specified. Please set DATA_INDEX or pass in with --index")

	// used to patch over the home directory during test
	homeDir = os.UserHomeDir
)

// locateAuthority finds the authority log.
//
// An explicit location is used even when it does not exist yet. A directory
// stands for the data.authority file it holds. Otherwise, ~/.data.authority
// is used when it exists, either as a file or as such a directory.
func locateAuthority(fs afero.Fs, explicit string) (string, error) {
	if explicit != "" {
		if isDir(fs, explicit) {
			return filepath.Join(explicit, authorityFile), nil
		}
		return explicit, nil
	}
	home, err := homeDir()
	if err != nil {
		return "", errNoAuthority
	}
	loc := filepath.Join(home, defaultAuthority)
	if isFile(fs, loc) {
		return loc, nil
	}
	if inDir := filepath.Join(loc, authorityFile); isDir(fs, loc) && isFile(fs, inDir) {
		return inDir, nil
	}
	return "", errNoAuthority
}

// locateIndex finds the index log: an explicit location, or ~/.data.index when it exists
func locateIndex(fs afero.Fs, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	home, err := homeDir()
	if err != nil {
		return "", errNoIndex
	}
	loc := filepath.Join(home, defaultIndex)
	if isFile(fs, loc) {
		return loc, nil
	}
	return "", errNoIndex
}

func isFile(fs afero.Fs, path string) bool {
	fi, err := fs.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func isDir(fs afero.Fs, path string) bool {
	ok, err := afero.IsDir(fs, path)
	return err == nil && ok
}
