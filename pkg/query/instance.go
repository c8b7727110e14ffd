// Package query resolves datasets and data files against what is actually on disk.
//
// It finds readable instances of data files, filters the files of a dataset,
// and compacts lists of file names into equivalent wildcards.
package query

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/oneconcern/datatool/pkg/model"
	"github.com/oneconcern/datatool/pkg/model/status"
)

// ValidInstance returns the newest instance of a data file which exists on disk as a regular file, or nil
func ValidInstance(fs afero.Fs, f *model.DataFile) *model.FileInstance {
	for i := len(f.Instances) - 1; i >= 0; i-- {
		instance := f.Instances[i]
		fi, err := fs.Stat(instance.Filename)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		return &instance
	}
	return nil
}

// Filenames resolves a readable location for every file of a dataset, in dataset order.
//
// It returns ErrMissingInstance as soon as some file cannot be found on disk.
func Filenames(fs afero.Fs, d *model.Dataset) ([]string, error) {
	names := make([]string, 0, len(d.Files))
	for _, f := range d.Files {
		valid := ValidInstance(fs, f)
		if valid == nil {
			return nil, missing(f)
		}
		names = append(names, valid.Filename)
	}
	return names, nil
}

func missing(f *model.DataFile) error {
	if len(f.Instances) == 0 {
		return status.ErrMissingInstance.Wrapf("no known location for %s", f.ID)
	}
	locations := make([]string, 0, len(f.Instances))
	for _, instance := range f.Instances {
		locations = append(locations, instance.Filename)
	}
	return status.ErrMissingInstance.Wrapf("could not find %s in [%s]", f.ID, strings.Join(locations, ", "))
}

// CanRead tells if all the files of a dataset can be read from disk
func CanRead(fs afero.Fs, d *model.Dataset) bool {
	_, err := Filenames(fs, d)
	return err == nil
}

// Availability of a data file on disk
type Availability uint8

// Availabilities of data files
const (
	// Readable files have an instance on disk
	Readable Availability = iota
	// NoRead files have known instances, none of which exists anymore
	NoRead
	// NoMeta files have never been observed
	NoMeta
)

func (a Availability) String() string {
	switch a {
	case NoRead:
		return "(no read)"
	case NoMeta:
		return "(no meta)"
	default:
		return ""
	}
}

// Entry describes where a data file may be read from
type Entry struct {
	Name         string
	Availability Availability
	File         *model.DataFile
}

// Locate the files in a subset.
//
// Readable files are named after their valid instance, files with stale
// instances after their oldest instance, and files never observed by their id.
func Locate(fs afero.Fs, files Subset) []Entry {
	entries := make([]Entry, 0, files.Len())
	for _, f := range files.All() {
		switch valid := ValidInstance(fs, f); {
		case valid != nil:
			entries = append(entries, Entry{Name: valid.Filename, Availability: Readable, File: f})
		case len(f.Instances) == 0:
			entries = append(entries, Entry{Name: f.ID, Availability: NoMeta, File: f})
		default:
			entries = append(entries, Entry{Name: f.Instances[0].Filename, Availability: NoRead, File: f})
		}
	}
	return entries
}
