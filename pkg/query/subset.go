package query

import (
	"strings"

	"github.com/oneconcern/datatool/pkg/model"
	"github.com/oneconcern/datatool/pkg/model/status"
)

// Subset is an ordered selection of data files, which may be narrowed further
type Subset struct {
	files []*model.DataFile
}

// NewSubset selects some data files
func NewSubset(files []*model.DataFile) Subset {
	return Subset{files: files}
}

// Files of a dataset
func Files(d *model.Dataset) Subset {
	return NewSubset(d.Files)
}

// Narrow the subset to the files satisfying a predicate
func (s Subset) Narrow(keep func(*model.DataFile) bool) Subset {
	narrowed := make([]*model.DataFile, 0, len(s.files))
	for _, f := range s.files {
		if keep(f) {
			narrowed = append(narrowed, f)
		}
	}
	return Subset{files: narrowed}
}

// ByTag keeps the files carrying a tag, ignoring case
func (s Subset) ByTag(tag string) Subset {
	return s.Narrow(func(f *model.DataFile) bool {
		return f.Tags.HasFold(tag)
	})
}

// ByTags keeps the files carrying all the tags, ignoring case
func (s Subset) ByTags(tags ...string) Subset {
	res := s
	for _, tag := range tags {
		res = res.ByTag(tag)
	}
	return res
}

// ByExtension keeps the files whose latest instance has some extension, ignoring case.
//
// The leading dot is optional.
func (s Subset) ByExtension(ext string) Subset {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return s.Narrow(func(f *model.DataFile) bool {
		latest, ok := f.Latest()
		return ok && strings.EqualFold(latest.Ext(), ext)
	})
}

// All files in the subset
func (s Subset) All() []*model.DataFile {
	return append([]*model.DataFile(nil), s.files...)
}

// Only returns the single file in the subset.
//
// It fails with ErrNoMatch when the subset is empty, and ErrAmbiguousLookup when it holds more than one file.
func (s Subset) Only() (*model.DataFile, error) {
	switch len(s.files) {
	case 0:
		return nil, status.ErrNoMatch
	case 1:
		return s.files[0], nil
	default:
		return nil, status.ErrAmbiguousLookup.Wrapf("%d files match", len(s.files))
	}
}

// Len is the number of files in the subset
func (s Subset) Len() int {
	return len(s.files)
}
