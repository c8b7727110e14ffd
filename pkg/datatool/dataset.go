package datatool

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/oneconcern/datatool/pkg/model"
	"github.com/oneconcern/datatool/pkg/query"
)

// Dataset is a view on a dataset, resolving its files on disk
type Dataset struct {
	*model.Dataset
	fs afero.Fs
}

// Filenames of the files in the dataset, at their newest readable location
func (d *Dataset) Filenames() ([]string, error) {
	return query.Filenames(d.fs, d.Dataset)
}

// CanRead tells if all files in the dataset are readable
func (d *Dataset) CanRead() bool {
	return query.CanRead(d.fs, d.Dataset)
}

// Files in the dataset, ready to be narrowed down
func (d *Dataset) Files() query.Subset {
	return query.Files(d.Dataset)
}

func (d *Dataset) String() string {
	return fmt.Sprintf("<Dataset '%s', %d files>", d.Label(), len(d.Dataset.Files))
}
