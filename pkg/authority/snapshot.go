package authority

import (
	"io"
	"strings"

	"github.com/oneconcern/datatool/pkg/authority/status"
	"github.com/oneconcern/datatool/pkg/fingerprint"
	"github.com/oneconcern/datatool/pkg/logline"
	"github.com/oneconcern/datatool/pkg/model"
)

// LoadSnapshot populates the authority from a deployment snapshot.
//
// Deployments may only ship a flat listing of their data, one file per line:
//
//	<hashsum> <dataset name> <filename> [<tag>...]
//
// Datasets are found by their exact name, and created when needed, and the file tags go to the data file.
func (a *Authority) LoadSnapshot(r io.Reader) error {
	return logline.Scan(r, func(num int, text string) error {
		if logline.IsComment(text) {
			return nil
		}
		parts := strings.Fields(text)
		if len(parts) < 3 {
			return status.ErrSnapshot.Wrapf("line %d: expected a hash, a dataset name and a file name", num)
		}
		hashsum, name, filename, tags := parts[0], parts[1], parts[2], parts[3:]
		if !fingerprint.IsHash(hashsum) {
			return status.ErrSnapshot.Wrapf("line %d: invalid content hash %q", num, hashsum)
		}

		var err error
		setID := ""
		if d := a.datasetNamed(name); d != nil {
			setID = d.ID
		} else if setID, err = a.CreateSet(name); err != nil {
			return err
		}

		instance := model.FileInstance{Filename: filename, Hashsum: hashsum}
		if err = a.AddFiles(setID, []model.FileInstance{instance}); err != nil {
			return err
		}
		if len(tags) > 0 {
			if err = a.AddTags(hashsum, tags); err != nil {
				return err
			}
		}
		f, err := a.store.File(hashsum)
		if err != nil {
			return err
		}
		f.AddInstance(instance)
		return nil
	})
}
