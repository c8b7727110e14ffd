package authority

import (
	"go.uber.org/zap"

	"github.com/oneconcern/datatool/pkg/command"
	"github.com/oneconcern/datatool/pkg/model"
)

// Observations is a source of raw file observations, such as an index
type Observations interface {
	Observations() []model.FileInstance
}

// ApplyIndex merges file observations into the authority.
//
// Data files are created for content not seen before. Each observation is
// then recorded as an instance of its data file, unless an identical
// instance is already known. Instances are not part of the authority log:
// the merge has to be redone after each load.
func (a *Authority) ApplyIndex(source Observations) error {
	var created, added int
	for _, observed := range source.Observations() {
		if !a.store.HasFile(observed.Hashsum) {
			if err := a.apply(command.NewCreateFile(observed)); err != nil {
				return err
			}
			created++
		}
		f, err := a.store.File(observed.Hashsum)
		if err != nil {
			return err
		}
		if f.AddInstance(observed) {
			added++
		}
	}
	a.l.Debug("index merged", zap.Int("created files", created), zap.Int("new instances", added))
	return nil
}
