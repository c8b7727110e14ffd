// Package datatool gives programs a single entry point to the catalogue.
//
// A Tool loads the authority and the index, merges the observations of the
// index into the authority, and resolves datasets to files readable on disk.
package datatool

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/oneconcern/datatool/pkg/authority"
	"github.com/oneconcern/datatool/pkg/dlogger"
	"github.com/oneconcern/datatool/pkg/index"
	"github.com/oneconcern/datatool/pkg/model"
	"github.com/oneconcern/datatool/pkg/model/status"
	"github.com/oneconcern/datatool/pkg/query"
)

// Tool to work with datasets
type Tool struct {
	fs        afero.Fs
	authority *authority.Authority
	index     *index.Index
	compactor *query.Compactor
	l         *zap.Logger
	hasher    index.Hasher
}

// Option for a Tool
type Option func(*Tool)

// Logger sets the logger of the tool and of everything it loads
func Logger(logger *zap.Logger) Option {
	return func(t *Tool) {
		if logger != nil {
			t.l = logger
		}
	}
}

// WithHasher overrides the hasher used to index files
func WithHasher(h index.Hasher) Option {
	return func(t *Tool) {
		t.hasher = h
	}
}

// Open the authority and the index, then merge the index into the authority
func Open(fs afero.Fs, authorityPath, indexPath string, opts ...Option) (*Tool, error) {
	logger, _ := dlogger.GetLogger(dlogger.LogLevelInfo)
	t := &Tool{fs: fs, l: logger}
	for _, apply := range opts {
		apply(t)
	}

	a, err := authority.Load(fs, authorityPath, authority.Logger(t.l))
	if err != nil {
		return nil, err
	}
	ix, err := index.Load(fs, indexPath, index.Logger(t.l), index.WithHasher(t.hasher))
	if err != nil {
		return nil, err
	}
	if err = a.ApplyIndex(ix); err != nil {
		return nil, err
	}

	t.authority = a
	t.index = ix
	t.compactor = query.NewCompactor(fs, query.CompactorLogger(t.l))
	t.l.Debug("datatool ready",
		zap.String("authority", authorityPath),
		zap.String("index", indexPath),
		zap.Int("datasets", len(a.Datasets())),
	)
	return t, nil
}

// Authority holding datasets and data files
func (t *Tool) Authority() *authority.Authority {
	return t.authority
}

// Index of file observations
func (t *Tool) Index() *index.Index {
	return t.index
}

// Dataset finds a dataset from its name, or a prefix of its id.
//
// It fails with ErrNoMatch when there is no such dataset.
func (t *Tool) Dataset(nameOrID string) (*Dataset, error) {
	d, err := t.authority.FetchDataset(nameOrID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, status.ErrNoMatch.Wrapf("no dataset %q", nameOrID)
	}
	return &Dataset{Dataset: d, fs: t.fs}, nil
}

// File resolves the single file of a dataset to a location on disk
func (t *Tool) File(nameOrID string) (string, error) {
	d, err := t.Dataset(nameOrID)
	if err != nil {
		return "", err
	}
	f, err := d.Files().Only()
	if err != nil {
		return "", fmt.Errorf("dataset %q: %w", nameOrID, err)
	}
	valid := query.ValidInstance(t.fs, f)
	if valid == nil {
		return "", status.ErrMissingInstance.Wrapf("no readable instance of %s", f.ID)
	}
	return valid.Filename, nil
}

// IndexFiles observes files, and records them as instances of their data files
func (t *Tool) IndexFiles(paths []string) ([]model.FileInstance, error) {
	observed, err := t.index.AddFiles(paths)
	if err != nil {
		return nil, err
	}
	if err = t.authority.ApplyIndex(observations(observed)); err != nil {
		return nil, err
	}
	return observed, nil
}

// AddFiles indexes files and adds them to a dataset
func (t *Tool) AddFiles(setID string, paths []string) error {
	observed, err := t.IndexFiles(paths)
	if err != nil {
		return err
	}
	return t.authority.AddFiles(setID, observed)
}

// RemoveFiles removes files from a dataset.
//
// Files are designated by path, by a prefix of their content hash, or are
// files on disk which are hashed to find their content.
func (t *Tool) RemoveFiles(setID string, queries []string) error {
	hashes := make([]string, 0, len(queries))
	for _, q := range queries {
		hashsum, err := t.fileHash(q)
		if err != nil {
			return err
		}
		hashes = append(hashes, hashsum)
	}
	return t.authority.RemoveFiles(setID, hashes)
}

// Identify finds the datasets holding a file, designated as for RemoveFiles
func (t *Tool) Identify(q string) ([]*model.Dataset, error) {
	hashsum, err := t.fileHash(q)
	if err != nil {
		return nil, err
	}
	return t.authority.Identify(hashsum), nil
}

func (t *Tool) fileHash(q string) (string, error) {
	e, err := t.Resolve(q)
	if err != nil {
		return "", err
	}
	if e != nil {
		if e.Kind() != model.KindFile {
			return "", status.ErrNotAFile.Wrapf("%q", q)
		}
		return e.EntityID(), nil
	}
	if fi, err := t.fs.Stat(q); err == nil && fi.Mode().IsRegular() {
		observed, err := t.IndexFiles([]string{q})
		if err != nil {
			return "", err
		}
		return observed[0].Hashsum, nil
	}
	return "", status.ErrUnknownEntity.Wrapf("no file matches %q", q)
}

// Resolve finds a dataset or a data file from a prefix of its id, a dataset name, or an indexed path.
//
// It returns nil when nothing matches.
func (t *Tool) Resolve(q string) (model.Entity, error) {
	e, err := t.authority.FindEntity(q)
	if err != nil || e != nil {
		return e, err
	}
	observed, err := t.index.FetchFile(q)
	if err != nil || observed == nil {
		return nil, err
	}
	f, err := t.authority.File(observed.Hashsum)
	if err != nil {
		return nil, nil
	}
	return f, nil
}

// Compact file names into wildcards
func (t *Tool) Compact(paths []string) ([]string, error) {
	return t.compactor.Compact(paths)
}

// Save writes what is new in both the authority and the index
func (t *Tool) Save() error {
	return multierr.Append(t.authority.Write(), t.index.Write())
}

type observations []model.FileInstance

func (o observations) Observations() []model.FileInstance {
	return o
}
