// Package index keeps track of where file contents have been observed on disk.
//
// The index is an append-only log of observations, one per line:
//
//	2014-01-01T00:00:00Z d046cd9b7ffb7661e449683313d41f6fc33e3130 1388534400.5 6 /data/a.txt
//
// Each line records the date the file was indexed, its content hash, its
// modification time in seconds since the epoch, its size and its absolute path.
// Paths may contain spaces. Files whose size and modification time did not
// change since their last observation are not hashed again.
package index

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/oneconcern/datatool/pkg/dlogger"
	"github.com/oneconcern/datatool/pkg/fingerprint"
	"github.com/oneconcern/datatool/pkg/index/status"
	"github.com/oneconcern/datatool/pkg/logline"
	"github.com/oneconcern/datatool/pkg/model"
	modelstatus "github.com/oneconcern/datatool/pkg/model/status"
)

// Hasher computes the content hash of a file
type Hasher interface {
	ProcessWithStat(path string) (fingerprint.Stat, error)
}

// Index of file observations
type Index struct {
	fs        afero.Fs
	path      string
	hasher    Hasher
	now       func() time.Time
	records   []record
	byPath    map[string]int
	persisted int
	l         *zap.Logger
}

// Option for an Index
type Option func(*Index)

// Logger sets a logger for this index
func Logger(logger *zap.Logger) Option {
	return func(ix *Index) {
		if logger != nil {
			ix.l = logger
		}
	}
}

// WithHasher overrides the content hasher. By default, files are hashed with pkg/fingerprint.
func WithHasher(h Hasher) Option {
	return func(ix *Index) {
		if h != nil {
			ix.hasher = h
		}
	}
}

// Clock overrides the source of indexing dates
func Clock(now func() time.Time) Option {
	return func(ix *Index) {
		if now != nil {
			ix.now = now
		}
	}
}

func newIndex(fs afero.Fs, path string, opts ...Option) *Index {
	logger, _ := dlogger.GetLogger(dlogger.LogLevelInfo)
	ix := &Index{
		fs:     fs,
		path:   path,
		now:    func() time.Time { return time.Now().UTC() },
		byPath: make(map[string]int),
		l:      logger,
	}
	for _, apply := range opts {
		apply(ix)
	}
	if ix.hasher == nil {
		ix.hasher = fingerprint.New(fingerprint.Fs(fs))
	}
	return ix
}

// Load reads the index log at path.
//
// An index which does not exist yet loads empty, and is created on the first Write.
func Load(fs afero.Fs, path string, opts ...Option) (*Index, error) {
	ix := newIndex(fs, path, opts...)

	f, err := fs.Open(path)
	switch {
	case os.IsNotExist(err):
		ix.l.Debug("no index yet", zap.String("path", path))
		return ix, nil
	case err != nil:
		return nil, status.ErrIndexLoad.Wrap(err)
	}
	defer f.Close()

	err = logline.Scan(f, func(num int, text string) error {
		if logline.IsComment(text) {
			return nil
		}
		r, e := parseRecord(num, text)
		if e != nil {
			return e
		}
		ix.record(r)
		return nil
	})
	if err != nil {
		return nil, status.ErrIndexLoad.WrapWithLog(ix.l, err, zap.String("path", path))
	}
	ix.persisted = len(ix.records)
	ix.l.Debug("index loaded", zap.String("path", path), zap.Int("observations", ix.persisted))
	return ix, nil
}

func (ix *Index) record(r record) {
	ix.byPath[r.Filename] = len(ix.records)
	ix.records = append(ix.records, r)
}

// AddFiles indexes files and returns their current observations, in the order of the paths.
//
// Paths are made absolute. Files with the same size and modification time
// as their latest observation are not hashed again.
func (ix *Index) AddFiles(paths []string) ([]model.FileInstance, error) {
	observed := make([]model.FileInstance, 0, len(paths))
	for _, p := range paths {
		instance, err := ix.addFile(p)
		if err != nil {
			return nil, err
		}
		observed = append(observed, instance)
	}
	return observed, nil
}

func (ix *Index) addFile(p string) (model.FileInstance, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return model.FileInstance{}, err
	}
	fi, err := ix.fs.Stat(abs)
	if err != nil {
		return model.FileInstance{}, err
	}
	if !fi.Mode().IsRegular() {
		return model.FileInstance{}, status.ErrNotRegular.Wrapf("%s", abs)
	}

	if i, ok := ix.byPath[abs]; ok {
		cached := ix.records[i]
		if cached.Size == fi.Size() && cached.Timestamp == model.EpochSeconds(fi.ModTime()) {
			return cached.FileInstance, nil
		}
		ix.l.Info("file changed, indexing again", zap.String("path", abs))
	}

	// size and mtime are those of the file that was hashed
	st, err := ix.hasher.ProcessWithStat(abs)
	if err != nil {
		return model.FileInstance{}, status.ErrHash.WrapWithLog(ix.l, err, zap.String("path", abs))
	}
	r := record{
		FileInstance: model.FileInstance{
			Filename:  abs,
			Hashsum:   st.Hash,
			Size:      st.Size,
			Timestamp: model.EpochSeconds(st.ModTime),
		},
	}
	ix.record(r)
	ix.l.Debug("indexed", zap.String("path", abs), zap.String("hash", st.Hash))
	return r.FileInstance, nil
}

// FetchFile finds the latest observation of a file, from its absolute path or from a prefix of its content hash.
//
// It returns nil when nothing matches, and ErrAmbiguousLookup when the prefix
// matches more than one content hash.
func (ix *Index) FetchFile(query string) (*model.FileInstance, error) {
	if query == "" {
		return nil, nil
	}
	if instance, ok := ix.Lookup(query); ok {
		return &instance, nil
	}

	var (
		found  *model.FileInstance
		hashes = make(map[string]struct{})
	)
	for i := range ix.records {
		r := ix.records[i]
		if !strings.HasPrefix(r.Hashsum, query) {
			continue
		}
		hashes[r.Hashsum] = struct{}{}
		latest := r.FileInstance
		found = &latest
	}
	if len(hashes) > 1 {
		return nil, modelstatus.ErrAmbiguousLookup.Wrapf("%q matches %d indexed contents", query, len(hashes))
	}
	return found, nil
}

// Lookup the latest observation at some path
func (ix *Index) Lookup(path string) (model.FileInstance, bool) {
	i, ok := ix.byPath[path]
	if !ok && !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			i, ok = ix.byPath[abs]
		}
	}
	if !ok {
		return model.FileInstance{}, false
	}
	return ix.records[i].FileInstance, true
}

// Observations recorded so far, in log order
func (ix *Index) Observations() []model.FileInstance {
	res := make([]model.FileInstance, 0, len(ix.records))
	for _, r := range ix.records {
		res = append(res, r.FileInstance)
	}
	return res
}

// Write appends the pending observations to the index log, all dated of now
func (ix *Index) Write() error {
	pending := ix.records[ix.persisted:]
	if len(pending) == 0 {
		return nil
	}
	date := ix.now()
	lines := make([]string, 0, len(pending))
	for i := range pending {
		pending[i].indexed = date
		lines = append(lines, pending[i].String())
	}
	if err := logline.Append(ix.fs, ix.path, lines); err != nil {
		return status.ErrIndexWrite.WrapWithLog(ix.l, err, zap.String("path", ix.path))
	}
	ix.persisted = len(ix.records)
	return nil
}

// Path of the index log
func (ix *Index) Path() string {
	return ix.path
}

// Pending is the number of observations not written to the log yet
func (ix *Index) Pending() int {
	return len(ix.records) - ix.persisted
}
