package query

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/oneconcern/datatool/pkg/dlogger"
)

// Compactor turns lists of file names into shorter lists of wildcards.
//
// A wildcard is only used when it matches exactly the same files as the
// names it replaces, at the time of the compaction.
type Compactor struct {
	fs afero.Fs
	l  *zap.Logger
}

// CompactorOption configures a Compactor
type CompactorOption func(*Compactor)

// CompactorLogger sets the logger of a Compactor
func CompactorLogger(logger *zap.Logger) CompactorOption {
	return func(c *Compactor) {
		if logger != nil {
			c.l = logger
		}
	}
}

// NewCompactor builds a Compactor listing directories from fs
func NewCompactor(fs afero.Fs, opts ...CompactorOption) *Compactor {
	logger, _ := dlogger.GetLogger(dlogger.LogLevelInfo)
	c := &Compactor{fs: fs, l: logger}
	for _, apply := range opts {
		apply(c)
	}
	return c
}

// listings caches directory contents for the duration of a single compaction
type listings struct {
	fs      afero.Fs
	entries map[string][]string
}

// names of the regular, non-hidden entries of a directory. A missing directory is empty.
func (c *listings) names(dir string) ([]string, error) {
	if names, ok := c.entries[dir]; ok {
		return names, nil
	}
	infos, err := afero.ReadDir(c.fs, dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		if fi.IsDir() || strings.HasPrefix(fi.Name(), ".") {
			continue
		}
		names = append(names, fi.Name())
	}
	c.entries[dir] = names
	return names, nil
}

// Compact a list of paths into wildcards.
//
// Paths are grouped by directory, then by extension. A group becomes
// dir/*.ext when it holds all the files of the directory with that
// extension, or dir/prefix*.ext when the longest common prefix of its names
// selects exactly the group. Other paths are kept as is.
//
// Results are ordered by directory, then by extension.
func (c *Compactor) Compact(paths []string) ([]string, error) {
	groups := make(map[string]map[string]map[string]struct{})
	for _, p := range paths {
		dir, name := filepath.Dir(p), filepath.Base(p)
		byExt, ok := groups[dir]
		if !ok {
			byExt = make(map[string]map[string]struct{})
			groups[dir] = byExt
		}
		ext := filepath.Ext(name)
		if byExt[ext] == nil {
			byExt[ext] = make(map[string]struct{})
		}
		byExt[ext][name] = struct{}{}
	}

	cache := &listings{fs: c.fs, entries: make(map[string][]string)}
	var compacted []string
	for _, dir := range sortedKeys(groups) {
		listing, err := cache.names(dir)
		if err != nil {
			return nil, err
		}
		byExt := groups[dir]
		for _, ext := range sortedKeys(byExt) {
			patterns, err := compactGroup(dir, ext, byExt[ext], listing)
			if err != nil {
				return nil, err
			}
			compacted = append(compacted, patterns...)
		}
	}
	c.l.Debug("compacted file list", zap.Int("paths", len(paths)), zap.Int("patterns", len(compacted)))
	return compacted, nil
}

func compactGroup(dir, ext string, group map[string]struct{}, listing []string) ([]string, error) {
	names := sortedKeys(group)

	candidates := []string{""}
	if prefix := commonPrefix(names); prefix != "" {
		candidates = append(candidates, prefix)
	}
	for _, prefix := range candidates {
		pattern := glob.QuoteMeta(prefix) + "*" + glob.QuoteMeta(ext)
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		if selectsExactly(g, len(prefix)+len(ext), listing, group) {
			return []string{filepath.Join(dir, prefix+"*"+ext)}, nil
		}
	}

	literals := make([]string, 0, len(names))
	for _, name := range names {
		literals = append(literals, filepath.Join(dir, name))
	}
	return literals, nil
}

// selectsExactly tells if the names of the listing matched by g are exactly the group.
//
// Names shorter than the literal parts of the pattern never match: glob
// prefix and suffix matching lets them overlap.
func selectsExactly(g glob.Glob, minLen int, listing []string, group map[string]struct{}) bool {
	matched := 0
	for _, name := range listing {
		if len(name) < minLen || !g.Match(name) {
			continue
		}
		if _, ok := group[name]; !ok {
			return false
		}
		matched++
	}
	return matched == len(group)
}

func commonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := names[0]
	for _, name := range names[1:] {
		for !strings.HasPrefix(name, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
