package index

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/oneconcern/datatool/pkg/errors"
	"github.com/oneconcern/datatool/pkg/fingerprint"
	"github.com/oneconcern/datatool/pkg/index/status"
	"github.com/oneconcern/datatool/pkg/model"
	modelstatus "github.com/oneconcern/datatool/pkg/model/status"
)

const (
	testIndex = "/home/user/.data.index"
	hashAlpha = "d046cd9b7ffb7661e449683313d41f6fc33e3130"
	hashBeta  = "6c007a14875d53d9bf0ef5a6fc0257c817f0fb83"
)

var testDate = time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)

type countingHasher struct {
	*fingerprint.Maker
	calls map[string]int
}

func (h *countingHasher) ProcessWithStat(path string) (fingerprint.Stat, error) {
	h.calls[path]++
	return h.Maker.ProcessWithStat(path)
}

func newTestFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/a.txt", []byte("alpha\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/my results/b.txt", []byte("beta\n"), 0644))
	require.NoError(t, fs.Chtimes("/data/a.txt", testDate, testDate))
	return fs
}

func load(t *testing.T, fs afero.Fs) (*Index, *countingHasher) {
	h := &countingHasher{Maker: fingerprint.New(fingerprint.Fs(fs)), calls: make(map[string]int)}
	ix, err := Load(fs, testIndex,
		Logger(zaptest.NewLogger(t)),
		WithHasher(h),
		Clock(func() time.Time { return testDate }),
	)
	require.NoError(t, err)
	return ix, h
}

func TestAddFiles(t *testing.T) {
	fs := newTestFs(t)
	ix, h := load(t, fs)

	observed, err := ix.AddFiles([]string{"/data/a.txt", "/data/my results/b.txt"})
	require.NoError(t, err)
	require.Len(t, observed, 2)
	assert.Equal(t, model.FileInstance{
		Filename:  "/data/a.txt",
		Hashsum:   hashAlpha,
		Size:      6,
		Timestamp: 1388534400,
	}, observed[0])
	assert.Equal(t, hashBeta, observed[1].Hashsum)
	assert.Equal(t, "/data/my results/b.txt", observed[1].Filename)
	assert.Equal(t, 2, ix.Pending())

	// unchanged files are served from the index
	again, err := ix.AddFiles([]string{"/data/a.txt", "/data/my results/b.txt"})
	require.NoError(t, err)
	assert.Equal(t, observed, again)
	assert.Equal(t, 1, h.calls["/data/a.txt"])
	assert.Equal(t, 1, h.calls["/data/my results/b.txt"])
	assert.Equal(t, 2, ix.Pending())

	require.NoError(t, ix.Write())
	assert.Zero(t, ix.Pending())
	raw, err := afero.ReadFile(fs, testIndex)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2014-01-01T00:00:00Z "+hashAlpha+" 1388534400 6 /data/a.txt", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], " 5 /data/my results/b.txt"))

	// a reloaded index still knows the files, and does not hash them again
	reloaded, h2 := load(t, fs)
	assert.Equal(t, ix.Observations(), reloaded.Observations())
	cached, err := reloaded.AddFiles([]string{"/data/a.txt", "/data/my results/b.txt"})
	require.NoError(t, err)
	assert.Equal(t, observed, cached)
	assert.Empty(t, h2.calls)
	assert.Zero(t, reloaded.Pending())
}

func TestAddFilesChanged(t *testing.T) {
	fs := newTestFs(t)
	ix, h := load(t, fs)

	_, err := ix.AddFiles([]string{"/data/a.txt"})
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "/data/a.txt", []byte("beta\n"), 0644))
	later := testDate.Add(time.Hour)
	require.NoError(t, fs.Chtimes("/data/a.txt", later, later))

	observed, err := ix.AddFiles([]string{"/data/a.txt"})
	require.NoError(t, err)
	assert.Equal(t, hashBeta, observed[0].Hashsum)
	assert.Equal(t, 2, h.calls["/data/a.txt"])

	// every observation is kept, the latest one wins for lookups
	all := ix.Observations()
	require.Len(t, all, 2)
	assert.Equal(t, hashAlpha, all[0].Hashsum)
	latest, ok := ix.Lookup("/data/a.txt")
	require.True(t, ok)
	assert.Equal(t, hashBeta, latest.Hashsum)
}

func TestAddFilesErrors(t *testing.T) {
	fs := newTestFs(t)
	ix, _ := load(t, fs)

	_, err := ix.AddFiles([]string{"/data"})
	assert.True(t, errors.Is(err, status.ErrNotRegular))

	_, err = ix.AddFiles([]string{"/data/missing.txt"})
	assert.Error(t, err)
	assert.Zero(t, ix.Pending())
}

func TestFetchFile(t *testing.T) {
	fs := newTestFs(t)
	require.NoError(t, afero.WriteFile(fs, "/data/copy.txt", []byte("alpha\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/d.txt", []byte("delta\n"), 0644))
	ix, _ := load(t, fs)
	_, err := ix.AddFiles([]string{"/data/a.txt", "/data/copy.txt", "/data/my results/b.txt", "/data/d.txt"})
	require.NoError(t, err)

	found, err := ix.FetchFile("/data/copy.txt")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, hashAlpha, found.Hashsum)

	// two observations of the same content are not ambiguous
	found, err = ix.FetchFile("d046")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "/data/copy.txt", found.Filename)

	found, err = ix.FetchFile("6c00")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "/data/my results/b.txt", found.Filename)

	found, err = ix.FetchFile("ffffffff")
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = ix.FetchFile("")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFetchFileAmbiguous(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := strings.Join([]string{
		"2014/1/1 abcd111111111111111111111111111111111111 1 1 /data/one",
		"2014/1/1 abcd222222222222222222222222222222222222 1 1 /data/two",
	}, "\n")
	require.NoError(t, afero.WriteFile(fs, testIndex, []byte(content), 0644))
	ix, _ := load(t, fs)

	_, err := ix.FetchFile("abcd")
	require.Error(t, err)
	assert.True(t, errors.Is(err, modelstatus.ErrAmbiguousLookup))

	found, err := ix.FetchFile("abcd2")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "/data/two", found.Filename)
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := strings.Join([]string{
		"# observations",
		"2014/1/1 " + hashAlpha + " 1388534400.25 6 /data/a.txt",
		"",
		"2014-01-02T00:00:00Z " + hashBeta + " 1388534401 5 /data/my results/b.txt",
	}, "\n")
	require.NoError(t, afero.WriteFile(fs, testIndex, []byte(content), 0644))
	ix, _ := load(t, fs)

	assert.Equal(t, []model.FileInstance{
		{Filename: "/data/a.txt", Hashsum: hashAlpha, Size: 6, Timestamp: 1388534400.25},
		{Filename: "/data/my results/b.txt", Hashsum: hashBeta, Size: 5, Timestamp: 1388534401},
	}, ix.Observations())
	assert.Equal(t, testIndex, ix.Path())
}

func TestLoadMalformed(t *testing.T) {
	for _, toPin := range []struct {
		name string
		line string
	}{
		{name: "too short", line: "2014/1/1 " + hashAlpha + " 12"},
		{name: "bad date", line: "someday " + hashAlpha + " 12 6 /data/a.txt"},
		{name: "bad mtime", line: "2014/1/1 " + hashAlpha + " noon 6 /data/a.txt"},
		{name: "bad size", line: "2014/1/1 " + hashAlpha + " 12 six /data/a.txt"},
		{name: "short hash", line: "2014/1/1 d046cd9b 12 6 /data/a.txt"},
		{name: "not a hash", line: "2014/1/1 " + strings.Repeat("z", 40) + " 12 6 /data/a.txt"},
	} {
		tc := toPin
		t.Run(tc.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, testIndex, []byte(tc.line+"\n"), 0644))
			_, err := Load(fs, testIndex, Logger(zaptest.NewLogger(t)))
			require.Error(t, err)
			assert.True(t, errors.Is(err, status.ErrIndexFormat))
			assert.True(t, errors.Is(err, status.ErrIndexLoad))
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}
