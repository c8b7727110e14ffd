package datatool

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/oneconcern/datatool/pkg/errors"
	"github.com/oneconcern/datatool/pkg/model"
	"github.com/oneconcern/datatool/pkg/model/status"
)

const (
	authorityPath = "/home/user/.data.authority"
	indexPath     = "/home/user/.data.index"
	hashAlpha     = "d046cd9b7ffb7661e449683313d41f6fc33e3130"
	hashBeta      = "6c007a14875d53d9bf0ef5a6fc0257c817f0fb83"
)

func open(t *testing.T, fs afero.Fs) *Tool {
	tool, err := Open(fs, authorityPath, indexPath, Logger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return tool
}

func testFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/a.txt", []byte("alpha\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/backup/a.txt", []byte("alpha\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/b.txt", []byte("beta\n"), 0644))
	return fs
}

func TestContentAddressing(t *testing.T) {
	fs := testFs(t)
	tool := open(t, fs)

	_, err := tool.IndexFiles([]string{"/data/a.txt", "/backup/a.txt"})
	require.NoError(t, err)
	f, err := tool.Authority().File(hashAlpha)
	require.NoError(t, err)
	require.Len(t, f.Instances, 2)
	assert.Equal(t, "/data/a.txt", f.Instances[0].Filename)
	assert.Equal(t, "/backup/a.txt", f.Instances[1].Filename)
	assert.Len(t, tool.Authority().Store().Files(), 1)

	// merging the same observations again does not duplicate instances
	require.NoError(t, tool.Authority().ApplyIndex(tool.Index()))
	assert.Len(t, f.Instances, 2)

	require.NoError(t, tool.Save())
	reopened := open(t, fs)
	f, err = reopened.Authority().File(hashAlpha)
	require.NoError(t, err)
	assert.Len(t, f.Instances, 2)
}

func TestDatasets(t *testing.T) {
	fs := testFs(t)
	tool := open(t, fs)

	id, err := tool.Authority().CreateSet("inputs")
	require.NoError(t, err)
	require.NoError(t, tool.AddFiles(id, []string{"/data/a.txt", "/data/b.txt"}))
	single, err := tool.Authority().CreateSet("single")
	require.NoError(t, err)
	require.NoError(t, tool.AddFiles(single, []string{"/data/b.txt"}))
	require.NoError(t, tool.Save())

	reopened := open(t, fs)
	d, err := reopened.Dataset("Inputs")
	require.NoError(t, err)
	assert.Equal(t, id, d.ID)
	assert.Equal(t, "<Dataset 'inputs', 2 files>", d.String())
	names, err := d.Filenames()
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/a.txt", "/data/b.txt"}, names)
	assert.True(t, d.CanRead())
	assert.Equal(t, 2, d.Files().ByExtension("txt").Len())

	name, err := reopened.File("single")
	require.NoError(t, err)
	assert.Equal(t, "/data/b.txt", name)

	_, err = reopened.File("inputs")
	assert.True(t, errors.Is(err, status.ErrAmbiguousLookup))

	_, err = reopened.Dataset("nothing")
	assert.True(t, errors.Is(err, status.ErrNoMatch))

	// files moved away are reported missing
	require.NoError(t, fs.Remove("/data/b.txt"))
	_, err = d.Filenames()
	assert.True(t, errors.Is(err, status.ErrMissingInstance))
	_, err = reopened.File("single")
	assert.True(t, errors.Is(err, status.ErrMissingInstance))
}

func TestResolveAndRemove(t *testing.T) {
	fs := testFs(t)
	tool := open(t, fs)

	id, err := tool.Authority().CreateSet("inputs")
	require.NoError(t, err)
	require.NoError(t, tool.AddFiles(id, []string{"/data/a.txt", "/data/b.txt"}))

	e, err := tool.Resolve("/data/b.txt")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, hashBeta, e.EntityID())

	e, err = tool.Resolve("inputs")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, model.KindDataset, e.Kind())

	e, err = tool.Resolve("/nowhere")
	require.NoError(t, err)
	assert.Nil(t, e)

	require.NoError(t, tool.RemoveFiles(id, []string{"/data/b.txt"}))
	d, err := tool.Authority().Dataset(id)
	require.NoError(t, err)
	assert.Equal(t, []string{hashAlpha}, d.FileIDs())

	err = tool.RemoveFiles(id, []string{"inputs"})
	assert.True(t, errors.Is(err, status.ErrNotAFile))

	_, err = tool.Identify("/nowhere")
	assert.True(t, errors.Is(err, status.ErrUnknownEntity))

	// files never indexed are hashed
	require.NoError(t, afero.WriteFile(fs, "/fresh/a.txt", []byte("alpha\n"), 0644))
	sets, err := tool.Identify("/fresh/a.txt")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, id, sets[0].ID)

	compacted, err := tool.Compact([]string{"/data/a.txt", "/data/b.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/*.txt"}, compacted)
}
