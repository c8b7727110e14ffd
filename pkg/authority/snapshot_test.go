package authority

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/oneconcern/datatool/pkg/authority/status"
	"github.com/oneconcern/datatool/pkg/errors"
)

func TestLoadSnapshot(t *testing.T) {
	a := New(Logger(zaptest.NewLogger(t)))
	snapshot := strings.Join([]string{
		"# deployment",
		hashAlpha + " inputs /data/a.txt raw",
		"",
		hashBeta + " inputs /data/b.txt",
		hashBeta + " other /srv/b.txt calibration",
	}, "\n")
	require.NoError(t, a.LoadSnapshot(strings.NewReader(snapshot)))

	inputs, err := a.FetchDataset("inputs")
	require.NoError(t, err)
	require.NotNil(t, inputs)
	assert.Equal(t, []string{hashAlpha, hashBeta}, inputs.FileIDs())

	other, err := a.FetchDataset("other")
	require.NoError(t, err)
	require.NotNil(t, other)
	assert.Equal(t, []string{hashBeta}, other.FileIDs())

	alpha, err := a.File(hashAlpha)
	require.NoError(t, err)
	assert.Len(t, alpha.Instances, 1)
	assert.True(t, alpha.Tags.Has("raw"))

	beta, err := a.File(hashBeta)
	require.NoError(t, err)
	require.Len(t, beta.Instances, 2)
	assert.Equal(t, "/srv/b.txt", beta.Instances[1].Filename)
	assert.True(t, beta.Tags.Has("calibration"))

	err = a.LoadSnapshot(strings.NewReader(hashAlpha + " lonely\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrSnapshot))
	assert.Contains(t, err.Error(), "line 1")

	err = a.LoadSnapshot(strings.NewReader("# header\nd046cd9b lonely /data/a.txt\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrSnapshot))
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadSnapshotExactNames(t *testing.T) {
	const anonymous = "ab12cd34"
	a, err := Parse(strings.NewReader(`2014/1/1 createset {"id":"`+anonymous+`"}`), Logger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	// a name which is also a prefix of the anonymous set id does not select it
	name := "ab"
	require.NoError(t, a.LoadSnapshot(strings.NewReader(hashAlpha+" "+name+" /data/a.txt\n")))

	d, err := a.Dataset(anonymous)
	require.NoError(t, err)
	assert.Empty(t, d.FileIDs())
	require.Len(t, a.Datasets(), 2)
	named := a.Datasets()[1]
	assert.Equal(t, name, named.Name())
	assert.Equal(t, []string{hashAlpha}, named.FileIDs())

	// names are matched with their case
	require.NoError(t, a.LoadSnapshot(strings.NewReader(hashBeta+" "+strings.ToUpper(name)+" /data/b.txt\n")))
	assert.Len(t, a.Datasets(), 3)
}
