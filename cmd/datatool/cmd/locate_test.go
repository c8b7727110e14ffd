package cmd

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T, home string) {
	saved := homeDir
	homeDir = func() (string, error) { return home, nil }
	t.Cleanup(func() { homeDir = saved })
}

func TestLocateAuthority(t *testing.T) {
	fs := afero.NewMemMapFs()
	withHome(t, "/home/user")

	_, err := locateAuthority(fs, "")
	assert.Equal(t, errNoAuthority, err)

	loc, err := locateAuthority(fs, "/elsewhere/log")
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/log", loc, "explicit locations need not exist")

	require.NoError(t, fs.MkdirAll("/shared", 0755))
	loc, err = locateAuthority(fs, "/shared")
	require.NoError(t, err)
	assert.Equal(t, "/shared/data.authority", loc)

	// a directory without an authority does not qualify
	require.NoError(t, fs.MkdirAll("/home/user/.data.authority", 0755))
	_, err = locateAuthority(fs, "")
	assert.Equal(t, errNoAuthority, err)

	require.NoError(t, afero.WriteFile(fs, "/home/user/.data.authority/data.authority", nil, 0644))
	loc, err = locateAuthority(fs, "")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.data.authority/data.authority", loc)

	fs = afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/home/user/.data.authority", nil, 0644))
	loc, err = locateAuthority(fs, "")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.data.authority", loc)
}

func TestLocateIndex(t *testing.T) {
	fs := afero.NewMemMapFs()
	withHome(t, "/home/user")

	_, err := locateIndex(fs, "")
	assert.Equal(t, errNoIndex, err)

	loc, err := locateIndex(fs, "/elsewhere/index")
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/index", loc)

	require.NoError(t, afero.WriteFile(fs, "/home/user/.data.index", nil, 0644))
	loc, err = locateIndex(fs, "")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.data.index", loc)

	homeDir = func() (string, error) { return "", errors.New("no home") }
	_, err = locateIndex(fs, "")
	assert.Equal(t, errNoIndex, err)
}
