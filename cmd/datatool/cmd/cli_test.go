package cmd

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/datatool/pkg/query"
)

const hashAlpha = "d046cd9b7ffb7661e449683313d41f6fc33e3130"

type ExitMocks struct {
	mock.Mock
	fatalCalls int
}

func (m *ExitMocks) Fatalf(format string, v ...interface{}) {
	m.fatalCalls++
}

func (m *ExitMocks) Fatalln(v ...interface{}) {
	m.fatalCalls++
}

func (m *ExitMocks) Exit(code int) {
	m.fatalCalls++
}

var exitMocks *ExitMocks

type cliEnv struct {
	dir       string
	authority string
	index     string
}

func setupTests(t *testing.T) cliEnv {
	exitMocks = new(ExitMocks)
	logFatalf = exitMocks.Fatalf
	logFatalln = exitMocks.Fatalln
	osExit = exitMocks.Exit
	appFs = afero.NewOsFs()
	color.NoColor = true

	dir := t.TempDir()
	env := cliEnv{
		dir:       dir,
		authority: filepath.Join(dir, "data.authority"),
		index:     filepath.Join(dir, "data.index"),
	}
	for name, content := range map[string]string{
		"data/a.txt": "alpha\n",
		"data/b.txt": "beta\n",
		"data/c.jpg": "gamma\n",
	} {
		require.NoError(t, appFs.MkdirAll(filepath.Dir(env.path(name)), 0755))
		require.NoError(t, afero.WriteFile(appFs, env.path(name), []byte(content), 0644))
	}
	return env
}

func (e cliEnv) path(name string) string {
	return filepath.Join(e.dir, filepath.FromSlash(name))
}

func (e cliEnv) run(t *testing.T, args ...string) string {
	datatoolFlags = flagsT{}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--authority", e.authority, "--index", e.index, "--loglevel", "none"))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestDatasetLifecycle(t *testing.T) {
	env := setupTests(t)
	a, b := env.path("data/a.txt"), env.path("data/b.txt")

	id := strings.TrimSpace(env.run(t, "set", "create", "--name", "inputs", a, b))
	require.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), id)

	out := env.run(t, "sets")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "inputs")
	assert.Contains(t, out, "2 files")

	out = env.run(t, "files", "inputs")
	assert.Contains(t, out, a)
	assert.Contains(t, out, b)

	out = env.run(t, "files", "--wildcard", "inputs")
	assert.Equal(t, env.path("data/*.txt")+"\n", out)

	env.run(t, "tag", "inputs", "raw")
	assert.Contains(t, env.run(t, "search", "raw"), id)
	env.run(t, "tag", "-d", "inputs", "raw")
	assert.Equal(t, "(no sets)\n", env.run(t, "search", "raw"))

	env.run(t, "tag", "--tag", "alpha", a)
	assert.Equal(t, a+"\n", env.run(t, "files", "-1", "inputs", "alpha"))

	out = env.run(t, "set", "show", "inputs")
	assert.Contains(t, out, "name: inputs")
	assert.Contains(t, out, "id: "+hashAlpha)
	assert.Contains(t, out, "filename: "+a)

	assert.Contains(t, env.run(t, "identify", b), id)

	env.run(t, "set", "rmfiles", "inputs", b)
	assert.Equal(t, a+"\n", env.run(t, "files", "-1", "inputs"))

	env.run(t, "set", "rename", "inputs", "results")
	assert.Contains(t, env.run(t, "sets"), "results")
	env.run(t, "set", "delete", "results")
	assert.Equal(t, "(no sets)\n", env.run(t, "sets", "--all"))

	assert.Zero(t, exitMocks.fatalCalls)

	raw, err := afero.ReadFile(appFs, env.authority)
	require.NoError(t, err)
	assert.Contains(t, string(raw), " createset {\"id\":\""+id+"\"}")
	assert.Contains(t, string(raw), " deleteset ")
}

func TestIndexCommand(t *testing.T) {
	env := setupTests(t)

	env.run(t, "index", env.path("data/a.txt"), env.path("data/c.jpg"))
	raw, err := afero.ReadFile(appFs, env.index)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], " "+hashAlpha+" ")
	assert.True(t, strings.HasSuffix(lines[0], " 6 "+env.path("data/a.txt")))

	// unchanged files are not indexed again
	env.run(t, "index", env.path("data/a.txt"))
	again, err := afero.ReadFile(appFs, env.index)
	require.NoError(t, err)
	assert.Equal(t, raw, again)

	// indexed files are known to the authority, even without a dataset
	env.run(t, "set", "create", "--name", "empty")
	out := env.run(t, "sets", "--all")
	assert.Contains(t, out, "empty")
	assert.Contains(t, out, "0 files")
	assert.Zero(t, exitMocks.fatalCalls)
}

func TestFatal(t *testing.T) {
	env := setupTests(t)

	env.run(t, "set", "delete", "nothing")
	assert.Equal(t, 1, exitMocks.fatalCalls)

	env.run(t, "set", "create", "--name", "twice")
	env.run(t, "set", "create", "--name", "twice")
	assert.Equal(t, 2, exitMocks.fatalCalls)
}

func TestVersion(t *testing.T) {
	env := setupTests(t)
	out := env.run(t, "version")
	assert.Contains(t, out, "Version: dev\n")

	defer func() { Version, BuildDate, GitCommit = "", "", "" }()
	Version, BuildDate, GitCommit = "v1.2.3", "2014-01-01", "abc123"
	assert.Equal(t, "Version: v1.2.3\nBuild date: 2014-01-01\nCommit: abc123\n", env.run(t, "version"))
}

func TestCPUProfile(t *testing.T) {
	env := setupTests(t)
	prof := env.path("cpu.prof")
	env.run(t, "sets", "--cpuprof", prof)
	ok, err := afero.Exists(appFs, prof)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, exitMocks.fatalCalls)
}

func TestImportCommand(t *testing.T) {
	env := setupTests(t)
	a := env.path("data/a.txt")
	snapshot := env.path("deployed.snapshot")
	require.NoError(t, afero.WriteFile(appFs, snapshot, []byte(hashAlpha+" deployed "+a+" raw\n"), 0644))

	env.run(t, "import", snapshot)
	assert.Contains(t, env.run(t, "sets"), "deployed")
	assert.Equal(t, a+"\n", env.run(t, "files", "-1", "deployed", "raw"))
	assert.Zero(t, exitMocks.fatalCalls)
}

func TestAvailabilityText(t *testing.T) {
	defer func(restore bool) { color.NoColor = restore }(color.NoColor)
	color.NoColor = false

	assert.Empty(t, availabilityText(query.Readable), "readable files carry no marker, not even escape codes")
	assert.Contains(t, availabilityText(query.NoRead), "(no read)")
	assert.Contains(t, availabilityText(query.NoMeta), "(no meta)")
}
