package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCPUProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.prof")
	stop, err := CPUProfile(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	stop()

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, fi.Size())

	_, err = CPUProfile(filepath.Join(t.TempDir(), "missing", "cpu.prof"), zaptest.NewLogger(t))
	assert.Error(t, err)
}
