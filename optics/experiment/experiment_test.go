package experiment

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateExperimentID(t *testing.T) {
	assert := assert.New(t)

	parts := strings.Split(GenerateExperimentID(), "-")
	require.Len(t, parts, 4)
	assert.Contains(adjectives, parts[0])
	assert.Contains(nouns, parts[1])
	assert.Len(parts[2], 8)
	assert.Len(parts[3], 6)
}

func TestCreateExperimentDirectory(t *testing.T) {
	assert := assert.New(t)

	root := t.TempDir()
	dir, err := CreateExperimentDirectory(root)
	require.NoError(t, err)

	assert.True(filepath.IsAbs(dir.Path))
	assert.DirExists(dir.Path)
	assert.Equal(filepath.Join(dir.Path, "trace.png"), dir.GetFilePath("trace.png"))

	target, err := os.Readlink(filepath.Join(root, LatestSymlink))
	require.NoError(t, err)
	assert.Equal(dir.ID, target)

	src := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(src, []byte("family: abcd\n"), 0644))
	require.NoError(t, dir.CopyConfigFile(src))
	content, err := os.ReadFile(dir.GetFilePath("bench.yaml"))
	require.NoError(t, err)
	assert.Equal("family: abcd\n", string(content))

	assert.Error(dir.CopyConfigFile(filepath.Join(root, "missing.yaml")))
}
