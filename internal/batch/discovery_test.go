package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func TestDiscoverImageFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.png"))
	touch(t, filepath.Join(dir, "b.JPG"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "sub", "c.jpeg"))

	// Non-recursive skips the subdirectory.
	files, err := discoverImageFiles([]string{dir}, false, nil, nil)
	require.NoError(t, err)
	require.Len(t, files, 2)

	// Recursive picks it up.
	files, err = discoverImageFiles([]string{dir}, true, nil, nil)
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestDiscoverImageFiles_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "receipt.png")
	touch(t, img)

	files, err := discoverImageFiles([]string{img}, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{img}, files)
}

func TestDiscoverImageFiles_Missing(t *testing.T) {
	_, err := discoverImageFiles([]string{"/no/such/path"}, false, nil, nil)
	assert.Error(t, err)
}

func TestShouldIncludeFile(t *testing.T) {
	assert.True(t, shouldIncludeFile("r.png", nil, nil))
	assert.True(t, shouldIncludeFile("R.TIFF", nil, nil))
	assert.False(t, shouldIncludeFile("r.txt", nil, nil))
	assert.False(t, shouldIncludeFile("r.png", nil, []string{"r.*"}))
	assert.True(t, shouldIncludeFile("r.png", []string{"r.*"}, nil))
	assert.False(t, shouldIncludeFile("other.png", []string{"r.*"}, nil))
}
