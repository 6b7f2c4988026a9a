package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/promob-import/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.xml")
	require.NoError(t, os.WriteFile(testFile, []byte("<a/>"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.xml")))
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()
	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))
}

func TestEnsureDirectoryExists(t *testing.T) {
	newDir := filepath.Join(t.TempDir(), "new", "nested", "dir")
	require.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	assert.True(t, fileutils.DirectoryExists(newDir))

	require.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	require.NoError(t, fileutils.EnsureDirectoryExists(""))
}

func TestReadInput(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "orc.xml")
	require.NoError(t, os.WriteFile(testFile, []byte("<PROMOB/>"), 0600))

	data, err := fileutils.ReadInput(testFile)
	require.NoError(t, err)
	assert.Equal(t, "<PROMOB/>", string(data))

	tests := []struct {
		name string
		path string
		msg  string
	}{
		{"empty", "", "--input"},
		{"directory", tmpDir, "is a directory"},
		{"missing", filepath.Join(tmpDir, "missing.xml"), "does not exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fileutils.ReadInput(tt.path)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "orc.json")
	require.NoError(t, fileutils.WriteFile(path, []byte("{}")))

	data, err := os.ReadFile(path) // #nosec G304 -- test file
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "itens.csv")
	f, err := fileutils.CreateFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.True(t, fileutils.FileExists(path))
}

func TestListFilesWithExtension(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"b.xml", "a.XML", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), nil, 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "d.xml"), 0750))

	files, err := fileutils.ListFilesWithExtension(tmpDir, ".xml")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "a.XML"), filepath.Join(tmpDir, "b.xml")}, files)

	_, err = fileutils.ListFilesWithExtension(filepath.Join(tmpDir, "missing"), ".xml")
	assert.Error(t, err)
}
