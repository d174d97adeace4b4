package filestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "life.rules")
	require.NoError(t, Write(path, "9|2|d|3,3,;;2,2,|(..)"))

	text, ok, err := Read(path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "9|2|d|3,3,;;2,2,|(..)", text)
}

func TestReadMissingOrEmptyIsNotAnError(t *testing.T) {
	dir := t.TempDir()

	_, ok, err := Read("")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = Read(filepath.Join(dir, "missing.rules"))
	require.NoError(t, err)
	assert.False(t, ok)

	empty := filepath.Join(dir, "empty.rules")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, ok, err = Read(empty)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadOnlyFirstLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.rules")
	require.NoError(t, os.WriteFile(path, []byte("3|1|d|;;|(..)\r\nsecond line\n"), 0o644))

	text, ok, err := Read(path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3|1|d|;;|(..)", text)
}

func TestWriteRejectsMultiline(t *testing.T) {
	assert.Error(t, Write(filepath.Join(t.TempDir(), "x"), "a\nb"))
}
