package passfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avahowell/passgen/filelock"
)

func TestSaveWritesRawPassword(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	path, err := w.Save("correo", "Aa1!xyzXYZ")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "correo.txt"), path)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Aa1!xyzXYZ", string(contents))

	_, err = os.Stat(path + ".lck")
	assert.True(t, os.IsNotExist(err), "lockfile should be released")
}

func TestSaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	_, err := w.Save("banco", "first-password")
	require.NoError(t, err)
	path, err := w.Save("banco", "2nd")
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2nd", string(contents))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestSaveInvalidTitle(t *testing.T) {
	w := NewWriter(t.TempDir(), nil)
	tests := []struct {
		title string
		want  error
	}{
		{"", ErrEmptyTitle},
		{"   ", ErrEmptyTitle},
		{"../escape", ErrInvalidTitle},
		{`dir\file`, ErrInvalidTitle},
		{"..", ErrInvalidTitle},
	}
	for _, tt := range tests {
		_, err := w.Save(tt.title, "secret")
		var perr *PersistenceError
		require.True(t, errors.As(err, &perr), "title %q", tt.title)
		assert.True(t, errors.Is(err, tt.want), "title %q: got %v", tt.title, err)
	}
}

func TestSaveLocked(t *testing.T) {
	dir := t.TempDir()
	lock, err := filelock.Lock(filepath.Join(dir, "wifi.txt"))
	require.NoError(t, err)
	defer lock.Unlock()

	_, err = NewWriter(dir, nil).Save("wifi", "secret")
	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.True(t, errors.Is(err, filelock.ErrLocked))
	assert.Equal(t, filepath.Join(dir, "wifi.txt"), perr.Path)
	assert.Contains(t, err.Error(), lock.Path())
}

func TestSaveMissingDirectory(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "missing"), nil)
	_, err := w.Save("x", "secret")
	var perr *PersistenceError
	assert.True(t, errors.As(err, &perr))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "github.txt", FileName("github"))
}
