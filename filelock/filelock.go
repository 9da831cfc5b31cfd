package filelock

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// ErrLocked is returned from Lock if the lockfile for the target already
// exists.
var ErrLocked = errors.New("specified lockfile is locked")

// FileLock is a handle to an on-disk file lock.
type FileLock struct {
	path string
}

// Lock attempts to acquire a lock on the file at `filename` by exclusively
// creating `filename.lck`. Returns ErrLocked if the lockfile already exists.
func Lock(filename string) (*FileLock, error) {
	absolutePath, err := filepath.Abs(filename + ".lck")
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(absolutePath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if os.IsExist(err) {
		return nil, ErrLocked
	}
	if err != nil {
		return nil, err
	}
	if err = f.Close(); err != nil {
		os.Remove(absolutePath)
		return nil, err
	}

	return &FileLock{
		path: absolutePath,
	}, nil
}

// Path returns the location of the lockfile.
func (fl *FileLock) Path() string {
	return fl.path
}

// Unlock unlocks the FileLock.
func (fl *FileLock) Unlock() error {
	return os.Remove(fl.path)
}
