// Package passfile writes a generated password verbatim to a text file.
package passfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/avahowell/passgen/filelock"
)

// Extension is appended to every title.
const Extension = ".txt"

var (
	// ErrEmptyTitle is returned when no title was given.
	ErrEmptyTitle = errors.New("title must not be empty")
	// ErrInvalidTitle is returned when a title would escape the target
	// directory.
	ErrInvalidTitle = errors.New("title must not contain path separators")
)

// PersistenceError reports a failure to write a password file.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return "saving " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying failure.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Writer saves passwords into a directory.
type Writer struct {
	dir string
	log *zap.Logger
}

// NewWriter creates a Writer targeting dir. An empty dir means the current
// working directory. A nil logger disables logging.
func NewWriter(dir string, log *zap.Logger) *Writer {
	if dir == "" {
		dir = "."
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{dir: dir, log: log}
}

// FileName returns the name a password saved under title receives.
func FileName(title string) string {
	return title + Extension
}

// Save writes password to `<dir>/<title>.txt`, replacing any existing file,
// and returns the path written. The file holds the password bytes only, with
// no trailing newline.
func (w *Writer) Save(title, password string) (string, error) {
	title = strings.TrimSpace(title)
	path := filepath.Join(w.dir, FileName(title))
	if title == "" {
		return "", &PersistenceError{Path: path, Err: ErrEmptyTitle}
	}
	if strings.ContainsAny(title, `/\`) || title == "." || title == ".." {
		return "", &PersistenceError{Path: path, Err: ErrInvalidTitle}
	}

	if err := w.write(path, password); err != nil {
		w.log.Debug("password file not written", zap.String("path", path), zap.Error(err))
		return "", &PersistenceError{Path: path, Err: err}
	}
	w.log.Debug("password file written", zap.String("path", path), zap.Int("bytes", len(password)))
	return path, nil
}

// write atomically replaces path while holding its lock.
func (w *Writer) write(path, password string) error {
	lock, err := filelock.Lock(path)
	if err != nil {
		return errors.Wrapf(err, "locking %s (remove it if no other passgen is running)", path+".lck")
	}
	defer lock.Unlock()

	tempfile, err := os.CreateTemp(filepath.Dir(path), "passgen-temp")
	if err != nil {
		return err
	}
	defer os.Remove(tempfile.Name())
	defer tempfile.Close()

	if _, err = tempfile.WriteString(password); err != nil {
		return err
	}
	if err = tempfile.Sync(); err != nil {
		return err
	}
	if err = tempfile.Close(); err != nil {
		return err
	}

	return os.Rename(tempfile.Name(), path)
}
