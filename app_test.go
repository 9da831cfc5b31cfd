package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avahowell/passgen/passfile"
	"github.com/avahowell/passgen/pwgen"
	"github.com/avahowell/passgen/strength"
)

func TestRunFlagsSingle(t *testing.T) {
	a, out, _, _ := newTestApp(t)
	require.NoError(t, a.runFlags(config{Length: 16, Count: 1}))

	pw := strings.TrimSuffix(out.String(), "\n")
	assert.Len(t, pw, 16)
	assert.NotContains(t, pw, "\n")
}

func TestRunFlagsStrength(t *testing.T) {
	a, out, _, _ := newTestApp(t)
	require.NoError(t, a.runFlags(config{Length: 20, Count: 1, Strength: true}))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strength.Bar(lines[0]), lines[1])
}

func TestRunFlagsMany(t *testing.T) {
	a, out, _, _ := newTestApp(t)
	require.NoError(t, a.runFlags(config{Length: 9, Count: 5, Strength: true}))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 5, "strength bars are only printed for a single password")
	for _, pw := range lines {
		assert.Len(t, pw, 9)
	}
}

func TestRunFlagsSaveAndCopy(t *testing.T) {
	a, out, fc, dir := newTestApp(t)
	require.NoError(t, a.runFlags(config{Length: 20, Count: 1, SaveTitle: "wifi", Copy: true}))

	pw := strings.SplitN(out.String(), "\n", 2)[0]
	contents, err := os.ReadFile(filepath.Join(dir, "wifi.txt"))
	require.NoError(t, err)
	assert.Equal(t, pw, string(contents))
	assert.Equal(t, pw, fc.contents)
	assert.Contains(t, out.String(), "Contraseña guardada en 'wifi.txt'.")
	assert.Contains(t, out.String(), "Contraseña copiada al portapapeles")
}

func TestRunFlagsErrors(t *testing.T) {
	a, _, _, _ := newTestApp(t)
	err := a.runFlags(config{Length: 4, Count: 1})
	assert.True(t, errors.Is(err, pwgen.ErrInvalidLength))

	err = a.runFlags(config{Length: 20, Count: 1, SaveTitle: "a/b"})
	var perr *passfile.PersistenceError
	assert.True(t, errors.As(err, &perr))
}

func TestRunInvalidLength(t *testing.T) {
	err := run([]string{"-l", "3"}, strings.NewReader(""), new(strings.Builder))
	require.Error(t, err)
	assert.True(t, errors.Is(err, pwgen.ErrInvalidLength))
	assert.Equal(t, "password length must be at least 8, got 3", err.Error())
}

func TestRunFlagMode(t *testing.T) {
	out := new(strings.Builder)
	require.NoError(t, run([]string{"-l", "24", "-n", "2"}, strings.NewReader(""), out))
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 24)
	assert.Len(t, lines[1], 24)
}
