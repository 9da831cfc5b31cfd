package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCodeInvalidLength(t *testing.T) {
	out := new(strings.Builder)
	code := exitCode([]string{"-l", "3"}, strings.NewReader(""), out)
	assert.Equal(t, 1, code)
	assert.Equal(t, "⚠️ Error: password length must be at least 8, got 3\n", out.String())
}

func TestExitCodeHugeCount(t *testing.T) {
	out := new(strings.Builder)
	code := exitCode([]string{"-n", "4611686018427387904", "-l", "3"}, strings.NewReader(""), out)
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(out.String(), "⚠️ Error: "), out.String())
}

func TestExitCodeSuccess(t *testing.T) {
	out := new(strings.Builder)
	assert.Equal(t, 0, exitCode([]string{"-l", "10"}, strings.NewReader(""), out))
	assert.Len(t, strings.TrimSuffix(out.String(), "\n"), 10)
}

// TestMainExitStatus runs the test binary as passgen to check the real
// process exit status.
func TestMainExitStatus(t *testing.T) {
	if os.Getenv("PASSGEN_AS_MAIN") == "1" {
		os.Args = []string{"passgen", "-l", "3"}
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestMainExitStatus$")
	cmd.Env = append(os.Environ(), "PASSGEN_AS_MAIN=1")
	out, err := cmd.Output()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(out), "⚠️ Error: password length must be at least 8, got 3")
}

func TestRunShell(t *testing.T) {
	in := strings.NewReader("generar 10 2\nfuerza aaaaaaaa\nbogus\nexit\n")
	out := new(strings.Builder)
	require.NoError(t, run([]string{"--shell"}, in, out))

	got := out.String()
	assert.Contains(t, got, "1. ")
	assert.Contains(t, got, "2. ")
	assert.Contains(t, got, "████░░░░░░ 45% (Débil)")
	assert.Contains(t, got, "command not recognized")
}
