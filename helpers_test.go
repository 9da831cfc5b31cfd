package main

import (
	"bytes"
	"io"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/avahowell/passgen/passfile"
	"github.com/avahowell/passgen/pwgen"
)

type fakeClipper struct {
	contents string
	clears   int
}

func (f *fakeClipper) Clip(s string) error {
	f.contents = s
	return nil
}

func (f *fakeClipper) Clear() error {
	f.contents = ""
	f.clears++
	return nil
}

func (f *fakeClipper) Timeout() time.Duration { return time.Millisecond }

// scriptedReader answers prompts from a fixed list, then reports io.EOF.
type scriptedReader struct {
	answers []string
	prompts []string
}

func (s *scriptedReader) SetPrompt(p string) {
	s.prompts = append(s.prompts, p)
}

func (s *scriptedReader) Readline() (string, error) {
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	line := s.answers[0]
	s.answers = s.answers[1:]
	return line, nil
}

// newTestApp returns an app writing files to a temporary directory, output
// to a buffer and copies to a fake clipboard.
func newTestApp(t *testing.T) (*app, *bytes.Buffer, *fakeClipper, string) {
	t.Helper()
	dir := t.TempDir()
	out := new(bytes.Buffer)
	fc := new(fakeClipper)
	a := &app{
		gen:    pwgen.New(pwgen.Options{}),
		files:  passfile.NewWriter(dir, nil),
		clip:   fc,
		log:    zap.NewNop(),
		out:    out,
		length: pwgen.DefaultLength,
		count:  1,
	}
	return a, out, fc, dir
}
