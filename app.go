package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/avahowell/passgen/passfile"
	"github.com/avahowell/passgen/pwgen"
	"github.com/avahowell/passgen/secureclip"
	"github.com/avahowell/passgen/strength"
)

var errNothingGenerated = errors.New("no password has been generated yet")

// clipper is the clipboard used to hand out passwords.
type clipper interface {
	Clip(string) error
	Clear() error
	Timeout() time.Duration
}

// app ties the generator to the outputs a run can use: the terminal, password
// files and the clipboard.
type app struct {
	gen   *pwgen.Generator
	files *passfile.Writer
	clip  clipper
	log   *zap.Logger
	out   io.Writer

	length  int
	count   int
	last    string
	clipped bool
}

func newApp(cfg config, out io.Writer, log *zap.Logger) *app {
	return &app{
		gen: pwgen.New(pwgen.Options{
			MinLength:        cfg.MinLength,
			IncludeAmbiguous: cfg.Ambiguous,
		}),
		files:  passfile.NewWriter("", log),
		clip:   secureclip.New(secureclip.DefaultTimeout),
		log:    log,
		out:    out,
		length: cfg.Length,
		count:  cfg.Count,
	}
}

// generate creates count passwords of the given length and remembers the last
// one for save and copy.
func (a *app) generate(count, length int) ([]string, error) {
	passwords, err := a.gen.GenerateMany(count, length)
	if err != nil {
		return nil, err
	}
	a.last = passwords[len(passwords)-1]
	a.log.Debug("passwords generated", zap.Int("count", count), zap.Int("length", length))
	return passwords, nil
}

// save writes password to `<title>.txt` and prints a confirmation.
func (a *app) save(title, password string) error {
	if _, err := a.files.Save(title, password); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Contraseña guardada en '%s'.\n", passfile.FileName(strings.TrimSpace(title)))
	return nil
}

// copy places password on the clipboard.
func (a *app) copy(password string) error {
	if err := a.clip.Clip(password); err != nil {
		return errors.Wrap(err, "copying to clipboard")
	}
	a.clipped = true
	a.log.Debug("password copied to clipboard", zap.Duration("clear_after", a.clip.Timeout()))
	return nil
}

// close clears the clipboard if this run wrote to it.
func (a *app) close() {
	if a.clipped {
		if err := a.clip.Clear(); err != nil {
			a.log.Warn("could not clear clipboard", zap.Error(err))
		}
	}
}

// runFlags is the non-interactive mode driven by command line flags.
func (a *app) runFlags(cfg config) error {
	passwords, err := a.generate(cfg.Count, cfg.Length)
	if err != nil {
		return err
	}
	if len(passwords) > 1 {
		for _, pw := range passwords {
			fmt.Fprintln(a.out, pw)
		}
		return nil
	}

	pw := passwords[0]
	fmt.Fprintln(a.out, pw)
	if cfg.Strength {
		fmt.Fprintln(a.out, strength.Bar(pw))
	}
	if cfg.SaveTitle != "" {
		if err := a.save(cfg.SaveTitle, pw); err != nil {
			return err
		}
	}
	if cfg.Copy {
		if err := a.copy(pw); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Contraseña copiada al portapapeles, se borrará en %v.\n", a.clip.Timeout())
		// the clipboard is cleared on close, so stay alive until then.
		time.Sleep(a.clip.Timeout())
	}
	return nil
}
