package main

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/avahowell/passgen/pwgen"
)

const (
	envPrefix      = "PASSGEN"
	defaultTimeout = 5 * time.Minute
)

// config is the resolved configuration for a single invocation. Values come
// from flags, then PASSGEN_* environment variables, then defaults.
type config struct {
	Length    int
	Count     int
	Strength  bool
	SaveTitle string
	Copy      bool
	MinLength int
	Ambiguous bool
	Shell     bool
	TUI       bool
	Timeout   time.Duration
	Verbose   bool
}

var errSingleOnly = errors.New("--guardar and --copiar require a single password")

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("passgen", pflag.ContinueOnError)
	fs.IntP("longitud", "l", pwgen.DefaultLength, "password length")
	fs.IntP("numero", "n", 1, "number of passwords to generate")
	fs.BoolP("fortaleza", "f", false, "print the strength bar (single password only)")
	fs.StringP("guardar", "g", "", "save the password to `titulo`.txt")
	fs.BoolP("copiar", "c", false, "copy the password to the clipboard")
	fs.Int("minimo", pwgen.DefaultMinLength, "minimum accepted length")
	fs.Bool("ambiguos", false, "allow ambiguous characters (l 1 I 0 O |)")
	fs.Bool("shell", false, "start an interactive shell")
	fs.Bool("tui", false, "start the full-screen interface")
	fs.Duration("timeout", defaultTimeout, "idle time before the full-screen interface exits")
	fs.BoolP("verbose", "v", false, "enable debug logging on stderr")
	return fs
}

// loadConfig parses args with fs and resolves every setting through viper.
func loadConfig(fs *pflag.FlagSet, args []string) (config, error) {
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() > 0 {
		return config{}, errors.Newf("unexpected arguments: %v", fs.Args())
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return config{}, errors.Wrap(err, "binding flags")
	}

	cfg := config{
		Length:    v.GetInt("longitud"),
		Count:     v.GetInt("numero"),
		Strength:  v.GetBool("fortaleza"),
		SaveTitle: v.GetString("guardar"),
		Copy:      v.GetBool("copiar"),
		MinLength: v.GetInt("minimo"),
		Ambiguous: v.GetBool("ambiguos"),
		Shell:     v.GetBool("shell"),
		TUI:       v.GetBool("tui"),
		Timeout:   v.GetDuration("timeout"),
		Verbose:   v.GetBool("verbose"),
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	if c.Count < 1 {
		return errors.Wrapf(pwgen.ErrInvalidCount, "got %d", c.Count)
	}
	if c.Count > 1 && (c.SaveTitle != "" || c.Copy) {
		return errSingleOnly
	}
	if c.Shell && c.TUI {
		return errors.New("--shell and --tui are mutually exclusive")
	}
	if c.Timeout <= 0 {
		return errors.Newf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}
