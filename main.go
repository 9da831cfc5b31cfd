package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/avahowell/passgen/secureclip"
)

// die reports err on w and returns the process exit status.
func die(w io.Writer, err error) int {
	fmt.Fprintln(w, "⚠️ Error: "+err.Error())
	return 1
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// run dispatches to the mode selected by args. Without arguments passgen
// asks for its settings interactively.
func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := loadConfig(newFlagSet(), args)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return errors.Wrap(err, "building logger")
	}
	defer log.Sync()

	a := newApp(cfg, stdout, log)
	defer a.close()

	switch {
	case len(args) == 0:
		log.Debug("starting interactive prompts")
		rl, err := readline.NewEx(&readline.Config{
			Stdin:  io.NopCloser(stdin),
			Stdout: stdout,
		})
		if err != nil {
			return err
		}
		defer rl.Close()
		return a.interactive(rl)
	case cfg.Shell:
		log.Debug("starting shell")
		return a.shell(stdin, stdout)
	case cfg.TUI:
		log.Debug("starting full-screen interface", zap.Duration("timeout", cfg.Timeout))
		return runUI(a, cfg.Timeout)
	default:
		if cfg.Copy && secureclip.Unsupported() {
			return errors.New("no clipboard utility available")
		}
		return a.runFlags(cfg)
	}
}

// exitCode runs passgen and maps its outcome to an exit status.
func exitCode(args []string, stdin io.Reader, stdout io.Writer) int {
	err := run(args, stdin, stdout)
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	return die(stdout, err)
}

func main() {
	os.Exit(exitCode(os.Args[1:], os.Stdin, os.Stdout))
}
