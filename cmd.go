package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/avahowell/passgen/repl"
	"github.com/avahowell/passgen/strength"
)

var (
	genCmd = func(a *app) repl.Command {
		return repl.Command{
			Name:   "generar",
			Action: gen(a),
			Usage:  "generar [longitud] [numero]: generate passwords, 20 characters and 1 password by default",
		}
	}

	scoreCmd = func() repl.Command {
		return repl.Command{
			Name:   "fuerza",
			Action: score,
			Usage:  "fuerza [password]: show the strength of [password]. Quote passwords containing spaces or ; & | < >",
		}
	}

	saveCmd = func(a *app) repl.Command {
		return repl.Command{
			Name:   "guardar",
			Action: save(a),
			Usage:  "guardar [title]: save the last generated password to [title].txt",
		}
	}

	copyCmd = func(a *app) repl.Command {
		return repl.Command{
			Name:   "copiar",
			Action: clip(a),
			Usage:  "copiar: copy the last generated password to the clipboard",
		}
	}
)

func parseIntArg(name, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.Newf("%v must be a whole number, got %q", name, arg)
	}
	return n, nil
}

func gen(a *app) repl.ActionFunc {
	return func(args []string) (string, error) {
		if len(args) > 2 {
			return "", errors.New("generar takes at most 2 arguments. See help for usage.")
		}

		length, count := a.length, 1
		var err error
		if len(args) > 0 {
			if length, err = parseIntArg("longitud", args[0]); err != nil {
				return "", err
			}
		}
		if len(args) > 1 {
			if count, err = parseIntArg("numero", args[1]); err != nil {
				return "", err
			}
		}

		passwords, err := a.generate(count, length)
		if err != nil {
			return "", err
		}

		if len(passwords) == 1 {
			return fmt.Sprintf("%v\n%v\n", passwords[0], strength.Bar(passwords[0])), nil
		}
		var b strings.Builder
		for i, pw := range passwords {
			fmt.Fprintf(&b, "%d. %v\n   %v\n", i+1, pw, strength.Bar(pw))
		}
		return b.String(), nil
	}
}

func score(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("fuerza requires 1 argument. See help for usage.")
	}
	r := strength.Analyze(args[0])
	return fmt.Sprintf("%v (%v)\nentropía: %.1f bits, tiempo estimado de descifrado: %v\n", r.Bar, r.Label, r.Entropy, r.CrackTime), nil
}

func save(a *app) repl.ActionFunc {
	return func(args []string) (string, error) {
		if len(args) != 1 {
			return "", errors.New("guardar requires 1 argument. See help for usage.")
		}
		if a.last == "" {
			return "", errNothingGenerated
		}
		if err := a.save(args[0], a.last); err != nil {
			return "", err
		}
		return "", nil
	}
}

func clip(a *app) repl.ActionFunc {
	return func(args []string) (string, error) {
		if len(args) != 0 {
			return "", errors.New("copiar takes no arguments. See help for usage.")
		}
		if a.last == "" {
			return "", errNothingGenerated
		}
		if err := a.copy(a.last); err != nil {
			return "", err
		}
		return fmt.Sprintf("Contraseña copiada al portapapeles, se borrará en %v.\n", a.clip.Timeout()), nil
	}
}

// shell runs the command loop until the user exits.
func (a *app) shell(in io.Reader, out io.Writer) error {
	r := repl.New("passgen > ")
	r.SetIO(in, out)
	r.AddCommand(genCmd(a))
	r.AddCommand(scoreCmd())
	r.AddCommand(saveCmd(a))
	r.AddCommand(copyCmd(a))
	return r.Loop()
}
