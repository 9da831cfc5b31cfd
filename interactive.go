package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/avahowell/passgen/strength"
)

// lineReader reads one answer per prompt. *readline.Instance implements it.
type lineReader interface {
	SetPrompt(string)
	Readline() (string, error)
}

// ask shows prompt and returns the trimmed answer. End of input counts as an
// empty answer.
func ask(lr lineReader, prompt string) (string, error) {
	lr.SetPrompt(prompt)
	line, err := lr.Readline()
	if err == io.EOF {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askInt asks for an integer, returning def for an empty answer.
func askInt(lr lineReader, prompt string, def int) (int, error) {
	answer, err := ask(lr, prompt)
	if err != nil {
		return 0, err
	}
	if answer == "" {
		return def, nil
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, errors.Newf("%q is not a whole number", answer)
	}
	return n, nil
}

// interactive asks for a length and a count, prints the passwords with their
// strength and, for a single password, offers to save it to a file.
func (a *app) interactive(lr lineReader) error {
	length, err := askInt(lr, fmt.Sprintf("Longitud de la contraseña [%d]: ", a.length), a.length)
	if err != nil {
		return err
	}
	count, err := askInt(lr, fmt.Sprintf("Número de contraseñas [%d]: ", a.count), a.count)
	if err != nil {
		return err
	}

	passwords, err := a.generate(count, length)
	if err != nil {
		return err
	}

	if len(passwords) > 1 {
		for i, pw := range passwords {
			fmt.Fprintf(a.out, "%d. %s\n", i+1, pw)
			fmt.Fprintf(a.out, "   %s\n", strength.Bar(pw))
		}
		return nil
	}

	pw := passwords[0]
	fmt.Fprintf(a.out, "Contraseña generada: %s\n", pw)
	fmt.Fprintf(a.out, "Fortaleza: %s\n", strength.Bar(pw))

	answer, err := ask(lr, "¿Deseas guardar esta contraseña? (s/n): ")
	if err != nil {
		return err
	}
	if strings.ToLower(answer) != "s" {
		fmt.Fprintln(a.out, "Contraseña no guardada.")
		return nil
	}

	title, err := ask(lr, "Ingresa un título para el archivo (sin extensión): ")
	if err != nil {
		return err
	}
	return a.save(title, pw)
}
