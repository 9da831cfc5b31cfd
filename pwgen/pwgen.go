package pwgen

import (
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	// DefaultLength is the password length used when the caller has no
	// preference.
	DefaultLength = 20
	// DefaultMinLength is the shortest password Generate accepts. A larger
	// floor can be configured through Options.MinLength.
	DefaultMinLength = 8

	// mandatory is the number of characters drawn one per category.
	mandatory = 4
	// maxPrealloc bounds the slice GenerateMany allocates up front.
	maxPrealloc = 1024
)

const (
	// Upper defines the uppercase ASCII letters.
	Upper = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// Lower defines the lowercase ASCII letters.
	Lower = "abcdefghijklmnopqrstuvwxyz"
	// Digits defines the decimal digits.
	Digits = "0123456789"
	// Punctuation defines the ASCII punctuation symbols.
	Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	// Ambiguous lists characters that are easily confused with one another
	// when read back by a human.
	Ambiguous = "l1I0O|"
)

var (
	// ErrInvalidLength is returned from Generate when the requested length is
	// below the generator's minimum. Use errors.Is from
	// github.com/cockroachdb/errors to match it.
	ErrInvalidLength = errors.New("invalid password length")

	// ErrInvalidCount is returned from GenerateMany when count is not
	// positive.
	ErrInvalidCount = errors.New("password count must be at least 1")
)

type (
	// Options configures a Generator. The zero value yields the default
	// generator: crypto/rand source, minimum length 8, ambiguous characters
	// excluded from the pool.
	Options struct {
		// Source is the randomness used for every draw and for the final
		// shuffle. Nil selects CryptoSource.
		Source Source
		// MinLength raises the minimum accepted length. Values below
		// DefaultMinLength are ignored.
		MinLength int
		// IncludeAmbiguous keeps the characters in Ambiguous in the pool.
		IncludeAmbiguous bool
	}

	// Generator produces passwords containing at least one uppercase letter,
	// one lowercase letter, one digit and one punctuation symbol, with the
	// remaining characters drawn from its pool and the whole sequence
	// shuffled.
	Generator struct {
		src       Source
		minLength int
		pool      string
	}
)

// New creates a Generator configured by opts.
func New(opts Options) *Generator {
	src := opts.Source
	if src == nil {
		src = CryptoSource{}
	}
	minLength := DefaultMinLength
	if opts.MinLength > minLength {
		minLength = opts.MinLength
	}
	return &Generator{
		src:       src,
		minLength: minLength,
		pool:      buildPool(!opts.IncludeAmbiguous),
	}
}

// buildPool returns every category concatenated, without the ambiguous
// characters when exclude is set.
func buildPool(exclude bool) string {
	all := Upper + Lower + Digits + Punctuation
	if !exclude {
		return all
	}
	var b strings.Builder
	for i := 0; i < len(all); i++ {
		if strings.IndexByte(Ambiguous, all[i]) < 0 {
			b.WriteByte(all[i])
		}
	}
	return b.String()
}

// MinLength returns the shortest length Generate accepts.
func (g *Generator) MinLength() int {
	return g.minLength
}

// Pool returns the characters used for the non-mandatory positions.
func (g *Generator) Pool() string {
	return g.pool
}

// Generate creates a password of exactly `length` characters. One character
// is taken from each full category (the ambiguous filter applies to the pool
// only), the rest are drawn from the pool with replacement, and the result is
// shuffled with Fisher-Yates.
func (g *Generator) Generate(length int) (string, error) {
	if err := g.checkLength(length); err != nil {
		return "", err
	}

	buf := make([]byte, 0, length)
	for _, category := range []string{Upper, Lower, Digits, Punctuation} {
		c, err := g.pick(category)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}
	for len(buf) < length {
		c, err := g.pick(g.pool)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	if err := g.shuffle(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// GenerateMany calls Generate `count` times and returns the passwords in
// order. Every password is drawn independently.
func (g *Generator) GenerateMany(count, length int) ([]string, error) {
	if count < 1 {
		return nil, errors.Wrapf(ErrInvalidCount, "got %d", count)
	}
	if err := g.checkLength(length); err != nil {
		return nil, err
	}
	// count is caller supplied, so the preallocation is bounded.
	passwords := make([]string, 0, min(count, maxPrealloc))
	for i := 0; i < count; i++ {
		pw, err := g.Generate(length)
		if err != nil {
			return nil, err
		}
		passwords = append(passwords, pw)
	}
	return passwords, nil
}

func (g *Generator) checkLength(length int) error {
	if length < g.minLength {
		return errors.Mark(
			errors.Newf("password length must be at least %d, got %d", g.minLength, length),
			ErrInvalidLength,
		)
	}
	return nil
}

func (g *Generator) pick(charset string) (byte, error) {
	idx, err := g.src.Intn(len(charset))
	if err != nil {
		return 0, errors.Wrap(err, "drawing character")
	}
	return charset[idx], nil
}

func (g *Generator) shuffle(buf []byte) error {
	for i := len(buf) - 1; i > 0; i-- {
		j, err := g.src.Intn(i + 1)
		if err != nil {
			return errors.Wrap(err, "shuffling password")
		}
		buf[i], buf[j] = buf[j], buf[i]
	}
	return nil
}
