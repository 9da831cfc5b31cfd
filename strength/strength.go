// Package strength estimates how strong a password is with a simple
// heuristic and renders the result as a ten-segment bar.
package strength

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/avahowell/passgen/pwgen"
)

const (
	segments = 10

	lengthCap     = 0.3
	lengthDivisor = 40.0
	categoryValue = 0.15
	uniqueCap     = 0.1

	filled = "█"
	empty  = "░"
)

// Score returns a value in [0, 1] summed from three parts:
//
//	length     min(len/40, 0.3)
//	diversity  0.15 per category present (upper, lower, digit, punctuation)
//	uniqueness min(distinct/len, 0.1)
//
// The empty password scores 0.
func Score(password string) float64 {
	n := utf8.RuneCountInString(password)
	if n == 0 {
		return 0
	}

	length := math.Min(float64(n)/lengthDivisor, lengthCap)

	categories := 0
	for _, set := range []string{pwgen.Upper, pwgen.Lower, pwgen.Digits, pwgen.Punctuation} {
		if strings.ContainsAny(password, set) {
			categories++
		}
	}
	diversity := float64(categories) * categoryValue

	distinct := make(map[rune]struct{}, n)
	for _, r := range password {
		distinct[r] = struct{}{}
	}
	unique := math.Min(float64(len(distinct))/float64(n), uniqueCap)

	total := math.Min(length+diversity+unique, 1.0)
	// 0.3+0.6+0.1 is not exactly 1 in binary floating point.
	return math.Round(total*1e9) / 1e9
}

// Render draws score as ten segments followed by its integer percentage,
// e.g. "██████░░░░ 60%". Scores outside [0, 1] are clamped. Both floors add
// 1e-9 first, so 0.29 renders as 29% rather than 28% from float error.
func Render(score float64) string {
	score = math.Max(0, math.Min(score, 1))
	n := int(math.Floor(score*segments + 1e-9))
	pct := int(math.Floor(score*100 + 1e-9))
	return fmt.Sprintf("%s%s %d%%", strings.Repeat(filled, n), strings.Repeat(empty, segments-n), pct)
}

// Bar scores password and renders the result.
func Bar(password string) string {
	return Render(Score(password))
}

// Label names the band score falls in.
func Label(score float64) string {
	switch {
	case score >= 0.9:
		return "Muy fuerte"
	case score >= 0.7:
		return "Fuerte"
	case score >= 0.5:
		return "Media"
	default:
		return "Débil"
	}
}
