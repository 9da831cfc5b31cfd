package strength

import (
	zxcvbn "github.com/ccojocar/zxcvbn-go"
)

// Report combines the heuristic score with a pattern-based estimate from
// zxcvbn.
type Report struct {
	Score     float64
	Bar       string
	Label     string
	Entropy   float64 // bits
	CrackTime string
	Guessable int // zxcvbn score, 0 (weakest) to 4
}

// Analyze builds a Report for password. hints are words such as user names
// that should count against the password when it contains them.
func Analyze(password string, hints ...string) Report {
	s := Score(password)
	r := Report{
		Score: s,
		Bar:   Render(s),
		Label: Label(s),
	}
	if password == "" {
		return r
	}
	est := zxcvbn.PasswordStrength(password, hints)
	r.Entropy = est.Entropy
	r.CrackTime = est.CrackTimeDisplay
	r.Guessable = est.Score
	return r
}
