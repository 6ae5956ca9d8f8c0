// Package alignment implements Needleman-Wunsch global alignment that keeps
// every optimal traceback.
//
// The pipeline has four stages, each usable on its own:
//
//	BuildTable      score matrix plus the set of optimal predecessors per cell
//	EnumeratePaths  every path from (m,n) to (0,0) through the direction table
//	Reconstruct     one path to a pair of gapped strings
//	SelectBest      re-score each alignment column by column, keep the best
//
// NeedlemanWunsch runs all four.
package alignment

import "fmt"

// Gap is the symbol written into an aligned string opposite a consumed base.
const Gap = '_'

// Substitution classifies an aligned pair of symbols.
type Substitution int

const (
	// Identity means both symbols are equal.
	Identity Substitution = iota
	// Transition is a purine/purine or pyrimidine/pyrimidine mismatch.
	Transition
	// Transversion is any other mismatch, including unexpected symbols.
	Transversion
)

func (s Substitution) String() string {
	switch s {
	case Identity:
		return "identity"
	case Transition:
		return "transition"
	case Transversion:
		return "transversion"
	default:
		return "unknown"
	}
}

// Classify returns the substitution class of a pair of symbols.
func Classify(a, b byte) Substitution {
	if a == b {
		return Identity
	}
	if isPurine(a) && isPurine(b) || isPyrimidine(a) && isPyrimidine(b) {
		return Transition
	}
	return Transversion
}

func isPurine(c byte) bool {
	return c == 'A' || c == 'G'
}

func isPyrimidine(c byte) bool {
	return c == 'C' || c == 'T'
}

// Scheme holds the four scoring parameters of one alignment run. Any integer
// values are accepted; penalties are usually negative.
type Scheme struct {
	Identity     int `json:"identity" mapstructure:"identity"`
	Transition   int `json:"transition" mapstructure:"transition"`
	Transversion int `json:"transversion" mapstructure:"transversion"`
	Gap          int `json:"gap" mapstructure:"gap"`
}

// DefaultScheme returns identity=4, transition=-2, transversion=-3, gap=-8.
func DefaultScheme() *Scheme {
	return &Scheme{
		Identity:     4,
		Transition:   -2,
		Transversion: -3,
		Gap:          -8,
	}
}

// orDefault lets every core entry point accept a nil scheme.
func (s *Scheme) orDefault() *Scheme {
	if s == nil {
		return DefaultScheme()
	}
	return s
}

// Score returns the score for aligning base1 against base2.
func (s *Scheme) Score(base1, base2 byte) int {
	switch Classify(base1, base2) {
	case Identity:
		return s.Identity
	case Transition:
		return s.Transition
	default:
		return s.Transversion
	}
}

// ColumnScore scores one alignment column. Equal symbols score Identity, even
// when both are the gap symbol; otherwise a gap on either side costs Gap.
func (s *Scheme) ColumnScore(c1, c2 byte) int {
	if c1 == c2 {
		return s.Identity
	}
	if c1 == Gap || c2 == Gap {
		return s.Gap
	}
	return s.Score(c1, c2)
}

// String returns a string representation of the scheme.
func (s *Scheme) String() string {
	return fmt.Sprintf("Scheme { identity: %d, transition: %d, transversion: %d, gap: %d }",
		s.Identity, s.Transition, s.Transversion, s.Gap)
}
