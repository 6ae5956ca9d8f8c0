package alignment

import (
	"fmt"
	"strings"
)

// Alignment is one pair of equal-length gapped strings.
type Alignment struct {
	AlignedSeq1 string
	AlignedSeq2 string
	// Score is the column-wise score; set by SelectBest and Rescore callers.
	Score    int
	Identity float64
}

// NewAlignment creates an alignment and computes its identity fraction.
func NewAlignment(aligned1, aligned2 string, score int) (*Alignment, error) {
	if len(aligned1) != len(aligned2) {
		return nil, fmt.Errorf("aligned sequences must have equal length")
	}

	a := &Alignment{
		AlignedSeq1: aligned1,
		AlignedSeq2: aligned2,
		Score:       score,
	}
	a.Identity = a.calculateIdentity()
	return a, nil
}

// calculateIdentity calculates the fraction of identical, non-gap columns.
func (a *Alignment) calculateIdentity() float64 {
	if len(a.AlignedSeq1) == 0 {
		return 0.0
	}
	return float64(a.MatchCount()) / float64(len(a.AlignedSeq1))
}

// Length returns the number of columns.
func (a *Alignment) Length() int {
	return len(a.AlignedSeq1)
}

// countColumns counts non-gap columns of the given substitution class.
func (a *Alignment) countColumns(kind Substitution) int {
	count := 0
	for i := 0; i < len(a.AlignedSeq1); i++ {
		c1, c2 := a.AlignedSeq1[i], a.AlignedSeq2[i]
		if c1 == Gap || c2 == Gap {
			continue
		}
		if Classify(c1, c2) == kind {
			count++
		}
	}
	return count
}

// MatchCount returns the number of identical columns.
func (a *Alignment) MatchCount() int {
	return a.countColumns(Identity)
}

// TransitionCount returns the number of transition columns.
func (a *Alignment) TransitionCount() int {
	return a.countColumns(Transition)
}

// TransversionCount returns the number of transversion columns.
func (a *Alignment) TransversionCount() int {
	return a.countColumns(Transversion)
}

// GapsSeq1 returns the number of gaps in sequence 1.
func (a *Alignment) GapsSeq1() int {
	return strings.Count(a.AlignedSeq1, string(Gap))
}

// GapsSeq2 returns the number of gaps in sequence 2.
func (a *Alignment) GapsSeq2() int {
	return strings.Count(a.AlignedSeq2, string(Gap))
}

// TotalGaps returns the total number of gaps.
func (a *Alignment) TotalGaps() int {
	return a.GapsSeq1() + a.GapsSeq2()
}

// ToCIGAR generates a CIGAR string. A gap in sequence 1 is an insertion (I),
// a gap in sequence 2 a deletion (D).
func (a *Alignment) ToCIGAR() string {
	if len(a.AlignedSeq1) == 0 {
		return ""
	}

	var cigar strings.Builder
	currentOp := byte(0)
	count := 0

	for i := 0; i < len(a.AlignedSeq1); i++ {
		var op byte
		switch {
		case a.AlignedSeq1[i] == Gap:
			op = 'I'
		case a.AlignedSeq2[i] == Gap:
			op = 'D'
		case a.AlignedSeq1[i] == a.AlignedSeq2[i]:
			op = 'M'
		default:
			op = 'X'
		}

		if op == currentOp {
			count++
			continue
		}
		if count > 0 {
			fmt.Fprintf(&cigar, "%d%c", count, currentOp)
		}
		currentOp = op
		count = 1
	}

	if count > 0 {
		fmt.Fprintf(&cigar, "%d%c", count, currentOp)
	}

	return cigar.String()
}

// Format returns the alignment with a marker line between the two rows:
// '|' identity, ':' transition, '.' transversion, ' ' gap.
func (a *Alignment) Format() string {
	var marks strings.Builder
	for i := 0; i < len(a.AlignedSeq1); i++ {
		c1, c2 := a.AlignedSeq1[i], a.AlignedSeq2[i]
		if c1 == Gap || c2 == Gap {
			marks.WriteByte(' ')
			continue
		}
		switch Classify(c1, c2) {
		case Identity:
			marks.WriteByte('|')
		case Transition:
			marks.WriteByte(':')
		default:
			marks.WriteByte('.')
		}
	}

	return fmt.Sprintf("Seq1: %s\n      %s\nSeq2: %s\nScore: %d\nIdentity: %.1f%%\nCIGAR: %s",
		a.AlignedSeq1, marks.String(), a.AlignedSeq2,
		a.Score, a.Identity*100, a.ToCIGAR())
}

func (a *Alignment) String() string {
	return fmt.Sprintf("Alignment { score: %d, identity: %.1f%%, length: %d }",
		a.Score, a.Identity*100, a.Length())
}
