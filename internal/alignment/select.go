package alignment

import "errors"

// ErrNoAlignments is returned by SelectBest for an empty candidate list.
var ErrNoAlignments = errors.New("alignment: no alignments to select from")

// Rescore computes the score of a single alignment column by column,
// independently of any DP table.
func Rescore(a *Alignment, scheme *Scheme) int {
	scheme = scheme.orDefault()
	score := 0
	for i := 0; i < len(a.AlignedSeq1); i++ {
		score += scheme.ColumnScore(a.AlignedSeq1[i], a.AlignedSeq2[i])
	}
	return score
}

// SelectBest re-scores every alignment, stores each score in its Score
// field, and returns the first one with the maximal score.
func SelectBest(alignments []*Alignment, scheme *Scheme) (*Alignment, int, error) {
	if len(alignments) == 0 {
		return nil, 0, ErrNoAlignments
	}

	var best *Alignment
	for _, a := range alignments {
		a.Score = Rescore(a, scheme)
		if best == nil || a.Score > best.Score {
			best = a
		}
	}

	return best, best.Score, nil
}
