package alignment

import (
	"fmt"

	"github.com/aria-lang/nwalign/internal/sequence"
)

// Result is the outcome of one NeedlemanWunsch run.
type Result struct {
	Table *Table
	// Paths holds every enumerated optimal path, in enumeration order.
	Paths []Path
	// Alignments[i] is reconstructed from Paths[i] and carries its
	// recomputed score.
	Alignments []*Alignment
	Best       *Alignment
	// BestIndex is the position of Best in Alignments and Paths.
	BestIndex int
	Score     int
	// OptimalPaths is the total number of optimal paths in the table,
	// which exceeds len(Paths) when Truncated is set.
	OptimalPaths uint64
	Truncated    bool
}

// NeedlemanWunsch aligns seq1 and seq2 globally and keeps every optimal
// traceback. The best alignment is chosen by re-scoring each candidate;
// ties go to the first one enumerated.
//
// Either sequence may be empty. A nil scheme uses DefaultScheme.
func NeedlemanWunsch(seq1, seq2 *sequence.Sequence, scheme *Scheme, opts ...Option) (*Result, error) {
	if seq1 == nil || seq2 == nil {
		return nil, fmt.Errorf("alignment: nil sequence")
	}
	scheme = scheme.orDefault()
	o := applyOptions(opts)
	log := o.Logger.With("len1", seq1.Len(), "len2", seq2.Len())

	table := BuildTable(seq1.Bases, seq2.Bases, scheme)
	total := CountPaths(table.Directions)
	log.Debug("table built", "score", table.Score(), "tie_cells", table.TieCells(), "optimal_paths", total)

	set, err := EnumeratePaths(table.Directions, table.Rows(), table.Cols(), opts...)
	if err != nil {
		return nil, fmt.Errorf("enumerating paths: %w", err)
	}
	if set.Truncated {
		log.Warn("optimal path enumeration truncated",
			"kept", len(set.Paths), "optimal_paths", total, "max_paths", o.MaxPaths)
	}

	alignments := make([]*Alignment, 0, len(set.Paths))
	for _, p := range set.Paths {
		a, err := Reconstruct(p, seq1.Bases, seq2.Bases)
		if err != nil {
			return nil, fmt.Errorf("reconstructing alignment: %w", err)
		}
		alignments = append(alignments, a)
	}

	best, score, err := SelectBest(alignments, scheme)
	if err != nil {
		return nil, err
	}
	bestIndex := 0
	for i, a := range alignments {
		if a == best {
			bestIndex = i
			break
		}
	}
	if score != table.Score() {
		log.Warn("recomputed score differs from table score", "recomputed", score, "table", table.Score())
	}

	return &Result{
		Table:        table,
		Paths:        set.Paths,
		Alignments:   alignments,
		Best:         best,
		BestIndex:    bestIndex,
		Score:        score,
		OptimalPaths: total,
		Truncated:    set.Truncated,
	}, nil
}
