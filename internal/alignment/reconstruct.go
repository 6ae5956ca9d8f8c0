package alignment

import (
	"errors"
	"fmt"
)

// ErrInvalidPath indicates a path that does not describe a global alignment
// of the given sequences.
var ErrInvalidPath = errors.New("alignment: invalid path")

// Reconstruct turns one path into an alignment of seq1 and seq2.
//
// Each step from (row,col) to the next coordinate emits one column:
// diagonal takes seq1[row-1] and seq2[col-1], a row-only step takes
// seq1[row-1] against a gap, a column-only step a gap against seq2[col-1].
// Columns come out last-first and are reversed at the end. The returned
// alignment has Score 0; see Rescore.
func Reconstruct(path Path, seq1, seq2 string) (*Alignment, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if start := path[0]; start.Row != len(seq1) || start.Col != len(seq2) {
		return nil, fmt.Errorf("%w: starts at (%d,%d), want (%d,%d)",
			ErrInvalidPath, start.Row, start.Col, len(seq1), len(seq2))
	}
	if end := path[len(path)-1]; end.Row != 0 || end.Col != 0 {
		return nil, fmt.Errorf("%w: ends at (%d,%d), want (0,0)", ErrInvalidPath, end.Row, end.Col)
	}

	columns := len(path) - 1
	aligned1 := make([]byte, columns)
	aligned2 := make([]byte, columns)

	for k := 1; k < len(path); k++ {
		cur, next := path[k-1], path[k]
		out := columns - k
		if next.Row < 0 || next.Col < 0 {
			return nil, fmt.Errorf("%w: step leaves the table at (%d,%d)", ErrInvalidPath, next.Row, next.Col)
		}

		switch {
		case next.Row == cur.Row-1 && next.Col == cur.Col-1:
			aligned1[out] = seq1[cur.Row-1]
			aligned2[out] = seq2[cur.Col-1]
		case next.Row == cur.Row-1 && next.Col == cur.Col:
			aligned1[out] = seq1[cur.Row-1]
			aligned2[out] = Gap
		case next.Row == cur.Row && next.Col == cur.Col-1:
			aligned1[out] = Gap
			aligned2[out] = seq2[cur.Col-1]
		default:
			return nil, fmt.Errorf("%w: illegal step (%d,%d) -> (%d,%d)",
				ErrInvalidPath, cur.Row, cur.Col, next.Row, next.Col)
		}
	}

	return NewAlignment(string(aligned1), string(aligned2), 0)
}
