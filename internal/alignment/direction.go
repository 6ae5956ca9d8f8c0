package alignment

import "strings"

// Direction is one optimal predecessor of a DP cell.
type Direction uint8

const (
	// Left comes from (i, j-1): a gap in sequence 1.
	Left Direction = 1 << iota
	// Up comes from (i-1, j): a gap in sequence 2.
	Up
	// Diagonal comes from (i-1, j-1): a match or mismatch column.
	Diagonal
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "l"
	case Up:
		return "u"
	case Diagonal:
		return "d"
	default:
		return "?"
	}
}

// step returns the coordinate reached by following d from (row, col).
func (d Direction) step(row, col int) (int, int) {
	switch d {
	case Left:
		return row, col - 1
	case Up:
		return row - 1, col
	default:
		return row - 1, col - 1
	}
}

// Directions is the set of optimal predecessors of a cell. The zero value is
// the empty set and marks the origin.
type Directions uint8

// traversal lists directions in the order branches are explored.
var traversal = [...]Direction{Diagonal, Up, Left}

// Has reports whether d is in the set.
func (ds Directions) Has(d Direction) bool {
	return ds&Directions(d) != 0
}

// With returns the set with d added.
func (ds Directions) With(d Direction) Directions {
	return ds | Directions(d)
}

// Len returns the number of directions in the set.
func (ds Directions) Len() int {
	n := 0
	for _, d := range traversal {
		if ds.Has(d) {
			n++
		}
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (ds Directions) IsEmpty() bool {
	return ds == 0
}

// Slice returns the members in exploration order: Diagonal, Up, Left.
func (ds Directions) Slice() []Direction {
	out := make([]Direction, 0, 3)
	for _, d := range traversal {
		if ds.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// String renders the set with the letters l, u, d in that order, the
// notation used by table dumps. The empty set renders as "".
func (ds Directions) String() string {
	var b strings.Builder
	for _, d := range [...]Direction{Left, Up, Diagonal} {
		if ds.Has(d) {
			b.WriteString(d.String())
		}
	}
	return b.String()
}
