package alignment

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTableShape indicates the direction table is not (m+1)x(n+1).
	ErrTableShape = errors.New("alignment: direction table does not match dimensions")

	// ErrMalformedTable indicates a cell whose directions cannot lead to the origin.
	ErrMalformedTable = errors.New("alignment: malformed direction table")

	// ErrPathLimit indicates the path ceiling was reached under WithStrictLimit.
	ErrPathLimit = errors.New("alignment: optimal path count exceeds limit")
)

// Coord is a cell of the DP table.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Path runs from (m,n) to (0,0), one direction-table edge per step.
type Path []Coord

// PathSet is the result of EnumeratePaths.
type PathSet struct {
	Paths []Path
	// Truncated is set when the ceiling stopped enumeration early.
	Truncated bool
}

// cancelCheckInterval is how many frames are popped between context checks.
const cancelCheckInterval = 1024

// frame is one pending cell on the traversal stack. depth is the cell's
// position in its path; everything before it is the shared prefix.
type frame struct {
	coord Coord
	depth int
}

// EnumeratePaths returns every path from (m,n) to (0,0) through dirs.
//
// The traversal is an iterative depth-first search. The arena holds the
// coordinates of the current root-to-cell prefix; a frame records only its
// cell and depth, so all frames pushed from one branch point share that
// prefix without copying it. Popping a frame cuts the arena back to the
// frame's depth before appending: by the time a sibling is popped, the
// subtree of the previous sibling is exhausted and its cells are dead.
//
// At a branch point Diagonal is explored first, then Up, then Left, so the
// enumeration order is deterministic.
func EnumeratePaths(dirs DirectionTable, m, n int, opts ...Option) (*PathSet, error) {
	if err := checkTable(dirs, m, n); err != nil {
		return nil, err
	}
	o := applyOptions(opts)

	result := &PathSet{}
	arena := make([]Coord, 0, m+n+1)
	stack := []frame{{coord: Coord{Row: m, Col: n}}}

	for pops := 0; len(stack) > 0; pops++ {
		if pops%cancelCheckInterval == 0 {
			if err := o.Ctx.Err(); err != nil {
				return nil, err
			}
		}
		if o.MaxPaths > 0 && len(result.Paths) == o.MaxPaths {
			if o.StrictLimit {
				return nil, fmt.Errorf("%w: more than %d paths", ErrPathLimit, o.MaxPaths)
			}
			result.Truncated = true
			break
		}

		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		arena = append(arena[:f.depth], f.coord)

		ds := dirs[f.coord.Row][f.coord.Col]
		if ds.IsEmpty() {
			path := make(Path, len(arena))
			copy(path, arena)
			result.Paths = append(result.Paths, path)
			continue
		}

		// Push in reverse so the first direction in traversal order pops first.
		for k := len(traversal) - 1; k >= 0; k-- {
			d := traversal[k]
			if !ds.Has(d) {
				continue
			}
			row, col := d.step(f.coord.Row, f.coord.Col)
			stack = append(stack, frame{coord: Coord{Row: row, Col: col}, depth: f.depth + 1})
		}
	}

	return result, nil
}

// checkTable verifies shape and that every edge stays inside the table and
// every non-origin cell has somewhere to go.
func checkTable(dirs DirectionTable, m, n int) error {
	if m < 0 || n < 0 || len(dirs) != m+1 {
		return fmt.Errorf("%w: want %d rows, got %d", ErrTableShape, m+1, len(dirs))
	}
	for i, row := range dirs {
		if len(row) != n+1 {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrTableShape, i, len(row), n+1)
		}
	}

	for i, row := range dirs {
		for j, ds := range row {
			if i == 0 && j == 0 {
				if !ds.IsEmpty() {
					return fmt.Errorf("%w: origin has directions %q", ErrMalformedTable, ds)
				}
				continue
			}
			if ds.IsEmpty() {
				return fmt.Errorf("%w: cell (%d,%d) has no direction", ErrMalformedTable, i, j)
			}
			if ds.Has(Left) && j == 0 || ds.Has(Up) && i == 0 || ds.Has(Diagonal) && (i == 0 || j == 0) {
				return fmt.Errorf("%w: cell (%d,%d) points outside the table", ErrMalformedTable, i, j)
			}
		}
	}
	return nil
}

// CountPaths returns the number of distinct paths from the bottom-right cell
// to the origin, saturating at math.MaxUint64. Edges leaving the table are
// ignored.
func CountPaths(dirs DirectionTable) uint64 {
	if len(dirs) == 0 || len(dirs[0]) == 0 {
		return 0
	}

	counts := make([][]uint64, len(dirs))
	for i, row := range dirs {
		counts[i] = make([]uint64, len(row))
		for j, ds := range row {
			if i == 0 && j == 0 {
				counts[i][j] = 1
				continue
			}
			var total uint64
			for _, d := range ds.Slice() {
				pi, pj := d.step(i, j)
				if pi < 0 || pj < 0 {
					continue
				}
				total = addSaturating(total, counts[pi][pj])
			}
			counts[i][j] = total
		}
	}

	last := counts[len(counts)-1]
	return last[len(last)-1]
}

func addSaturating(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
