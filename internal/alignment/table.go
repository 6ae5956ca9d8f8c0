package alignment

// ScoreTable is the (m+1)x(n+1) DP matrix. ScoreTable[i][j] is the best score
// for aligning the first i symbols of sequence 1 with the first j of sequence 2.
type ScoreTable [][]int

// DirectionTable has the shape of ScoreTable and holds, per cell, every
// predecessor that attains the cell's score.
type DirectionTable [][]Directions

// Table is the output of one BuildTable call. It is read-only once built.
type Table struct {
	Seq1       string
	Seq2       string
	Scores     ScoreTable
	Directions DirectionTable
}

// BuildTable fills the DP and direction tables for seq1 against seq2.
//
// Boundary cells hold cumulative gap penalties; row 0 points Left and column 0
// points Up. For inner cells every candidate equal to the maximum is kept, so
// ties produce multi-direction cells. Empty sequences need no special case:
// the table collapses to its boundary.
func BuildTable(seq1, seq2 string, scheme *Scheme) *Table {
	scheme = scheme.orDefault()
	m, n := len(seq1), len(seq2)

	scores := make(ScoreTable, m+1)
	dirs := make(DirectionTable, m+1)
	for i := range scores {
		scores[i] = make([]int, n+1)
		dirs[i] = make([]Directions, n+1)
	}

	for i := 1; i <= m; i++ {
		scores[i][0] = scores[i-1][0] + scheme.Gap
		dirs[i][0] = dirs[i][0].With(Up)
	}
	for j := 1; j <= n; j++ {
		scores[0][j] = scores[0][j-1] + scheme.Gap
		dirs[0][j] = dirs[0][j].With(Left)
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			left := scores[i][j-1] + scheme.Gap
			up := scores[i-1][j] + scheme.Gap
			diag := scores[i-1][j-1] + scheme.Score(seq1[i-1], seq2[j-1])

			best := max3(left, up, diag)
			scores[i][j] = best

			var ds Directions
			if left == best {
				ds = ds.With(Left)
			}
			if up == best {
				ds = ds.With(Up)
			}
			if diag == best {
				ds = ds.With(Diagonal)
			}
			dirs[i][j] = ds
		}
	}

	return &Table{
		Seq1:       seq1,
		Seq2:       seq2,
		Scores:     scores,
		Directions: dirs,
	}
}

// Rows returns m, the length of sequence 1.
func (t *Table) Rows() int {
	return len(t.Scores) - 1
}

// Cols returns n, the length of sequence 2.
func (t *Table) Cols() int {
	return len(t.Scores[0]) - 1
}

// Score returns the optimal global alignment score, dp[m][n].
func (t *Table) Score() int {
	return t.Scores[t.Rows()][t.Cols()]
}

// TieCells counts cells with more than one optimal predecessor.
func (t *Table) TieCells() int {
	count := 0
	for _, row := range t.Directions {
		for _, ds := range row {
			if ds.Len() > 1 {
				count++
			}
		}
	}
	return count
}

// GlobalScoreOnly returns dp[m][n] without keeping the full matrix.
//
// Uses two rows of length n+1 instead of the (m+1)x(n+1) table.
func GlobalScoreOnly(seq1, seq2 string, scheme *Scheme) int {
	scheme = scheme.orDefault()
	m, n := len(seq1), len(seq2)

	prevRow := make([]int, n+1)
	currRow := make([]int, n+1)

	for j := 1; j <= n; j++ {
		prevRow[j] = prevRow[j-1] + scheme.Gap
	}

	for i := 1; i <= m; i++ {
		currRow[0] = prevRow[0] + scheme.Gap

		for j := 1; j <= n; j++ {
			diag := prevRow[j-1] + scheme.Score(seq1[i-1], seq2[j-1])
			up := prevRow[j] + scheme.Gap
			left := currRow[j-1] + scheme.Gap

			currRow[j] = max3(left, up, diag)
		}

		prevRow, currRow = currRow, prevRow
	}

	return prevRow[n]
}

// max3 returns the maximum of three integers.
func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
