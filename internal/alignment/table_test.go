package alignment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTableShortPair(t *testing.T) {
	table := BuildTable("AG", "AC", nil)

	assert.Equal(t, 2, table.Rows())
	assert.Equal(t, 2, table.Cols())
	assert.Equal(t, ScoreTable{
		{0, -8, -16},
		{-8, 4, -4},
		{-16, -4, 1},
	}, table.Scores)

	want := [][]string{
		{"", "l", "l"},
		{"u", "d", "l"},
		{"u", "u", "d"},
	}
	for i, row := range table.Directions {
		for j, ds := range row {
			assert.Equal(t, want[i][j], ds.String(), "cell (%d,%d)", i, j)
		}
	}
	assert.Equal(t, 1, table.Score())
	assert.Equal(t, 0, table.TieCells())
}

func TestBuildTableBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		seq1   string
		seq2   string
		scores ScoreTable
	}{
		{"both empty", "", "", ScoreTable{{0}}},
		{"first empty", "", "AGT", ScoreTable{{0, -8, -16, -24}}},
		{"second empty", "AG", "", ScoreTable{{0}, {-8}, {-16}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := BuildTable(tt.seq1, tt.seq2, nil)
			assert.Equal(t, tt.scores, table.Scores)
			assert.True(t, table.Directions[0][0].IsEmpty())
			for j := 1; j <= table.Cols(); j++ {
				assert.Equal(t, "l", table.Directions[0][j].String())
			}
			for i := 1; i <= table.Rows(); i++ {
				assert.Equal(t, "u", table.Directions[i][0].String())
			}
		})
	}
}

func TestBuildTableKeepsAllTies(t *testing.T) {
	// left = up = diag = -16 at (1,1)
	scheme := &Scheme{Identity: 4, Transition: -2, Transversion: -16, Gap: -8}
	table := BuildTable("A", "T", scheme)

	ds := table.Directions[1][1]
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, "lud", ds.String())
	assert.Equal(t, -16, table.Score())
	assert.Equal(t, 1, table.TieCells())
}

func TestBuildTableNegativeAndCustomScores(t *testing.T) {
	scheme := &Scheme{Identity: -1, Transition: -5, Transversion: -7, Gap: -2}
	table := BuildTable("AAAA", "AA", scheme)

	// Every cell must satisfy the recurrence.
	for i := 1; i <= table.Rows(); i++ {
		for j := 1; j <= table.Cols(); j++ {
			want := max3(
				table.Scores[i][j-1]+scheme.Gap,
				table.Scores[i-1][j]+scheme.Gap,
				table.Scores[i-1][j-1]+scheme.Score(table.Seq1[i-1], table.Seq2[j-1]),
			)
			assert.Equal(t, want, table.Scores[i][j])
		}
	}
	assert.Equal(t, -6, table.Score())
}

func TestGlobalScoreOnly(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"", "AGT"},
		{"ACGT", ""},
		{"AG", "AC"},
		{"GATTACA", "GCATGCT"},
		{"ATGCATGCATGC", "ATGATGCAGC"},
	}
	schemes := []*Scheme{nil, {}, {Identity: 1, Transition: 0, Transversion: -1, Gap: -1}}

	for _, p := range pairs {
		for _, s := range schemes {
			table := BuildTable(p[0], p[1], s)
			assert.Equal(t, table.Score(), GlobalScoreOnly(p[0], p[1], s), "%q vs %q", p[0], p[1])
		}
	}
}

func TestBuildTableLarge(t *testing.T) {
	s1 := strings.Repeat("ACGT", 100)
	s2 := strings.Repeat("AGCT", 100)
	table := BuildTable(s1, s2, nil)
	require.Len(t, table.Scores, 401)
	require.Len(t, table.Scores[0], 401)
	assert.Equal(t, GlobalScoreOnly(s1, s2, nil), table.Score())
}

func BenchmarkBuildTable(b *testing.B) {
	s1 := strings.Repeat("ACGT", 250)
	s2 := strings.Repeat("AGCT", 250)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildTable(s1, s2, nil)
	}
}

func BenchmarkGlobalScoreOnly(b *testing.B) {
	s1 := strings.Repeat("ACGT", 250)
	s2 := strings.Repeat("AGCT", 250)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GlobalScoreOnly(s1, s2, nil)
	}
}
