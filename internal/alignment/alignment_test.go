package alignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlignmentLengthMismatch(t *testing.T) {
	_, err := NewAlignment("ACGT", "ACG", 0)
	require.Error(t, err)
}

func TestAlignmentIdentity(t *testing.T) {
	tests := []struct {
		name     string
		aligned1 string
		aligned2 string
		want     float64
	}{
		{"perfect match", "ATGC", "ATGC", 1.0},
		{"50% match", "ATGC", "ATTT", 0.5},
		{"no match", "AAAA", "TTTT", 0.0},
		{"with gaps", "AT_GC", "ATGGC", 0.8},
		{"empty", "", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAlignment(tt.aligned1, tt.aligned2, 0)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, a.Identity, 0.0001)
		})
	}
}

func TestAlignmentCIGAR(t *testing.T) {
	tests := []struct {
		name     string
		aligned1 string
		aligned2 string
		want     string
	}{
		{"all match", "ATGC", "ATGC", "4M"},
		{"with mismatch", "ATGC", "ATGA", "3M1X"},
		{"with gap seq1", "AT_GC", "ATGGC", "2M1I2M"},
		{"with gap seq2", "ATGGC", "AT_GC", "2M1D2M"},
		{"all gaps", "___", "AGT", "3I"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAlignment(tt.aligned1, tt.aligned2, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.ToCIGAR())
		})
	}
}

func TestAlignmentColumnCounts(t *testing.T) {
	// A/A identity, G/A transition, C/A transversion, T/_ gap, _/C gap
	a, err := NewAlignment("AGCT_", "AAA_C", 0)
	require.NoError(t, err)

	assert.Equal(t, 5, a.Length())
	assert.Equal(t, 1, a.MatchCount())
	assert.Equal(t, 1, a.TransitionCount())
	assert.Equal(t, 1, a.TransversionCount())
	assert.Equal(t, 1, a.GapsSeq1())
	assert.Equal(t, 1, a.GapsSeq2())
	assert.Equal(t, 2, a.TotalGaps())

	s1, s2 := ungapped(a)
	assert.Equal(t, "AGCT", s1)
	assert.Equal(t, "AAAC", s2)
}

func TestAlignmentFormat(t *testing.T) {
	a, err := NewAlignment("AGC_", "AAAT", -9)
	require.NoError(t, err)

	out := a.Format()
	assert.Contains(t, out, "Seq1: AGC_\n      |:. \nSeq2: AAAT")
	assert.Contains(t, out, "Score: -9")
	assert.Contains(t, out, "CIGAR: 1M2X1I")
	assert.Equal(t, "Alignment { score: -9, identity: 25.0%, length: 4 }", a.String())
}
