// Package stats summarizes a set of co-optimal alignments.
//
// All alignments in a set share the same score, but they can differ widely in
// length, gap placement and substitution mix. These summaries show how much.
package stats

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aria-lang/nwalign/internal/alignment"
)

// ErrEmptySet is returned when there are no alignments to summarize.
var ErrEmptySet = errors.New("stats: alignment set cannot be empty")

// AlignmentStats represents the column breakdown of one alignment.
type AlignmentStats struct {
	Length        int
	Identities    int
	Transitions   int
	Transversions int
	GapsSeq1      int
	GapsSeq2      int
	Identity      float64
}

// FromAlignment calculates the column breakdown of a.
func FromAlignment(a *alignment.Alignment) *AlignmentStats {
	return &AlignmentStats{
		Length:        a.Length(),
		Identities:    a.MatchCount(),
		Transitions:   a.TransitionCount(),
		Transversions: a.TransversionCount(),
		GapsSeq1:      a.GapsSeq1(),
		GapsSeq2:      a.GapsSeq2(),
		Identity:      a.Identity,
	}
}

// Gaps returns the total number of gap columns.
func (s *AlignmentStats) Gaps() int {
	return s.GapsSeq1 + s.GapsSeq2
}

func (s *AlignmentStats) String() string {
	return fmt.Sprintf(`AlignmentStats {
  length: %d
  identity: %.1f%%
  identities: %d, transitions: %d, transversions: %d
  gaps: %d (seq1 %d, seq2 %d)
}`, s.Length, s.Identity*100, s.Identities, s.Transitions, s.Transversions,
		s.Gaps(), s.GapsSeq1, s.GapsSeq2)
}

// SetStats represents aggregated statistics for a set of alignments.
type SetStats struct {
	Count int `json:"count"`

	MinLength  int     `json:"min_length"`
	MaxLength  int     `json:"max_length"`
	MeanLength float64 `json:"mean_length"`

	MinGaps    int     `json:"min_gaps"`
	MaxGaps    int     `json:"max_gaps"`
	MeanGaps   float64 `json:"mean_gaps"`
	MedianGaps int     `json:"median_gaps"`

	MinIdentity  float64 `json:"min_identity"`
	MaxIdentity  float64 `json:"max_identity"`
	MeanIdentity float64 `json:"mean_identity"`

	// Distinct counts alignments with different aligned strings. It is
	// below Count only if two paths spell the same alignment.
	Distinct int `json:"distinct"`
}

// FromAlignments calculates statistics for a set of alignments.
func FromAlignments(alignments []*alignment.Alignment) (*SetStats, error) {
	if len(alignments) == 0 {
		return nil, ErrEmptySet
	}

	count := len(alignments)
	first := FromAlignment(alignments[0])
	s := &SetStats{
		Count:       count,
		MinLength:   first.Length,
		MaxLength:   first.Length,
		MinGaps:     first.Gaps(),
		MaxGaps:     first.Gaps(),
		MinIdentity: first.Identity,
		MaxIdentity: first.Identity,
	}

	gaps := make([]int, count)
	seen := make(map[string]struct{}, count)
	var lengthSum, gapSum int
	var identitySum float64

	for i, a := range alignments {
		as := FromAlignment(a)
		gaps[i] = as.Gaps()

		lengthSum += as.Length
		gapSum += as.Gaps()
		identitySum += as.Identity

		s.MinLength = min(s.MinLength, as.Length)
		s.MaxLength = max(s.MaxLength, as.Length)
		s.MinGaps = min(s.MinGaps, as.Gaps())
		s.MaxGaps = max(s.MaxGaps, as.Gaps())
		s.MinIdentity = min(s.MinIdentity, as.Identity)
		s.MaxIdentity = max(s.MaxIdentity, as.Identity)

		seen[a.AlignedSeq1+"\x00"+a.AlignedSeq2] = struct{}{}
	}

	s.MeanLength = float64(lengthSum) / float64(count)
	s.MeanGaps = float64(gapSum) / float64(count)
	s.MeanIdentity = identitySum / float64(count)
	s.Distinct = len(seen)

	// Calculate median
	sort.Ints(gaps)
	mid := count / 2
	if count%2 == 0 {
		s.MedianGaps = (gaps[mid-1] + gaps[mid]) / 2
	} else {
		s.MedianGaps = gaps[mid]
	}

	return s, nil
}

func (s *SetStats) String() string {
	return fmt.Sprintf(`SetStats {
  count: %d (distinct %d)
  length range: %d - %d, mean %.1f
  gap range: %d - %d, mean %.1f, median %d
  identity range: %.1f%% - %.1f%%, mean %.1f%%
}`, s.Count, s.Distinct, s.MinLength, s.MaxLength, s.MeanLength,
		s.MinGaps, s.MaxGaps, s.MeanGaps, s.MedianGaps,
		s.MinIdentity*100, s.MaxIdentity*100, s.MeanIdentity*100)
}

// GapHistogram counts alignments by their number of gap columns.
type GapHistogram struct {
	Bins     []int
	MinGaps  int
	MaxGaps  int
	BinWidth int
	NumBins  int
}

// NewGapHistogram creates a gap-count histogram over alignments.
func NewGapHistogram(alignments []*alignment.Alignment, numBins int) (*GapHistogram, error) {
	if len(alignments) == 0 {
		return nil, ErrEmptySet
	}
	if numBins <= 0 {
		return nil, fmt.Errorf("numBins must be positive")
	}

	gaps := make([]int, len(alignments))
	for i, a := range alignments {
		gaps[i] = a.TotalGaps()
	}

	minGaps, maxGaps := gaps[0], gaps[0]
	for _, g := range gaps {
		minGaps = min(minGaps, g)
		maxGaps = max(maxGaps, g)
	}

	// ceil((range+1)/numBins) so every value fits
	binWidth := (maxGaps - minGaps + numBins) / numBins

	bins := make([]int, numBins)
	for _, g := range gaps {
		binIndex := (g - minGaps) / binWidth
		if binIndex >= numBins {
			binIndex = numBins - 1
		}
		bins[binIndex]++
	}

	return &GapHistogram{
		Bins:     bins,
		MinGaps:  minGaps,
		MaxGaps:  maxGaps,
		BinWidth: binWidth,
		NumBins:  numBins,
	}, nil
}

// histogramWidth is the bar length of the fullest bin.
const histogramWidth = 50

func (h *GapHistogram) String() string {
	fullest := 0
	for _, c := range h.Bins {
		fullest = max(fullest, c)
	}

	var b strings.Builder
	b.WriteString("Gap Histogram:\n")
	for i := 0; i < h.NumBins; i++ {
		start := h.MinGaps + i*h.BinWidth
		end := start + h.BinWidth - 1
		count := h.Bins[i]

		bar := 0
		if fullest > 0 {
			bar = count * histogramWidth / fullest
		}
		fmt.Fprintf(&b, "%5d-%5d: %s (%d)\n", start, end, strings.Repeat("#", bar), count)
	}
	return b.String()
}
