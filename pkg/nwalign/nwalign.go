// Package nwalign provides a high-level API for Needleman-Wunsch global
// alignment of nucleotide sequences under a transition/transversion model.
//
// Every optimal alignment is kept, not just one, so callers can inspect the
// full set of co-optimal tracebacks.
//
// Example usage:
//
//	res, err := nwalign.Align("GATTACA", "GCATGCT", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Best.Format())
//	fmt.Printf("%d optimal alignments\n", res.OptimalPaths)
package nwalign

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aria-lang/nwalign/internal/alignment"
	"github.com/aria-lang/nwalign/internal/sequence"
)

// Re-export types for convenience
type (
	Sequence  = sequence.Sequence
	Alignment = alignment.Alignment
	Scheme    = alignment.Scheme
	Result    = alignment.Result
	Table     = alignment.Table
	Path      = alignment.Path
	PathSet   = alignment.PathSet
	Option    = alignment.Option
)

// Re-exported options and errors
var (
	WithContext     = alignment.WithContext
	WithMaxPaths    = alignment.WithMaxPaths
	WithStrictLimit = alignment.WithStrictLimit
	WithLogger      = alignment.WithLogger

	ErrPathLimit = alignment.ErrPathLimit
)

// ErrNoSequences is returned when a pair input holds no lines at all.
var ErrNoSequences = errors.New("nwalign: input contains no sequences")

// maxLineSize bounds a single input line; long single-line sequences are
// common in the two-line format.
const maxLineSize = 64 << 20

// NewSequence creates a sequence without symbol validation.
func NewSequence(bases string) *Sequence {
	return sequence.New(bases)
}

// NewStrictSequence creates a sequence restricted to A, C, G, T and N.
func NewStrictSequence(bases string) (*Sequence, error) {
	return sequence.NewStrict(bases)
}

// DefaultScheme returns identity 4, transition -2, transversion -3, gap -8.
func DefaultScheme() *Scheme {
	return alignment.DefaultScheme()
}

// Align runs the full pipeline on two raw strings.
func Align(seq1, seq2 string, scheme *Scheme, opts ...Option) (*Result, error) {
	return alignment.NeedlemanWunsch(sequence.New(seq1), sequence.New(seq2), scheme, opts...)
}

// AlignSequences runs the full pipeline on two sequences.
func AlignSequences(seq1, seq2 *Sequence, scheme *Scheme, opts ...Option) (*Result, error) {
	return alignment.NeedlemanWunsch(seq1, seq2, scheme, opts...)
}

// Score returns only the optimal global score, in linear space.
func Score(seq1, seq2 string, scheme *Scheme) int {
	return alignment.GlobalScoreOnly(sequence.New(seq1).Bases, sequence.New(seq2).Bases, scheme)
}

// ReadPair reads a sequence pair from a file. See ParsePair for the format.
func ReadPair(filename string) (*Sequence, *Sequence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return ParsePair(file)
}

// ParsePair reads the two sequences to align.
//
// If the first non-blank line starts with '>' the input is FASTA and the
// first two records are used. Otherwise the first line is sequence 1 and the
// second line is sequence 2. A missing second sequence is empty.
func ParsePair(r io.Reader) (*Sequence, *Sequence, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, nil, err
	}
	if len(lines) == 0 {
		return nil, nil, ErrNoSequences
	}

	if isFASTA(lines) {
		records, err := parseFASTA(lines)
		if err != nil {
			return nil, nil, err
		}
		if len(records) == 0 {
			return nil, nil, ErrNoSequences
		}
		if len(records) == 1 {
			return records[0], sequence.New(""), nil
		}
		return records[0], records[1], nil
	}

	seq1 := sequence.New(lines[0])
	seq2 := sequence.New("")
	if len(lines) > 1 {
		seq2 = sequence.New(lines[1])
	}
	return seq1, seq2, nil
}

// ReadFASTA reads sequences from a FASTA file.
func ReadFASTA(filename string) ([]*Sequence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return ParseFASTA(file)
}

// ParseFASTA parses FASTA format from a reader.
func ParseFASTA(r io.Reader) ([]*Sequence, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return parseFASTA(lines)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

func isFASTA(lines []string) bool {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return line[0] == '>'
	}
	return false
}

// parseFASTA keeps records with empty bodies so that a pair file can hold an
// empty sequence.
func parseFASTA(lines []string) ([]*Sequence, error) {
	sequences := make([]*Sequence, 0)

	var currentID, currentDesc string
	var currentBases strings.Builder
	inRecord := false

	flushSequence := func() error {
		if !inRecord && currentBases.Len() == 0 {
			return nil
		}
		seq := sequence.New(currentBases.String())
		if currentID != "" {
			var err error
			seq, err = sequence.WithID(currentBases.String(), currentID, currentDesc)
			if err != nil {
				return err
			}
		}
		sequences = append(sequences, seq)
		currentBases.Reset()
		return nil
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)

		if len(line) == 0 {
			continue
		}

		if line[0] == '>' {
			if err := flushSequence(); err != nil {
				return nil, err
			}
			inRecord = true

			parts := strings.SplitN(line[1:], " ", 2)
			currentID = parts[0]
			if len(parts) > 1 {
				currentDesc = parts[1]
			} else {
				currentDesc = ""
			}
		} else {
			currentBases.WriteString(line)
		}
	}

	if err := flushSequence(); err != nil {
		return nil, err
	}

	return sequences, nil
}

// Version returns the nwalign version.
func Version() string {
	return "1.0.0"
}

// Info returns information about nwalign.
func Info() string {
	return fmt.Sprintf(`nwalign v%s - Global Nucleotide Alignment

Needleman-Wunsch global alignment that keeps every optimal traceback.

Features:
  - Transition/transversion aware scoring
  - Enumeration of all co-optimal alignments with a configurable ceiling
  - Plain two-line and FASTA pair input
  - DP table text dump and heat map rendering
  - HTTP API and command line interface
`, Version())
}
