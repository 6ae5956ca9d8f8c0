// Package sequence provides the sequence value consumed by the aligner.
//
// Sequences are normalized to upper case at construction. The aligner itself
// is permissive about symbols; strict DNA validation is opt-in through
// NewStrict for callers that want to reject unexpected input at the boundary.
package sequence

import (
	"fmt"
	"strings"
)

// ValidDNABases lists the symbols accepted by strict validation.
var ValidDNABases = map[rune]bool{'A': true, 'C': true, 'G': true, 'T': true, 'N': true}

// Sequence is an immutable run of symbols with optional FASTA metadata.
// An empty sequence is valid and aligns as all gaps.
type Sequence struct {
	Bases       string
	ID          string
	Description string
}

// New creates a sequence without validating its symbols.
func New(bases string) *Sequence {
	return &Sequence{Bases: normalize(bases)}
}

// NewStrict creates a sequence and rejects anything outside ValidDNABases.
func NewStrict(bases string) (*Sequence, error) {
	normalized := normalize(bases)
	if err := ValidateDNA(normalized); err != nil {
		return nil, err
	}
	return &Sequence{Bases: normalized}, nil
}

// WithID creates a sequence carrying a FASTA identifier and description.
func WithID(bases, id, description string) (*Sequence, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("ID cannot be empty")
	}
	return &Sequence{
		Bases:       normalize(bases),
		ID:          id,
		Description: description,
	}, nil
}

func normalize(bases string) string {
	return strings.ToUpper(strings.TrimSpace(bases))
}

// Len returns the number of symbols.
func (s *Sequence) Len() int {
	return len(s.Bases)
}

// Validate checks the sequence against the strict DNA alphabet.
func (s *Sequence) Validate() error {
	return ValidateDNA(s.Bases)
}

// String returns the bases, prefixed by a FASTA header when an ID is set.
func (s *Sequence) String() string {
	if s.ID != "" {
		return fmt.Sprintf(">%s\n%s", s.ID, s.Bases)
	}
	return s.Bases
}
