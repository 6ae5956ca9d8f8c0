package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aria-lang/nwalign/internal/alignment"
	"github.com/aria-lang/nwalign/internal/config"
	"github.com/aria-lang/nwalign/internal/sequence"
	"github.com/aria-lang/nwalign/internal/stats"
)

// ScoringRequest overrides parts of the configured scoring scheme.
type ScoringRequest struct {
	Identity     *int `json:"identity,omitempty"`
	Transition   *int `json:"transition,omitempty"`
	Transversion *int `json:"transversion,omitempty"`
	Gap          *int `json:"gap,omitempty"`
}

// AlignmentRequest represents an alignment request.
type AlignmentRequest struct {
	Sequence1 string          `json:"sequence1"`
	Sequence2 string          `json:"sequence2"`
	Scoring   *ScoringRequest `json:"scoring,omitempty"`
	// MaxPaths may lower the server ceiling but never raise it.
	MaxPaths *int `json:"max_paths,omitempty"`
	// Strict rejects symbols outside ACGTN.
	Strict bool `json:"strict,omitempty"`
	// StrictLimit turns a truncated path set into a 422.
	StrictLimit bool `json:"strict_limit,omitempty"`
}

// AlignmentResponse represents the best global alignment.
type AlignmentResponse struct {
	AlignedSeq1   string  `json:"aligned_seq1"`
	AlignedSeq2   string  `json:"aligned_seq2"`
	Score         int     `json:"score"`
	TableScore    int     `json:"dp_score"`
	Identity      float64 `json:"identity"`
	CIGAR         string  `json:"cigar"`
	Matches       int     `json:"matches"`
	Transitions   int     `json:"transitions"`
	Transversions int     `json:"transversions"`
	Gaps          int     `json:"gaps"`
	OptimalPaths  uint64  `json:"optimal_paths"`
	Enumerated    int     `json:"enumerated_paths"`
	Truncated     bool    `json:"truncated"`
}

// AlignedPair is one optimal alignment in AllAlignmentsResponse.
type AlignedPair struct {
	AlignedSeq1 string         `json:"aligned_seq1"`
	AlignedSeq2 string         `json:"aligned_seq2"`
	Score       int            `json:"score"`
	CIGAR       string         `json:"cigar"`
	Path        alignment.Path `json:"path"`
}

// AllAlignmentsResponse lists every enumerated optimal alignment.
type AllAlignmentsResponse struct {
	Alignments   []AlignedPair   `json:"alignments"`
	BestIndex    int             `json:"best_index"`
	Score        int             `json:"score"`
	OptimalPaths uint64          `json:"optimal_paths"`
	Truncated    bool            `json:"truncated"`
	Summary      *stats.SetStats `json:"summary"`
}

// TableResponse is the raw DP output. Directions use "l", "u", "d" letters.
type TableResponse struct {
	Sequence1    string     `json:"sequence1"`
	Sequence2    string     `json:"sequence2"`
	Scores       [][]int    `json:"scores"`
	Directions   [][]string `json:"directions"`
	Score        int        `json:"score"`
	OptimalPaths uint64     `json:"optimal_paths"`
}

// ScoreResponse represents the response for alignment score.
type ScoreResponse struct {
	Score int `json:"score"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AlignmentHandler serves the /api/alignment routes.
type AlignmentHandler struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewAlignmentHandler returns a handler using cfg for default scoring and the
// path ceiling.
func NewAlignmentHandler(cfg *config.Config, logger *slog.Logger) *AlignmentHandler {
	return &AlignmentHandler{cfg: cfg, logger: logger}
}

// bodySlack is the room left for JSON keys and scoring fields on top of the
// two sequences when the body size is capped.
const bodySlack = 64 << 10

// alignJob is a decoded and validated request.
type alignJob struct {
	seq1, seq2 *sequence.Sequence
	scheme     *alignment.Scheme
	opts       []alignment.Option
}

func (h *AlignmentHandler) decode(w http.ResponseWriter, r *http.Request) (*alignJob, bool) {
	maxLen := h.cfg.Server.MaxLength
	if maxLen > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, int64(2*maxLen+bodySlack))
	}

	var req AlignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	seq1, seq2 := sequence.New(req.Sequence1), sequence.New(req.Sequence2)
	if maxLen > 0 {
		for i, s := range []*sequence.Sequence{seq1, seq2} {
			if s.Len() > maxLen {
				writeError(w, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("sequence%d: length %d exceeds limit of %d", i+1, s.Len(), maxLen))
				return nil, false
			}
		}
	}
	if req.Strict || h.cfg.Strict {
		if err := seq1.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "sequence1: "+err.Error())
			return nil, false
		}
		if err := seq2.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "sequence2: "+err.Error())
			return nil, false
		}
	}

	scheme := h.cfg.Scoring
	if s := req.Scoring; s != nil {
		setIf(&scheme.Identity, s.Identity)
		setIf(&scheme.Transition, s.Transition)
		setIf(&scheme.Transversion, s.Transversion)
		setIf(&scheme.Gap, s.Gap)
	}

	maxPaths := h.cfg.MaxPaths
	if req.MaxPaths != nil {
		if *req.MaxPaths < 1 {
			writeError(w, http.StatusBadRequest, "max_paths must be positive")
			return nil, false
		}
		if maxPaths == 0 || *req.MaxPaths < maxPaths {
			maxPaths = *req.MaxPaths
		}
	}

	opts := []alignment.Option{
		alignment.WithContext(r.Context()),
		alignment.WithMaxPaths(maxPaths),
		alignment.WithLogger(h.logger),
	}
	if req.StrictLimit || h.cfg.StrictLimit {
		opts = append(opts, alignment.WithStrictLimit())
	}

	return &alignJob{seq1: seq1, seq2: seq2, scheme: &scheme, opts: opts}, true
}

func setIf(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// run executes the pipeline and writes the error response itself on failure.
func (h *AlignmentHandler) run(w http.ResponseWriter, r *http.Request) (*alignment.Result, bool) {
	job, ok := h.decode(w, r)
	if !ok {
		return nil, false
	}

	res, err := alignment.NeedlemanWunsch(job.seq1, job.seq2, job.scheme, job.opts...)
	switch {
	case err == nil:
		return res, true
	case errors.Is(err, alignment.ErrPathLimit):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		// chi's Timeout middleware answers with 504
		h.logger.Warn("alignment aborted", "err", err)
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
	return nil, false
}

// Global handles best global alignment requests.
func (h *AlignmentHandler) Global(w http.ResponseWriter, r *http.Request) {
	res, ok := h.run(w, r)
	if !ok {
		return
	}

	best := res.Best
	writeJSON(w, http.StatusOK, AlignmentResponse{
		AlignedSeq1:   best.AlignedSeq1,
		AlignedSeq2:   best.AlignedSeq2,
		Score:         best.Score,
		TableScore:    res.Table.Score(),
		Identity:      best.Identity,
		CIGAR:         best.ToCIGAR(),
		Matches:       best.MatchCount(),
		Transitions:   best.TransitionCount(),
		Transversions: best.TransversionCount(),
		Gaps:          best.TotalGaps(),
		OptimalPaths:  res.OptimalPaths,
		Enumerated:    len(res.Paths),
		Truncated:     res.Truncated,
	})
}

// All handles requests for every optimal alignment.
func (h *AlignmentHandler) All(w http.ResponseWriter, r *http.Request) {
	res, ok := h.run(w, r)
	if !ok {
		return
	}

	pairs := make([]AlignedPair, len(res.Alignments))
	for i, a := range res.Alignments {
		pairs[i] = AlignedPair{
			AlignedSeq1: a.AlignedSeq1,
			AlignedSeq2: a.AlignedSeq2,
			Score:       a.Score,
			CIGAR:       a.ToCIGAR(),
			Path:        res.Paths[i],
		}
	}

	// never empty: the pipeline always yields at least one alignment
	summary, _ := stats.FromAlignments(res.Alignments)

	writeJSON(w, http.StatusOK, AllAlignmentsResponse{
		Alignments:   pairs,
		BestIndex:    res.BestIndex,
		Score:        res.Score,
		OptimalPaths: res.OptimalPaths,
		Truncated:    res.Truncated,
		Summary:      summary,
	})
}

// Table handles DP table requests. No paths are enumerated.
func (h *AlignmentHandler) Table(w http.ResponseWriter, r *http.Request) {
	job, ok := h.decode(w, r)
	if !ok {
		return
	}

	t := alignment.BuildTable(job.seq1.Bases, job.seq2.Bases, job.scheme)
	dirs := make([][]string, len(t.Directions))
	for i, row := range t.Directions {
		dirs[i] = make([]string, len(row))
		for j, ds := range row {
			dirs[i][j] = ds.String()
		}
	}

	writeJSON(w, http.StatusOK, TableResponse{
		Sequence1:    t.Seq1,
		Sequence2:    t.Seq2,
		Scores:       t.Scores,
		Directions:   dirs,
		Score:        t.Score(),
		OptimalPaths: alignment.CountPaths(t.Directions),
	})
}

// Score handles alignment score requests using linear space.
func (h *AlignmentHandler) Score(w http.ResponseWriter, r *http.Request) {
	job, ok := h.decode(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, ScoreResponse{
		Score: alignment.GlobalScoreOnly(job.seq1.Bases, job.seq2.Bases, job.scheme),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
