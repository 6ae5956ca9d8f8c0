package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aria-lang/nwalign/internal/alignment"
	"github.com/aria-lang/nwalign/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler(maxPaths int) *AlignmentHandler {
	cfg := &config.Config{
		Scoring:  *alignment.DefaultScheme(),
		MaxPaths: maxPaths,
	}
	return NewAlignmentHandler(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func serve(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestGlobal(t *testing.T) {
	h := testHandler(100)

	tests := []struct {
		name  string
		body  string
		want1 string
		want2 string
		score int
		cigar string
	}{
		{"short pair", `{"sequence1": "AG", "sequence2": "AC"}`, "AG", "AC", 1, "1M1X"},
		{"lower case input", `{"sequence1": "ag", "sequence2": "ac"}`, "AG", "AC", 1, "1M1X"},
		{"empty first", `{"sequence1": "", "sequence2": "AGT"}`, "___", "AGT", -24, "3I"},
		{"custom gap", `{"sequence1": "AG", "sequence2": "AC", "scoring": {"gap": -1}}`, "A_G", "AC_", 2, "1M1I1D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h.Global, tt.body)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			resp := decodeBody[AlignmentResponse](t, rec)
			assert.Equal(t, tt.want1, resp.AlignedSeq1)
			assert.Equal(t, tt.want2, resp.AlignedSeq2)
			assert.Equal(t, tt.score, resp.Score)
			assert.Equal(t, tt.score, resp.TableScore)
			assert.Equal(t, tt.cigar, resp.CIGAR)
			assert.False(t, resp.Truncated)
		})
	}
}

func TestAll(t *testing.T) {
	tieBody := `{"sequence1": "A", "sequence2": "T", "scoring": {"transversion": -16}}`

	t.Run("every optimal alignment", func(t *testing.T) {
		rec := serve(testHandler(100).All, tieBody)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[AllAlignmentsResponse](t, rec)
		require.Len(t, resp.Alignments, 3)
		assert.Equal(t, 0, resp.BestIndex)
		assert.Equal(t, -16, resp.Score)
		assert.Equal(t, uint64(3), resp.OptimalPaths)
		assert.False(t, resp.Truncated)

		got := make([]string, len(resp.Alignments))
		for i, a := range resp.Alignments {
			assert.Equal(t, -16, a.Score)
			assert.Equal(t, alignment.Coord{Row: 1, Col: 1}, a.Path[0])
			got[i] = a.AlignedSeq1 + "/" + a.AlignedSeq2
		}
		assert.Equal(t, []string{"A/T", "_A/T_", "A_/_T"}, got)

		require.NotNil(t, resp.Summary)
		assert.Equal(t, 3, resp.Summary.Count)
		assert.Equal(t, 2, resp.Summary.MaxGaps)
	})

	t.Run("request lowers the ceiling", func(t *testing.T) {
		body := `{"sequence1": "A", "sequence2": "T", "scoring": {"transversion": -16}, "max_paths": 2}`
		resp := decodeBody[AllAlignmentsResponse](t, serve(testHandler(100).All, body))
		assert.Len(t, resp.Alignments, 2)
		assert.True(t, resp.Truncated)
		assert.Equal(t, uint64(3), resp.OptimalPaths)
	})

	t.Run("request cannot raise the ceiling", func(t *testing.T) {
		body := `{"sequence1": "A", "sequence2": "T", "scoring": {"transversion": -16}, "max_paths": 50}`
		resp := decodeBody[AllAlignmentsResponse](t, serve(testHandler(1).All, body))
		assert.Len(t, resp.Alignments, 1)
		assert.True(t, resp.Truncated)
	})

	t.Run("strict limit", func(t *testing.T) {
		body := `{"sequence1": "A", "sequence2": "T", "scoring": {"transversion": -16}, "max_paths": 2, "strict_limit": true}`
		rec := serve(testHandler(100).All, body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decodeBody[ErrorResponse](t, rec).Error, "exceeds limit")
	})
}

func TestTable(t *testing.T) {
	rec := serve(testHandler(100).Table, `{"sequence1": "AG", "sequence2": "AC"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[TableResponse](t, rec)
	assert.Equal(t, [][]int{{0, -8, -16}, {-8, 4, -4}, {-16, -4, 1}}, resp.Scores)
	assert.Equal(t, [][]string{{"", "l", "l"}, {"u", "d", "l"}, {"u", "u", "d"}}, resp.Directions)
	assert.Equal(t, 1, resp.Score)
	assert.Equal(t, uint64(1), resp.OptimalPaths)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"default scheme", `{"sequence1": "AG", "sequence2": "AC"}`, 1},
		{"custom gap", `{"sequence1": "AG", "sequence2": "AC", "scoring": {"gap": -1}}`, 2},
		{"both empty", `{"sequence1": "", "sequence2": ""}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(testHandler(100).Score, tt.body)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, decodeBody[ScoreResponse](t, rec).Score)
		})
	}
}

func TestBadRequests(t *testing.T) {
	h := testHandler(100)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"invalid json", `{"sequence1": `, "invalid request body"},
		{"strict first", `{"sequence1": "AXG", "sequence2": "AC", "strict": true}`, "sequence1"},
		{"strict second", `{"sequence1": "AG", "sequence2": "A-C", "strict": true}`, "sequence2"},
		{"zero max paths", `{"sequence1": "AG", "sequence2": "AC", "max_paths": 0}`, "max_paths"},
	}

	for _, tt := range tests {
		for name, fn := range map[string]http.HandlerFunc{
			"global": h.Global, "all": h.All, "table": h.Table, "score": h.Score,
		} {
			t.Run(tt.name+"/"+name, func(t *testing.T) {
				rec := serve(fn, tt.body)
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, decodeBody[ErrorResponse](t, rec).Error, tt.wantErr)
			})
		}
	}
}

func TestSequenceLengthLimit(t *testing.T) {
	h := testHandler(100)
	h.cfg.Server.MaxLength = 4

	tests := []struct {
		name    string
		body    string
		status  int
		wantErr string
	}{
		{"within limit", `{"sequence1": "ACGT", "sequence2": "AC"}`, http.StatusOK, ""},
		{"first too long", `{"sequence1": "ACGTA", "sequence2": "AC"}`, http.StatusRequestEntityTooLarge, "sequence1: length 5 exceeds limit of 4"},
		{"second too long", `{"sequence1": "AC", "sequence2": "ACGTACGT"}`, http.StatusRequestEntityTooLarge, "sequence2"},
		{"body too large", `{"sequence1": "` + strings.Repeat("A", 2*bodySlack) + `", "sequence2": "AC"}`, http.StatusRequestEntityTooLarge, "request body too large"},
	}

	for _, tt := range tests {
		for name, fn := range map[string]http.HandlerFunc{
			"global": h.Global, "all": h.All, "table": h.Table, "score": h.Score,
		} {
			t.Run(tt.name+"/"+name, func(t *testing.T) {
				rec := serve(fn, tt.body)
				require.Equal(t, tt.status, rec.Code, rec.Body.String())
				if tt.wantErr != "" {
					assert.Contains(t, decodeBody[ErrorResponse](t, rec).Error, tt.wantErr)
				}
			})
		}
	}
}

func TestGlobalCanceled(t *testing.T) {
	h := testHandler(0)
	body := `{"sequence1": "AAAAAAAA", "sequence2": "CCCCCCCC",
		"scoring": {"identity": 0, "transition": 0, "transversion": 0, "gap": 0}}`

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.Global(rec, req)

	assert.Empty(t, rec.Body.String())
}
