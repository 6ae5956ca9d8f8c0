package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aria-lang/nwalign/internal/alignment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(out string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	return rows
}

func TestWriteTable(t *testing.T) {
	table := alignment.BuildTable("AG", "AC", nil)

	t.Run("scores", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteTable(&buf, table, false))

		assert.Equal(t, [][]string{
			{"-", "A", "C"},
			{"-", "0", "-8", "-16"},
			{"A", "-8", "4", "-4"},
			{"G", "-16", "-4", "1"},
		}, fields(buf.String()))
	})

	t.Run("with directions", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteTable(&buf, table, true))

		rows := fields(buf.String())
		require.Len(t, rows, 9)
		assert.Empty(t, rows[4])
		assert.Equal(t, [][]string{
			{"-", "A", "C"},
			{"-", ".", "l", "l"},
			{"A", "u", "d", "l"},
			{"G", "u", "u", "d"},
		}, rows[5:])
	})

	t.Run("empty sequences", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteTable(&buf, alignment.BuildTable("", "", nil), false))
		assert.Equal(t, [][]string{{"-"}, {"-", "0"}}, fields(buf.String()))
	})
}

func TestWriteHeatMap(t *testing.T) {
	table := alignment.BuildTable("GATTACA", "GCATGCT", nil)
	set, err := alignment.EnumeratePaths(table.Directions, table.Rows(), table.Cols(), alignment.WithMaxPaths(1))
	require.NoError(t, err)

	opts := DefaultHeatMapOptions()
	opts.Path = set.Paths[0]

	var buf bytes.Buffer
	require.NoError(t, WriteHeatMap(&buf, table, "png", opts))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestWriteHeatMapFlatScores(t *testing.T) {
	table := alignment.BuildTable("A", "T", &alignment.Scheme{})

	var buf bytes.Buffer
	require.NoError(t, WriteHeatMap(&buf, table, "png", HeatMapOptions{}))
	assert.NotZero(t, buf.Len())
}

func TestWriteHeatMapErrors(t *testing.T) {
	var buf bytes.Buffer

	err := WriteHeatMap(&buf, alignment.BuildTable("", "ACGT", nil), "png", DefaultHeatMapOptions())
	assert.ErrorIs(t, err, ErrEmptyTable)

	err = WriteHeatMap(&buf, nil, "png", DefaultHeatMapOptions())
	assert.ErrorIs(t, err, ErrEmptyTable)

	err = WriteHeatMap(&buf, alignment.BuildTable("A", "A", nil), "bogus", DefaultHeatMapOptions())
	assert.Error(t, err)
}

func TestSaveHeatMap(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "table.svg")
	require.NoError(t, SaveHeatMap(filename, alignment.BuildTable("AG", "AC", nil), DefaultHeatMapOptions()))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}
