package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aria-lang/nwalign/internal/alignment"
)

// WriteTable prints the score table with sequence symbols as headers. With
// dirs set, a second block prints each cell's direction set ("lud" order,
// "." for the origin).
func WriteTable(w io.Writer, t *alignment.Table, dirs bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)

	writeBlock(tw, t, func(i, j int) string {
		return fmt.Sprint(t.Scores[i][j])
	})
	if dirs {
		fmt.Fprintln(tw)
		writeBlock(tw, t, func(i, j int) string {
			if t.Directions[i][j].IsEmpty() {
				return "."
			}
			return t.Directions[i][j].String()
		})
	}
	return tw.Flush()
}

func writeBlock(tw *tabwriter.Writer, t *alignment.Table, cell func(i, j int) string) {
	header := []string{"", "-"}
	for j := 0; j < len(t.Seq2); j++ {
		header = append(header, string(t.Seq2[j]))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for i := range t.Scores {
		row := make([]string, 0, len(t.Scores[i])+1)
		if i == 0 {
			row = append(row, "-")
		} else {
			row = append(row, string(t.Seq1[i-1]))
		}
		for j := range t.Scores[i] {
			row = append(row, cell(i, j))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
}
