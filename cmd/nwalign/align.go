package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/aria-lang/nwalign/internal/alignment"
	"github.com/aria-lang/nwalign/internal/render"
	"github.com/aria-lang/nwalign/internal/stats"
	"github.com/aria-lang/nwalign/pkg/nwalign"
	"github.com/spf13/cobra"
)

const histogramBins = 10

// alignFlags are the output switches that do not live in config.
type alignFlags struct {
	seq1, seq2 string
	all        bool
	table      bool
	plot       string
}

// newAlignCmd is for aligning one pair of sequences.
func newAlignCmd(a *app) *cobra.Command {
	var f alignFlags

	alignCmd := &cobra.Command{
		Use:   "align [file]",
		Short: "Align two sequences",
		Long: `Align two sequences read from [file], from stdin when [file] is "-",
or given with --seq1 and --seq2.

The file holds either the two sequences on its first two lines or two FASTA
records.

Sequences are upper-cased and trimmed before alignment, so "ag" and "AG"
align as identical.`,
		Example: `  nwalign align pair.txt
  nwalign align --seq1 GATTACA --seq2 GCATGCT --all
  nwalign align pair.fa --gap -4 --table --plot table.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAlign(cmd, args, f)
		},
	}

	flags := alignCmd.Flags()
	flags.StringVar(&f.seq1, "seq1", "", "first sequence")
	flags.StringVar(&f.seq2, "seq2", "", "second sequence")
	flags.BoolVar(&f.all, "all", false, "print every optimal alignment")
	flags.BoolVar(&f.table, "table", false, "print the DP score and direction tables")
	flags.StringVar(&f.plot, "plot", "", "write a heat map of the DP table to this file (.png, .svg, .pdf)")

	scheme := alignment.DefaultScheme()
	flags.Int("identity", scheme.Identity, "score for identical symbols")
	flags.Int("transition", scheme.Transition, "score for a purine-purine or pyrimidine-pyrimidine substitution")
	flags.Int("transversion", scheme.Transversion, "score for any other substitution")
	flags.Int("gap", scheme.Gap, "score for each gap column")
	flags.Int("max-paths", alignment.DefaultMaxPaths, "stop enumerating optimal alignments after this many (0 for no limit)")
	flags.Bool("strict", false, "reject symbols other than A, C, G, T and N")
	flags.Bool("strict-limit", false, "fail instead of truncating when --max-paths is reached")

	// Bind the parameters to viper
	a.v.BindPFlag("scoring.identity", flags.Lookup("identity"))
	a.v.BindPFlag("scoring.transition", flags.Lookup("transition"))
	a.v.BindPFlag("scoring.transversion", flags.Lookup("transversion"))
	a.v.BindPFlag("scoring.gap", flags.Lookup("gap"))
	a.v.BindPFlag("max-paths", flags.Lookup("max-paths"))
	a.v.BindPFlag("strict", flags.Lookup("strict"))
	a.v.BindPFlag("strict-limit", flags.Lookup("strict-limit"))

	return alignCmd
}

func (a *app) runAlign(cmd *cobra.Command, args []string, f alignFlags) error {
	seq1, seq2, err := a.readPair(cmd, args, f)
	if err != nil {
		return err
	}

	if a.cfg.Strict {
		if err := seq1.Validate(); err != nil {
			return fmt.Errorf("sequence 1: %w", err)
		}
		if err := seq2.Validate(); err != nil {
			return fmt.Errorf("sequence 2: %w", err)
		}
	}

	opts := append(a.cfg.AlignOptions(),
		nwalign.WithContext(cmd.Context()),
		nwalign.WithLogger(a.logger),
	)
	res, err := nwalign.AlignSequences(seq1, seq2, &a.cfg.Scoring, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printResult(out, seq1, seq2, res, f.all)

	if f.table {
		fmt.Fprintln(out)
		if err := render.WriteTable(out, res.Table, true); err != nil {
			return err
		}
	}

	if f.plot != "" {
		hm := render.DefaultHeatMapOptions()
		hm.Path = res.Paths[res.BestIndex]
		if err := render.SaveHeatMap(f.plot, res.Table, hm); err != nil {
			return fmt.Errorf("writing heat map: %w", err)
		}
		a.logger.Info("heat map written", "file", f.plot)
	}

	return nil
}

func (a *app) readPair(cmd *cobra.Command, args []string, f alignFlags) (*nwalign.Sequence, *nwalign.Sequence, error) {
	switch {
	case len(args) == 1 && args[0] == "-":
		return nwalign.ParsePair(cmd.InOrStdin())
	case len(args) == 1:
		return nwalign.ReadPair(args[0])
	case cmd.Flags().Changed("seq1") || cmd.Flags().Changed("seq2"):
		return nwalign.NewSequence(f.seq1), nwalign.NewSequence(f.seq2), nil
	default:
		return nil, nil, errors.New("nothing to align: pass a file or --seq1 and --seq2")
	}
}

func printResult(w io.Writer, seq1, seq2 *nwalign.Sequence, res *nwalign.Result, all bool) {
	fmt.Fprintln(w, "1st input sequence:", seq1.Bases)
	fmt.Fprintln(w, "2nd input sequence:", seq2.Bases)
	fmt.Fprintln(w, "The best alignment is")
	fmt.Fprintln(w, res.Best.AlignedSeq1)
	fmt.Fprintln(w, res.Best.AlignedSeq2)
	fmt.Fprintln(w, "Best alignment score:", res.Score)

	if res.Truncated {
		fmt.Fprintf(w, "Optimal alignments: %d (enumeration stopped after %d, raise --max-paths to see more)\n",
			res.OptimalPaths, len(res.Paths))
	} else {
		fmt.Fprintf(w, "Optimal alignments: %d\n", res.OptimalPaths)
	}

	if !all {
		return
	}
	for i, aln := range res.Alignments {
		fmt.Fprintf(w, "\n#%d\n%s\n", i+1, aln.Format())
	}

	summary, err := stats.FromAlignments(res.Alignments)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "\n%s\n", summary)
	if hist, err := stats.NewGapHistogram(res.Alignments, histogramBins); err == nil {
		fmt.Fprint(w, hist)
	}
}
