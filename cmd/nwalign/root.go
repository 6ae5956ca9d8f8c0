package main

import (
	"fmt"
	"log/slog"

	"github.com/aria-lang/nwalign/internal/config"
	"github.com/aria-lang/nwalign/pkg/nwalign"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

// newRootCmd represents the base command when called without any subcommands.
func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "nwalign",
		Short: "Global alignment of nucleotide sequences, keeping every optimal alignment",
		Long: `Align two nucleotide sequences with the Needleman-Wunsch algorithm.

Substitutions are scored as identity, transition (A<->G, C<->T) or
transversion, and gaps have a linear cost. All co-optimal tracebacks are
enumerated, up to --max-paths.`,
		Version:      nwalign.Version(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")

	// Bind the parameters to viper
	a.v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(newAlignCmd(a), newServeCmd(a), newVersionCmd())
	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.logger.Debug("config loaded", "file", a.cfgFile, "scoring", cfg.Scoring.String(), "max_paths", cfg.MaxPaths)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), nwalign.Info())
		},
	}
}
