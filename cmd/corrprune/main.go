// Command corrprune removes highly correlated feature columns from a CSV file.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sartorproj/gocollinear/correlation"
	"github.com/sartorproj/gocollinear/dataset"
	"github.com/sartorproj/gocollinear/internal/config"
	"github.com/sartorproj/gocollinear/internal/logging"
	"github.com/sartorproj/gocollinear/prune"
)

// options holds flag values that are not layered through viper.
type options struct {
	configFile string
	explain    bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "corrprune [flags] <input.csv>",
		Short: "Remove highly correlated feature columns from a CSV dataset",
		Long: `corrprune computes the pairwise correlation of every column of a numeric
CSV dataset and drops the later column of each pair whose absolute
correlation exceeds the threshold. The pruned dataset is written as CSV.

Settings are resolved in order: defaults, --config file, CORRPRUNE_*
environment variables, command-line flags.

Example:
  corrprune --method pearson --threshold 0.8 --exclude target features.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(v, opts)
			if err != nil {
				return err
			}
			return run(cmd, cfg, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	flags.StringP("method", "m", prune.DefaultMethod.String(), "correlation method: spearman, pearson or kendall")
	flags.Float64P("threshold", "t", prune.DefaultThreshold, "absolute correlation above which a column is dropped")
	flags.StringP("output", "o", "", "output CSV path (default stdout)")
	flags.StringSlice("exclude", nil, "columns to leave out of the analysis, e.g. the target")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.explain, "explain", false, "print the correlated pairs and the dropped columns to stderr")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	for _, name := range []string{"method", "threshold", "output", "exclude", "log-level"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
	v.SetEnvPrefix("CORRPRUNE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

// resolveConfig layers environment variables and changed flags over the
// config file.
func resolveConfig(v *viper.Viper, opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configFile != "" {
		// Load falls back to defaults for a missing file; a named file must exist
		if _, err := os.Stat(opts.configFile); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v.IsSet("method") {
		m, err := correlation.ParseMethod(v.GetString("method"))
		if err != nil {
			return nil, err
		}
		cfg.Method = m
	}
	if v.IsSet("threshold") {
		cfg.Threshold = v.GetFloat64("threshold")
	}
	if v.IsSet("output") {
		cfg.Output.Path = v.GetString("output")
	}
	if v.IsSet("exclude") {
		cfg.Input.Exclude = splitList(v.GetStringSlice("exclude"))
	}
	if v.IsSet("log-level") {
		cfg.Logging.Level = v.GetString("log-level")
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// splitList flattens comma-separated entries. Flags arrive split already,
// environment values arrive as a single string.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func run(cmd *cobra.Command, cfg *config.Config, opts *options, input string) error {
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ds, err := dataset.LoadCSV(input, cfg.CSVOptions())
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", input, err)
	}
	logger.Info("loaded dataset",
		zap.String("path", input),
		zap.Int("rows", ds.NumRows()),
		zap.Int("columns", ds.NumColumns()),
	)

	analysis, err := prune.AnalyzeWithConfig(ds, cfg.PruneConfig(logger))
	if err != nil {
		return err
	}
	out, err := analysis.Apply(ds)
	if err != nil {
		return err
	}

	if opts.explain {
		explain(cmd.ErrOrStderr(), analysis)
	}

	if cfg.Output.Path == "" {
		err = dataset.WriteCSV(out, cmd.OutOrStdout())
	} else {
		err = dataset.SaveCSV(out, cfg.Output.Path)
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Info("pruned dataset",
		zap.Stringer("method", cfg.Method),
		zap.Float64("threshold", cfg.Threshold),
		zap.Strings("dropped", analysis.Dropped()),
		zap.Int("kept", out.NumColumns()),
	)
	return nil
}

func explain(w io.Writer, analysis *prune.Analysis) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "EARLIER\tLATER\t%s\n", strings.ToUpper(analysis.Matrix.Method().String()))
	for _, p := range analysis.Pairs {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\n", p.Earlier, p.Later, p.Coefficient)
	}
	tw.Flush()
	fmt.Fprintf(w, "dropped: %s\n", strings.Join(analysis.Dropped(), ", "))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
