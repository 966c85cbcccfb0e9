package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mahdiidarabi/edcurve/internal/crosscheck"
	"github.com/mahdiidarabi/edcurve/internal/selfcheck"
)

func selfcheckCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selfcheck",
		Short: "Verify curve constants and precomputed tables",
		Long:  `Checks the algebraic relations between the field and curve constants, the basepoint, the eight-torsion table and the scalar multiplication tables.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(v)
			if err != nil {
				return err
			}
			defer logger.Sync()

			results, runErr := selfcheck.NewChecker().
				WithLogger(logger).
				WithFailFast(v.GetBool("selfcheck.fail_fast")).
				Run(cmd.Context())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CHECK\tRESULT\tTIME")
			for _, r := range results {
				status := "ok"
				if r.Err != nil {
					status = "FAIL: " + r.Err.Error()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, status, r.Duration.Round(time.Microsecond))
			}
			w.Flush()
			return runErr
		},
	}

	flags := cmd.Flags()
	flags.Bool("fail-fast", false, "Stop at the first failing check")
	v.BindPFlag("selfcheck.fail_fast", flags.Lookup("fail-fast"))
	return cmd
}

func crosscheckCmd(v *viper.Viper) *cobra.Command {
	defaults := crosscheck.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "crosscheck",
		Short: "Compare the engine against reference implementations on random inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(v)
			if err != nil {
				return err
			}
			defer logger.Sync()

			properties := crosscheck.DefaultProperties()
			if names := v.GetStringSlice("crosscheck.property"); len(names) > 0 {
				if properties, err = crosscheck.SelectProperties(names); err != nil {
					return err
				}
			}

			cfg := crosscheck.DefaultConfig().
				WithTrials(v.GetInt("crosscheck.trials")).
				WithNumWorkers(v.GetInt("crosscheck.workers")).
				WithSeed(v.GetInt64("crosscheck.seed")).
				WithProgressInterval(v.GetDuration("crosscheck.progress")).
				WithMaxFailures(v.GetInt("crosscheck.max_failures"))

			rep, runErr := crosscheck.NewRunner().
				WithConfig(cfg).
				WithProperties(properties).
				WithLogger(logger).
				Run(cmd.Context())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "trials: %d, checks: %d, failures: %d, elapsed: %s\n",
				rep.Trials, rep.Checks, len(rep.Failures), rep.Elapsed.Round(time.Millisecond))
			for _, f := range rep.Failures {
				fmt.Fprintf(out, "  %s (trial %d, seed %d): %v\n", f.Property, f.Trial, f.Seed, f.Err)
			}
			return runErr
		},
	}

	flags := cmd.Flags()
	flags.Int("trials", defaults.Trials, "Number of random inputs per property")
	flags.Int("workers", defaults.NumWorkers, "Number of parallel workers (0 = auto-detect based on CPU cores)")
	flags.Int64("seed", defaults.Seed, "Seed of the first trial")
	flags.Duration("progress", defaults.ProgressInterval, "Progress log interval (0 disables)")
	flags.Int("max-failures", defaults.MaxFailures, "Stop after this many failures (0 = never)")
	flags.StringSlice("property", nil, fmt.Sprintf("Properties to check (default all: %v)", crosscheck.PropertyNames()))
	for key, name := range map[string]string{
		"crosscheck.trials":       "trials",
		"crosscheck.workers":      "workers",
		"crosscheck.seed":         "seed",
		"crosscheck.progress":     "progress",
		"crosscheck.max_failures": "max-failures",
		"crosscheck.property":     "property",
	} {
		v.BindPFlag(key, flags.Lookup(name))
	}
	return cmd
}
