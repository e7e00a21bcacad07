// horizon: deterministic prober for high-rank elliptic curve candidates.
//
// Two modes:
//
//	horizon probe A B   # analyze one curve and print a diagnostic report
//	horizon mine        # random-search for titans until interrupted
//
// Both share the same core: a fixed table of small primes, a per-prime
// Legendre-sum local trace, a log2-weighted analytic score, and a
// Collatz-glide dynamic resistance. Thresholds, the prime table and the
// search range all come from the config file (see `horizon init-config`).
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"horizon/internal/hunt"
)

func newRootCmd() *cobra.Command {
	var cfgPath string
	var logLevel string

	root := &cobra.Command{
		Use:           "horizon",
		Short:         "probe and mine elliptic curve signatures",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (YAML); defaults apply when absent")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error (overrides config)")

	load := func() (*hunt.Config, *logrus.Logger, error) {
		cfg, err := hunt.Load(cfgPath)
		if err != nil {
			return nil, nil, err
		}
		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		return cfg, setupLogger(level), nil
	}

	root.AddCommand(newProbeCmd(load), newMineCmd(load), newInitConfigCmd())
	return root
}

func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

func newProbeCmd(load func() (*hunt.Config, *logrus.Logger, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "probe A B",
		Short: "analyze a single curve y^2 = x^3 + Ax + B",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := hunt.ParseCoeff(args[0])
			if err != nil {
				return fmt.Errorf("A: %w", err)
			}
			b, err := hunt.ParseCoeff(args[1])
			if err != nil {
				return fmt.Errorf("B: %w", err)
			}

			cfg, log, err := load()
			if err != nil {
				return err
			}
			an, err := hunt.BuildAnalyzer(cfg)
			if err != nil {
				return err
			}
			log.Debugf("prime table ready: %d primes up to %d", cfg.PrimeCount, cfg.PrimeBound)

			rep := hunt.Probe(an, cfg.ProbeThresholds(), a, b)
			rep.Format(cmd.OutOrStdout())
			return nil
		},
	}
}

func newMineCmd(load func() (*hunt.Config, *logrus.Logger, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "random-search for titans until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			an, err := hunt.BuildAnalyzer(cfg)
			if err != nil {
				return err
			}
			sink, err := hunt.NewFileSink(cfg.Mine.OutPath)
			if err != nil {
				return err
			}
			defer sink.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Infof("mining started: range ±%d, titan cut score<%.1f glide>%d, workers=%d",
				cfg.Mine.CoeffRange, cfg.Mine.ScoreMax, cfg.Mine.GlideMin, cfg.Mine.Workers)
			log.Info("press Ctrl+C to stop")

			sum, err := hunt.NewMiner(cfg, an, log, sink).Run(ctx)
			if err != nil {
				return err
			}

			log.Infof("mining halted: %d curves in %s (%.0f curves/sec), %d titans",
				sum.Attempts, sum.Elapsed.Truncate(time.Millisecond), sum.Rate, sum.Titans)
			if sum.Titans > 0 {
				log.Infof("titan scores: best=%.4f mean=%.4f", sum.BestScore, sum.MeanScore)
			}
			return nil
		},
	}
}

func newInitConfigCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := hunt.WriteDefault(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "horizon.yaml", "destination path")
	return cmd
}
