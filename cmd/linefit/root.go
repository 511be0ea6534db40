package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"linefit/internal/config"
	"linefit/internal/dataset"
	"linefit/internal/metrics"
	"linefit/internal/model"
	"linefit/internal/trainer"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linefit",
		Short: "Fit y = m*x + b to a CSV of points with batch gradient descent.",
		Long: `linefit fits y = m*x + b to a CSV of points with batch gradient descent.

The input file holds one "x,y" pair per line with no header. Without flags
linefit reads data.csv, starts from b = 0, m = 0 and runs 1000 iterations
with a learning rate of 0.0001.

Settings may also be kept in a YAML file passed with --config; flags win
over the file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return errors.WithStack(err)
			}
			log.SetLevel(level)
			return fit(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	defaults := config.Default()
	cmd.Flags().String("config", "", "Path to YAML config")
	cmd.Flags().String("data", defaults.DataPath, "Path to the comma-delimited point file")
	cmd.Flags().Float64("learning-rate", defaults.LearningRate, "Gradient descent step size")
	cmd.Flags().Int("iterations", defaults.Iterations, "Number of gradient descent steps")
	cmd.Flags().Float64("initial-b", defaults.InitialB, "Starting intercept")
	cmd.Flags().Float64("initial-m", defaults.InitialM, "Starting slope")
	cmd.Flags().Int("log-every", defaults.LogEvery, "Log progress every N steps at debug level (0 disables)")
	cmd.Flags().String("log-level", defaults.LogLevel, "Log level (panic, fatal, error, warn, info, debug, trace)")
	cmd.Flags().Bool("reference", defaults.Reference, "Also log the closed-form least squares fit")

	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	var o config.Overrides
	if flags.Changed("data") {
		v, _ := flags.GetString("data")
		o.DataPath = &v
	}
	if flags.Changed("learning-rate") {
		v, _ := flags.GetFloat64("learning-rate")
		o.LearningRate = &v
	}
	if flags.Changed("iterations") {
		v, _ := flags.GetInt("iterations")
		o.Iterations = &v
	}
	if flags.Changed("initial-b") {
		v, _ := flags.GetFloat64("initial-b")
		o.InitialB = &v
	}
	if flags.Changed("initial-m") {
		v, _ := flags.GetFloat64("initial-m")
		o.InitialM = &v
	}
	if flags.Changed("log-every") {
		v, _ := flags.GetInt("log-every")
		o.LogEvery = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		o.LogLevel = &v
	}
	if flags.Changed("reference") {
		v, _ := flags.GetBool("reference")
		o.Reference = &v
	}
	cfg.ApplyOverrides(o)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func fit(ctx context.Context, cfg *config.Config, out io.Writer) error {
	points, err := dataset.LoadFile(ctx, cfg.DataPath)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"path": cfg.DataPath, "points": len(points)}).Debug("loaded points")

	start := model.Line{B: cfg.InitialB, M: cfg.InitialM}
	fmt.Fprintf(out, "Starting gradient descent at b = %v, m = %v, error = %v\n",
		start.B, start.M, model.ComputeError(start, points))
	fmt.Fprintln(out, "Running...")

	res, err := trainer.Run(ctx, trainer.RunConfig{
		Points:       points,
		Start:        start,
		LearningRate: cfg.LearningRate,
		Iterations:   cfg.Iterations,
		LogEvery:     cfg.LogEvery,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "After %d iterations b = %v, m = %v, error = %v\n",
		res.Iterations, res.Final.B, res.Final.M, res.FinalError)

	log.WithField("elapsed", res.Elapsed).Debug("gradient descent finished")

	if cfg.Reference {
		ref := metrics.Reference(points)
		log.WithFields(log.Fields{
			"b":         ref.Line.B,
			"m":         ref.Line.M,
			"error":     ref.Error,
			"r_squared": ref.RSquared,
			"gap":       res.FinalError - ref.Error,
		}).Info("least squares reference")
	}
	return nil
}
