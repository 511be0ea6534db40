package trainer

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"linefit/internal/metrics"
	"linefit/internal/model"
)

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Points       []model.Point
	Start        model.Line
	LearningRate float64
	Iterations   int
	LogEvery     int
}

// Result describes a finished run.
type Result struct {
	Start        model.Line
	Final        model.Line
	InitialError float64
	FinalError   float64
	Iterations   int
	Elapsed      time.Duration
}

// GradientDescent applies model.StepGradient iterations times starting from
// start and returns the final parameters. It never stops early.
func GradientDescent(points []model.Point, start model.Line, learningRate float64, iterations int) model.Line {
	line := start
	for i := 0; i < iterations; i++ {
		line = model.StepGradient(line, points, learningRate)
	}
	return line
}

// Run executes the same updates as GradientDescent, logging progress every
// LogEvery steps and stopping if ctx is cancelled.
func Run(ctx context.Context, cfg RunConfig) (Result, error) {
	if len(cfg.Points) == 0 {
		return Result{}, errors.New("trainer: no points to fit")
	}
	if cfg.LearningRate <= 0 {
		return Result{}, errors.Errorf("trainer: learning rate must be > 0 (got %v)", cfg.LearningRate)
	}
	if cfg.Iterations < 0 {
		return Result{}, errors.Errorf("trainer: iterations must be >= 0 (got %d)", cfg.Iterations)
	}

	res := Result{
		Start:        cfg.Start,
		InitialError: model.ComputeError(cfg.Start, cfg.Points),
	}

	var window metrics.Window
	line := cfg.Start
	began := time.Now()

	for step := 1; step <= cfg.Iterations; step++ {
		if err := ctx.Err(); err != nil {
			return Result{}, errors.Wrapf(err, "trainer: stopped at step %d", step)
		}

		startStep := time.Now()
		line = model.StepGradient(line, cfg.Points, cfg.LearningRate)
		window.Record(len(cfg.Points), time.Since(startStep))

		if cfg.LogEvery > 0 && step%cfg.LogEvery == 0 {
			snap := window.Snapshot(model.ComputeError(line, cfg.Points))
			log.WithFields(log.Fields{
				"step":           step,
				"b":              line.B,
				"m":              line.M,
				"error":          snap.LastError,
				"points_per_sec": fmt.Sprintf("%.1f", snap.PointsPerSec),
				"step_us":        fmt.Sprintf("%.2f", snap.AvgStepUS),
			}).Debug("gradient descent progress")
		}
	}

	res.Final = line
	res.FinalError = model.ComputeError(line, cfg.Points)
	res.Iterations = cfg.Iterations
	res.Elapsed = time.Since(began)
	return res, nil
}
