package metrics

import "time"

// Window accumulates timing stats across multiple gradient steps.
type Window struct {
	points int
	step   time.Duration
	steps  int
}

// Record adds one step that visited the given number of points.
func (w *Window) Record(points int, stepTime time.Duration) {
	w.points += points
	w.step += stepTime
	w.steps++
}

// Snapshot returns aggregated metrics alongside the supplied error and
// resets the window.
func (w *Window) Snapshot(lastError float64) Snapshot {
	snap := Snapshot{}
	if w.step > 0 {
		snap.PointsPerSec = float64(w.points) / w.step.Seconds()
	}
	if w.steps > 0 {
		snap.AvgStepUS = (w.step.Seconds() * 1e6) / float64(w.steps)
	}
	snap.Steps = w.steps
	snap.LastError = lastError

	w.points = 0
	w.step = 0
	w.steps = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Steps        int
	PointsPerSec float64
	AvgStepUS    float64
	LastError    float64
}
