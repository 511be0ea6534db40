package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowSnapshot(t *testing.T) {
	var w Window
	w.Record(100, 20*time.Millisecond)
	w.Record(100, 30*time.Millisecond)
	snap := w.Snapshot(0.8)

	assert.InDelta(t, 4000.0, snap.PointsPerSec, 1)
	assert.InDelta(t, 25000.0, snap.AvgStepUS, 1e-6)
	assert.Equal(t, 2, snap.Steps)
	assert.Equal(t, 0.8, snap.LastError)
	assert.Zero(t, w.points)
	assert.Zero(t, w.steps)
	assert.Zero(t, w.step)
}

func TestWindowSnapshotEmpty(t *testing.T) {
	var w Window
	snap := w.Snapshot(1.5)
	assert.Equal(t, Snapshot{LastError: 1.5}, snap)
}
