package asterisk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverage(t *testing.T) {
	t.Parallel()

	base := &Trajectory{Frames: []Frame{
		{X: 0, Y: 0, RMag: 0},
		{X: 0.2, Y: 0.4, RMag: 2},
		{X: 0.4, Y: 0.8, RMag: 4},
		{X: 0.6, Y: 1.2, RMag: 6},
	}}

	t.Run("trailing window with minimum period one", func(t *testing.T) {
		t.Parallel()
		filtered := base.MovingAverage(2)

		require.Equal(t, 2, filtered.Window)
		require.Len(t, filtered.Frames, len(base.Frames))

		// First sample averages only itself; later samples use the full window.
		assert.Equal(t, Frame{X: 0, Y: 0, RMag: 0}, filtered.Frames[0])
		assert.Equal(t, Frame{X: 0.1, Y: 0.2, RMag: 1}, filtered.Frames[1])
		assert.Equal(t, Frame{X: 0.3, Y: 0.6, RMag: 3}, filtered.Frames[2])
		assert.Equal(t, Frame{X: 0.5, Y: 1.0, RMag: 5}, filtered.Frames[3])
	})

	t.Run("window one is the identity", func(t *testing.T) {
		t.Parallel()
		filtered := base.MovingAverage(1)
		assert.Equal(t, base.Frames, filtered.Frames)
	})

	t.Run("window wider than the data averages everything seen so far", func(t *testing.T) {
		t.Parallel()
		filtered := base.MovingAverage(50)
		last := filtered.Frames[len(filtered.Frames)-1]
		assert.InDelta(t, 0.3, last.X, 1e-4)
		assert.InDelta(t, 0.6, last.Y, 1e-4)
		assert.InDelta(t, 3.0, last.RMag, 1e-4)
	})

	t.Run("base trajectory is untouched", func(t *testing.T) {
		t.Parallel()
		before := append([]Frame(nil), base.Frames...)
		_ = base.MovingAverage(3)
		assert.Equal(t, before, base.Frames)
	})

	t.Run("non-positive window is clamped", func(t *testing.T) {
		t.Parallel()
		filtered := base.MovingAverage(0)
		assert.Equal(t, 1, filtered.Window)
		assert.Equal(t, base.Frames, filtered.Frames)
	})
}

func TestApplyMovingAverage(t *testing.T) {
	t.Parallel()

	id := Identity{Subject: "sub1", Hand: "2v2", Translation: DirA, Rotation: RotNone, Number: "1"}
	raw := []RawFrame{
		{Y: 0}, {Y: 0.1}, {Y: 0.2}, {Y: 0.3},
	}
	trial := NewTrial(id, raw, unitGeometry, nil)

	require.Nil(t, trial.Filtered)
	trial.ApplyMovingAverage(3)
	require.NotNil(t, trial.Filtered)
	assert.Equal(t, 3, trial.Filtered.Window)
	assert.Len(t, trial.Filtered.Frames, trial.Poses.Len())

	// Re-applying replaces the snapshot.
	trial.ApplyMovingAverage(5)
	assert.Equal(t, 5, trial.Filtered.Window)
}
