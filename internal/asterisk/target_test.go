package asterisk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trajectoryFromPoints(points []Point, rmag float64) *Trajectory {
	frames := make([]Frame, len(points))
	for i, p := range points {
		frames[i] = Frame{X: p.X, Y: p.Y, RMag: rmag}
	}
	return &Trajectory{Frames: frames}
}

func TestSynthesizeTarget(t *testing.T) {
	t.Parallel()

	t.Run("truncates at the trajectory's extent", func(t *testing.T) {
		t.Parallel()
		// Direction a is +y; the object made it to roughly y=0.3 of the
		// 0.5-radius ideal line.
		traj := trajectoryFromPoints([]Point{{0, 0}, {0, 0.15}, {0.01, 0.3}}, 0)

		target := SynthesizeTarget(DirA, traj, nil)

		require.GreaterOrEqual(t, len(target.Path), 2)
		assert.Equal(t, Point{}, target.Path[0])
		terminal := target.Path[len(target.Path)-1]
		assert.InDelta(t, 0.3, terminal.Y, 0.01)
		assert.InDelta(t, 0.3, target.TotalDistance, 0.01)
	})

	t.Run("full-extent trajectory keeps the whole line", func(t *testing.T) {
		t.Parallel()
		traj := trajectoryFromPoints([]Point{{0, 0}, {0.5, 0}}, 0)

		target := SynthesizeTarget(DirC, traj, nil)

		terminal := target.Path[len(target.Path)-1]
		assert.InDelta(t, 0.5, terminal.X, 1e-9)
		assert.InDelta(t, 0.5, target.TotalDistance, 1e-9)
	})

	t.Run("degenerate movement falls back to two points", func(t *testing.T) {
		t.Parallel()
		traj := trajectoryFromPoints([]Point{{0, 0}, {0.0001, 0}}, 0)

		target := SynthesizeTarget(DirA, traj, nil)

		assert.Len(t, target.Path, 2)
		assert.Equal(t, Point{}, target.Path[0])
		// Known approximation: distance comes from the first non-origin ideal
		// sample rather than the trajectory.
		assert.InDelta(t, Distance(target.Path[0], target.Path[1]), target.TotalDistance, 1e-12)
		assert.Greater(t, target.TotalDistance, 0.0)
	})

	t.Run("empty trajectory falls back to two points", func(t *testing.T) {
		t.Parallel()
		target := SynthesizeTarget(DirB, &Trajectory{}, nil)
		assert.Len(t, target.Path, 2)
		assert.Equal(t, Point{}, target.Path[0])
	})

	t.Run("origin invariant holds for every direction", func(t *testing.T) {
		t.Parallel()
		traj := trajectoryFromPoints([]Point{{0.2, 0.2}, {0.25, 0.25}}, 0)
		for _, d := range TranslationDirections {
			target := SynthesizeTarget(d, traj, nil)
			require.GreaterOrEqual(t, len(target.Path), 2, "direction %s", d)
			assert.Equal(t, Point{}, target.Path[0], "direction %s", d)
		}
	})
}

func TestSynthesizeTargetRotation(t *testing.T) {
	t.Parallel()

	traj := trajectoryFromPoints([]Point{{0, 0}, {0, 0.01}}, 23.5)

	t.Run("continuous rotation targets the final reading", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 23.5, SynthesizeTargetRotation(RotCW, traj))
		assert.Equal(t, 23.5, SynthesizeTargetRotation(RotCCW, traj))
	})

	t.Run("twist trials target 15 degrees", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, TwistTargetDegrees, SynthesizeTargetRotation(RotPlus15, traj))
		assert.Equal(t, TwistTargetDegrees, SynthesizeTargetRotation(RotMinus15, traj))
	})

	t.Run("pure translation targets zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, SynthesizeTargetRotation(RotNone, traj))
	})

	t.Run("continuous rotation with no data targets zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, SynthesizeTargetRotation(RotCW, &Trajectory{}))
	})
}
