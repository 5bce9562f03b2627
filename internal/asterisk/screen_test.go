package asterisk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asterisk-data/asterisk.report/internal/config"
)

func TestHasExcessiveDeviation(t *testing.T) {
	t.Parallel()

	targetA := Target{Path: IdealPath(DirA, 100, 0.5)[:60], TotalDistance: 0.3}

	t.Run("straight trial passes", func(t *testing.T) {
		t.Parallel()
		traj := trajectoryFromPoints([]Point{{0, 0}, {0.01, 0.15}, {0.0, 0.3}}, 0)
		assert.False(t, HasExcessiveDeviation(traj, targetA, nil))
	})

	t.Run("planted outlier beyond threshold trips the gate", func(t *testing.T) {
		t.Parallel()
		traj := trajectoryFromPoints([]Point{
			{0, 0},
			{0.01, 0.15}, // fine
			{0.25, 0.2},  // ~51 degrees off +y
			{0.0, 0.3},   // fine again; the gate is first-offender
		}, 0)
		assert.True(t, HasExcessiveDeviation(traj, targetA, nil))
	})

	t.Run("noise near the origin is ignored", func(t *testing.T) {
		t.Parallel()
		// Wild angles, but all within the 0.1 noise floor.
		traj := trajectoryFromPoints([]Point{{0, 0}, {0.05, -0.05}, {-0.06, 0.02}, {0, 0.3}}, 0)
		assert.False(t, HasExcessiveDeviation(traj, targetA, nil))
	})

	t.Run("threshold is configurable", func(t *testing.T) {
		t.Parallel()
		traj := trajectoryFromPoints([]Point{{0, 0}, {0.1, 0.3}}, 0) // ~18 degrees off +y
		strict := &config.AnalysisConfig{DeviationThresholdDegrees: floatPtr(10)}

		assert.False(t, HasExcessiveDeviation(traj, targetA, nil))
		assert.True(t, HasExcessiveDeviation(traj, targetA, strict))
	})

	t.Run("degenerate inputs never flag", func(t *testing.T) {
		t.Parallel()
		assert.False(t, HasExcessiveDeviation(&Trajectory{}, targetA, nil))
		assert.False(t, HasExcessiveDeviation(trajectoryFromPoints([]Point{{0, 0}, {0.3, 0}}, 0), Target{}, nil))

		// Rotation-only target terminates at the origin; angles are undefined.
		originTarget := Target{Path: IdealPath(DirNone, 10, 0.5)}
		assert.False(t, HasExcessiveDeviation(trajectoryFromPoints([]Point{{0, 0}, {0.3, 0}}, 0), originTarget, nil))
	})
}

func floatPtr(v float64) *float64 { return &v }
