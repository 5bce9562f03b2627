package asterisk

import (
	"github.com/asterisk-data/asterisk.report/internal/config"
)

// Target is the finite reference path a trial is scored against, plus the
// straight-line distance the trial actually covered along it.
type Target struct {
	// Path is the ideal line for the trial's direction, truncated to the
	// trajectory's extent. First point is always the origin; length >= 2.
	Path []Point

	// TotalDistance is the origin-to-terminal straight-line distance of Path.
	TotalDistance float64
}

// SynthesizeTarget builds the trial's reference path by generating the full
// ideal line for the direction and truncating it at the sample closest to the
// trajectory's final pose (the "narrow target").
//
// Degenerate trajectories (no frames, or ones that never leave the origin)
// fall back to the first two ideal samples; the reported TotalDistance then
// comes from the first non-origin ideal point, which slightly overstates
// near-zero movement. That bias is accepted: the true distance is a property
// of the target path, and a sub-sample estimate is not available.
func SynthesizeTarget(d Direction, traj *Trajectory, cfg *config.AnalysisConfig) Target {
	if cfg == nil {
		cfg = config.EmptyAnalysisConfig()
	}

	ideal := IdealPath(d, cfg.GetTargetSamples(), cfg.GetMaxPathRadius())

	last, ok := traj.Last()
	cut := -1
	if ok {
		cut = nearestIndex(Point{X: last.X, Y: last.Y}, ideal)
	}

	if cut < 1 {
		// Near-zero movement: keep a minimal two-point target so downstream
		// geometry always has a segment to work with.
		path := ideal[:2]
		return Target{Path: path, TotalDistance: Distance(path[0], path[1])}
	}

	path := ideal[:cut+1]
	return Target{
		Path:          path,
		TotalDistance: Distance(path[0], path[len(path)-1]),
	}
}

// nearestIndex returns the index of the path point closest to p, or -1 for an
// empty path.
func nearestIndex(p Point, path []Point) int {
	best := -1
	bestDist := 0.0
	for i, q := range path {
		d := Distance(p, q)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// SynthesizeTargetRotation returns the terminal rotation the trial is scored
// against. Twist trials target 15 degrees (magnitude only; the capture stores
// unsigned rotation). Continuous cw/ccw trials have no independent ground
// truth, so the target is the trajectory's own final reading; their rotation
// score measures spread below that reading rather than error against an
// external reference, a known limitation of the source data rather than
// something to correct here.
func SynthesizeTargetRotation(r RotationMode, traj *Trajectory) float64 {
	switch {
	case r.IsContinuous():
		last, ok := traj.Last()
		if !ok {
			return 0
		}
		return last.RMag
	case r.IsTwist():
		return TwistTargetDegrees
	default:
		return 0
	}
}
