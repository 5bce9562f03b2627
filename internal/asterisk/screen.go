package asterisk

import (
	"github.com/asterisk-data/asterisk.report/internal/config"
	"github.com/asterisk-data/asterisk.report/internal/monitoring"
)

// HasExcessiveDeviation reports whether any trajectory point diverges from
// the target's terminal direction by more than the configured angular
// threshold. Points within the noise floor of the origin are skipped (vision
// noise near the start dominates angles there). This is a binary gate, not an
// aggregate score: the first offender trips it and is logged.
func HasExcessiveDeviation(traj *Trajectory, target Target, cfg *config.AnalysisConfig) bool {
	if cfg == nil {
		cfg = config.EmptyAnalysisConfig()
	}
	if traj.Len() < 2 || len(target.Path) == 0 {
		return false
	}

	terminal := target.Path[len(target.Path)-1]
	if Magnitude(terminal) == 0 {
		return false
	}

	threshold := cfg.GetDeviationThresholdDegrees()
	noiseFloor := cfg.GetNoiseFloor()

	for i, f := range traj.Frames[1:] {
		p := Point{X: f.X, Y: f.Y}
		if Magnitude(p) < noiseFloor {
			continue
		}
		if angle := AngleBetween(p, terminal); angle > threshold {
			monitoring.Logf("deviation check: point %d at (%.4f, %.4f) is %.1f degrees off target (threshold %.1f)",
				i+1, f.X, f.Y, angle, threshold)
			return true
		}
	}
	return false
}
