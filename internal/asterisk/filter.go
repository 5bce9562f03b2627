package asterisk

import "github.com/asterisk-data/asterisk.report/internal/units"

// FilteredTrajectory is an immutable moving-average snapshot derived from a
// conditioned trajectory. The base trajectory is left untouched; smoothing
// lives alongside it rather than overwriting it.
type FilteredTrajectory struct {
	Window int
	Frames []Frame
}

// MovingAverage smooths the trajectory with a trailing window mean per
// column. Early samples use whatever window is available (a minimum period of
// one), so the filtered sequence has the same length as the base. Values are
// rounded to the standard four decimals.
func (t *Trajectory) MovingAverage(window int) *FilteredTrajectory {
	if window < 1 {
		window = 1
	}

	n := t.Len()
	out := make([]Frame, n)
	var sumX, sumY, sumR float64
	for i := 0; i < n; i++ {
		sumX += t.Frames[i].X
		sumY += t.Frames[i].Y
		sumR += t.Frames[i].RMag
		if i >= window {
			sumX -= t.Frames[i-window].X
			sumY -= t.Frames[i-window].Y
			sumR -= t.Frames[i-window].RMag
		}
		count := float64(i + 1)
		if i >= window {
			count = float64(window)
		}
		out[i] = Frame{
			X:    units.Round(sumX / count),
			Y:    units.Round(sumY / count),
			RMag: units.Round(sumR / count),
		}
	}

	return &FilteredTrajectory{Window: window, Frames: out}
}
