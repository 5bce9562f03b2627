package asterisk

import (
	"fmt"
	"math"

	"github.com/asterisk-data/asterisk.report/internal/monitoring"
)

// Sentinel values recorded when an individual metric fails to compute. The
// record schema is always complete; a consumer checks for the sentinel rather
// than a missing field.
const (
	MetricFailed         = -1.0
	MaxErrorFailed       = 0.0
	maxAreaWindowDivisor = 10
)

// MetricResult is the outcome of one metric computation: a value, or the
// error that prevented one. Failures are data, not aborts.
type MetricResult struct {
	Value float64
	Err   error
}

// Failed reports whether the metric could not be computed.
func (m MetricResult) Failed() bool { return m.Err != nil }

// OrSentinel returns the value, or the given sentinel when the metric failed.
func (m MetricResult) OrSentinel(sentinel float64) float64 {
	if m.Failed() {
		return sentinel
	}
	return m.Value
}

// MetricsRecord is the fixed-schema result of scoring one trial. Every field
// is always populated; failed metrics carry sentinels.
type MetricsRecord struct {
	TrialID            string
	TotalDistance      float64
	TranslationFrechet float64
	RotationFrechet    float64
	MaxError           float64
	MovementEfficiency float64
	ArcLength          float64
	AreaBetweenCurves  float64
	MaxAreaRegion      float64
	MaxAreaLocation    float64
}

// ComputeMetrics scores a conditioned trajectory against its target. Each
// metric is computed independently; a numerical failure in one is logged and
// recorded as a sentinel without disturbing the others. Callers must not
// invoke this for trials labeled no-movement.
func ComputeMetrics(trialID string, traj *Trajectory, target Target, targetRotation float64) MetricsRecord {
	points := traj.Points()
	rotations := traj.Rotations()

	translationFD := metricFrechet(points, target.Path)
	rotationFD := metricRotationFrechet(rotations, targetRotation)
	arcLength := metricArcLength(points)
	efficiency := metricEfficiency(target.TotalDistance, arcLength)
	maxErr := metricMaxError(points, target)
	area := metricAreaBetweenCurves(points, target.Path)
	region, location := metricMaxAreaRegion(points, target)

	for name, m := range map[string]MetricResult{
		"translation_frechet": translationFD,
		"rotation_frechet":    rotationFD,
		"max_error":           maxErr,
		"movement_efficiency": efficiency,
		"arc_length":          arcLength,
		"area_between_curves": area,
		"max_area_region":     region,
	} {
		if m.Failed() {
			monitoring.Logf("trial %s: metric %s failed: %v", trialID, name, m.Err)
		}
	}

	return MetricsRecord{
		TrialID:            trialID,
		TotalDistance:      target.TotalDistance,
		TranslationFrechet: translationFD.OrSentinel(MetricFailed),
		RotationFrechet:    rotationFD.OrSentinel(MetricFailed),
		MaxError:           maxErr.OrSentinel(MaxErrorFailed),
		MovementEfficiency: efficiency.OrSentinel(MetricFailed),
		ArcLength:          arcLength.OrSentinel(MetricFailed),
		AreaBetweenCurves:  area.OrSentinel(MetricFailed),
		MaxAreaRegion:      region.OrSentinel(MetricFailed),
		MaxAreaLocation:    location.OrSentinel(MetricFailed),
	}
}

func metricFrechet(points []Point, targetPath []Point) MetricResult {
	if len(points) == 0 || len(targetPath) == 0 {
		return MetricResult{Err: fmt.Errorf("frechet distance needs non-empty paths")}
	}
	d := FrechetDistance(points, targetPath)
	if math.IsInf(d, 0) || math.IsNaN(d) {
		return MetricResult{Err: fmt.Errorf("frechet distance is not finite")}
	}
	return MetricResult{Value: d}
}

func metricRotationFrechet(rotations []float64, targetRotation float64) MetricResult {
	if len(rotations) == 0 {
		return MetricResult{Err: fmt.Errorf("rotation frechet needs samples")}
	}
	d := FrechetDistance1D(rotations, []float64{targetRotation})
	if math.IsInf(d, 0) || math.IsNaN(d) {
		return MetricResult{Err: fmt.Errorf("rotation frechet is not finite")}
	}
	return MetricResult{Value: d}
}

func metricArcLength(points []Point) MetricResult {
	if len(points) < 2 {
		return MetricResult{Err: fmt.Errorf("arc length needs at least 2 points, have %d", len(points))}
	}
	return MetricResult{Value: ArcLength(points)}
}

// metricEfficiency is the ratio of straight-line target distance to the
// distance actually traveled. 1.0 is a perfectly straight trial.
func metricEfficiency(totalDistance float64, arcLength MetricResult) MetricResult {
	if arcLength.Failed() {
		return MetricResult{Err: fmt.Errorf("efficiency: %w", arcLength.Err)}
	}
	if arcLength.Value == 0 {
		return MetricResult{Err: fmt.Errorf("efficiency: zero arc length")}
	}
	return MetricResult{Value: totalDistance / arcLength.Value}
}

// metricMaxError is the largest lateral deviation of any trajectory point
// from the target line, relative to the distance covered along the target.
func metricMaxError(points []Point, target Target) MetricResult {
	if len(points) == 0 {
		return MetricResult{Err: fmt.Errorf("max error needs trajectory points")}
	}
	if len(target.Path) == 0 {
		return MetricResult{Err: fmt.Errorf("max error needs a target path")}
	}
	terminal := target.Path[len(target.Path)-1]
	mag := Magnitude(terminal)
	if mag == 0 || target.TotalDistance == 0 {
		return MetricResult{Err: fmt.Errorf("max error undefined for zero-length target")}
	}

	ux, uy := terminal.X/mag, terminal.Y/mag
	maxPerp := 0.0
	for _, p := range points {
		// Perpendicular distance from the origin-anchored target line.
		perp := math.Abs(ux*p.Y - uy*p.X)
		if perp > maxPerp {
			maxPerp = perp
		}
	}
	return MetricResult{Value: maxPerp / target.TotalDistance}
}

// metricAreaBetweenCurves closes the trajectory against the reversed target
// path and integrates the enclosed planar area (shoelace formula). Endpoints
// are aligned implicitly by the shared origin and by joining the two terminal
// points.
func metricAreaBetweenCurves(points []Point, targetPath []Point) MetricResult {
	if len(points)+len(targetPath) < 3 {
		return MetricResult{Err: fmt.Errorf("area needs at least 3 boundary points")}
	}

	polygon := make([]Point, 0, len(points)+len(targetPath))
	polygon = append(polygon, points...)
	for i := len(targetPath) - 1; i >= 0; i-- {
		polygon = append(polygon, targetPath[i])
	}

	return MetricResult{Value: shoelaceArea(polygon)}
}

func shoelaceArea(polygon []Point) float64 {
	sum := 0.0
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	return math.Abs(sum) / 2
}

// metricMaxAreaRegion finds the contiguous run of trajectory segments that
// contributes the largest local deviation area against the target line, using
// a sliding window of one tenth of the segments (minimum one). It returns the
// window's summed area and its start location as a fraction along the path.
func metricMaxAreaRegion(points []Point, target Target) (region, location MetricResult) {
	if len(points) < 2 {
		err := fmt.Errorf("max area region needs at least 2 points, have %d", len(points))
		return MetricResult{Err: err}, MetricResult{Err: err}
	}
	terminal := target.Path[len(target.Path)-1]
	mag := Magnitude(terminal)
	if mag == 0 {
		err := fmt.Errorf("max area region undefined for zero-length target")
		return MetricResult{Err: err}, MetricResult{Err: err}
	}
	ux, uy := terminal.X/mag, terminal.Y/mag

	// Per-segment deviation area: quadrilateral between the segment and its
	// projection onto the target line.
	segments := len(points) - 1
	areas := make([]float64, segments)
	for i := 0; i < segments; i++ {
		a, b := points[i], points[i+1]
		pa := projectOntoRay(a, ux, uy)
		pb := projectOntoRay(b, ux, uy)
		areas[i] = shoelaceArea([]Point{a, b, pb, pa})
	}

	window := segments / maxAreaWindowDivisor
	if window < 1 {
		window = 1
	}

	sum := 0.0
	for i := 0; i < window; i++ {
		sum += areas[i]
	}
	bestSum, bestStart := sum, 0
	for i := window; i < segments; i++ {
		sum += areas[i] - areas[i-window]
		if sum > bestSum {
			bestSum = sum
			bestStart = i - window + 1
		}
	}

	return MetricResult{Value: bestSum}, MetricResult{Value: float64(bestStart) / float64(segments)}
}

func projectOntoRay(p Point, ux, uy float64) Point {
	t := p.X*ux + p.Y*uy
	return Point{X: t * ux, Y: t * uy}
}
