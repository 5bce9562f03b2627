package asterisk

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/asterisk-data/asterisk.report/internal/config"
	"github.com/asterisk-data/asterisk.report/internal/hands"
	"github.com/asterisk-data/asterisk.report/internal/monitoring"
	"github.com/asterisk-data/asterisk.report/internal/units"
)

// RawFrame is one row of the capture table as produced by the vision
// pipeline: orientation in radians, translation in meters, one row per
// analyzed frame.
type RawFrame struct {
	Roll  float64
	Pitch float64
	Yaw   float64
	TMag  float64
	X     float64
	Y     float64
	Z     float64
	RMag  float64
}

// Frame is one conditioned pose sample: x/y in normalized millimeter units,
// rotation as an unsigned magnitude. Frames are never mutated after the
// conditioner builds them.
type Frame struct {
	X    float64
	Y    float64
	RMag float64
}

// Trajectory is the conditioned, outlier-filtered pose sequence of one trial.
type Trajectory struct {
	Frames []Frame
}

// Len returns the number of frames.
func (t *Trajectory) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Frames)
}

// Last returns the final frame, or false for an empty trajectory.
func (t *Trajectory) Last() (Frame, bool) {
	if t.Len() == 0 {
		return Frame{}, false
	}
	return t.Frames[len(t.Frames)-1], true
}

// Points returns the planar positions of the trajectory.
func (t *Trajectory) Points() []Point {
	pts := make([]Point, t.Len())
	for i, f := range t.Frames {
		pts[i] = Point{X: f.X, Y: f.Y}
	}
	return pts
}

// Rotations returns the rotation-magnitude samples of the trajectory.
func (t *Trajectory) Rotations() []float64 {
	rots := make([]float64, t.Len())
	for i, f := range t.Frames {
		rots[i] = f.RMag
	}
	return rots
}

// rawColumns maps accepted header names onto RawFrame fields. The capture
// pipeline has emitted a few header variants over time; semantics follow the
// name, never the column position.
var rawColumns = map[string]func(*RawFrame, float64){
	"roll":                  func(f *RawFrame, v float64) { f.Roll = v },
	"pitch":                 func(f *RawFrame, v float64) { f.Pitch = v },
	"yaw":                   func(f *RawFrame, v float64) { f.Yaw = v },
	"tmag":                  func(f *RawFrame, v float64) { f.TMag = v },
	"translation_magnitude": func(f *RawFrame, v float64) { f.TMag = v },
	"x":                     func(f *RawFrame, v float64) { f.X = v },
	"y":                     func(f *RawFrame, v float64) { f.Y = v },
	"z":                     func(f *RawFrame, v float64) { f.Z = v },
	"rmag":                  func(f *RawFrame, v float64) { f.RMag = v },
	"rotation_magnitude":    func(f *RawFrame, v float64) { f.RMag = v },
}

// ignoredColumns are row keys carried in some capture files.
var ignoredColumns = map[string]bool{"frame": true, "row": true, "": true}

// ParseRawTable reads a delimited pose table with a header row and returns
// the raw frames. Columns are matched by header name; x, y and rmag are
// required, everything else is optional.
func ParseRawTable(r io.Reader) ([]RawFrame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read pose table: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("pose table has no data rows")
	}

	header := records[0]
	setters := make([]func(*RawFrame, float64), len(header))
	seen := map[string]bool{}
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if ignoredColumns[key] {
			continue
		}
		set, ok := rawColumns[key]
		if !ok {
			return nil, fmt.Errorf("unrecognised pose column %q", name)
		}
		setters[i] = set
		seen[key] = true
	}
	for _, required := range []string{"x", "y"} {
		if !seen[required] {
			return nil, fmt.Errorf("pose table missing required column %q", required)
		}
	}
	if !seen["rmag"] && !seen["rotation_magnitude"] {
		return nil, fmt.Errorf("pose table missing required column \"rmag\"")
	}

	frames := make([]RawFrame, 0, len(records)-1)
	for rowIdx, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		var f RawFrame
		blank := true
		for i, field := range rec {
			if i >= len(setters) || setters[i] == nil {
				continue
			}
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("pose table row %d: bad value %q: %w", rowIdx+1, field, err)
			}
			setters[i](&f, v)
			blank = false
		}
		if blank {
			continue
		}
		frames = append(frames, f)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("pose table has no data rows")
	}
	return frames, nil
}

// Condition turns raw frames into an analysis-ready trajectory:
//
//  1. translational fields are converted from meters to millimeters,
//  2. x and y are normalized by the hand's span and depth,
//  3. statistical outliers (above the configured quantile) are removed per
//     column in the fixed order x, y, rmag.
//
// Every stage rounds to four decimals. The sequential column order matters:
// the y pass filters the already-x-filtered table, and changing it changes
// outputs, so it is part of the contract.
func Condition(raw []RawFrame, geom hands.Geometry, cfg *config.AnalysisConfig) *Trajectory {
	if cfg == nil {
		cfg = config.EmptyAnalysisConfig()
	}

	frames := make([]Frame, len(raw))
	for i, r := range raw {
		f := Frame{
			X:    units.Round(units.MetersToMillimeters(r.X)),
			Y:    units.Round(units.MetersToMillimeters(r.Y)),
			RMag: units.Round(r.RMag),
		}
		if cfg.GetNormalize() {
			f.X = units.Round(f.X / geom.Span)
			f.Y = units.Round(f.Y / geom.Depth)
		}
		frames[i] = f
	}

	frames = removeOutliers(frames, cfg.GetOutlierQuantile(), cfg.GetOutlierMinRows())
	return &Trajectory{Frames: frames}
}

// ConditionFile loads and conditions one trial's pose table. A table that
// cannot be read or parsed yields a nil trajectory and a log line, not an
// error: the trial keeps its identity and is skipped for metrics.
func ConditionFile(path string, geom hands.Geometry, cfg *config.AnalysisConfig) *Trajectory {
	f, err := os.Open(path)
	if err != nil {
		monitoring.Logf("failed to open pose table %s: %v", path, err)
		return nil
	}
	defer f.Close()

	raw, err := ParseRawTable(f)
	if err != nil {
		monitoring.Logf("failed to parse pose table %s: %v", path, err)
		return nil
	}
	return Condition(raw, geom, cfg)
}

// columnFilters fixes the outlier-removal order. Later passes operate on the
// already-filtered table; the order is preserved for output compatibility.
var columnFilters = []func(Frame) float64{
	func(f Frame) float64 { return f.X },
	func(f Frame) float64 { return f.Y },
	func(f Frame) float64 { return f.RMag },
}

// removeOutliers drops frames whose x, y or rmag exceeds the per-column
// quantile threshold. Tables at or below minRows are returned untouched;
// quantile filtering on sparse captures would discard real movement.
func removeOutliers(frames []Frame, quantile float64, minRows int) []Frame {
	if len(frames) <= minRows {
		return frames
	}

	for _, col := range columnFilters {
		if len(frames) == 0 {
			break
		}
		values := make([]float64, len(frames))
		for i, f := range frames {
			values[i] = col(f)
		}
		sort.Float64s(values)
		// LinInterp matches the interpolating quantile the study's reference
		// analysis used; the empirical kind would return the sample maximum
		// and never drop anything.
		threshold := stat.Quantile(quantile, stat.LinInterp, values, nil)

		kept := frames[:0]
		for _, f := range frames {
			if col(f) <= threshold {
				kept = append(kept, f)
			}
		}
		frames = kept
	}
	return frames
}
