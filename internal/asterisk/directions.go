package asterisk

import "math"

// Direction is one of the eight canonical translation directions of the
// asterisk test, arranged at 45 degree increments around the origin, plus
// DirNone for pure-rotation trials.
type Direction string

// Translation direction codes. DirA points along +y and codes advance
// clockwise, alternating pure-axis lines and diagonals.
const (
	DirA    Direction = "a" // +y axis
	DirB    Direction = "b" // +x +y diagonal
	DirC    Direction = "c" // +x axis
	DirD    Direction = "d" // +x -y diagonal
	DirE    Direction = "e" // -y axis
	DirF    Direction = "f" // -x -y diagonal
	DirG    Direction = "g" // -x axis
	DirH    Direction = "h" // -x +y diagonal
	DirNone Direction = "n" // no translation (rotation-only trial)
)

// RotationMode describes the rotation condition of a trial.
type RotationMode string

// Rotation modes. Continuous cw/ccw rotation only occurs on DirNone trials;
// p15/m15 are twist conditions layered on a translation.
const (
	RotNone    RotationMode = "n"
	RotCW      RotationMode = "cw"
	RotCCW     RotationMode = "ccw"
	RotPlus15  RotationMode = "p15"
	RotMinus15 RotationMode = "m15"
)

// TwistTargetDegrees is the terminal rotation expected of p15/m15 trials.
// Magnitude only: rotation is captured unsigned.
const TwistTargetDegrees = 15.0

// TranslationDirections lists the eight translation codes in canonical order.
var TranslationDirections = []Direction{DirA, DirB, DirC, DirD, DirE, DirF, DirG, DirH}

// unitVectors maps each direction onto its unit direction vector. Keeping the
// eight cases in one table (rather than chained conditionals) means a missing
// direction is a lookup failure, not silent wrong geometry. Diagonals are
// normalised so every ideal line ends at the same radius.
var unitVectors = map[Direction]Point{
	DirA: unit(0, 1),
	DirB: unit(1, 1),
	DirC: unit(1, 0),
	DirD: unit(1, -1),
	DirE: unit(0, -1),
	DirF: unit(-1, -1),
	DirG: unit(-1, 0),
	DirH: unit(-1, 1),
}

func unit(x, y float64) Point {
	m := math.Sqrt(x*x + y*y)
	return Point{X: x / m, Y: y / m}
}

// Valid reports whether d is a recognised direction code.
func (d Direction) Valid() bool {
	if d == DirNone {
		return true
	}
	_, ok := unitVectors[d]
	return ok
}

// Valid reports whether r is a recognised rotation mode.
func (r RotationMode) Valid() bool {
	switch r {
	case RotNone, RotCW, RotCCW, RotPlus15, RotMinus15:
		return true
	}
	return false
}

// IsTwist reports whether r is a p15/m15 twist condition.
func (r RotationMode) IsTwist() bool {
	return r == RotPlus15 || r == RotMinus15
}

// IsContinuous reports whether r is a continuous cw/ccw rotation condition.
func (r RotationMode) IsContinuous() bool {
	return r == RotCW || r == RotCCW
}

// IdealPath returns the canonical straight-line path for direction d: nSamples
// evenly spaced points from the origin out to maxRadius. DirNone yields
// nSamples copies of the origin (the object should rotate in place).
// The first point is always exactly (0,0).
func IdealPath(d Direction, nSamples int, maxRadius float64) []Point {
	if nSamples < 2 {
		nSamples = 2
	}

	path := make([]Point, nSamples)
	if d == DirNone {
		return path
	}

	dir, ok := unitVectors[d]
	if !ok {
		// Unknown codes are rejected at identity-parse time; an all-origin
		// path keeps downstream math finite if one slips through.
		return path
	}

	step := maxRadius / float64(nSamples-1)
	for i := range path {
		r := step * float64(i)
		path[i] = Point{X: dir.X * r, Y: dir.Y * r}
	}
	return path
}
