// Package asterisk implements per-trial trajectory analysis for the asterisk
// test: conditioning raw pose tables, synthesizing ideal target paths, and
// computing path-quality metrics against them.
package asterisk

import "math"

// Pose2D is a planar pose sample: position plus rotation magnitude.
// Rotation is stored as an unsigned magnitude (degrees); sign information is
// not recoverable from the capture pipeline.
type Pose2D struct {
	X    float64
	Y    float64
	RMag float64
}

// Point is a bare 2-D point on a reference path.
type Point struct {
	X float64
	Y float64
}

// Distance returns the planar Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Magnitude returns the distance of p from the origin.
func Magnitude(p Point) float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// AngleBetween returns the undirected angle between two position vectors in
// degrees, in [0,180]. The cosine is clamped to [-1,1] before Acos so that
// floating-point overshoot on near-parallel vectors cannot produce NaN.
func AngleBetween(a, b Point) float64 {
	magA := Magnitude(a)
	magB := Magnitude(b)
	if magA == 0 || magB == 0 {
		return 0
	}
	cos := (a.X*b.X + a.Y*b.Y) / (magA * magB)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180.0 / math.Pi
}

// ArcLength returns the cumulative length of consecutive-point segments.
// A path with fewer than two points has zero arc length.
func ArcLength(path []Point) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += Distance(path[i-1], path[i])
	}
	return total
}
