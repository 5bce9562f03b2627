package asterisk

import "math"

// FrechetDistance computes the discrete Frechet distance between two ordered
// point sequences: the minimal leash length needed for two walkers moving
// monotonically along p and q to stay connected.
//
// Standard dynamic program: d(i,j) = max(min(d(i-1,j), d(i,j-1), d(i-1,j-1)),
// dist(p_i, q_j)), with d(0,0) = dist(p_0, q_0). Either sequence being empty
// yields +Inf.
func FrechetDistance(p, q []Point) float64 {
	return frechet(len(p), len(q), func(i, j int) float64 {
		return Distance(p[i], q[j])
	})
}

// FrechetDistance1D computes the discrete Frechet distance between two scalar
// sequences. Used for rotation magnitudes against a (possibly single-sample)
// rotation target.
func FrechetDistance1D(p, q []float64) float64 {
	return frechet(len(p), len(q), func(i, j int) float64 {
		return math.Abs(p[i] - q[j])
	})
}

func frechet(m, n int, dist func(i, j int) float64) float64 {
	if m == 0 || n == 0 {
		return math.Inf(1)
	}

	// Rolling single-row DP keeps memory at O(n) for long captures.
	prev := make([]float64, n)
	cur := make([]float64, n)

	prev[0] = dist(0, 0)
	for j := 1; j < n; j++ {
		prev[j] = math.Max(prev[j-1], dist(0, j))
	}

	for i := 1; i < m; i++ {
		cur[0] = math.Max(prev[0], dist(i, 0))
		for j := 1; j < n; j++ {
			feasible := math.Min(prev[j], math.Min(cur[j-1], prev[j-1]))
			cur[j] = math.Max(feasible, dist(i, j))
		}
		prev, cur = cur, prev
	}
	return prev[n-1]
}
