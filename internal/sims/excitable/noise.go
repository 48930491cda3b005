package excitable

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Noise2D is a smooth, deterministic 2D noise field with values in [-1, 1].
type Noise2D interface {
	Eval2(x, y float64) float64
}

// NewSimplexNoise returns OpenSimplex noise seeded with seed.
func NewSimplexNoise(seed int64) Noise2D {
	return opensimplex.New(seed)
}

const baselineRefractory = 150

// RefractoryFromNoise maps a raw noise sample n in [-1, 1] to a refractory
// period: the sample is shifted to [0, 2], passed through 80n²-40n+50 and
// blended with the baseline using weight in [0, 1].
func RefractoryFromNoise(n, weight float64) uint16 {
	n = math.Min(math.Max(n, -1), 1) + 1
	candidate := 80*n*n - 40*n + 50
	return clampU16(int(math.Round(candidate*weight + baselineRefractory*(1-weight))))
}
