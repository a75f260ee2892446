package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tryptofanik/bios2net/pkg/errors"
)

// UnitBallNormalize centers the first three (x, y, z) columns on their
// centroid and scales them by the maximum per-point Euclidean distance from
// that centroid, producing geometry inside the unit ball. Only positions are
// touched; normals and other channels pass through unchanged.
//
// The step runs at final packaging and its result is never cached, so the
// normalization is recomputed for every resampled draw of a sample.
type UnitBallNormalize struct{}

// Name implements Step.
func (UnitBallNormalize) Name() string { return "unit_ball_normalize" }

// Apply implements Step. The input is mutated in place.
func (UnitBallNormalize) Apply(x *mat.Dense) (*mat.Dense, error) {
	rows, cols := x.Dims()
	if cols < 3 {
		return nil, errors.NewDimensionError("UnitBallNormalize.Apply", 3, cols, 1)
	}

	var cx, cy, cz float64
	for i := 0; i < rows; i++ {
		cx += x.At(i, 0)
		cy += x.At(i, 1)
		cz += x.At(i, 2)
	}
	n := float64(rows)
	cx, cy, cz = cx/n, cy/n, cz/n

	maxDist := 0.0
	for i := 0; i < rows; i++ {
		dx := x.At(i, 0) - cx
		dy := x.At(i, 1) - cy
		dz := x.At(i, 2) - cz
		if d := math.Sqrt(dx*dx + dy*dy + dz*dz); d > maxDist {
			maxDist = d
		}
	}
	// All points coincide with the centroid; avoid dividing by zero.
	if maxDist < 1e-12 {
		maxDist = 1.0
	}

	for i := 0; i < rows; i++ {
		x.Set(i, 0, (x.At(i, 0)-cx)/maxDist)
		x.Set(i, 1, (x.At(i, 1)-cy)/maxDist)
		x.Set(i, 2, (x.At(i, 2)-cz)/maxDist)
	}
	return x, nil
}

// OutputChannels implements Step.
func (UnitBallNormalize) OutputChannels(in int) int { return in }
